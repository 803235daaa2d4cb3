package bind9client

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-logr/logr"
	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddZoneTreatsConflictAsSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/addzone/example.com.", r.URL.Path)
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusConflict)
	}))
	defer srv.Close()

	c := New("east-primary-0", srv.URL, "test-token", logr.Discard(), nil)
	err := c.AddZone(t.Context(), "example.com.", AddZoneParams{Role: "primary", PrimaryNS: "ns1.example.com."})
	require.NoError(t, err)
}

func TestDelZoneTreatsNotFoundAsSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := New("east-primary-0", srv.URL, "", logr.Discard(), nil)
	require.NoError(t, c.DelZone(t.Context(), "example.com."))
}

func TestAddZoneReturnsStatusErrorOnServerFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("disk full"))
	}))
	defer srv.Close()

	c := New("east-primary-0", srv.URL, "", logr.Discard(), nil)
	err := c.AddZone(t.Context(), "example.com.", AddZoneParams{Role: "primary"})
	require.Error(t, err)
	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusInternalServerError, statusErr.StatusCode)
}

func TestGetZoneStatusDecodesResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(ZoneStatus{Zone: "example.com.", Loaded: true, Serial: 42})
	}))
	defer srv.Close()

	c := New("east-primary-0", srv.URL, "", logr.Discard(), nil)
	status, err := c.GetZoneStatus(t.Context(), "example.com.")
	require.NoError(t, err)
	assert.True(t, status.Loaded)
	assert.Equal(t, uint32(42), status.Serial)
}

func TestCircuitBreakerOpensAfterFiveConsecutiveFailures(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	tripped := false
	c := New("east-primary-0", srv.URL, "", logr.Discard(), func() { tripped = true })
	for i := 0; i < 5; i++ {
		_ = c.Notify(t.Context(), "example.com.")
	}
	err := c.Notify(t.Context(), "example.com.")
	require.Error(t, err)
	assert.True(t, errors.Is(err, gobreaker.ErrOpenState), "expected circuit breaker to be open, got: %v", err)
	assert.True(t, tripped, "expected onTrip callback to fire when breaker opens")
}
