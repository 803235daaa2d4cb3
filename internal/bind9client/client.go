// Package bind9client talks to the zone-admin HTTP sidecar that runs beside
// every BIND9 instance pod. The sidecar is a small out-of-band control
// surface bindy owns (not part of BIND9 itself): it exposes addzone,
// delzone, zonestatus, notify and retransfer as plain HTTP endpoints so the
// zone controller doesn't need rndc exec access into the pod.
package bind9client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-logr/logr"
	"github.com/sony/gobreaker"
)

const requestTimeout = 10 * time.Second

// Client talks to one instance's zone-admin sidecar.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker
	log        logr.Logger
}

// New builds a Client for the sidecar reachable at baseURL (typically the
// instance's ClusterIP service DNS name on AdminPort), authenticating with
// the ServiceAccount bearer token mounted into the caller's pod. onTrip, if
// non-nil, is called every time the breaker opens, letting callers surface
// bindy_circuit_breaker_trips_total.
func New(instanceName, baseURL, token string, log logr.Logger, onTrip func()) *Client {
	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "bind9client:" + instanceName,
		MaxRequests: 1,
		Interval:    0,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			if to == gobreaker.StateOpen && onTrip != nil {
				onTrip()
			}
		},
	})
	return &Client{
		baseURL: baseURL,
		token:   token,
		httpClient: &http.Client{
			Timeout: requestTimeout,
		},
		breaker: breaker,
		log:     log.WithName("bind9client").WithValues("instance", instanceName),
	}
}

// ZoneStatus describes a zone's loaded state as reported by the sidecar.
type ZoneStatus struct {
	Zone    string `json:"zone"`
	Loaded  bool   `json:"loaded"`
	Serial  uint32 `json:"serial"`
	Message string `json:"message,omitempty"`
}

type addZoneRequest struct {
	SOA struct {
		PrimaryNS    string `json:"primaryNS"`
		AdminMailbox string `json:"adminMailbox"`
		Serial       uint32 `json:"serial"`
		Refresh      uint32 `json:"refresh"`
		Retry        uint32 `json:"retry"`
		Expire       uint32 `json:"expire"`
		NegativeTTL  uint32 `json:"negativeTTL"`
	} `json:"soa"`
	Role      string   `json:"role"`
	Primaries []string `json:"primaries,omitempty"`
}

// AddZoneParams carries the fields AddZone needs to install a zone as
// primary or secondary (spec §4.2).
type AddZoneParams struct {
	Role         string
	PrimaryNS    string
	AdminMailbox string
	Serial       uint32
	Refresh      uint32
	Retry        uint32
	Expire       uint32
	NegativeTTL  uint32
	Primaries    []string // for secondary zones, the primary(ies) to transfer from
}

// AddZone installs fqdn on the instance. Both a fresh creation (2xx) and an
// already-exists response (409) count as success: AddZone is idempotent by
// contract (spec §4.2 "installing a zone that already exists is not an
// error").
func (c *Client) AddZone(ctx context.Context, fqdn string, params AddZoneParams) error {
	body := addZoneRequest{Role: params.Role, Primaries: params.Primaries}
	body.SOA.PrimaryNS = params.PrimaryNS
	body.SOA.AdminMailbox = params.AdminMailbox
	body.SOA.Serial = params.Serial
	body.SOA.Refresh = params.Refresh
	body.SOA.Retry = params.Retry
	body.SOA.Expire = params.Expire
	body.SOA.NegativeTTL = params.NegativeTTL

	_, err := c.do(ctx, http.MethodPost, "/api/addzone/"+fqdn, body, []int{http.StatusOK, http.StatusCreated, http.StatusConflict})
	return err
}

// DelZone removes fqdn from the instance. A 404 counts as success: the zone
// is already gone, which is the caller's desired end state.
func (c *Client) DelZone(ctx context.Context, fqdn string) error {
	_, err := c.do(ctx, http.MethodDelete, "/api/delzone/"+fqdn, nil, []int{http.StatusOK, http.StatusNoContent, http.StatusNotFound})
	return err
}

// GetZoneStatus fetches the instance's current view of fqdn.
func (c *Client) GetZoneStatus(ctx context.Context, fqdn string) (*ZoneStatus, error) {
	resp, err := c.do(ctx, http.MethodGet, "/api/zonestatus/"+fqdn, nil, []int{http.StatusOK})
	if err != nil {
		return nil, err
	}
	var status ZoneStatus
	if err := json.Unmarshal(resp, &status); err != nil {
		return nil, fmt.Errorf("decoding zonestatus response: %w", err)
	}
	return &status, nil
}

// Notify triggers a DNS NOTIFY to secondaries for fqdn (spec §4.3, after a
// primary's RRset changes).
func (c *Client) Notify(ctx context.Context, fqdn string) error {
	_, err := c.do(ctx, http.MethodPost, "/api/notify/"+fqdn, nil, []int{http.StatusOK, http.StatusAccepted})
	return err
}

// Retransfer forces a secondary to pull fqdn from its primaries immediately,
// bypassing the normal refresh interval.
func (c *Client) Retransfer(ctx context.Context, fqdn string) error {
	_, err := c.do(ctx, http.MethodPost, "/api/retransfer/"+fqdn, nil, []int{http.StatusOK, http.StatusAccepted})
	return err
}

func (c *Client) do(ctx context.Context, method, path string, body any, okStatuses []int) ([]byte, error) {
	result, err := c.breaker.Execute(func() (any, error) {
		return c.doOnce(ctx, method, path, body, okStatuses)
	})
	if err != nil {
		return nil, err
	}
	return result.([]byte), nil
}

func (c *Client) doOnce(ctx context.Context, method, path string, body any, okStatuses []int) ([]byte, error) {
	var reader *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encoding request body: %w", err)
		}
		reader = bytes.NewReader(encoded)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.V(1).Info("request failed", "method", method, "path", path, "err", err.Error())
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(resp.Body); err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	for _, ok := range okStatuses {
		if resp.StatusCode == ok {
			return buf.Bytes(), nil
		}
	}
	return nil, &StatusError{Method: method, Path: path, StatusCode: resp.StatusCode, Body: buf.String()}
}

// StatusError reports a zone-admin response outside the caller's accepted
// set, distinct from a transport failure so callers can inspect the status
// code. Every StatusError, 4xx or 5xx, counts toward the circuit breaker's
// failure tally the same way a connection refusal does.
type StatusError struct {
	Method     string
	Path       string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: unexpected status %d: %s", e.Method, e.Path, e.StatusCode, e.Body)
}
