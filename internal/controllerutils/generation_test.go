package controllerutils

import (
	"testing"

	"github.com/go-logr/logr"
	"github.com/stretchr/testify/assert"
)

func TestShouldReconcile(t *testing.T) {
	assert.True(t, ShouldReconcile(2, 1, false))
	assert.False(t, ShouldReconcile(2, 2, false))
	assert.True(t, ShouldReconcile(2, 2, true))
}

func TestCorrelationIDRoundTrips(t *testing.T) {
	ctx, _ := WithCorrelationID(t.Context(), logr.Discard())
	id := CorrelationID(ctx)
	assert.NotEmpty(t, id)
}

func TestCorrelationIDEmptyWithoutContext(t *testing.T) {
	assert.Empty(t, CorrelationID(t.Context()))
}
