package logger

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewContextAndFromContext_RoundTrips(t *testing.T) {
	l := slog.Default()
	ctx := NewContext(context.Background(), l)
	assert.Same(t, l, FromContext(ctx))
}

func TestFromContext_FallsBackToDefault(t *testing.T) {
	assert.NotNil(t, FromContext(context.Background()))
}

func TestSetRequestIDAndGetRequestID_RoundTrips(t *testing.T) {
	ctx := SetRequestID(context.Background(), "req-123")
	assert.Equal(t, "req-123", GetRequestID(ctx))
}

func TestGetRequestID_EmptyWhenUnset(t *testing.T) {
	assert.Equal(t, "", GetRequestID(context.Background()))
}
