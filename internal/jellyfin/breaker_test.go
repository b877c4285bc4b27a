package jellyfin

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestBreakerClient_OpensAfterFailures(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	b := NewBreakerClient(NewClient(server.URL), BreakerConfig{
		Name:                "test-opens",
		ConsecutiveFailures: 2,
		OpenTimeout:         time.Hour,
	}, testLogger())

	for i := 0; i < 2; i++ {
		_, err := b.PlayedItems(context.Background(), testSession)
		var apiErr *APIError
		require.True(t, errors.As(err, &apiErr))
	}
	assert.Equal(t, "open", b.State())

	_, err := b.PlayedItems(context.Background(), testSession)
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.Equal(t, int32(2), calls.Load(), "open circuit must not reach the server")
}

func TestBreakerClient_UnauthorizedDoesNotTrip(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	b := NewBreakerClient(NewClient(server.URL), BreakerConfig{
		Name:                "test-unauthorized",
		ConsecutiveFailures: 1,
	}, testLogger())

	for i := 0; i < 3; i++ {
		_, err := b.AuthenticateByName(context.Background(), "u", "p")
		assert.ErrorIs(t, err, ErrUnauthorized)
	}
	assert.Equal(t, "closed", b.State())
}

func TestBreakerClient_PassesResults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"Items":[{"Id":"s1","RecursiveItemCount":3}]}`))
	}))
	defer server.Close()

	b := NewBreakerClient(NewClient(server.URL), BreakerConfig{Name: "test-pass"}, testLogger())

	series, err := b.AllSeries(context.Background(), testSession)
	require.NoError(t, err)
	require.Len(t, series, 1)
	assert.Equal(t, "s1", series[0].ID)
}
