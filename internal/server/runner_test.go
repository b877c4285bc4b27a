package server

import (
	"context"
	"io"
	"log/slog"
	"net"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type countingSweeper struct {
	started atomic.Bool
	stopped atomic.Bool
}

func (s *countingSweeper) RunSweeper(ctx context.Context, _ time.Duration) error {
	s.started.Store(true)
	<-ctx.Done()
	s.stopped.Store(true)
	return nil
}

func TestRunner_ServeAndShutdown(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("pong"))
	})
	sweeper := &countingSweeper{}
	runner := NewRunner(handler, sweeper, Config{ShutdownTimeout: time.Second}, testLogger())

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- runner.Serve(ctx, ln) }()

	resp, err := http.Get("http://" + ln.Addr().String() + "/ping")
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	assert.Equal(t, "pong", string(body))

	assert.Eventually(t, sweeper.started.Load, time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("runner did not stop")
	}
	assert.True(t, sweeper.stopped.Load())

	_, err = http.Get("http://" + ln.Addr().String() + "/ping")
	assert.Error(t, err, "server must be closed after shutdown")
}

func TestRunner_NilSweeper(t *testing.T) {
	runner := NewRunner(http.NotFoundHandler(), nil, Config{}, nil)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.NoError(t, runner.Serve(ctx, ln))
}

func TestRunner_Run_ListenError(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer func() { _ = ln.Close() }()

	runner := NewRunner(http.NotFoundHandler(), nil, Config{Addr: ln.Addr().String()}, testLogger())
	err = runner.Run(context.Background())
	assert.ErrorContains(t, err, "listen")
}

func TestNewRunner_Defaults(t *testing.T) {
	r := NewRunner(http.NotFoundHandler(), nil, Config{}, nil)
	assert.Equal(t, 30*time.Second, r.config.ShutdownTimeout)
	assert.Equal(t, time.Minute, r.config.SweepInterval)
	assert.NotNil(t, r.logger)
}
