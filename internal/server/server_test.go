package server

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/campusauth/internal/bootstrap"
	"github.com/yigit/campusauth/internal/config"
)

func newMemoryServer(t *testing.T) *Server {
	t.Helper()
	t.Setenv("DB_DRIVER", config.DriverMemory)
	t.Setenv("AUTH_BCRYPT_COST", "4")
	t.Setenv("SERVER_SHUTDOWN_TIMEOUT", "2s")
	cfg, err := config.LoadConfig(filepath.Join(t.TempDir(), "none.yaml"))
	require.NoError(t, err)

	store, _, err := bootstrap.SetupStore(context.Background(), cfg, zerolog.Nop())
	require.NoError(t, err)
	deps, err := bootstrap.BuildDependencies(cfg, store, zerolog.Nop())
	require.NoError(t, err)

	return New(cfg, bootstrap.SetupRouter(cfg, deps), deps, zerolog.Nop())
}

func TestServeUntilContextDone(t *testing.T) {
	srv := newMemoryServer(t)
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	closed := false
	srv.deps.AddCloser(func() { closed = true })

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx, listener) }()

	client := &http.Client{Timeout: 2 * time.Second}
	resp, err := client.Get(fmt.Sprintf("http://%s/api/v1/health", listener.Addr()))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
	assert.True(t, closed)
}

func TestNewAppliesConfiguredTimeouts(t *testing.T) {
	t.Setenv("SERVER_READ_TIMEOUT", "7s")
	srv := newMemoryServer(t)

	assert.Equal(t, 7*time.Second, srv.http.ReadTimeout)
	assert.Equal(t, 15*time.Second, srv.http.WriteTimeout)
	assert.Equal(t, ":8080", srv.http.Addr)
}
