package http

import (
	"context"
	"io"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/InfringeScope/internal/testutil"
)

func TestNewServer_Defaults(t *testing.T) {
	s := NewServer(ServerConfig{Port: 8000}, http.NewServeMux(), nil)

	assert.Equal(t, ":8000", s.srv.Addr)
	assert.Equal(t, 15*time.Second, s.cfg.ShutdownTimeout)
	assert.NotNil(t, s.Handler())
}

func TestServer_ServeAndStop(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/ping", func(w http.ResponseWriter, _ *http.Request) { _, _ = io.WriteString(w, "pong") })

	log := testutil.NewMockLogger()
	s := NewServer(ServerConfig{ShutdownTimeout: time.Second}, mux, log)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() { done <- s.Serve(ln) }()

	resp, err := http.Get("http://" + ln.Addr().String() + "/ping")
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	assert.Equal(t, "pong", string(body))

	require.NoError(t, s.Stop(context.Background()))
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Serve did not return after Stop")
	}

	assert.True(t, log.HasMessage("info", "HTTP server listening"))
	assert.True(t, log.HasMessage("info", "HTTP server stopped"))
}

//Personal.AI order the ending
