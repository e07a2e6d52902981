package api_test

import (
	"context"
	"io"
	"net"
	"net/http"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MaelVB/Drawsyn-sub000/internal/api"
	"github.com/MaelVB/Drawsyn-sub000/internal/testutil"
)

func TestServerServesAndShutsDown(t *testing.T) {
	cfg := api.DefaultServerConfig()
	cfg.Host = "127.0.0.1"
	cfg.Port = 0

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "pong")
	})
	server := api.NewServer(handler, cfg, testutil.NopLogger())

	require.NoError(t, server.Listen())
	assert.NotEqual(t, "127.0.0.1:0", server.Addr())

	errCh := make(chan error, 1)
	go func() { errCh <- server.Start() }()

	client := &http.Client{Timeout: time.Second}
	resp, err := client.Get("http://" + server.Addr() + "/")
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	require.NoError(t, err)
	assert.Equal(t, "pong", string(body))

	require.NoError(t, server.Shutdown(context.Background()))
	select {
	case err := <-errCh:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestServerListenFailure(t *testing.T) {
	cfg := api.DefaultServerConfig()
	cfg.Host = "127.0.0.1"
	cfg.Port = 0

	first := api.NewServer(http.NotFoundHandler(), cfg, testutil.NopLogger())
	require.NoError(t, first.Listen())
	go func() { _ = first.Start() }()
	t.Cleanup(func() { _ = first.Shutdown(context.Background()) })

	// Binding the already-bound address fails
	_, portStr, err := net.SplitHostPort(first.Addr())
	require.NoError(t, err)
	cfg.Port, err = strconv.Atoi(portStr)
	require.NoError(t, err)
	second := api.NewServer(http.NotFoundHandler(), cfg, testutil.NopLogger())
	assert.Error(t, second.Listen())
}
