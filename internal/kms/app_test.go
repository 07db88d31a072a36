package kms

import (
	"context"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/dmitrijs2005/petguard/internal/kms/config"
	"github.com/dmitrijs2005/petguard/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewApp_MockNetwork(t *testing.T) {
	c := &config.Config{}
	c.LoadDefaults()

	app, err := NewApp(c)
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.conn.Close() })
	assert.NotNil(t, app.handler)
}

func TestNewApp_ProductionNeedsKey(t *testing.T) {
	c := &config.Config{}
	c.LoadDefaults()
	c.ChainID = 11155111

	_, err := NewApp(c)
	require.Error(t, err)
}

func TestServe_StopsOnContextCancel(t *testing.T) {
	app := &App{logger: logging.NopLogger{}, handler: NewHandler(&fakeDecrypter{}, logging.NopLogger{})}

	lis, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- app.Serve(ctx, lis) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + lis.Addr().String() + "/healthz")
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 20*time.Millisecond)

	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("server did not stop after context cancel")
	}
}
