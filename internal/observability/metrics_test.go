package observability

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsObserve(t *testing.T) {
	m, err := NewMetrics()
	require.NoError(t, err)

	m.ObserveAdapter("unifiprotect", 120*time.Millisecond, 4, false)
	m.ObserveAdapter("reolink", 50*time.Millisecond, 0, true)
	m.ObserveGeneration(30*time.Millisecond, 4, nil)
	m.ObserveGeneration(0, 0, errors.New("boom"))

	families, err := m.registry.Gather()
	require.NoError(t, err)

	names := make(map[string]bool, len(families))
	for _, fam := range families {
		names[fam.GetName()] = true
	}
	assert.True(t, names["fcb_discovery_duration_seconds"])
	assert.True(t, names["fcb_discovery_errors_total"])
	assert.True(t, names["fcb_generation_errors_total"])
	assert.True(t, names["fcb_catalog_cameras"])
	assert.True(t, names["fcb_last_generated_timestamp_seconds"])
}

func TestMetricsServe(t *testing.T) {
	m, err := NewMetrics()
	require.NoError(t, err)
	m.ObserveGeneration(10*time.Millisecond, 2, nil)

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := listener.Addr().String()
	require.NoError(t, listener.Close())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- m.Serve(ctx, addr) }()

	var resp *http.Response
	require.Eventually(t, func() bool {
		var getErr error
		resp, getErr = http.Get("http://" + addr + "/metrics")
		return getErr == nil
	}, 2*time.Second, 20*time.Millisecond)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())
	assert.Contains(t, string(body), "fcb_catalog_cameras 2")

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("metrics server did not shut down")
	}
}
