package metrics

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Observe(t *testing.T) {
	m := New()
	m.ObserveResolution("album", "identify", "found", 20*time.Millisecond)
	m.ObserveResolution("album", "identify", "found", 30*time.Millisecond)
	m.ObserveResolution("artist", "search", "not_found", time.Millisecond)
	m.ObserveCatalogRequest("release", "200", 10*time.Millisecond)
	m.ObserveCatalogRequest("release", "404", 10*time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.resolutions.WithLabelValues("album", "identify", "found")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.resolutions.WithLabelValues("artist", "search", "not_found")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.catalogRequests.WithLabelValues("release", "404")))
	assert.Equal(t, 2, testutil.CollectAndCount(m.catalogRequests))
}

func TestService_GetAllMetrics(t *testing.T) {
	m := New()
	m.ObserveResolution("album", "identify", "found", time.Millisecond)
	m.ObserveResolution("artist", "identify", "found", time.Millisecond)
	m.ObserveResolution("artist", "search", "canceled", time.Millisecond)
	m.ObserveCatalogRequest("search", "200", time.Millisecond)
	m.ObserveCatalogRequest("artist", "200", time.Millisecond)
	m.ObserveCatalogRequest("artist", "200", time.Millisecond)

	data, err := NewService(m).GetAllMetrics()
	require.NoError(t, err)

	assert.Equal(t, 2, data.TotalResolved)
	assert.Equal(t, 3, data.TotalRequests)
	assert.Equal(t, []Metric{
		{Type: "catalog_request", Key: "artist/200", Value: 2},
		{Type: "catalog_request", Key: "search/200", Value: 1},
	}, data.CatalogRequests)
	require.Len(t, data.Resolutions, 3)
	assert.Equal(t, "album/identify/found", data.Resolutions[0].Key)
}

func TestRoutes(t *testing.T) {
	m := New()
	m.ObserveResolution("album", "search", "found", time.Millisecond)
	app := fiber.New()
	RegisterRoutes(app, NewHandler(NewService(m)), "/metrics")

	resp, err := app.Test(httptest.NewRequest("GET", "/metrics", nil), -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(body), `discogsmeta_resolutions_total{operation="search",outcome="found",resolver="album"} 1`))

	resp, err = app.Test(httptest.NewRequest("GET", "/api/metrics/overview", nil), -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var data MetricsData
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&data))
	assert.Equal(t, 1, data.TotalResolved)
}
