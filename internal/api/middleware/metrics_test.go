package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/routetrack/routetrack/internal/api/middleware"
)

func newTestMetrics(t *testing.T) (*middleware.Metrics, *sdkmetric.ManualReader) {
	t.Helper()
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = mp.Shutdown(context.Background()) })

	m, err := middleware.NewMetrics(mp.Meter("test"))
	require.NoError(t, err)
	return m, reader
}

func requestCounts(t *testing.T, reader *sdkmetric.ManualReader) []metricdata.DataPoint[int64] {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name == "http.server.request.total" {
				sum, ok := m.Data.(metricdata.Sum[int64])
				require.True(t, ok)
				return sum.DataPoints
			}
		}
	}
	return nil
}

func attr(t *testing.T, set attribute.Set, key string) attribute.Value {
	t.Helper()
	v, ok := set.Value(attribute.Key(key))
	require.True(t, ok, "missing attribute %s", key)
	return v
}

func TestNewMetrics_GlobalMeter(t *testing.T) {
	m, err := middleware.NewMetrics(nil)
	require.NoError(t, err)
	assert.NotNil(t, m)
}

func TestMetrics_Middleware_RecordsRoutePattern(t *testing.T) {
	m, reader := newTestMetrics(t)

	r := chi.NewRouter()
	r.Use(m.Middleware())
	r.Get("/v1/route/{routeId}/length", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"km":1}`))
	})

	for _, id := range []string{"a", "b", "c"} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/route/"+id+"/length", http.NoBody))
		assert.Equal(t, http.StatusOK, rec.Code)
	}

	points := requestCounts(t, reader)
	require.Len(t, points, 1)
	assert.Equal(t, int64(3), points[0].Value)
	assert.Equal(t, "/v1/route/{routeId}/length", attr(t, points[0].Attributes, "http.route").AsString())
	assert.Equal(t, "200", attr(t, points[0].Attributes, "http.status_code").AsString())
	assert.False(t, attr(t, points[0].Attributes, "error").AsBool())
}

func TestMetrics_Middleware_Error(t *testing.T) {
	m, reader := newTestMetrics(t)

	handler := m.Middleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/route", http.NoBody))
	assert.Equal(t, http.StatusConflict, rec.Code)

	points := requestCounts(t, reader)
	require.Len(t, points, 1)
	assert.Equal(t, "409", attr(t, points[0].Attributes, "http.status_code").AsString())
	assert.True(t, attr(t, points[0].Attributes, "error").AsBool())
}

func TestMetrics_Middleware_DefaultStatusCode(t *testing.T) {
	m, reader := newTestMetrics(t)

	handler := m.Middleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("response"))
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/test", http.NoBody))

	assert.Equal(t, http.StatusOK, rec.Code)
	points := requestCounts(t, reader)
	require.Len(t, points, 1)
	assert.Equal(t, "200", attr(t, points[0].Attributes, "http.status_code").AsString())
}
