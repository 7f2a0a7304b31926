package service

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/skynet-epr-api/internal/models"
)

func TestMetricsServiceRecords(t *testing.T) {
	m := NewMetricsService()
	m.ObserveHTTPRequest(http.MethodGet, "/api/people", http.StatusOK, 10*time.Millisecond)
	m.RecordCacheOperation(true, time.Millisecond)
	m.RecordCacheOperation(false, time.Millisecond)
	m.RecordEPRWrite("update", models.EPRStatusArchived)
	m.ObserveDBQuery("epr.find_by_id", time.Millisecond)

	assert.Equal(t, float64(1), testutil.ToFloat64(m.requestTotal.WithLabelValues(http.MethodGet, "/api/people", "200")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.cacheLookups.WithLabelValues("hit")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.cacheLookups.WithLabelValues("miss")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.eprWrites.WithLabelValues("update", "archived")))

	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "epr_writes_total")
	assert.Contains(t, w.Body.String(), "db_query_duration_seconds")
}

func TestMetricsServiceNilSafe(t *testing.T) {
	var m *MetricsService
	assert.NotPanics(t, func() {
		m.ObserveHTTPRequest(http.MethodGet, "/", http.StatusOK, time.Millisecond)
		m.RecordCacheOperation(true, time.Millisecond)
		m.ObserveCacheWrite(time.Millisecond)
		m.ObserveDBQuery("q", time.Millisecond)
		m.RecordEPRWrite("create", models.EPRStatusDraft)
		m.RecordRemarkSuggestion()
	})
}

type brokenCacheRepo struct{}

func (brokenCacheRepo) Get(ctx context.Context, key string, dest interface{}) error {
	return errors.New("redis: connection refused")
}

func (brokenCacheRepo) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	return errors.New("redis: connection refused")
}

func (brokenCacheRepo) DeleteByPattern(ctx context.Context, pattern string) error {
	return errors.New("redis: connection refused")
}

func TestCacheServiceDisabled(t *testing.T) {
	var nilSvc *CacheService
	var dest []string
	assert.False(t, nilSvc.Enabled())
	assert.False(t, nilSvc.Get(context.Background(), "k", &dest))
	nilSvc.Set(context.Background(), "k", []string{"v"}, 0)
	nilSvc.Invalidate(context.Background(), "*")

	repo := newMemoryCacheRepo()
	off := NewCacheService(repo, nil, 0, nil, false)
	off.Set(context.Background(), "k", []string{"v"}, 0)
	assert.Empty(t, repo.values)
}

func TestCacheServiceRoundTripAndFailures(t *testing.T) {
	metrics := NewMetricsService()
	svc := NewCacheService(newMemoryCacheRepo(), metrics, time.Minute, nil, true)

	var dest []string
	assert.False(t, svc.Get(context.Background(), "k", &dest))
	svc.Set(context.Background(), "k", []string{"v"}, 0)
	require.True(t, svc.Get(context.Background(), "k", &dest))
	assert.Equal(t, []string{"v"}, dest)
	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.cacheLookups.WithLabelValues("hit")))

	broken := NewCacheService(brokenCacheRepo{}, metrics, time.Minute, nil, true)
	assert.False(t, broken.Get(context.Background(), "k", &dest))
	assert.NotPanics(t, func() {
		broken.Set(context.Background(), "k", "v", 0)
		broken.Invalidate(context.Background(), "*")
	})
}
