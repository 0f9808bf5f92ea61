package api

import (
	"context"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nebula/internal/common/config"
	"nebula/internal/common/logger"
)

func newCacheUnderTest(t *testing.T, client *Client) (*BusinessCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	cache := NewBusinessCache(client, config.CacheConfig{
		Enabled: true,
		Address: mr.Addr(),
		TTL:     60,
	}, logger.NewTestLogger(t))
	t.Cleanup(func() { cache.Close() })
	return cache, mr
}

func TestCacheServesSecondLookupWithoutAPI(t *testing.T) {
	var calls int64
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&calls, 1)
		w.Write([]byte(`{"status":"success","data":{"id":"b1","name":"Nordic Timber"}}`))
	})
	cache, _ := newCacheUnderTest(t, client)

	first, err := cache.GetBusiness(context.Background(), "b1")
	require.NoError(t, err)
	second, err := cache.GetBusiness(context.Background(), "b1")
	require.NoError(t, err)

	assert.Equal(t, "Nordic Timber", first.Name)
	assert.Equal(t, "Nordic Timber", second.Name)
	assert.Equal(t, int64(1), atomic.LoadInt64(&calls))
}

func TestCacheInvalidateForcesRefetch(t *testing.T) {
	var calls int64
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&calls, 1)
		w.Write([]byte(`{"status":"success","data":{"id":"b1","name":"Nordic Timber"}}`))
	})
	cache, _ := newCacheUnderTest(t, client)

	_, err := cache.GetBusiness(context.Background(), "b1")
	require.NoError(t, err)
	cache.Invalidate(context.Background(), "b1")
	_, err = cache.GetBusiness(context.Background(), "b1")
	require.NoError(t, err)

	assert.Equal(t, int64(2), atomic.LoadInt64(&calls))
}

func TestCacheEntryExpires(t *testing.T) {
	var calls int64
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&calls, 1)
		w.Write([]byte(`{"status":"success","data":{"id":"b1","name":"Nordic Timber"}}`))
	})
	cache, mr := newCacheUnderTest(t, client)

	_, err := cache.GetBusiness(context.Background(), "b1")
	require.NoError(t, err)
	mr.FastForward(2 * time.Minute)
	_, err = cache.GetBusiness(context.Background(), "b1")
	require.NoError(t, err)

	assert.Equal(t, int64(2), atomic.LoadInt64(&calls))
}

func TestCacheDegradesWhenRedisDown(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"success","data":{"id":"b1","name":"Nordic Timber"}}`))
	})
	mr := miniredis.RunT(t)
	cache := NewBusinessCache(client, config.CacheConfig{
		Enabled: true,
		Address: mr.Addr(),
		TTL:     60,
	}, logger.NewTestLogger(t))
	t.Cleanup(func() { cache.Close() })
	mr.Close()

	biz, err := cache.GetBusiness(context.Background(), "b1")
	require.NoError(t, err)
	assert.Equal(t, "Nordic Timber", biz.Name)
}

func TestCacheDisabledPassesThrough(t *testing.T) {
	var calls int64
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&calls, 1)
		w.Write([]byte(`{"status":"success","data":{"id":"b1","name":"Nordic Timber"}}`))
	})
	cache := NewBusinessCache(client, config.CacheConfig{}, logger.NewTestLogger(t))

	_, err := cache.GetBusiness(context.Background(), "b1")
	require.NoError(t, err)
	_, err = cache.GetBusiness(context.Background(), "b1")
	require.NoError(t, err)
	assert.Equal(t, int64(2), atomic.LoadInt64(&calls))
}
