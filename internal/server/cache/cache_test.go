package cache

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupRedis(t *testing.T) (*RedisCache, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	c := NewRedisCache(client, DefaultConfig())
	t.Cleanup(func() { c.Close() })
	return c, mr
}

func TestNew(t *testing.T) {
	c, err := New("none", "", DefaultConfig())
	require.NoError(t, err)
	assert.Nil(t, c)

	c, err = New("memory", "", DefaultConfig())
	require.NoError(t, err)
	assert.IsType(t, &MemoryCache{}, c)
	c.Close()

	mr := miniredis.RunT(t)
	c, err = New("redis", "redis://"+mr.Addr(), DefaultConfig())
	require.NoError(t, err)
	assert.IsType(t, &RedisCache{}, c)
	c.Close()

	_, err = New("redis", "not a url", DefaultConfig())
	assert.Error(t, err)

	_, err = New("memcached", "", DefaultConfig())
	assert.EqualError(t, err, "unknown cache backend: memcached")
}

func TestMemoryCache(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache(DefaultConfig())
	defer c.Close()

	_, err := c.Get(ctx, "missing")
	assert.True(t, IsCacheMiss(err))

	require.NoError(t, c.Set(ctx, "k", []byte("v"), 0))
	got, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), got)

	require.NoError(t, c.Set(ctx, "short", []byte("v"), time.Millisecond))
	time.Sleep(5 * time.Millisecond)
	_, err = c.Get(ctx, "short")
	assert.True(t, IsCacheMiss(err))

	require.NoError(t, c.Clear(ctx))
	assert.Equal(t, 0, c.Len())

	canceled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = c.Get(canceled, "k")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRedisCache(t *testing.T) {
	ctx := context.Background()
	c, mr := setupRedis(t)

	_, err := c.Get(ctx, "missing")
	assert.True(t, IsCacheMiss(err))

	require.NoError(t, c.Set(ctx, "k", []byte("v"), time.Second))
	assert.True(t, mr.Exists("metamodel:k"))

	got, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), got)

	mr.FastForward(2 * time.Second)
	_, err = c.Get(ctx, "k")
	assert.True(t, IsCacheMiss(err))
}

func TestRedisCacheClearKeepsForeignKeys(t *testing.T) {
	ctx := context.Background()
	c, mr := setupRedis(t)

	require.NoError(t, mr.Set("other:key", "x"))
	require.NoError(t, c.Set(ctx, "a", []byte("1"), 0))
	require.NoError(t, c.Set(ctx, "b", []byte("2"), 0))

	require.NoError(t, c.Clear(ctx))
	assert.False(t, mr.Exists("metamodel:a"))
	assert.False(t, mr.Exists("metamodel:b"))
	assert.True(t, mr.Exists("other:key"))
}

func TestMiddleware(t *testing.T) {
	calls := 0
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Path == "/missing" {
			w.WriteHeader(http.StatusNotFound)
		}
		w.Write([]byte(`{"ok":true}`))
	})

	backends := map[string]Cache{
		"memory": NewMemoryCache(DefaultConfig()),
	}
	backends["redis"], _ = setupRedis(t)

	for name, c := range backends {
		t.Run(name, func(t *testing.T) {
			defer c.Clear(context.Background())
			calls = 0
			h := Middleware(c, time.Minute, zap.NewNop())(handler)

			for i, want := range []string{"MISS", "HIT"} {
				rec := httptest.NewRecorder()
				h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/classifiers?x=1", nil))
				assert.Equal(t, http.StatusOK, rec.Code, "request %d", i)
				assert.Equal(t, want, rec.Header().Get("X-Cache"))
				assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
				assert.JSONEq(t, `{"ok":true}`, rec.Body.String())
			}
			assert.Equal(t, 1, calls)

			for range 2 {
				rec := httptest.NewRecorder()
				h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/missing", nil))
				assert.Equal(t, http.StatusNotFound, rec.Code)
				assert.Equal(t, "MISS", rec.Header().Get("X-Cache"))
			}
			assert.Equal(t, 3, calls)
		})
	}
}

func TestMiddlewareDisabled(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})
	h := Middleware(nil, time.Minute, zap.NewNop())(handler)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Empty(t, rec.Header().Get("X-Cache"))
}
