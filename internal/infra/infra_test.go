package infra

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

// ── Cache ──

func TestCache_SetGet(t *testing.T) {
	c := NewCache[string](time.Minute)
	c.Set("a", "<svg/>")

	v, ok := c.Get("a")
	require.True(t, ok)
	assert.Equal(t, "<svg/>", v)

	_, ok = c.Get("missing")
	assert.False(t, ok)
}

func TestCache_Expiry(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	c := NewCache[int](time.Minute)
	c.now = func() time.Time { return now }

	c.Set("k", 1)
	now = now.Add(2 * time.Minute)

	_, ok := c.Get("k")
	assert.False(t, ok)
	assert.Equal(t, 1, c.Len())
	assert.Equal(t, 1, c.Cleanup())
	assert.Equal(t, 0, c.Len())
}

func TestCache_ZeroTTLDisables(t *testing.T) {
	c := NewCache[string](0)
	c.Set("k", "v")
	_, ok := c.Get("k")
	assert.False(t, ok)
	assert.Equal(t, 0, c.Len())
}

func TestCache_Flush(t *testing.T) {
	c := NewCache[string](time.Minute)
	c.Set("a", "1")
	c.Set("b", "2")
	c.Flush()
	assert.Equal(t, 0, c.Len())
}

func TestCache_RunJanitorStops(t *testing.T) {
	c := NewCache[string](time.Minute)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		c.RunJanitor(ctx, time.Millisecond)
		close(done)
	}()
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("janitor did not stop")
	}
}

func TestKey(t *testing.T) {
	a := Key("donut", []byte(`{"slices":[]}`))
	b := Key("donut", []byte(`{"slices":[]}`))
	c := Key("donut", []byte(`{"slices":[1]}`))

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Contains(t, a, "donut:")
	assert.Len(t, a, len("donut:")+64)
}

// ── Rate limiting ──

func TestPerMinute(t *testing.T) {
	assert.Nil(t, PerMinute(0))
	assert.Nil(t, PerMinute(-3))

	l := PerMinute(60)
	require.NotNil(t, l)
	assert.Equal(t, rate.Every(time.Second), l.Limit())
	assert.Equal(t, 60, l.Burst())
}

func TestPerMinute_Refill(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	l := PerMinute(2)

	assert.True(t, l.AllowN(now, 1))
	assert.True(t, l.AllowN(now, 1))
	assert.False(t, l.AllowN(now, 1))

	// One token every 30s.
	now = now.Add(30 * time.Second)
	assert.True(t, l.AllowN(now, 1))
	assert.False(t, l.AllowN(now, 1))

	// Refill never exceeds the burst.
	now = now.Add(time.Hour)
	assert.True(t, l.AllowN(now, 1))
	assert.True(t, l.AllowN(now, 1))
	assert.False(t, l.AllowN(now, 1))
}

func TestLimit(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	l := rate.NewLimiter(rate.Every(time.Hour), 1)
	h := Limit(l, nil)(ok)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", nil))
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "3600", rec.Header().Get("Retry-After"))

	// Computing Retry-After does not consume a future token.
	assert.InDelta(t, 1, l.TokensAt(time.Now().Add(time.Hour+time.Second)), 0.01)
}

func TestLimit_CustomReject(t *testing.T) {
	l := rate.NewLimiter(rate.Every(time.Minute), 1)
	rejected := 0
	h := Limit(l, func(w http.ResponseWriter, r *http.Request) {
		rejected++
		w.WriteHeader(http.StatusTeapot)
	})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/", nil))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", nil))

	assert.Equal(t, 1, rejected)
	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.Equal(t, "60", rec.Header().Get("Retry-After"))
}

func TestLimit_NilPassesThrough(t *testing.T) {
	called := 0
	h := Limit(nil, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { called++ }))
	for range 5 {
		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	}
	assert.Equal(t, 5, called)
}
