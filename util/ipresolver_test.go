package util

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolvePrefersClientIP(t *testing.T) {
	r := NewIPResolver("")
	assert.Equal(t, "203.0.113.4", r.Resolve(context.Background(), "203.0.113.4"))
	assert.Equal(t, "10.1.2.3", r.Resolve(context.Background(), " 10.1.2.3 "))
}

func TestResolveFallsBackToCachedLookup(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		_, _ = w.Write([]byte("198.51.100.20\n"))
	}))
	defer server.Close()

	r := NewIPResolver(server.URL)
	assert.Equal(t, "198.51.100.20", r.Resolve(context.Background(), "127.0.0.1"))
	assert.Equal(t, "198.51.100.20", r.Resolve(context.Background(), ""))
	assert.EqualValues(t, 1, atomic.LoadInt32(&calls))
}

func TestResolveUnknownOnFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	assert.Equal(t, UnknownIP, NewIPResolver(server.URL).Resolve(context.Background(), "::1"))
	assert.Equal(t, UnknownIP, NewIPResolver("").Resolve(context.Background(), ""))

	garbage := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html>"))
	}))
	defer garbage.Close()
	assert.Equal(t, UnknownIP, NewIPResolver(garbage.URL).Resolve(context.Background(), ""))
}

func TestResolveRemembersFailedLookup(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	r := NewIPResolver(server.URL)
	for i := 0; i < 3; i++ {
		assert.Equal(t, UnknownIP, r.Resolve(context.Background(), "127.0.0.1"))
	}
	assert.EqualValues(t, 1, atomic.LoadInt32(&calls))

	// a failure is forgotten after a while and the lookup is retried
	r.cache.Delete(publicIPKey)
	assert.Equal(t, UnknownIP, r.Resolve(context.Background(), "127.0.0.1"))
	assert.EqualValues(t, 2, atomic.LoadInt32(&calls))
}
