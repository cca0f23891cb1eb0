package service

import (
	"fmt"
	"sync"
	"time"

	"github.com/ariebrainware/basis-data-dental/gateway"
	cache "github.com/patrickmn/go-cache"
)

// ListCache keeps recently fetched list pages. A page is keyed by the
// (clinic, entity) generation, so a successful write only has to bump the
// generation for every cached page of that entity to be re-fetched.
type ListCache struct {
	pages *cache.Cache
	mu    sync.Mutex
	gens  map[string]int64
}

// NewListCache builds a cache whose pages live at most ttl.
func NewListCache(ttl time.Duration) *ListCache {
	return &ListCache{
		pages: cache.New(ttl, 2*ttl),
		gens:  map[string]int64{},
	}
}

func genKey(clinicID, entity string) string {
	return clinicID + "|" + entity
}

func (l *ListCache) generation(clinicID, entity string) int64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.gens[genKey(clinicID, entity)]
}

// Invalidate bumps the generation of entity for a clinic.
func (l *ListCache) Invalidate(clinicID string, entities ...string) {
	if l == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, e := range entities {
		l.gens[genKey(clinicID, e)]++
	}
}

// Len is the number of cached pages, expired ones included until purged.
func (l *ListCache) Len() int {
	if l == nil {
		return 0
	}
	return l.pages.ItemCount()
}

// cachedPage returns the cached page for the query or fetches it. Failed
// fetches are never cached.
func cachedPage[T any](l *ListCache, scope gateway.Scope, entity string, query interface{}, fetch func() (gateway.Page[T], error)) (gateway.Page[T], error) {
	if l == nil || !scope.Valid() {
		return fetch()
	}
	key := fmt.Sprintf("%s|%s|%d|%+v", scope.ClinicID(), entity, l.generation(scope.ClinicID(), entity), query)
	if v, ok := l.pages.Get(key); ok {
		if page, ok := v.(gateway.Page[T]); ok {
			return page, nil
		}
	}
	page, err := fetch()
	if err != nil {
		return page, err
	}
	l.pages.SetDefault(key, page)
	return page, nil
}
