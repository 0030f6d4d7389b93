package cachestore

import (
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
)

// Store is a small TTL cache with normalized keys, used to deduplicate
// upstream geocoding calls. Expiry is absolute from insertion; reads do
// not slide it. When the table grows past maxEntries, Set sweeps every
// expired entry (entries still inside their TTL survive even if the
// table stays oversized).
type Store struct {
	c          *cache.Cache
	maxEntries int
}

func New(ttl time.Duration, maxEntries int) *Store {
	// No janitor: expired entries are dropped on read by go-cache and
	// reclaimed by the oversize sweep in Set.
	return &Store{
		c:          cache.New(ttl, 0),
		maxEntries: maxEntries,
	}
}

// NormalizeKey makes cache lookups case- and whitespace-insensitive.
func NormalizeKey(query string) string {
	return strings.ToLower(strings.TrimSpace(query))
}

// Get returns the stored value for the normalized query. An expired
// entry is a miss.
func (s *Store) Get(query string) (interface{}, bool) {
	return s.c.Get(NormalizeKey(query))
}

// Set stores the value under the normalized query, overwriting any
// existing entry and resetting its timestamp.
func (s *Store) Set(query string, value interface{}) {
	s.c.SetDefault(NormalizeKey(query), value)
	if s.c.ItemCount() > s.maxEntries {
		s.c.DeleteExpired()
	}
}

// Len reports the current table size, including not-yet-swept expired
// entries.
func (s *Store) Len() int {
	return s.c.ItemCount()
}
