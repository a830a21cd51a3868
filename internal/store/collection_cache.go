// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"sync"
	"time"

	"github.com/MKhiriev/devontix-console/models"
)

// Stamp identifies the cache generation a fetch started in. A value may only
// be stored under the stamp that was current when its fetch began; any
// invalidation or reset in between makes the stamp stale.
type Stamp struct {
	epoch uint64
	gen   uint64
}

type cacheEntry struct {
	value     any
	fetchedAt time.Time
}

// CollectionCache keeps the last fetched value of each collection key.
// It is safe for concurrent use.
type CollectionCache struct {
	mu      sync.RWMutex
	entries map[models.CollectionKey]cacheEntry
	gens    map[models.CollectionKey]uint64
	epoch   uint64
	now     func() time.Time
}

// NewCollectionCache returns an empty cache.
func NewCollectionCache() *CollectionCache {
	return &CollectionCache{
		entries: make(map[models.CollectionKey]cacheEntry),
		gens:    make(map[models.CollectionKey]uint64),
		now:     time.Now,
	}
}

// Get returns the cached value for key.
func (c *CollectionCache) Get(key models.CollectionKey) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.entries[key]
	return e.value, ok
}

// FetchedAt returns when the cached value for key was stored.
func (c *CollectionCache) FetchedAt(key models.CollectionKey) (time.Time, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.entries[key]
	return e.fetchedAt, ok
}

// Stamp returns the current generation of key.
func (c *CollectionCache) Stamp(key models.CollectionKey) Stamp {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return Stamp{epoch: c.epoch, gen: c.gens[key]}
}

// SetIfCurrent stores value under key only if stamp is still the current
// generation of key. It reports whether the value was stored.
func (c *CollectionCache) SetIfCurrent(key models.CollectionKey, stamp Stamp, value any) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if stamp.epoch != c.epoch || stamp.gen != c.gens[key] {
		return false
	}
	c.entries[key] = cacheEntry{value: value, fetchedAt: c.now()}
	return true
}

// Invalidate drops the cached values of keys and bumps their generations so
// that fetches already in flight cannot store their results.
func (c *CollectionCache) Invalidate(keys ...models.CollectionKey) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, key := range keys {
		delete(c.entries, key)
		c.gens[key]++
	}
}

// Reset drops every cached value. Fetches started before Reset never store.
func (c *CollectionCache) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[models.CollectionKey]cacheEntry)
	c.gens = make(map[models.CollectionKey]uint64)
	c.epoch++
}

// Len returns the number of cached keys.
func (c *CollectionCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.entries)
}
