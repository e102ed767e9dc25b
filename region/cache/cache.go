// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cache is a fixed capacity map that any number of goroutines may use without locks.
package cache

import (
	"fmt"
	"sync/atomic"
)

// ways is the number of slots a key may occupy.
const ways = 4

type entry[K comparable, V any] struct {
	key   K
	value V
}

// Cache is a set associative cache of immutable values.
// Entries can be evicted at any time, so values must be cheap to recompute and
// recomputation must give an equivalent value. Concurrent Sets of the same key are
// resolved by the last write.
type Cache[K comparable, V any] struct {
	slots  []atomic.Pointer[entry[K, V]]
	sets   uint64 // power of 2
	hash   func(K) uint64
	victim atomic.Uint64

	hits   atomic.Int64
	misses atomic.Int64
}

// Stats are counters for debugging.
type Stats struct {
	Capacity int   `json:"capacity"`
	Entries  int   `json:"entries"`
	Hits     int64 `json:"hits"`
	Misses   int64 `json:"misses"`
}

func (s Stats) String() string {
	return fmt.Sprintf("entries: %d/%d, hits: %d, misses: %d", s.Entries, s.Capacity, s.Hits, s.Misses)
}

// New creates a Cache holding at least capacity entries.
func New[K comparable, V any](capacity int, hash func(K) uint64) *Cache[K, V] {
	if capacity < ways {
		capacity = ways
	}
	sets := nextPowerOf2(uint64((capacity + ways - 1) / ways))
	return &Cache[K, V]{
		slots: make([]atomic.Pointer[entry[K, V]], sets*ways),
		sets:  sets,
		hash:  hash,
	}
}

// Get returns the value stored for key, if it is still cached.
func (c *Cache[K, V]) Get(key K) (value V, ok bool) {
	set := c.set(key)
	for i := range set {
		if e := set[i].Load(); e != nil && e.key == key {
			c.hits.Add(1)
			return e.value, true
		}
	}
	c.misses.Add(1)
	return
}

// Set stores value for key, possibly evicting another entry.
func (c *Cache[K, V]) Set(key K, value V) {
	set := c.set(key)
	e := &entry[K, V]{key: key, value: value}

	// Replace the same key, else fill an empty slot
	empty := -1
	for i := range set {
		old := set[i].Load()
		if old == nil {
			if empty == -1 {
				empty = i
			}
			continue
		}
		if old.key == key {
			set[i].Store(e)
			return
		}
	}
	if empty != -1 {
		set[empty].Store(e)
		return
	}

	set[c.victim.Add(1)%ways].Store(e)
}

// GetOrCreate returns the cached value for key or creates and caches it.
// No lock is held while create runs, so racing goroutines may each call it; the last one wins.
func (c *Cache[K, V]) GetOrCreate(key K, create func() V) V {
	if value, ok := c.Get(key); ok {
		return value
	}
	value := create()
	c.Set(key, value)
	return value
}

// Stats returns approximate counters.
func (c *Cache[K, V]) Stats() Stats {
	entries := 0
	for i := range c.slots {
		if c.slots[i].Load() != nil {
			entries++
		}
	}
	return Stats{
		Capacity: len(c.slots),
		Entries:  entries,
		Hits:     c.hits.Load(),
		Misses:   c.misses.Load(),
	}
}

func (c *Cache[K, V]) set(key K) []atomic.Pointer[entry[K, V]] {
	i := (c.hash(key) & (c.sets - 1)) * ways
	return c.slots[i : i+ways]
}

// nextPowerOf2 returns the next power of 2 after or equal to n.
func nextPowerOf2(n uint64) uint64 {
	if n <= 1 {
		return 1
	}
	n--
	n |= n >> 1
	n |= n >> 2
	n |= n >> 4
	n |= n >> 8
	n |= n >> 16
	n |= n >> 32
	return n + 1
}
