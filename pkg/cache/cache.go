// Camera Card
// Copyright (c) 2026 The Camera Card Contributors.
// SPDX-License-Identifier: GPL-3.0-or-later
//
// This file is part of Camera Card.
//
// Camera Card is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Camera Card is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Camera Card.  If not, see <http://www.gnu.org/licenses/>.

// Package cache provides the in-memory caches used by the media engine: a
// bounded LRU for resolved-media endpoints and an unbounded keyed store for
// browse-media subtrees.
package cache

import (
	"container/list"
	"sync"
)

// LRU is a fixed-capacity string-keyed cache. Inserting a new key while at
// capacity evicts the least-recently-used entry. Get refreshes an entry's
// recency; Has does not.
//
// Callers sizing an LRU for query results must size it above the largest
// expected single result count: undersizing causes partial eviction mid-query,
// which is a correctness bug for consumers, not just a performance one.
type LRU[V any] struct {
	entries  map[string]*list.Element
	order    *list.List
	capacity int
	mu       sync.Mutex
}

type lruEntry[V any] struct {
	key   string
	value V
}

// NewLRU creates an LRU cache holding at most capacity entries.
// A capacity below 1 is treated as 1.
func NewLRU[V any](capacity int) *LRU[V] {
	if capacity < 1 {
		capacity = 1
	}
	return &LRU[V]{
		entries:  make(map[string]*list.Element, capacity),
		order:    list.New(),
		capacity: capacity,
	}
}

// Get returns the value stored under key and marks it most recently used.
func (c *LRU[V]) Get(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.entries[key]
	if !ok {
		var zero V
		return zero, false
	}
	c.order.MoveToFront(elem)
	entry, _ := elem.Value.(*lruEntry[V])
	return entry.value, true
}

// Set stores value under key, marking it most recently used. If key is new
// and the cache is full, the least-recently-used entry is silently evicted.
func (c *LRU[V]) Set(key string, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.entries[key]; ok {
		c.order.MoveToFront(elem)
		entry, _ := elem.Value.(*lruEntry[V])
		entry.value = value
		return
	}

	if c.order.Len() >= c.capacity {
		oldest := c.order.Back()
		if oldest != nil {
			entry, _ := oldest.Value.(*lruEntry[V])
			delete(c.entries, entry.key)
			c.order.Remove(oldest)
		}
	}

	c.entries[key] = c.order.PushFront(&lruEntry[V]{key: key, value: value})
}

// Has reports whether key is present without refreshing its recency.
func (c *LRU[V]) Has(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	_, ok := c.entries[key]
	return ok
}

// Len returns the number of cached entries.
func (c *LRU[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.order.Len()
}

// Store is an unbounded string-keyed cache. It backs the browse-media subtree
// cache, which is keyed strictly by stable content ids and so needs no
// eviction policy.
type Store[V any] struct {
	entries map[string]V
	mu      sync.RWMutex
}

// NewStore creates an empty Store.
func NewStore[V any]() *Store[V] {
	return &Store[V]{entries: make(map[string]V)}
}

// Get returns the value stored under key.
func (s *Store[V]) Get(key string) (V, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.entries[key]
	return v, ok
}

// Set stores value under key, replacing any existing entry.
func (s *Store[V]) Set(key string, value V) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[key] = value
}

// Has reports whether key is present.
func (s *Store[V]) Has(key string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.entries[key]
	return ok
}

// Len returns the number of cached entries.
func (s *Store[V]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.entries)
}
