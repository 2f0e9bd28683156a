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

package cache

import (
	"testing"

	"pgregory.net/rapid"
)

// keyGen generates realistic content-id style cache keys.
func keyGen() *rapid.Generator[string] {
	return rapid.StringMatching(`media-source://[a-z0-9/_\-]{1,40}`)
}

// TestPropertyLRUNeverExceedsCapacity verifies the capacity invariant holds
// under arbitrary interleavings of Get/Set/Has.
func TestPropertyLRUNeverExceedsCapacity(t *testing.T) {
	t.Parallel()
	rapid.Check(t, func(t *rapid.T) {
		capacity := rapid.IntRange(1, 32).Draw(t, "capacity")
		c := NewLRU[int](capacity)

		ops := rapid.IntRange(1, 200).Draw(t, "ops")
		for i := 0; i < ops; i++ {
			key := keyGen().Draw(t, "key")
			switch rapid.IntRange(0, 2).Draw(t, "op") {
			case 0:
				c.Set(key, i)
			case 1:
				c.Get(key)
			case 2:
				c.Has(key)
			}

			if c.Len() > capacity {
				t.Fatalf("cache exceeded capacity: len=%d capacity=%d", c.Len(), capacity)
			}
		}
	})
}

// TestPropertyLRUSetThenGetRoundTrips verifies a freshly set key is always
// immediately readable with the stored value.
func TestPropertyLRUSetThenGetRoundTrips(t *testing.T) {
	t.Parallel()
	rapid.Check(t, func(t *rapid.T) {
		capacity := rapid.IntRange(1, 16).Draw(t, "capacity")
		c := NewLRU[string](capacity)

		key := keyGen().Draw(t, "key")
		value := rapid.String().Draw(t, "value")

		c.Set(key, value)

		got, ok := c.Get(key)
		if !ok {
			t.Fatalf("key %q missing immediately after Set", key)
		}
		if got != value {
			t.Fatalf("value mismatch: got %q want %q", got, value)
		}
	})
}
