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

package hass

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
)

// Entity is one entity registry entry, trimmed to the fields the card reads.
type Entity struct {
	EntityID     string `json:"entity_id"`
	UniqueID     string `json:"unique_id"`
	Platform     string `json:"platform"`
	DeviceID     string `json:"device_id"`
	DisabledBy   string `json:"disabled_by"`
	EntityCateg  string `json:"entity_category"`
	OriginalName string `json:"original_name"`
}

// Lister fetches the full entity registry.
type Lister interface {
	ListEntities(ctx context.Context) ([]Entity, error)
}

// ListEntities fetches the complete entity registry.
func (c *Client) ListEntities(ctx context.Context) ([]Entity, error) {
	result, err := c.Call(ctx, "config/entity_registry/list", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list entity registry: %w", err)
	}

	var entities []Entity
	if err := json.Unmarshal(result, &entities); err != nil {
		return nil, fmt.Errorf("failed to decode entity registry: %w", err)
	}
	return entities, nil
}

// Registry is a read-through cache over the entity registry. The full list is
// fetched once on first use and kept indefinitely; registry contents change
// rarely enough that staleness is acceptable for a dashboard's lifetime.
type Registry struct {
	lister   Lister
	byID     map[string]Entity
	entities []Entity
	mu       sync.Mutex
	loaded   bool
}

// NewRegistry creates a registry cache backed by lister.
func NewRegistry(lister Lister) *Registry {
	return &Registry{lister: lister}
}

func (r *Registry) load(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.loaded {
		return nil
	}

	entities, err := r.lister.ListEntities(ctx)
	if err != nil {
		return err
	}

	r.entities = entities
	r.byID = make(map[string]Entity, len(entities))
	for _, entity := range entities {
		r.byID[entity.EntityID] = entity
	}
	r.loaded = true
	return nil
}

// Entity returns the registry entry for id, or false when the registry has no
// such entity.
func (r *Registry) Entity(ctx context.Context, id string) (Entity, bool, error) {
	if err := r.load(ctx); err != nil {
		return Entity{}, false, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	entity, ok := r.byID[id]
	return entity, ok, nil
}

// MatchingEntities returns every registry entry satisfying predicate.
func (r *Registry) MatchingEntities(ctx context.Context, predicate func(Entity) bool) ([]Entity, error) {
	if err := r.load(ctx); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	var matched []Entity
	for _, entity := range r.entities {
		if predicate(entity) {
			matched = append(matched, entity)
		}
	}
	return matched, nil
}
