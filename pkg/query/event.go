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

package query

import (
	"reflect"
	"slices"
	"time"
)

// EventParams is the raw parameter set of one event backend sub-query.
type EventParams struct {
	Start       *time.Time
	End         *time.Time
	Favorite    *bool
	HasClip     *bool
	HasSnapshot *bool
	CameraIDs   []string
	What        []string
	Where       []string
	Tags        []string
	Limit       int
}

func (p EventParams) clone() EventParams {
	return EventParams{
		Start:       cloneTime(p.Start),
		End:         cloneTime(p.End),
		Favorite:    cloneBool(p.Favorite),
		HasClip:     cloneBool(p.HasClip),
		HasSnapshot: cloneBool(p.HasSnapshot),
		CameraIDs:   slices.Clone(p.CameraIDs),
		What:        slices.Clone(p.What),
		Where:       slices.Clone(p.Where),
		Tags:        slices.Clone(p.Tags),
		Limit:       p.Limit,
	}
}

func (p EventParams) normalized() EventParams {
	c := p.clone()
	slices.Sort(c.CameraIDs)
	slices.Sort(c.What)
	slices.Sort(c.Where)
	slices.Sort(c.Tags)
	return c
}

// EventQuery wraps one or more raw event sub-queries.
type EventQuery struct {
	queries []EventParams
}

// NewEventQuery creates an event query over the given sub-queries.
func NewEventQuery(queries ...EventParams) *EventQuery {
	return &EventQuery{queries: queries}
}

// Type implements Query.
func (q *EventQuery) Type() Type { return TypeEvent }

// Queries returns the raw sub-queries.
func (q *EventQuery) Queries() []EventParams { return q.queries }

// SetQueries replaces the raw sub-queries.
func (q *EventQuery) SetQueries(queries []EventParams) { q.queries = queries }

// Clone implements Query with a deep copy.
func (q *EventQuery) Clone() Query {
	cloned := make([]EventParams, 0, len(q.queries))
	for _, p := range q.queries {
		cloned = append(cloned, p.clone())
	}
	return &EventQuery{queries: cloned}
}

func (q *EventQuery) windows() []timeWindow {
	windows := make([]timeWindow, 0, len(q.queries))
	for i := range q.queries {
		windows = append(windows, timeWindow{
			cameras: q.queries[i].CameraIDs,
			start:   q.queries[i].Start,
			end:     q.queries[i].End,
		})
	}
	return windows
}

// CameraIDs implements MediaQuery.
func (q *EventQuery) CameraIDs() []string {
	return cameraUnion(q.windows())
}

// SetCameraIDs implements MediaQuery.
func (q *EventQuery) SetCameraIDs(ids []string) {
	for i := range q.queries {
		q.queries[i].CameraIDs = slices.Clone(ids)
	}
}

// Equal implements MediaQuery with deep value equality; camera and tag sets
// compare order-independently.
func (q *EventQuery) Equal(other Query) bool {
	o, ok := other.(*EventQuery)
	if !ok || len(q.queries) != len(o.queries) {
		return false
	}
	for i := range q.queries {
		if !reflect.DeepEqual(q.queries[i].normalized(), o.queries[i].normalized()) {
			return false
		}
	}
	return true
}

// SupersetOf implements MediaQuery.
func (q *EventQuery) SupersetOf(other Query) bool {
	o, ok := other.(*EventQuery)
	if !ok {
		return false
	}
	return windowsContain(q.windows(), o.windows())
}

// ConvertToClips rewrites snapshot filters to clip filters, preserving
// camera scoping, so a snapshot query can be re-executed against clips.
func (q *EventQuery) ConvertToClips() *EventQuery {
	converted, _ := q.Clone().(*EventQuery)
	for i := range converted.queries {
		if converted.queries[i].HasSnapshot != nil {
			converted.queries[i].HasSnapshot = nil
			hasClip := true
			converted.queries[i].HasClip = &hasClip
		}
	}
	return converted
}
