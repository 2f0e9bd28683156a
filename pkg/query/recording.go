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

// RecordingParams is the raw parameter set of one recording backend
// sub-query.
type RecordingParams struct {
	Start     *time.Time
	End       *time.Time
	CameraIDs []string
	Limit     int
}

func (p RecordingParams) clone() RecordingParams {
	return RecordingParams{
		Start:     cloneTime(p.Start),
		End:       cloneTime(p.End),
		CameraIDs: slices.Clone(p.CameraIDs),
		Limit:     p.Limit,
	}
}

func (p RecordingParams) normalized() RecordingParams {
	c := p.clone()
	slices.Sort(c.CameraIDs)
	return c
}

// RecordingQuery wraps one or more raw recording sub-queries.
type RecordingQuery struct {
	queries []RecordingParams
}

// NewRecordingQuery creates a recording query over the given sub-queries.
func NewRecordingQuery(queries ...RecordingParams) *RecordingQuery {
	return &RecordingQuery{queries: queries}
}

// Type implements Query.
func (q *RecordingQuery) Type() Type { return TypeRecording }

// Queries returns the raw sub-queries.
func (q *RecordingQuery) Queries() []RecordingParams { return q.queries }

// SetQueries replaces the raw sub-queries.
func (q *RecordingQuery) SetQueries(queries []RecordingParams) { q.queries = queries }

// Clone implements Query with a deep copy.
func (q *RecordingQuery) Clone() Query {
	cloned := make([]RecordingParams, 0, len(q.queries))
	for _, p := range q.queries {
		cloned = append(cloned, p.clone())
	}
	return &RecordingQuery{queries: cloned}
}

func (q *RecordingQuery) windows() []timeWindow {
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
func (q *RecordingQuery) CameraIDs() []string {
	return cameraUnion(q.windows())
}

// SetCameraIDs implements MediaQuery.
func (q *RecordingQuery) SetCameraIDs(ids []string) {
	for i := range q.queries {
		q.queries[i].CameraIDs = slices.Clone(ids)
	}
}

// Equal implements MediaQuery with deep value equality.
func (q *RecordingQuery) Equal(other Query) bool {
	o, ok := other.(*RecordingQuery)
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
func (q *RecordingQuery) SupersetOf(other Query) bool {
	o, ok := other.(*RecordingQuery)
	if !ok {
		return false
	}
	return windowsContain(q.windows(), o.windows())
}
