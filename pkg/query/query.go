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

// Package query models typed media queries (event, recording, folder) and
// the result sets their execution produces, with camera-sliced selection
// state.
package query

import (
	"slices"
	"time"
)

// Type discriminates the query variants.
type Type string

const (
	TypeEvent     Type = "event"
	TypeRecording Type = "recording"
	TypeFolder    Type = "folder"
)

// Query is a typed wrapper around backend-specific query parameters.
type Query interface {
	Type() Type
	Clone() Query
}

// MediaQuery is a camera-scoped query over a media backend. A query is a
// superset of another when every raw sub-query of the other is contained, by
// camera set and time window, in one of its own.
type MediaQuery interface {
	Query

	// CameraIDs returns the sorted union of all sub-queries' camera ids.
	CameraIDs() []string

	// SetCameraIDs rewrites every sub-query's camera scope.
	SetCameraIDs(ids []string)

	Equal(other Query) bool
	SupersetOf(other Query) bool
}

// timeWindow is the camera-and-time footprint of one raw sub-query, used for
// superset comparison.
type timeWindow struct {
	start   *time.Time
	end     *time.Time
	cameras []string
}

// contains reports whether w covers other: an equal-or-wider camera set and
// an equal-or-wider [start, end] window. An absent bound on w's side is
// unconstrained and always wider; an absent bound on other's side is only
// covered when w's matching bound is also absent.
func (w timeWindow) contains(other timeWindow) bool {
	for _, camera := range other.cameras {
		if !slices.Contains(w.cameras, camera) {
			return false
		}
	}
	if w.start != nil && (other.start == nil || w.start.After(*other.start)) {
		return false
	}
	if w.end != nil && (other.end == nil || w.end.Before(*other.end)) {
		return false
	}
	return true
}

// windowsContain reports whether every window of b has a containing window in
// a. A query with no sub-queries at all is never a superset.
func windowsContain(a, b []timeWindow) bool {
	if len(a) == 0 {
		return false
	}
	for _, bw := range b {
		matched := false
		for _, aw := range a {
			if aw.contains(bw) {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}
	return true
}

// cameraUnion returns the sorted, de-duplicated union of the given windows'
// camera sets.
func cameraUnion(windows []timeWindow) []string {
	var union []string
	for _, w := range windows {
		for _, camera := range w.cameras {
			if !slices.Contains(union, camera) {
				union = append(union, camera)
			}
		}
	}
	slices.Sort(union)
	return union
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	copied := *t
	return &copied
}

func cloneBool(b *bool) *bool {
	if b == nil {
		return nil
	}
	copied := *b
	return &copied
}
