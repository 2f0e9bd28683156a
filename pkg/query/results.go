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
	"slices"

	"github.com/ngoviet/camera-card/pkg/view"
)

// SelectApproach chooses the default selection of a freshly built slice.
type SelectApproach int

const (
	// SelectLast selects the newest (last) item, the default.
	SelectLast SelectApproach = iota

	// SelectFirst selects the first item.
	SelectFirst
)

// Slice is one selectable sub-list of a result set: the main list or one
// camera's subset.
type Slice struct {
	items    []view.Item
	selected int
}

func newSlice(items []view.Item, approach SelectApproach) *Slice {
	selected := -1
	if len(items) > 0 {
		if approach == SelectFirst {
			selected = 0
		} else {
			selected = len(items) - 1
		}
	}
	return &Slice{items: items, selected: selected}
}

// Items returns the slice's backing item list. Callers must not mutate it.
func (s *Slice) Items() []view.Item { return s.items }

// SelectedIndex returns the selected index, if any.
func (s *Slice) SelectedIndex() (int, bool) {
	if s.selected < 0 {
		return 0, false
	}
	return s.selected, true
}

// Selected returns the selected item, or nil.
func (s *Slice) Selected() view.Item {
	if s.selected < 0 || s.selected >= len(s.items) {
		return nil
	}
	return s.items[s.selected]
}

func (s *Slice) selectIndex(index int) {
	if index < 0 || index >= len(s.items) {
		return
	}
	s.selected = index
}

// Criteria addresses the slice(s) a selection operation applies to. The zero
// value addresses the main slice.
type Criteria struct {
	CameraID   string
	Main       bool
	AllCameras bool
}

func (c Criteria) isZero() bool {
	return !c.Main && !c.AllCameras && c.CameraID == ""
}

// Results is the outcome of one query execution: a main slice over all items
// and a derived slice per resolvable camera. The per-camera slices are always
// rebuilt from the main item list at construction, never incrementally
// patched.
type Results struct {
	main    *Slice
	cameras map[string]*Slice
}

// ResultsOption configures construction of a Results.
type ResultsOption func(*resultsOptions)

type resultsOptions struct {
	approach SelectApproach
}

// WithSelectApproach overrides the default selection of every slice.
func WithSelectApproach(approach SelectApproach) ResultsOption {
	return func(o *resultsOptions) {
		o.approach = approach
	}
}

// NewResults builds a result set from a flat item list. Items whose owning
// camera id is resolvable are additionally partitioned into that camera's
// slice; folder-owned items appear only in the main slice.
func NewResults(items []view.Item, opts ...ResultsOption) *Results {
	options := resultsOptions{approach: SelectLast}
	for _, opt := range opts {
		opt(&options)
	}

	byCamera := make(map[string][]view.Item)
	for _, item := range items {
		if camera := ownerCameraID(item); camera != "" {
			byCamera[camera] = append(byCamera[camera], item)
		}
	}

	cameras := make(map[string]*Slice, len(byCamera))
	for camera, cameraItems := range byCamera {
		cameras[camera] = newSlice(cameraItems, options.approach)
	}

	return &Results{
		main:    newSlice(items, options.approach),
		cameras: cameras,
	}
}

func ownerCameraID(item view.Item) string {
	m, ok := item.(*view.Media)
	if !ok || m.Folder() != nil {
		return ""
	}
	return m.CameraID()
}

// Main returns the main slice.
func (r *Results) Main() *Slice { return r.main }

// Camera returns the slice for one camera id, or nil.
func (r *Results) Camera(id string) *Slice { return r.cameras[id] }

// CameraIDs returns the sorted camera ids that have a slice.
func (r *Results) CameraIDs() []string {
	ids := make([]string, 0, len(r.cameras))
	for id := range r.cameras {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// targetSlices resolves criteria to concrete slices. mutatesMain additionally
// reports whether the main slice is among them, which triggers demotion.
func (r *Results) targetSlices(criteria Criteria) (targets []*Slice, mutatesMain bool) {
	if criteria.isZero() || criteria.Main {
		targets = append(targets, r.main)
		mutatesMain = true
	}
	if criteria.CameraID != "" {
		if s := r.cameras[criteria.CameraID]; s != nil {
			targets = append(targets, s)
		}
	}
	if criteria.AllCameras {
		for _, id := range r.CameraIDs() {
			targets = append(targets, r.cameras[id])
		}
	}
	return targets, mutatesMain
}

// SelectIndex selects an index in the addressed slice(s). Out-of-range
// indices leave the selection unchanged.
func (r *Results) SelectIndex(index int, criteria Criteria) {
	targets, mutatesMain := r.targetSlices(criteria)
	for _, s := range targets {
		s.selectIndex(index)
	}
	if mutatesMain {
		r.demoteMainSelection()
	}
}

// SelectIfFound selects the first item satisfying pred in the addressed
// slice(s), leaving the selection unchanged when none does.
func (r *Results) SelectIfFound(pred func(view.Item) bool, criteria Criteria) {
	targets, mutatesMain := r.targetSlices(criteria)
	for _, s := range targets {
		for i, item := range s.items {
			if pred(item) {
				s.selectIndex(i)
				break
			}
		}
	}
	if mutatesMain {
		r.demoteMainSelection()
	}
}

// SelectBest selects the index chosen by score over the addressed slice(s)'
// items; score returning false leaves the selection unchanged.
func (r *Results) SelectBest(score func(items []view.Item) (int, bool), criteria Criteria) {
	targets, mutatesMain := r.targetSlices(criteria)
	for _, s := range targets {
		if index, ok := score(s.items); ok {
			s.selectIndex(index)
		}
	}
	if mutatesMain {
		r.demoteMainSelection()
	}
}

// demoteMainSelection mirrors the main slice's selection into the owning
// camera's slice so the two stay consistent. The match is by item identity
// (the same item value), not by value equality. The reverse direction is
// deliberately not automatic: see PromoteCameraSelection.
func (r *Results) demoteMainSelection() {
	selected := r.main.Selected()
	if selected == nil {
		return
	}
	camera := ownerCameraID(selected)
	if camera == "" {
		return
	}
	s := r.cameras[camera]
	if s == nil {
		return
	}
	for i, item := range s.items {
		if item == selected {
			s.selected = i
			return
		}
	}
}

// PromoteCameraSelection replaces the main selection with the given camera
// slice's selected item, found in the main slice by identity. Promotion is an
// explicit operation: camera-slice selections never propagate to the main
// slice implicitly.
func (r *Results) PromoteCameraSelection(cameraID string) {
	s := r.cameras[cameraID]
	if s == nil {
		return
	}
	selected := s.Selected()
	if selected == nil {
		return
	}
	for i, item := range r.main.items {
		if item == selected {
			r.main.selected = i
			return
		}
	}
}

// Clone copies the result set: item arrays are shared (items are never
// mutated), selection state is deep-copied.
func (r *Results) Clone() *Results {
	cameras := make(map[string]*Slice, len(r.cameras))
	for id, s := range r.cameras {
		cameras[id] = &Slice{items: s.items, selected: s.selected}
	}
	return &Results{
		main:    &Slice{items: r.main.items, selected: r.main.selected},
		cameras: cameras,
	}
}

// SupersetOf compares the two result sets' main-slice identity sets. It is
// false whenever either side is empty or contains an item with no identity,
// since identity is then ambiguous.
func (r *Results) SupersetOf(other *Results) bool {
	mine, ok := identitySet(r.main.items)
	if !ok {
		return false
	}
	theirs, ok := identitySet(other.main.items)
	if !ok {
		return false
	}
	for id := range theirs {
		if _, present := mine[id]; !present {
			return false
		}
	}
	return true
}

func identitySet(items []view.Item) (map[string]struct{}, bool) {
	if len(items) == 0 {
		return nil, false
	}
	set := make(map[string]struct{}, len(items))
	for _, item := range items {
		id := item.ID()
		if id == "" {
			return nil, false
		}
		set[id] = struct{}{}
	}
	return set, true
}
