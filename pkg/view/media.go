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

package view

import (
	"slices"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/ngoviet/camera-card/pkg/config"
)

// MediaKind is the playable media subtype.
type MediaKind string

const (
	MediaClip      MediaKind = "clip"
	MediaSnapshot  MediaKind = "snapshot"
	MediaRecording MediaKind = "recording"
)

// mediaIDTimeFormat formats a start time into a media identity. Identity by
// camera and timestamp de-duplicates multiple representations of the same
// real-world event (an image and a video sharing a timestamp).
const mediaIDTimeFormat = time.RFC3339

// mediaTitleTimeFormat formats a known start time into a display title.
const mediaTitleTimeFormat = "2006-01-02 15:04:05"

// MediaProps carries the construction inputs of a Media item. Camera and
// folder ownership are mutually informative: browse-derived items carry a
// folder, camera-native items carry a camera, never both meaningfully.
type MediaProps struct {
	StartTime  *time.Time
	EndTime    *time.Time
	Folder     *config.Folder
	CameraID   string
	ContentID  string
	Title      string
	Thumbnail  string
	Icon       string
	What       []string
	InProgress bool
}

// Media is a playable view item. It is immutable after construction apart
// from the favorite flag.
type Media struct {
	props    MediaProps
	id       string
	kind     MediaKind
	favorite bool
}

// NewMedia constructs a Media of the given kind. Identity is derived from
// the owning camera and start time when both are known, falling back to the
// raw content id, which is not guaranteed unique across sources.
func NewMedia(kind MediaKind, props MediaProps) *Media {
	id := props.ContentID
	if props.CameraID != "" && props.StartTime != nil {
		id = props.CameraID + "/" + props.StartTime.Format(mediaIDTimeFormat)
	}
	return &Media{kind: kind, props: props, id: id}
}

func (*Media) viewItem() {}

// ID implements Item.
func (m *Media) ID() string { return m.id }

// Title returns the formatted start time when known, else the raw source
// title.
func (m *Media) Title() string {
	if m.props.StartTime != nil {
		return m.props.StartTime.Format(mediaTitleTimeFormat)
	}
	return m.props.Title
}

// Thumbnail implements Item.
func (m *Media) Thumbnail() string { return m.props.Thumbnail }

// Icon implements Item.
func (m *Media) Icon() string { return m.props.Icon }

// Kind returns the media subtype.
func (m *Media) Kind() MediaKind { return m.kind }

// CameraID returns the owning camera id, or "" for folder-derived media.
func (m *Media) CameraID() string { return m.props.CameraID }

// Folder returns the owning folder configuration, or nil for camera-native
// media.
func (m *Media) Folder() *config.Folder { return m.props.Folder }

// ContentID returns the source content id.
func (m *Media) ContentID() string { return m.props.ContentID }

// StartTime returns the media's start time, or nil if unknown.
func (m *Media) StartTime() *time.Time { return m.props.StartTime }

// EndTime returns the media's end time, or nil if unknown.
func (m *Media) EndTime() *time.Time { return m.props.EndTime }

// InProgress reports whether the media is still being recorded.
func (m *Media) InProgress() bool { return m.props.InProgress }

// What returns the event classification tags.
func (m *Media) What() []string { return m.props.What }

// UsableEndTime returns the end time, else "now" for in-progress media, else
// the start time. It is nil only when neither bound is known.
func (m *Media) UsableEndTime(clock clockwork.Clock) *time.Time {
	if m.props.EndTime != nil {
		return m.props.EndTime
	}
	if m.props.InProgress {
		if clock == nil {
			clock = clockwork.NewRealClock()
		}
		now := clock.Now()
		return &now
	}
	return m.props.StartTime
}

// Favorite reports the in-memory favorite flag.
func (m *Media) Favorite() bool { return m.favorite }

// SetFavorite flips the in-memory favorite flag. It is the only mutation a
// Media permits after construction.
func (m *Media) SetFavorite(favorite bool) { m.favorite = favorite }

// IsGroupableWith reports whether two media items belong in one gallery
// group: same subtype and the same what-tag set, by value.
func (m *Media) IsGroupableWith(other *Media) bool {
	if other == nil || m.kind != other.kind {
		return false
	}
	a := slices.Clone(m.props.What)
	b := slices.Clone(other.props.What)
	slices.Sort(a)
	slices.Sort(b)
	return slices.Equal(a, b)
}
