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

// Package media defines the browse-media node model shared by the tree
// walker, the matchers and the folder engine, along with the interfaces the
// engine consumes to fetch and cache nodes.
package media

import (
	"context"
	"time"
)

// Media classes reported by browse-media sources. The class is a coarse type
// tag: it drives icon resolution and the folder/leaf media split, nothing
// else.
const (
	ClassDirectory = "directory"
	ClassVideo     = "video"
	ClassMovie     = "movie"
	ClassImage     = "image"
	ClassApp       = "app"
)

// Node is one item in a hierarchical, externally-sourced media catalog.
// Children is nil unless the node has been expanded by its source. Metadata
// is attached in-memory during traversal and is never persisted by the
// source.
type Node struct {
	Metadata  *Metadata
	Thumbnail string
	ID        string
	Title     string
	Class     string
	Children  []*Node
	CanExpand bool
	CanPlay   bool
}

// Metadata is the payload a walk step's metadata generator attaches to a
// node. Absent fields mean the generator could not derive them.
type Metadata struct {
	StartDate *time.Time
}

// NodeSource fetches a node by content id. An expandable node must be
// returned with Children populated; a leaf is returned with Children nil.
// Fetch failures propagate to the caller as errors.
type NodeSource interface {
	FetchNode(ctx context.Context, id string) (*Node, error)
}

// NodeCache caches fetched subtrees keyed by the node's own content id, so
// re-walking a path costs no additional fetches.
type NodeCache interface {
	Get(id string) (*Node, bool)
	Set(id string, node *Node)
	Has(id string) bool
}

// Endpoint is a resolved, playable or downloadable address for a media
// content id.
type Endpoint struct {
	URL      string
	MIMEType string
}

// classIcons maps media classes to host icon names.
var classIcons = map[string]string{
	ClassDirectory: "mdi:folder",
	ClassVideo:     "mdi:filmstrip",
	ClassMovie:     "mdi:movie",
	ClassImage:     "mdi:image",
	ClassApp:       "mdi:application",
}

// ClassIcon returns the icon for a media class, falling back to a generic
// file icon for unrecognized classes.
func ClassIcon(class string) string {
	if icon, ok := classIcons[class]; ok {
		return icon
	}
	return "mdi:file"
}
