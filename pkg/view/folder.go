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
	"github.com/ngoviet/camera-card/pkg/config"
	"github.com/ngoviet/camera-card/pkg/media"
)

// Folder is a navigable view item backed by an expandable browse-media node.
// All fields are taken from the backing node at construction and are
// immutable afterwards.
type Folder struct {
	cfg       *config.Folder
	id        string
	title     string
	thumbnail string
	icon      string
}

// NewFolder creates a Folder from an expandable node, owned by cfg.
func NewFolder(node *media.Node, cfg *config.Folder) *Folder {
	icon := cfg.Icon
	if icon == "" {
		icon = media.ClassIcon(node.Class)
	}
	return &Folder{
		cfg:       cfg,
		id:        node.ID,
		title:     node.Title,
		thumbnail: node.Thumbnail,
		icon:      icon,
	}
}

func (*Folder) viewItem() {}

// ID implements Item. It is the backing node's content id.
func (f *Folder) ID() string { return f.id }

// Title implements Item.
func (f *Folder) Title() string { return f.title }

// Thumbnail implements Item.
func (f *Folder) Thumbnail() string { return f.thumbnail }

// Icon implements Item.
func (f *Folder) Icon() string { return f.icon }

// Config returns the owning folder configuration.
func (f *Folder) Config() *config.Folder { return f.cfg }
