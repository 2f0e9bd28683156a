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

// Package view models the UI-facing items produced from browse-media nodes
// and camera-native query results: playable media and navigable folders.
package view

import (
	"errors"
	"sort"
	"time"

	"github.com/ngoviet/camera-card/pkg/config"
	"github.com/ngoviet/camera-card/pkg/media"
)

// Item is either a playable Media or a navigable Folder.
type Item interface {
	// ID is the item's stable identity. It may be empty when no identity
	// could be derived; consumers comparing identity sets treat empty ids
	// as ambiguous.
	ID() string
	Title() string
	Thumbnail() string
	Icon() string

	viewItem()
}

var (
	// ErrNoFolderScope is returned when an expandable node is converted
	// without a folder configuration: a bare browsable node outside folder
	// context is meaningless.
	ErrNoFolderScope = errors.New("expandable node outside folder scope")

	// ErrUnknownClass is returned for leaf nodes whose media class maps to
	// no media kind.
	ErrUnknownClass = errors.New("unrecognized media class")
)

// FromNode converts a browse-media node into a view item. Expandable nodes
// become folders owned by folderCfg; leaves become clips or snapshots
// depending on their class.
func FromNode(node *media.Node, folderCfg *config.Folder) (Item, error) {
	if node.CanExpand {
		if folderCfg == nil {
			return nil, ErrNoFolderScope
		}
		return NewFolder(node, folderCfg), nil
	}

	var kind MediaKind
	switch node.Class {
	case media.ClassVideo, media.ClassMovie:
		kind = MediaClip
	case media.ClassImage:
		kind = MediaSnapshot
	default:
		return nil, ErrUnknownClass
	}

	var start *time.Time
	if node.Metadata != nil {
		start = node.Metadata.StartDate
	}

	return NewMedia(kind, MediaProps{
		Folder:    folderCfg,
		ContentID: node.ID,
		Title:     node.Title,
		Thumbnail: node.Thumbnail,
		Icon:      media.ClassIcon(node.Class),
		StartTime: start,
	}), nil
}

// SortItems stably reorders items so folders come before media, preserving
// the relative order within each group.
func SortItems(items []Item) {
	sort.SliceStable(items, func(i, j int) bool {
		_, iFolder := items[i].(*Folder)
		_, jFolder := items[j].(*Folder)
		return iFolder && !jFolder
	})
}
