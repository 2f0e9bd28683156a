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

	"github.com/ngoviet/camera-card/pkg/config"
	"github.com/ngoviet/camera-card/pkg/view"
)

// PathComponent is one depth of a folder query's browse path. A component is
// resolvable when it carries an already-resolved folder or a literal content
// id; resolvable leading components determine where a walk starts, the rest
// are consumed one level at a time during descent.
type PathComponent struct {
	// Folder is the resolved view-folder for this depth, set when the
	// component was produced by navigating into a folder item.
	Folder *view.Folder

	// Config is the configured path component for this depth, carrying its
	// matchers and parsers. Nil for synthesized components beyond the
	// configured path.
	Config *config.PathComponent

	// ID is a literal content id for this depth.
	ID string
}

// ResolvableID returns the content id this component resolves to, or "" when
// the component is not directly resolvable.
func (c PathComponent) ResolvableID() string {
	if c.Folder != nil && c.Folder.ID() != "" {
		return c.Folder.ID()
	}
	return c.ID
}

// FolderQuery wraps a folder configuration and the browse path to expand.
// The path is never empty.
type FolderQuery struct {
	Folder *config.Folder
	Path   []PathComponent
}

// NewFolderQuery creates a folder query. The folder configuration and path
// components are shared, not copied.
func NewFolderQuery(folder *config.Folder, path []PathComponent) *FolderQuery {
	return &FolderQuery{Folder: folder, Path: path}
}

// Type implements Query.
func (q *FolderQuery) Type() Type { return TypeFolder }

// Clone implements Query. The path slice is copied; components share the
// referenced folder configuration and resolved folders.
func (q *FolderQuery) Clone() Query {
	return &FolderQuery{Folder: q.Folder, Path: slices.Clone(q.Path)}
}
