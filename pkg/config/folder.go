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

package config

import (
	"fmt"
)

// FolderTypeHA identifies folders backed by the host's browse-media tree.
// It is the only folder type this engine handles; the type field is a
// discriminator other engines branch on.
const FolderTypeHA = "ha"

// Folder configures one media folder shown by the card.
type Folder struct {
	ID    string          `toml:"id" validate:"required"`
	Type  string          `toml:"type" validate:"required"`
	Title string          `toml:"title,omitempty"`
	Icon  string          `toml:"icon,omitempty"`
	URL   string          `toml:"url,omitempty"`
	Path  []PathComponent `toml:"path,omitempty"`
}

// PathComponent configures one depth of a folder's browse path: a literal
// content id to start from and/or the matchers and parsers applied to that
// depth's children.
type PathComponent struct {
	ID       string       `toml:"id,omitempty"`
	Matchers []RawMatcher `toml:"matchers,omitempty"`
	Parsers  []RawParser  `toml:"parsers,omitempty"`
}

func (f *Folder) validate() error {
	for depth := range f.Path {
		component := &f.Path[depth]
		if _, err := component.BuildMatchers(); err != nil {
			return fmt.Errorf("path component %d: %w", depth, err)
		}
		if _, err := component.BuildParsers(); err != nil {
			return fmt.Errorf("path component %d: %w", depth, err)
		}
	}
	return nil
}
