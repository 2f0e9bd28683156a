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

package media

import (
	"fmt"
	"regexp"
	"time"
)

// MetadataParser derives metadata for a node during a walk, typically from
// its title. A nil result means the parser could not derive anything and the
// node passes through bare.
type MetadataParser interface {
	Parse(node, parent *Node) *Metadata
}

// DateParser extracts a start date from a node's title. When a regexp with a
// "date" named capture group is configured, the group's value is parsed;
// otherwise the whole title is. Titles that do not parse yield no metadata.
type DateParser struct {
	re     *regexp.Regexp
	format string
}

const defaultDateFormat = "2006-01-02"

// NewDateParser compiles a date parser. pattern may be empty; format defaults
// to ISO date (2006-01-02) when empty.
func NewDateParser(pattern, format string) (*DateParser, error) {
	var re *regexp.Regexp
	if pattern != "" {
		var err error
		re, err = regexp.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("failed to compile date parser regexp: %w", err)
		}
	}
	if format == "" {
		format = defaultDateFormat
	}
	return &DateParser{re: re, format: format}, nil
}

// Parse implements MetadataParser.
func (p *DateParser) Parse(node, _ *Node) *Metadata {
	raw := node.Title
	if p.re != nil {
		raw = namedGroup(p.re, node.Title, "date")
		if raw == "" {
			return nil
		}
	}

	parsed, err := time.Parse(p.format, raw)
	if err != nil {
		return nil
	}
	return &Metadata{StartDate: &parsed}
}

// namedGroup returns the value of the named capture group in the first match
// of re against s, or "" when there is no match or no such group.
func namedGroup(re *regexp.Regexp, s, name string) string {
	match := re.FindStringSubmatch(s)
	if match == nil {
		return ""
	}
	for i, groupName := range re.SubexpNames() {
		if groupName == name && i < len(match) {
			return match[i]
		}
	}
	return ""
}
