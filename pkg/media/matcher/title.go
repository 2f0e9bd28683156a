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

package matcher

import (
	"context"
	"fmt"
	"regexp"

	"github.com/hbollon/go-edlib"

	"github.com/ngoviet/camera-card/pkg/media"
)

// defaultFuzzySimilarity is the Jaro-Winkler threshold used when a fuzzy
// title matcher does not configure its own.
const defaultFuzzySimilarity = 0.85

// Title matches against a node's title, optionally extracting a value with a
// regexp named capture group first.
//
// With a regexp, the first named capture group's value is extracted from the
// title; no match or no named group means no match. The extracted (or raw)
// value must equal the configured title when one is set. Without a configured
// title, a successful extraction (or a non-empty raw title) is sufficient.
// Fuzzy mode replaces the equality check with Jaro-Winkler similarity.
type Title struct {
	re            *regexp.Regexp
	title         string
	minSimilarity float32
	fuzzy         bool
}

// NewTitle creates a title matcher. pattern may be empty. minSimilarity at or
// below zero selects the default threshold; it is ignored unless fuzzy is
// set.
func NewTitle(title, pattern string, fuzzy bool, minSimilarity float32) (*Title, error) {
	var re *regexp.Regexp
	if pattern != "" {
		var err error
		re, err = regexp.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("failed to compile title matcher regexp: %w", err)
		}
	}
	if minSimilarity <= 0 {
		minSimilarity = defaultFuzzySimilarity
	}
	return &Title{re: re, title: title, fuzzy: fuzzy, minSimilarity: minSimilarity}, nil
}

// Match implements Matcher.
func (m *Title) Match(_ context.Context, node *media.Node, _ Options) bool {
	value := node.Title

	if m.re != nil {
		extracted, ok := firstNamedGroup(m.re, node.Title)
		if !ok {
			return false
		}
		if m.title == "" {
			return true
		}
		value = extracted
	}

	if m.title == "" {
		return value != ""
	}
	if m.fuzzy {
		return edlib.JaroWinklerSimilarity(value, m.title) >= m.minSimilarity
	}
	return value == m.title
}

// firstNamedGroup extracts the value of the first named capture group from
// the first match of re against s. It reports failure when the regexp does
// not match or defines no named group.
func firstNamedGroup(re *regexp.Regexp, s string) (string, bool) {
	match := re.FindStringSubmatch(s)
	if match == nil {
		return "", false
	}
	for i, name := range re.SubexpNames() {
		if name != "" && i < len(match) {
			return match[i], true
		}
	}
	return "", false
}
