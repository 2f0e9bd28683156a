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

// Package matcher evaluates composable predicates over browse-media nodes.
// Matchers never return errors: malformed configuration and failed template
// renders degrade to "no match".
package matcher

import (
	"context"

	"github.com/jonboulle/clockwork"

	"github.com/ngoviet/camera-card/pkg/media"
)

// Matcher is a single predicate over a node.
type Matcher interface {
	Match(ctx context.Context, node *media.Node, opts Options) bool
}

// Options carries the evaluation environment shared by all matchers of one
// walk step.
type Options struct {
	// Renderer evaluates template matchers. When nil, template matchers
	// never match.
	Renderer TemplateRenderer

	// Clock supplies "now" for date matchers. When nil, the real clock is
	// used.
	Clock clockwork.Clock

	// Context is merged into the variables passed to template renders.
	Context map[string]any

	// FoldersOnly rejects leaf nodes before any matcher is evaluated.
	FoldersOnly bool
}

func (o Options) clock() clockwork.Clock {
	if o.Clock != nil {
		return o.Clock
	}
	return clockwork.NewRealClock()
}

// Match evaluates a short-circuiting logical AND over matchers. An empty
// matcher list matches everything. With FoldersOnly set, leaf nodes are
// rejected before any matcher runs.
func Match(ctx context.Context, node *media.Node, matchers []Matcher, opts Options) bool {
	if opts.FoldersOnly && !node.CanExpand {
		return false
	}
	for _, m := range matchers {
		if m == nil {
			continue
		}
		if !m.Match(ctx, node, opts) {
			return false
		}
	}
	return true
}

// Unknown stands in for a matcher whose configured type this engine does not
// recognize. It always matches: unknown types are deliberately treated as
// vacuously satisfied rather than rejected, so configuration written for a
// newer engine degrades gracefully instead of filtering everything out.
type Unknown struct {
	Type string
}

// Match implements Matcher.
func (m *Unknown) Match(context.Context, *media.Node, Options) bool {
	return true
}

// Or matches when at least one sub-matcher matches. Each sub-matcher is
// evaluated through the full Match pipeline so FoldersOnly and the template
// context carry through. An empty Or never matches.
type Or struct {
	Matchers []Matcher
}

// Match implements Matcher.
func (m *Or) Match(ctx context.Context, node *media.Node, opts Options) bool {
	for _, sub := range m.Matchers {
		if Match(ctx, node, []Matcher{sub}, opts) {
			return true
		}
	}
	return false
}
