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

	"github.com/ngoviet/camera-card/pkg/media"
)

// TemplateRenderer evaluates a template against a set of variables and
// returns an arbitrary value. The host's template engine and the built-in
// ExprRenderer both satisfy it.
type TemplateRenderer interface {
	Render(ctx context.Context, template string, variables map[string]any) (any, error)
}

// Template matches when the rendered template evaluates to exactly boolean
// true. Render failures, non-boolean results and a missing renderer all
// degrade to "no match".
type Template struct {
	Template string
}

// Match implements Matcher.
func (m *Template) Match(ctx context.Context, node *media.Node, opts Options) bool {
	if opts.Renderer == nil {
		return false
	}

	variables := map[string]any{
		"title":     node.Title,
		"is_folder": node.CanExpand,
	}
	for k, v := range opts.Context {
		variables[k] = v
	}

	result, err := opts.Renderer.Render(ctx, m.Template, variables)
	if err != nil {
		return false
	}
	matched, ok := result.(bool)
	return ok && matched
}
