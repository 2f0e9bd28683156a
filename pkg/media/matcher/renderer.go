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
	"sync"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// ExprRenderer is the built-in TemplateRenderer, used when no host renderer
// is wired in. Templates are expr expressions evaluated against the render
// variables; compiled programs are cached per template string.
type ExprRenderer struct {
	programs map[string]*vm.Program
	mu       sync.Mutex
}

// NewExprRenderer creates an ExprRenderer with an empty program cache.
func NewExprRenderer() *ExprRenderer {
	return &ExprRenderer{programs: make(map[string]*vm.Program)}
}

// Render implements TemplateRenderer.
func (r *ExprRenderer) Render(_ context.Context, template string, variables map[string]any) (any, error) {
	program, err := r.compile(template)
	if err != nil {
		return nil, err
	}

	output, err := expr.Run(program, variables)
	if err != nil {
		return nil, fmt.Errorf("failed to evaluate template: %w", err)
	}
	return output, nil
}

func (r *ExprRenderer) compile(template string) (*vm.Program, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if program, ok := r.programs[template]; ok {
		return program, nil
	}

	program, err := expr.Compile(template)
	if err != nil {
		return nil, fmt.Errorf("failed to compile template: %w", err)
	}
	r.programs[template] = program
	return program, nil
}
