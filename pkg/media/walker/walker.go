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

// Package walker traverses hierarchical browse-media trees one level at a
// time, driven by a sequence of per-level steps carrying matchers, sorters,
// early-exit predicates and metadata generators.
package walker

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/ngoviet/camera-card/pkg/media"
	"github.com/ngoviet/camera-card/pkg/media/matcher"
)

// Target is one starting point of a step: either an already-resolved node,
// reused as-is, or a content id fetched from the source.
type Target struct {
	Node *media.Node
	ID   string
}

// Step is one traversal instruction. Matched children of all targets are
// accumulated in target order; Advance, when set, turns the matches into the
// next steps and excludes them from the walk's output.
type Step struct {
	// Advance maps a step's matches to the steps of the next level. Steps
	// without Advance emit their matches as walk output.
	Advance func(matched []*media.Node) ([]Step, error)

	// Metadata derives metadata for a child from itself and its parent. A
	// nil result leaves the child bare.
	Metadata func(child, parent *media.Node) *media.Metadata

	// EarlyExit is consulted after each target's children have been
	// processed; once satisfied, remaining targets of the step are never
	// fetched.
	EarlyExit func(matches []*media.Node) bool

	// Sorter reorders the step's accumulated matches in place.
	Sorter func(matches []*media.Node)

	Targets     []Target
	Matchers    []matcher.Matcher
	FoldersOnly bool

	// Concurrency bounds how many target fetches are in flight at once.
	// Values below 1 mean sequential processing.
	Concurrency int
}

// Options configures a single walk.
type Options struct {
	// Cache, when set, memoizes fetched nodes by their own content id: a
	// hit skips the fetch entirely.
	Cache media.NodeCache

	// Match carries the matcher evaluation environment (renderer, clock,
	// template context). FoldersOnly is taken from each step, not from
	// here.
	Match matcher.Options
}

// Walker performs cache-aware traversals of a node source.
type Walker struct {
	source media.NodeSource
}

// New creates a Walker reading from source.
func New(source media.NodeSource) *Walker {
	return &Walker{source: source}
}

// Walk processes steps level by level and returns the matches of every step
// that defines no Advance, concatenated in branch order. An empty step list
// returns no results and issues no fetches. Any fetch failure aborts the
// whole walk; partial accumulations are discarded.
func (w *Walker) Walk(ctx context.Context, steps []Step, opts Options) ([]*media.Node, error) {
	var out []*media.Node

	queue := make([]Step, len(steps))
	copy(queue, steps)

	for len(queue) > 0 {
		step := queue[0]
		queue = queue[1:]

		matches, err := w.runStep(ctx, step, opts)
		if err != nil {
			return nil, err
		}

		if step.Advance == nil {
			out = append(out, matches...)
			continue
		}

		next, err := step.Advance(matches)
		if err != nil {
			return nil, fmt.Errorf("failed to advance walk: %w", err)
		}
		// Next-level steps are processed before the remaining siblings to
		// keep each branch's output contiguous.
		queue = append(next, queue...)
	}

	return out, nil
}

func (w *Walker) runStep(ctx context.Context, step Step, opts Options) ([]*media.Node, error) {
	matchOpts := opts.Match
	matchOpts.FoldersOnly = step.FoldersOnly

	concurrency := step.Concurrency
	if concurrency < 1 {
		concurrency = 1
	}

	var matches []*media.Node
	targets := step.Targets

	for start := 0; start < len(targets); start += concurrency {
		end := start + concurrency
		if end > len(targets) {
			end = len(targets)
		}
		batch := targets[start:end]

		resolved := make([]*media.Node, len(batch))
		g, gctx := errgroup.WithContext(ctx)
		for i, target := range batch {
			i, target := i, target
			g.Go(func() error {
				node, err := w.resolve(gctx, target, opts.Cache)
				if err != nil {
					return err
				}
				resolved[i] = node
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}

		exit := false
		for _, parent := range resolved {
			for _, child := range parent.Children {
				if step.Metadata != nil {
					if md := step.Metadata(child, parent); md != nil {
						child.Metadata = md
					}
				}
				if matcher.Match(ctx, child, step.Matchers, matchOpts) {
					matches = append(matches, child)
				}
			}
			if step.EarlyExit != nil && step.EarlyExit(matches) {
				exit = true
				break
			}
		}
		if exit {
			break
		}
	}

	if step.Sorter != nil {
		step.Sorter(matches)
	}
	return matches, nil
}

// resolve turns a target into a fetched node, consulting the cache first.
// Fetched nodes are cached under their own id.
func (w *Walker) resolve(ctx context.Context, target Target, cache media.NodeCache) (*media.Node, error) {
	if target.Node != nil {
		return target.Node, nil
	}

	if cache != nil {
		if node, ok := cache.Get(target.ID); ok {
			log.Debug().Str("id", target.ID).Msg("browse-media cache hit")
			return node, nil
		}
	}

	node, err := w.source.FetchNode(ctx, target.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch media node %q: %w", target.ID, err)
	}

	if cache != nil {
		cache.Set(node.ID, node)
	}
	return node, nil
}
