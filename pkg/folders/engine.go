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

// Package folders builds and executes folder queries against a browse-media
// source: it generates walk steps from configured path components, drives the
// tree walker and converts the matched nodes into view items.
package folders

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	"github.com/ngoviet/camera-card/pkg/cache"
	"github.com/ngoviet/camera-card/pkg/config"
	"github.com/ngoviet/camera-card/pkg/media"
	"github.com/ngoviet/camera-card/pkg/media/matcher"
	"github.com/ngoviet/camera-card/pkg/media/walker"
	"github.com/ngoviet/camera-card/pkg/query"
	"github.com/ngoviet/camera-card/pkg/view"
)

// MediaRootID is the canonical root of the host's browse-media tree.
const MediaRootID = "media-source://"

// defaultEndpointCacheSize bounds the resolved-endpoint LRU. It must exceed
// the largest expected single query's result count: partial eviction
// mid-query breaks consumers.
const defaultEndpointCacheSize = 1024

// ErrNotFavoritable is returned when favoriting an item that cannot carry a
// favorite flag.
var ErrNotFavoritable = errors.New("item cannot be favorited")

// MediaResolver resolves a content id to a playable or downloadable
// endpoint.
type MediaResolver interface {
	ResolveMedia(ctx context.Context, contentID string) (media.Endpoint, error)
}

// Capabilities describes what the UI may offer for an item.
type Capabilities struct {
	CanFavorite bool
	CanDownload bool
}

// Engine is the folder query engine.
type Engine struct {
	source    media.NodeSource
	walker    *walker.Walker
	nodeCache media.NodeCache
	endpoints *cache.LRU[media.Endpoint]
	resolver  MediaResolver
	renderer  matcher.TemplateRenderer
	clock     clockwork.Clock
}

// Option configures an Engine.
type Option func(*Engine)

// WithResolver wires the media resolver used for download paths.
func WithResolver(resolver MediaResolver) Option {
	return func(e *Engine) { e.resolver = resolver }
}

// WithRenderer wires the template renderer used by template matchers.
func WithRenderer(renderer matcher.TemplateRenderer) Option {
	return func(e *Engine) { e.renderer = renderer }
}

// WithClock overrides the engine's clock.
func WithClock(clock clockwork.Clock) Option {
	return func(e *Engine) { e.clock = clock }
}

// WithNodeCache overrides the browse-media subtree cache.
func WithNodeCache(nodeCache media.NodeCache) Option {
	return func(e *Engine) { e.nodeCache = nodeCache }
}

// WithEndpointCacheSize overrides the resolved-endpoint cache capacity.
func WithEndpointCacheSize(size int) Option {
	return func(e *Engine) { e.endpoints = cache.NewLRU[media.Endpoint](size) }
}

// New creates a folder engine reading from source.
func New(source media.NodeSource, opts ...Option) *Engine {
	e := &Engine{
		source:    source,
		walker:    walker.New(source),
		nodeCache: cache.NewStore[*media.Node](),
		endpoints: cache.NewLRU[media.Endpoint](defaultEndpointCacheSize),
		clock:     clockwork.NewRealClock(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// DefaultFolderQuery builds the initial query for a configured folder. The
// canonical media root (or the folder's url override) is prepended when the
// configured path does not already start with it. Returns nil for folders of
// a type this engine does not handle.
func (e *Engine) DefaultFolderQuery(folder *config.Folder) *query.FolderQuery {
	if folder == nil || folder.Type != config.FolderTypeHA {
		return nil
	}

	root := MediaRootID
	if folder.URL != "" {
		root = folder.URL
	}

	path := make([]query.PathComponent, 0, len(folder.Path)+1)
	if len(folder.Path) == 0 || folder.Path[0].ID != root {
		path = append(path, query.PathComponent{ID: root})
	}
	for i := range folder.Path {
		path = append(path, query.PathComponent{
			ID:     folder.Path[i].ID,
			Config: &folder.Path[i],
		})
	}

	return query.NewFolderQuery(folder, path)
}

// ChildFolderQuery extends q's path one level down into folder. The
// configured path component for the new depth, if any, is carried forward so
// its matchers and parsers apply; otherwise a bare component is synthesized.
func (e *Engine) ChildFolderQuery(q *query.FolderQuery, folder *view.Folder) *query.FolderQuery {
	if q == nil || q.Folder == nil || folder == nil {
		return nil
	}

	// The default query may have prepended an implicit root with no
	// configured counterpart; skip such components when mapping the new
	// depth back to a configured index.
	offset := 0
	for _, component := range q.Path {
		if component.Config != nil {
			break
		}
		offset++
	}

	var cfgComponent *config.PathComponent
	if index := len(q.Path) - offset; index >= 0 && index < len(q.Folder.Path) {
		cfgComponent = &q.Folder.Path[index]
	}

	path := append(slices.Clone(q.Path), query.PathComponent{
		Folder: folder,
		ID:     folder.ID(),
		Config: cfgComponent,
	})
	return query.NewFolderQuery(q.Folder, path)
}

// ExpandOption configures one ExpandFolder call.
type ExpandOption func(*expandOptions)

type expandOptions struct {
	useCache bool
}

// WithoutCache disables the browse-media subtree cache for one expansion.
func WithoutCache() ExpandOption {
	return func(o *expandOptions) { o.useCache = false }
}

// ExpandFolder executes a folder query and returns its items, folders first.
// It returns nil (and no error) when the query resolves no starting point or
// its discriminator does not match this engine; fetch failures propagate to
// the caller.
func (e *Engine) ExpandFolder(
	ctx context.Context,
	q *query.FolderQuery,
	templateContext map[string]any,
	opts ...ExpandOption,
) ([]view.Item, error) {
	options := expandOptions{useCache: true}
	for _, opt := range opts {
		opt(&options)
	}

	if q == nil || q.Folder == nil || q.Folder.Type != config.FolderTypeHA || len(q.Path) == 0 {
		return nil, nil
	}

	// Leading resolvable components collapse to the deepest resolved point:
	// each resolved component subsumes its ancestors.
	start := ""
	consumed := 0
	for consumed < len(q.Path) {
		id := q.Path[consumed].ResolvableID()
		if id == "" {
			break
		}
		start = id
		consumed++
	}
	if start == "" {
		return nil, nil
	}

	descent, err := compileComponents(q.Path[consumed:])
	if err != nil {
		return nil, err
	}

	walkOpts := walker.Options{
		Match: matcher.Options{
			Renderer: e.renderer,
			Clock:    e.clock,
			Context:  templateContext,
		},
	}
	if options.useCache {
		walkOpts.Cache = e.nodeCache
	}

	first := buildStep([]walker.Target{{ID: start}}, descent, 0)
	nodes, err := e.walker.Walk(ctx, []walker.Step{first}, walkOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to expand folder %q: %w", q.Folder.ID, err)
	}

	items := make([]view.Item, 0, len(nodes))
	for _, node := range nodes {
		item, err := view.FromNode(node, q.Folder)
		if err != nil {
			log.Debug().Err(err).Str("id", node.ID).Msg("skipping unconvertible node")
			continue
		}
		items = append(items, item)
	}

	view.SortItems(items)
	return items, nil
}

// compiledComponent is one descent level's prepared matchers and parsers.
type compiledComponent struct {
	matchers []matcher.Matcher
	parsers  []media.MetadataParser
}

func compileComponents(components []query.PathComponent) ([]compiledComponent, error) {
	compiled := make([]compiledComponent, 0, len(components))
	for _, component := range components {
		var c compiledComponent
		if component.Config != nil {
			var err error
			if c.matchers, err = component.Config.BuildMatchers(); err != nil {
				return nil, fmt.Errorf("failed to prepare matchers: %w", err)
			}
			if c.parsers, err = component.Config.BuildParsers(); err != nil {
				return nil, fmt.Errorf("failed to prepare parsers: %w", err)
			}
		}
		compiled = append(compiled, c)
	}
	return compiled, nil
}

// buildStep builds the walk step consuming descent[depth]. Non-terminal
// depths match folders only, since only folders can be descended into, and
// advance into the next depth's step.
func buildStep(targets []walker.Target, descent []compiledComponent, depth int) walker.Step {
	step := walker.Step{Targets: targets}
	if depth >= len(descent) {
		return step
	}

	level := descent[depth]
	step.Matchers = level.matchers
	step.FoldersOnly = depth < len(descent)-1

	if len(level.parsers) > 0 {
		parsers := level.parsers
		step.Metadata = func(child, parent *media.Node) *media.Metadata {
			for _, parser := range parsers {
				if md := parser.Parse(child, parent); md != nil {
					return md
				}
			}
			return nil
		}
	}

	if depth < len(descent)-1 {
		step.Advance = func(matched []*media.Node) ([]walker.Step, error) {
			if len(matched) == 0 {
				return nil, nil
			}
			next := make([]walker.Target, 0, len(matched))
			for _, node := range matched {
				next = append(next, walker.Target{ID: node.ID})
			}
			return []walker.Step{buildStep(next, descent, depth+1)}, nil
		}
	}
	return step
}

// ItemCapabilities reports what the UI may offer for an item. Only
// camera-owned media can carry a favorite flag; anything with a content id
// can be downloaded.
func (e *Engine) ItemCapabilities(item view.Item) Capabilities {
	m, ok := item.(*view.Media)
	if !ok {
		return Capabilities{}
	}
	return Capabilities{
		CanFavorite: m.CameraID() != "",
		CanDownload: m.ContentID() != "",
	}
}

// DownloadPath resolves an item's download endpoint through the media
// resolver, memoized in the endpoint cache. It returns nil for items that
// cannot be downloaded or when no resolver is wired.
func (e *Engine) DownloadPath(ctx context.Context, item view.Item) (*media.Endpoint, error) {
	m, ok := item.(*view.Media)
	if !ok || m.ContentID() == "" || e.resolver == nil {
		return nil, nil
	}

	if endpoint, ok := e.endpoints.Get(m.ContentID()); ok {
		return &endpoint, nil
	}

	endpoint, err := e.resolver.ResolveMedia(ctx, m.ContentID())
	if err != nil {
		return nil, fmt.Errorf("failed to resolve media %q: %w", m.ContentID(), err)
	}
	e.endpoints.Set(m.ContentID(), endpoint)
	return &endpoint, nil
}

// Favorite sets an item's favorite flag.
func (e *Engine) Favorite(_ context.Context, item view.Item, favorite bool) error {
	if !e.ItemCapabilities(item).CanFavorite {
		return ErrNotFavoritable
	}
	m, _ := item.(*view.Media)
	m.SetFavorite(favorite)
	return nil
}
