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

package folders

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ngoviet/camera-card/pkg/config"
	"github.com/ngoviet/camera-card/pkg/media"
	"github.com/ngoviet/camera-card/pkg/query"
	"github.com/ngoviet/camera-card/pkg/view"
)

type fakeSource struct {
	mu      sync.Mutex
	nodes   map[string]*media.Node
	fetched []string
	fail    map[string]error
}

func newFakeSource(nodes ...*media.Node) *fakeSource {
	s := &fakeSource{
		nodes: make(map[string]*media.Node, len(nodes)),
		fail:  make(map[string]error),
	}
	for _, node := range nodes {
		s.nodes[node.ID] = node
	}
	return s
}

func (s *fakeSource) FetchNode(_ context.Context, id string) (*media.Node, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fetched = append(s.fetched, id)
	if err, ok := s.fail[id]; ok {
		return nil, err
	}
	node, ok := s.nodes[id]
	if !ok {
		return nil, errors.New("no such node")
	}
	return node, nil
}

type fakeResolver struct {
	mu       sync.Mutex
	calls    int
	endpoint media.Endpoint
	err      error
}

func (r *fakeResolver) ResolveMedia(_ context.Context, _ string) (media.Endpoint, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	return r.endpoint, r.err
}

// browseTree builds a small browse-media hierarchy: the root contains a
// playable clip and two browsable directories.
func browseTree() *fakeSource {
	return newFakeSource(
		&media.Node{
			ID:        MediaRootID,
			Title:     "Media",
			Class:     media.ClassDirectory,
			CanExpand: true,
			Children: []*media.Node{
				{
					ID:      "media-source://media_player/clip1",
					Title:   "Morning clip",
					Class:   media.ClassVideo,
					CanPlay: true,
				},
				{
					ID:        "media-source://frigate",
					Title:     "Frigate",
					Class:     media.ClassDirectory,
					CanExpand: true,
				},
				{
					ID:        "media-source://camera",
					Title:     "Camera",
					Class:     media.ClassDirectory,
					CanExpand: true,
				},
			},
		},
		&media.Node{
			ID:        "media-source://frigate",
			Title:     "Frigate",
			Class:     media.ClassDirectory,
			CanExpand: true,
			Children: []*media.Node{
				{
					ID:      "media-source://frigate/event1",
					Title:   "2025-03-01 07:00:00 [10s, Person 72%]",
					Class:   media.ClassVideo,
					CanPlay: true,
				},
			},
		},
	)
}

func haFolder(path ...config.PathComponent) *config.Folder {
	return &config.Folder{
		ID:    "folder1",
		Type:  config.FolderTypeHA,
		Title: "Media",
		Path:  path,
	}
}

func TestDefaultFolderQuery(t *testing.T) {
	t.Parallel()

	engine := New(browseTree())

	tests := []struct {
		name     string
		folder   *config.Folder
		wantIDs  []string
		wantNil  bool
	}{
		{
			name:    "nil folder",
			folder:  nil,
			wantNil: true,
		},
		{
			name:    "unhandled type",
			folder:  &config.Folder{ID: "x", Type: "other"},
			wantNil: true,
		},
		{
			name:    "empty path gets root",
			folder:  haFolder(),
			wantIDs: []string{MediaRootID},
		},
		{
			name:    "path already rooted is unchanged",
			folder:  haFolder(config.PathComponent{ID: MediaRootID}),
			wantIDs: []string{MediaRootID},
		},
		{
			name: "unrooted path gets root prepended",
			folder: haFolder(
				config.PathComponent{ID: "media-source://frigate"},
			),
			wantIDs: []string{MediaRootID, "media-source://frigate"},
		},
		{
			name: "url override replaces canonical root",
			folder: &config.Folder{
				ID:   "folder1",
				Type: config.FolderTypeHA,
				URL:  "media-source://frigate",
				Path: []config.PathComponent{{ID: "media-source://frigate/cam"}},
			},
			wantIDs: []string{"media-source://frigate", "media-source://frigate/cam"},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			q := engine.DefaultFolderQuery(tt.folder)
			if tt.wantNil {
				assert.Nil(t, q)
				return
			}
			require.NotNil(t, q)
			got := make([]string, 0, len(q.Path))
			for _, component := range q.Path {
				got = append(got, component.ID)
			}
			assert.Equal(t, tt.wantIDs, got)
			assert.Same(t, tt.folder, q.Folder)
		})
	}
}

func TestChildFolderQueryCarriesConfiguredComponent(t *testing.T) {
	t.Parallel()

	folder := haFolder(
		config.PathComponent{ID: MediaRootID},
		config.PathComponent{
			Matchers: []config.RawMatcher{{"type": "title", "title": "Front"}},
		},
	)
	engine := New(browseTree())
	full := engine.DefaultFolderQuery(folder)
	require.Len(t, full.Path, 2)

	// A caller navigating level by level holds a query covering only part of
	// the configured path; descending must pick up the configured component
	// at the new depth.
	partial := query.NewFolderQuery(folder, full.Path[:1])

	child := view.NewFolder(
		&media.Node{ID: "media-source://frigate", Title: "Frigate", CanExpand: true},
		folder,
	)
	childQuery := engine.ChildFolderQuery(partial, child)
	require.NotNil(t, childQuery)
	require.Len(t, childQuery.Path, 2)

	last := childQuery.Path[1]
	assert.Equal(t, "media-source://frigate", last.ID)
	assert.Same(t, child, last.Folder)
	require.NotNil(t, last.Config)
	assert.Same(t, &folder.Path[1], last.Config)

	// The source query is not mutated.
	assert.Len(t, partial.Path, 1)
}

func TestChildFolderQueryBeyondConfiguredPath(t *testing.T) {
	t.Parallel()

	folder := haFolder(config.PathComponent{ID: MediaRootID})
	engine := New(browseTree())
	base := engine.DefaultFolderQuery(folder)

	child := view.NewFolder(
		&media.Node{ID: "media-source://frigate", Title: "Frigate", CanExpand: true},
		folder,
	)
	childQuery := engine.ChildFolderQuery(base, child)
	require.NotNil(t, childQuery)
	require.Len(t, childQuery.Path, 2)
	assert.Nil(t, childQuery.Path[1].Config)
}

func TestChildFolderQueryNilInputs(t *testing.T) {
	t.Parallel()

	engine := New(browseTree())
	folder := haFolder(config.PathComponent{ID: MediaRootID})
	base := engine.DefaultFolderQuery(folder)
	child := view.NewFolder(&media.Node{ID: "x", CanExpand: true}, folder)

	assert.Nil(t, engine.ChildFolderQuery(nil, child))
	assert.Nil(t, engine.ChildFolderQuery(base, nil))
}

func TestExpandFolderRootListing(t *testing.T) {
	t.Parallel()

	source := browseTree()
	engine := New(source)
	folder := haFolder(config.PathComponent{ID: MediaRootID})

	items, err := engine.ExpandFolder(
		context.Background(), engine.DefaultFolderQuery(folder), nil,
	)
	require.NoError(t, err)
	require.Len(t, items, 3)

	// Folders sort before media.
	_, ok := items[0].(*view.Folder)
	assert.True(t, ok)
	_, ok = items[1].(*view.Folder)
	assert.True(t, ok)
	m, ok := items[2].(*view.Media)
	require.True(t, ok)
	assert.Equal(t, view.MediaClip, m.Kind())
	assert.Equal(t, "media-source://media_player/clip1", m.ContentID())
	assert.Same(t, folder, m.Folder())
}

func TestExpandFolderTitleMatcher(t *testing.T) {
	t.Parallel()

	source := browseTree()
	engine := New(source)
	folder := haFolder(
		config.PathComponent{ID: MediaRootID},
		config.PathComponent{
			Matchers: []config.RawMatcher{{"type": "title", "title": "Frigate"}},
		},
	)

	items, err := engine.ExpandFolder(
		context.Background(), engine.DefaultFolderQuery(folder), nil,
	)
	require.NoError(t, err)
	require.Len(t, items, 1)

	child, ok := items[0].(*view.Folder)
	require.True(t, ok)
	assert.Equal(t, "media-source://frigate", child.ID())
	assert.Equal(t, "Frigate", child.Title())
}

func TestExpandFolderDescendsMatchedFolders(t *testing.T) {
	t.Parallel()

	source := browseTree()
	engine := New(source)
	folder := haFolder(
		config.PathComponent{ID: MediaRootID},
		config.PathComponent{
			Matchers: []config.RawMatcher{{"type": "title", "title": "Frigate"}},
		},
		config.PathComponent{
			Parsers: []config.RawParser{{
				"type":   "date",
				"regexp": `(?P<date>\d{4}-\d{2}-\d{2})`,
			}},
		},
	)

	items, err := engine.ExpandFolder(
		context.Background(), engine.DefaultFolderQuery(folder), nil,
	)
	require.NoError(t, err)
	require.Len(t, items, 1)

	m, ok := items[0].(*view.Media)
	require.True(t, ok)
	assert.Equal(t, "media-source://frigate/event1", m.ContentID())

	// The date parser attached a start time, so the media carries a derived
	// timestamp title.
	require.NotNil(t, m.StartTime())
	assert.Equal(t, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), m.StartTime().UTC())

	// The intermediate level only descends, it emits nothing itself.
	for _, item := range items {
		assert.NotEqual(t, "media-source://frigate", item.ID())
	}
}

func TestExpandFolderUsesSubtreeCache(t *testing.T) {
	t.Parallel()

	source := browseTree()
	engine := New(source)
	folder := haFolder(config.PathComponent{ID: MediaRootID})
	q := engine.DefaultFolderQuery(folder)

	_, err := engine.ExpandFolder(context.Background(), q, nil)
	require.NoError(t, err)
	_, err = engine.ExpandFolder(context.Background(), q, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{MediaRootID}, source.fetched)

	_, err = engine.ExpandFolder(context.Background(), q, nil, WithoutCache())
	require.NoError(t, err)
	assert.Equal(t, []string{MediaRootID, MediaRootID}, source.fetched)
}

func TestExpandFolderNoStartingPoint(t *testing.T) {
	t.Parallel()

	engine := New(browseTree())
	folder := haFolder(config.PathComponent{
		Matchers: []config.RawMatcher{{"type": "title", "title": "x"}},
	})
	// Bypass DefaultFolderQuery so the first component is unresolvable.
	q := query.NewFolderQuery(folder, []query.PathComponent{
		{Config: &folder.Path[0]},
	})

	items, err := engine.ExpandFolder(context.Background(), q, nil)
	require.NoError(t, err)
	assert.Nil(t, items)
}

func TestExpandFolderRejectsForeignQueries(t *testing.T) {
	t.Parallel()

	engine := New(browseTree())

	items, err := engine.ExpandFolder(context.Background(), nil, nil)
	require.NoError(t, err)
	assert.Nil(t, items)

	foreign := query.NewFolderQuery(
		&config.Folder{ID: "x", Type: "other"},
		[]query.PathComponent{{ID: MediaRootID}},
	)
	items, err = engine.ExpandFolder(context.Background(), foreign, nil)
	require.NoError(t, err)
	assert.Nil(t, items)
}

func TestExpandFolderFetchErrorPropagates(t *testing.T) {
	t.Parallel()

	source := browseTree()
	wantErr := errors.New("backend down")
	source.fail[MediaRootID] = wantErr

	engine := New(source)
	folder := haFolder(config.PathComponent{ID: MediaRootID})

	items, err := engine.ExpandFolder(
		context.Background(), engine.DefaultFolderQuery(folder), nil,
	)
	require.ErrorIs(t, err, wantErr)
	assert.Nil(t, items)
}

func TestItemCapabilities(t *testing.T) {
	t.Parallel()

	engine := New(browseTree())
	folder := haFolder()
	start := time.Date(2025, 3, 1, 7, 0, 0, 0, time.UTC)

	cameraMedia := view.NewMedia(view.MediaClip, view.MediaProps{
		CameraID:  "camera.front",
		ContentID: "media-source://frigate/event1",
		StartTime: &start,
	})
	folderMedia := view.NewMedia(view.MediaClip, view.MediaProps{
		Folder:    folder,
		ContentID: "media-source://media_player/clip1",
	})
	viewFolder := view.NewFolder(&media.Node{ID: "x", CanExpand: true}, folder)

	assert.Equal(t,
		Capabilities{CanFavorite: true, CanDownload: true},
		engine.ItemCapabilities(cameraMedia))
	assert.Equal(t,
		Capabilities{CanDownload: true},
		engine.ItemCapabilities(folderMedia))
	assert.Equal(t, Capabilities{}, engine.ItemCapabilities(viewFolder))
}

func TestDownloadPath(t *testing.T) {
	t.Parallel()

	resolver := &fakeResolver{
		endpoint: media.Endpoint{URL: "/api/clip1.mp4", MIMEType: "video/mp4"},
	}
	engine := New(browseTree(), WithResolver(resolver))
	folder := haFolder()

	m := view.NewMedia(view.MediaClip, view.MediaProps{
		Folder:    folder,
		ContentID: "media-source://media_player/clip1",
	})

	endpoint, err := engine.DownloadPath(context.Background(), m)
	require.NoError(t, err)
	require.NotNil(t, endpoint)
	assert.Equal(t, "/api/clip1.mp4", endpoint.URL)

	// Second resolution is served from the endpoint cache.
	_, err = engine.DownloadPath(context.Background(), m)
	require.NoError(t, err)
	assert.Equal(t, 1, resolver.calls)
}

func TestDownloadPathUnresolvable(t *testing.T) {
	t.Parallel()

	folder := haFolder()
	viewFolder := view.NewFolder(&media.Node{ID: "x", CanExpand: true}, folder)
	noContent := view.NewMedia(view.MediaClip, view.MediaProps{Folder: folder})

	// Without a resolver wired nothing can be resolved.
	engine := New(browseTree())
	endpoint, err := engine.DownloadPath(context.Background(), noContent)
	require.NoError(t, err)
	assert.Nil(t, endpoint)

	endpoint, err = engine.DownloadPath(context.Background(), viewFolder)
	require.NoError(t, err)
	assert.Nil(t, endpoint)
}

func TestDownloadPathResolverError(t *testing.T) {
	t.Parallel()

	wantErr := errors.New("resolve failed")
	engine := New(browseTree(), WithResolver(&fakeResolver{err: wantErr}))

	m := view.NewMedia(view.MediaClip, view.MediaProps{
		Folder:    haFolder(),
		ContentID: "media-source://media_player/clip1",
	})
	endpoint, err := engine.DownloadPath(context.Background(), m)
	require.ErrorIs(t, err, wantErr)
	assert.Nil(t, endpoint)
}

func TestFavorite(t *testing.T) {
	t.Parallel()

	engine := New(browseTree())
	start := time.Date(2025, 3, 1, 7, 0, 0, 0, time.UTC)

	cameraMedia := view.NewMedia(view.MediaClip, view.MediaProps{
		CameraID:  "camera.front",
		StartTime: &start,
	})
	require.NoError(t, engine.Favorite(context.Background(), cameraMedia, true))
	assert.True(t, cameraMedia.Favorite())

	folderMedia := view.NewMedia(view.MediaClip, view.MediaProps{
		Folder:    haFolder(),
		ContentID: "clip1",
	})
	err := engine.Favorite(context.Background(), folderMedia, true)
	require.ErrorIs(t, err, ErrNotFavoritable)
	assert.False(t, folderMedia.Favorite())
}
