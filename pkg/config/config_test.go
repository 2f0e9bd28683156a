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
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ngoviet/camera-card/pkg/media"
	"github.com/ngoviet/camera-card/pkg/media/matcher"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, `
[home_assistant]
url = "ws://ha.local:8123/api/websocket"
token = "abc"

[logging]
debug = true

[[cameras]]
id = "front"
title = "Front Door"
camera_entity = "camera.front"

[[folders]]
id = "clips"
type = "ha"
title = "Clips"

[[folders.path]]
id = "media-source://"

[[folders.path]]
[[folders.path.matchers]]
type = "title"
title = "Frigate"

[[folders.path.parsers]]
type = "date"
regexp = '(?P<date>\d{4}-\d{2}-\d{2})'
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "ws://ha.local:8123/api/websocket", cfg.HomeAssistant.URL)
	assert.True(t, cfg.Logging.Debug)

	camera := cfg.CameraByID("front")
	require.NotNil(t, camera)
	assert.Equal(t, "camera.front", camera.CameraEntity)
	assert.Nil(t, cfg.CameraByID("missing"))

	folder := cfg.FolderByID("clips")
	require.NotNil(t, folder)
	assert.Equal(t, FolderTypeHA, folder.Type)
	require.Len(t, folder.Path, 2)
	assert.Equal(t, "media-source://", folder.Path[0].ID)
	require.Len(t, folder.Path[1].Matchers, 1)
	require.Len(t, folder.Path[1].Parsers, 1)
}

func TestLoadErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
	}{
		{
			name:    "malformed toml",
			content: `home_assistant = [`,
		},
		{
			name: "missing token",
			content: `
[home_assistant]
url = "ws://ha.local:8123/api/websocket"
`,
		},
		{
			name: "folder without id",
			content: `
[home_assistant]
url = "ws://ha.local:8123/api/websocket"
token = "abc"

[[folders]]
type = "ha"
`,
		},
		{
			name: "bad matcher regexp",
			content: `
[home_assistant]
url = "ws://ha.local:8123/api/websocket"
token = "abc"

[[folders]]
id = "clips"
type = "ha"

[[folders.path]]
[[folders.path.matchers]]
type = "title"
regexp = "("
`,
		},
		{
			name: "unknown parser type",
			content: `
[home_assistant]
url = "ws://ha.local:8123/api/websocket"
token = "abc"

[[folders]]
id = "clips"
type = "ha"

[[folders.path]]
[[folders.path.parsers]]
type = "nonsense"
`,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := Load(writeConfig(t, tt.content))
			require.Error(t, err)
		})
	}

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()
		_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
		require.Error(t, err)
	})
}

func TestRawMatcherBuild(t *testing.T) {
	t.Parallel()

	tests := []struct {
		raw     RawMatcher
		want    any
		name    string
		wantErr bool
	}{
		{
			name: "date matcher",
			raw:  RawMatcher{"type": "date", "since": map[string]any{"days": 7}},
			want: &matcher.Date{},
		},
		{
			name: "startdate alias",
			raw:  RawMatcher{"type": "startdate", "since": map[string]any{"hours": 1}},
			want: &matcher.Date{},
		},
		{
			name: "title matcher",
			raw:  RawMatcher{"type": "title", "title": "Frigate"},
			want: &matcher.Title{},
		},
		{
			name: "fuzzy title with weakly typed similarity",
			raw:  RawMatcher{"type": "title", "title": "Frigate", "fuzzy": true, "min_similarity": "0.9"},
			want: &matcher.Title{},
		},
		{
			name: "template matcher",
			raw:  RawMatcher{"type": "template", "template": "is_folder"},
			want: &matcher.Template{},
		},
		{
			name: "or matcher",
			raw: RawMatcher{"type": "or", "matchers": []map[string]any{
				{"type": "title", "title": "a"},
				{"type": "title", "title": "b"},
			}},
			want: &matcher.Or{},
		},
		{
			name: "unknown type is vacuous",
			raw:  RawMatcher{"type": "frigate-only"},
			want: &matcher.Unknown{},
		},
		{
			name:    "invalid title regexp",
			raw:     RawMatcher{"type": "title", "regexp": "("},
			wantErr: true,
		},
		{
			name: "invalid nested matcher",
			raw: RawMatcher{"type": "or", "matchers": []map[string]any{
				{"type": "title", "regexp": "("},
			}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			m, err := tt.raw.Build()
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.IsType(t, tt.want, m)
		})
	}
}

func TestRawMatcherBuildDateOffset(t *testing.T) {
	t.Parallel()

	raw := RawMatcher{"type": "date", "since": map[string]any{"days": 2, "hours": 12}}
	built, err := raw.Build()
	require.NoError(t, err)

	date, ok := built.(*matcher.Date)
	require.True(t, ok)
	assert.InDelta(t, 2.0, date.Since.Days, 0.001)
	assert.InDelta(t, 12.0, date.Since.Hours, 0.001)
}

func TestRawParserBuild(t *testing.T) {
	t.Parallel()

	raw := RawParser{
		"type":   "date",
		"regexp": `(?P<date>\d{4}-\d{2}-\d{2})`,
		"format": "2006-01-02",
	}
	built, err := raw.Build()
	require.NoError(t, err)

	md := built.Parse(&media.Node{Title: "clips 2025-03-01"}, nil)
	require.NotNil(t, md)
	require.NotNil(t, md.StartDate)
	assert.Equal(t, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), md.StartDate.UTC())

	_, err = RawParser{"type": "date", "regexp": "("}.Build()
	require.Error(t, err)
}

func TestBuiltMatchersFunction(t *testing.T) {
	t.Parallel()

	component := PathComponent{Matchers: []RawMatcher{
		{"type": "title", "title": "Frigate"},
	}}
	matchers, err := component.BuildMatchers()
	require.NoError(t, err)
	require.Len(t, matchers, 1)

	opts := matcher.Options{}
	assert.True(t, matchers[0].Match(context.Background(), &media.Node{Title: "Frigate"}, opts))
	assert.False(t, matchers[0].Match(context.Background(), &media.Node{Title: "Other"}, opts))
}
