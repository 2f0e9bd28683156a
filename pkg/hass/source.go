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

package hass

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ngoviet/camera-card/pkg/media"
)

// browseMedia is the media_source/browse_media result shape.
type browseMedia struct {
	Title          string        `json:"title"`
	MediaContentID string        `json:"media_content_id"`
	MediaClass     string        `json:"media_class"`
	Thumbnail      string        `json:"thumbnail"`
	Children       []browseMedia `json:"children"`
	CanExpand      bool          `json:"can_expand"`
	CanPlay        bool          `json:"can_play"`
}

func (b *browseMedia) toNode() *media.Node {
	node := &media.Node{
		ID:        b.MediaContentID,
		Title:     b.Title,
		Class:     b.MediaClass,
		Thumbnail: b.Thumbnail,
		CanExpand: b.CanExpand,
		CanPlay:   b.CanPlay,
	}
	for i := range b.Children {
		node.Children = append(node.Children, b.Children[i].toNode())
	}
	return node
}

// FetchNode implements media.NodeSource by browsing the media source tree.
func (c *Client) FetchNode(ctx context.Context, id string) (*media.Node, error) {
	result, err := c.Call(ctx, "media_source/browse_media", map[string]any{
		"media_content_id": id,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to browse %q: %w", id, err)
	}

	var browsed browseMedia
	if err := json.Unmarshal(result, &browsed); err != nil {
		return nil, fmt.Errorf("failed to decode browse result for %q: %w", id, err)
	}
	return browsed.toNode(), nil
}

// resolvedMedia is the media_source/resolve_media result shape.
type resolvedMedia struct {
	URL      string `json:"url"`
	MIMEType string `json:"mime_type"`
}

// ResolveMedia resolves a content id to a playable endpoint.
func (c *Client) ResolveMedia(ctx context.Context, contentID string) (media.Endpoint, error) {
	result, err := c.Call(ctx, "media_source/resolve_media", map[string]any{
		"media_content_id": contentID,
	})
	if err != nil {
		return media.Endpoint{}, fmt.Errorf("failed to resolve %q: %w", contentID, err)
	}

	var resolved resolvedMedia
	if err := json.Unmarshal(result, &resolved); err != nil {
		return media.Endpoint{}, fmt.Errorf("failed to decode resolve result for %q: %w", contentID, err)
	}
	return media.Endpoint{URL: resolved.URL, MIMEType: resolved.MIMEType}, nil
}
