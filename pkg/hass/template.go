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
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
)

// templateEvent is the render_template event payload.
type templateEvent struct {
	Result any `json:"result"`
}

// Render implements matcher.TemplateRenderer against the host's template
// engine. render_template is a subscription: the server acknowledges the
// command, then delivers the rendered value as an event on the same id.
func (c *Client) Render(ctx context.Context, template string, variables map[string]any) (any, error) {
	id := c.nextID.Add(1)
	ch := c.register(id)
	defer c.unregister(id)

	err := c.send(id, "render_template", map[string]any{
		"template":      template,
		"variables":     variables,
		"report_errors": true,
	})
	if err != nil {
		return nil, err
	}

	for {
		msg, err := c.await(ctx, ch)
		if err != nil {
			return nil, err
		}

		switch msg.Type {
		case "result":
			if msg.Success != nil && !*msg.Success {
				if msg.Error != nil {
					return nil, msg.Error.Err()
				}
				return nil, errors.New("failed to render template")
			}
			// Acknowledged; the value arrives as an event.

		case "event":
			var event templateEvent
			if err := json.Unmarshal(msg.Event, &event); err != nil {
				return nil, fmt.Errorf("failed to decode template event: %w", err)
			}
			c.unsubscribe(id)
			return event.Result, nil

		default:
			log.Debug().Str("type", msg.Type).Msg("ignoring frame during template render")
		}
	}
}

// unsubscribe ends a server-side subscription, best effort.
func (c *Client) unsubscribe(subscription int64) {
	id := c.nextID.Add(1)
	err := c.send(id, "unsubscribe_events", map[string]any{
		"subscription": subscription,
	})
	if err != nil {
		log.Warn().Err(err).Int64("subscription", subscription).Msg("failed to unsubscribe")
	}
}
