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

// Package hass is a Home Assistant websocket API client scoped to what the
// card core needs: browsing and resolving media sources, rendering templates
// and reading the entity registry.
package hass

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

var (
	ErrAuthFailed       = errors.New("authentication failed")
	ErrRequestTimeout   = errors.New("request timed out")
	ErrRequestCancelled = errors.New("request cancelled")
	ErrClosed           = errors.New("connection closed")
)

// requestTimeout bounds every command round trip.
const requestTimeout = 30 * time.Second

// message is the envelope of every frame the server sends after
// authentication.
type message struct {
	Success *bool           `json:"success,omitempty"`
	Error   *commandError   `json:"error,omitempty"`
	Type    string          `json:"type"`
	Result  json.RawMessage `json:"result,omitempty"`
	Event   json.RawMessage `json:"event,omitempty"`
	ID      int64           `json:"id,omitempty"`
}

type commandError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *commandError) Err() error {
	return fmt.Errorf("command failed: %s (%s)", e.Message, e.Code)
}

// Client is an authenticated websocket connection to a Home Assistant
// instance. It is safe for concurrent use; commands are correlated to replies
// by id.
type Client struct {
	conn      *websocket.Conn
	pending   map[int64]chan message
	closed    chan struct{}
	writeMu   sync.Mutex
	mu        sync.Mutex
	nextID    atomic.Int64
	closeOnce sync.Once
}

// Dial connects to the websocket API at rawURL (e.g.
// ws://host:8123/api/websocket) and completes the access-token handshake.
func Dial(ctx context.Context, rawURL, token string) (*Client, error) {
	conn, resp, err := websocket.DefaultDialer.DialContext(ctx, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to dial %s: %w", rawURL, err)
	}
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}

	if err := authenticate(conn, token); err != nil {
		if closeErr := conn.Close(); closeErr != nil {
			log.Warn().Err(closeErr).Msg("error closing websocket")
		}
		return nil, err
	}

	c := &Client{
		conn:    conn,
		pending: make(map[int64]chan message),
		closed:  make(chan struct{}),
	}
	go c.readLoop()
	return c, nil
}

// authenticate performs the auth_required/auth/auth_ok exchange that precedes
// all commands.
func authenticate(conn *websocket.Conn, token string) error {
	var hello message
	if err := conn.ReadJSON(&hello); err != nil {
		return fmt.Errorf("failed to read auth preamble: %w", err)
	}
	if hello.Type != "auth_required" {
		return fmt.Errorf("%w: unexpected preamble %q", ErrAuthFailed, hello.Type)
	}

	auth := map[string]any{"type": "auth", "access_token": token}
	if err := conn.WriteJSON(auth); err != nil {
		return fmt.Errorf("failed to send auth: %w", err)
	}

	var reply message
	if err := conn.ReadJSON(&reply); err != nil {
		return fmt.Errorf("failed to read auth reply: %w", err)
	}
	if reply.Type != "auth_ok" {
		return fmt.Errorf("%w: %s", ErrAuthFailed, reply.Type)
	}
	return nil
}

// Close tears down the connection. In-flight calls fail with ErrClosed.
func (c *Client) Close() error {
	var err error
	c.closeOnce.Do(func() {
		close(c.closed)
		err = c.conn.Close()
	})
	return err
}

func (c *Client) readLoop() {
	for {
		var msg message
		if err := c.conn.ReadJSON(&msg); err != nil {
			select {
			case <-c.closed:
			default:
				log.Error().Err(err).Msg("websocket read failed")
			}
			_ = c.Close()
			return
		}

		c.mu.Lock()
		ch, ok := c.pending[msg.ID]
		c.mu.Unlock()
		if !ok {
			continue
		}
		select {
		case ch <- msg:
		default:
			log.Warn().Int64("id", msg.ID).Msg("dropping unconsumed reply")
		}
	}
}

func (c *Client) register(id int64) chan message {
	ch := make(chan message, 4)
	c.mu.Lock()
	c.pending[id] = ch
	c.mu.Unlock()
	return ch
}

func (c *Client) unregister(id int64) {
	c.mu.Lock()
	delete(c.pending, id)
	c.mu.Unlock()
}

// send writes one command frame. fields must not contain "id" or "type".
func (c *Client) send(id int64, msgType string, fields map[string]any) error {
	frame := make(map[string]any, len(fields)+2)
	for k, v := range fields {
		frame[k] = v
	}
	frame["id"] = id
	frame["type"] = msgType

	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	if err := c.conn.WriteJSON(frame); err != nil {
		return fmt.Errorf("failed to send %s: %w", msgType, err)
	}
	return nil
}

// Call sends one command and returns its result payload.
func (c *Client) Call(ctx context.Context, msgType string, fields map[string]any) (json.RawMessage, error) {
	id := c.nextID.Add(1)
	ch := c.register(id)
	defer c.unregister(id)

	if err := c.send(id, msgType, fields); err != nil {
		return nil, err
	}

	msg, err := c.await(ctx, ch)
	if err != nil {
		return nil, err
	}
	if msg.Success != nil && !*msg.Success {
		if msg.Error != nil {
			return nil, msg.Error.Err()
		}
		return nil, errors.New("command failed")
	}
	return msg.Result, nil
}

// await blocks for the next frame correlated to a command.
func (c *Client) await(ctx context.Context, ch <-chan message) (message, error) {
	timer := time.NewTimer(requestTimeout)
	defer timer.Stop()

	select {
	case msg := <-ch:
		return msg, nil
	case <-timer.C:
		return message{}, ErrRequestTimeout
	case <-ctx.Done():
		return message{}, fmt.Errorf("%w: %w", ErrRequestCancelled, ctx.Err())
	case <-c.closed:
		return message{}, ErrClosed
	}
}
