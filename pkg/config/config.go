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

// Package config loads and validates the card's TOML configuration. The rest
// of the engine treats configuration as already validated: shape problems are
// rejected here, at the boundary.
package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	toml "github.com/pelletier/go-toml/v2"
)

// Config is the root card configuration.
type Config struct {
	HomeAssistant HomeAssistant `toml:"home_assistant" validate:"required"`
	Logging       Logging       `toml:"logging,omitempty"`
	Cameras       []Camera      `toml:"cameras,omitempty" validate:"dive"`
	Folders       []Folder      `toml:"folders,omitempty" validate:"dive"`
}

// HomeAssistant holds the host connection settings.
type HomeAssistant struct {
	URL   string `toml:"url" validate:"required"`
	Token string `toml:"token" validate:"required"`
}

// Camera identifies one camera known to the card.
type Camera struct {
	ID           string `toml:"id" validate:"required"`
	Title        string `toml:"title,omitempty"`
	CameraEntity string `toml:"camera_entity,omitempty"`
}

// Logging configures log output.
type Logging struct {
	Debug bool `toml:"debug"`
}

// Load reads, parses and validates a TOML configuration file.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := toml.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the configuration's shape, including that every folder's
// matcher and parser blocks can be built.
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	for i := range c.Folders {
		if err := c.Folders[i].validate(); err != nil {
			return fmt.Errorf("invalid folder %q: %w", c.Folders[i].ID, err)
		}
	}
	return nil
}

// CameraByID returns the configured camera with the given id, or nil.
func (c *Config) CameraByID(id string) *Camera {
	for i := range c.Cameras {
		if c.Cameras[i].ID == id {
			return &c.Cameras[i]
		}
	}
	return nil
}

// FolderByID returns the configured folder with the given id, or nil.
func (c *Config) FolderByID(id string) *Folder {
	for i := range c.Folders {
		if c.Folders[i].ID == id {
			return &c.Folders[i]
		}
	}
	return nil
}
