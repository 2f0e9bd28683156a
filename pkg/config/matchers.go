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
	"fmt"

	"github.com/go-viper/mapstructure/v2"

	"github.com/ngoviet/camera-card/pkg/media"
	"github.com/ngoviet/camera-card/pkg/media/matcher"
)

// RawMatcher is one matcher block as it appears in configuration: a loosely
// typed table discriminated by its "type" key.
type RawMatcher map[string]any

// RawParser is one metadata parser block, discriminated by its "type" key.
type RawParser map[string]any

type dateMatcherConfig struct {
	Since matcher.Offset `mapstructure:"since"`
}

type titleMatcherConfig struct {
	Title         string  `mapstructure:"title"`
	Regexp        string  `mapstructure:"regexp"`
	MinSimilarity float32 `mapstructure:"min_similarity"`
	Fuzzy         bool    `mapstructure:"fuzzy"`
}

type templateMatcherConfig struct {
	Template string `mapstructure:"template"`
}

type orMatcherConfig struct {
	Matchers []RawMatcher `mapstructure:"matchers"`
}

type dateParserConfig struct {
	Regexp string `mapstructure:"regexp"`
	Format string `mapstructure:"format"`
}

// Build turns a raw matcher block into a matcher. Unrecognized types build a
// vacuously-true matcher rather than failing; that leniency is deliberate and
// documented on matcher.Unknown.
func (r RawMatcher) Build() (matcher.Matcher, error) {
	matcherType, _ := r["type"].(string)

	switch matcherType {
	case "date", "startdate":
		var cfg dateMatcherConfig
		if err := decode(r, &cfg); err != nil {
			return nil, fmt.Errorf("invalid date matcher: %w", err)
		}
		return &matcher.Date{Since: cfg.Since}, nil

	case "title":
		var cfg titleMatcherConfig
		if err := decode(r, &cfg); err != nil {
			return nil, fmt.Errorf("invalid title matcher: %w", err)
		}
		m, err := matcher.NewTitle(cfg.Title, cfg.Regexp, cfg.Fuzzy, cfg.MinSimilarity)
		if err != nil {
			return nil, fmt.Errorf("invalid title matcher: %w", err)
		}
		return m, nil

	case "template":
		var cfg templateMatcherConfig
		if err := decode(r, &cfg); err != nil {
			return nil, fmt.Errorf("invalid template matcher: %w", err)
		}
		return &matcher.Template{Template: cfg.Template}, nil

	case "or":
		var cfg orMatcherConfig
		if err := decode(r, &cfg); err != nil {
			return nil, fmt.Errorf("invalid or matcher: %w", err)
		}
		subs := make([]matcher.Matcher, 0, len(cfg.Matchers))
		for _, raw := range cfg.Matchers {
			sub, err := raw.Build()
			if err != nil {
				return nil, err
			}
			subs = append(subs, sub)
		}
		return &matcher.Or{Matchers: subs}, nil

	default:
		return &matcher.Unknown{Type: matcherType}, nil
	}
}

// Build turns a raw parser block into a metadata parser. Unrecognized parser
// types are rejected: a parser that silently does nothing would hide missing
// metadata from date matchers downstream.
func (r RawParser) Build() (media.MetadataParser, error) {
	parserType, _ := r["type"].(string)

	switch parserType {
	case "date", "startdate":
		var cfg dateParserConfig
		if err := decode(r, &cfg); err != nil {
			return nil, fmt.Errorf("invalid date parser: %w", err)
		}
		parser, err := media.NewDateParser(cfg.Regexp, cfg.Format)
		if err != nil {
			return nil, fmt.Errorf("invalid date parser: %w", err)
		}
		return parser, nil

	default:
		return nil, fmt.Errorf("unknown parser type: %q", parserType)
	}
}

// BuildMatchers builds every matcher configured for this path component.
func (c *PathComponent) BuildMatchers() ([]matcher.Matcher, error) {
	matchers := make([]matcher.Matcher, 0, len(c.Matchers))
	for _, raw := range c.Matchers {
		m, err := raw.Build()
		if err != nil {
			return nil, err
		}
		matchers = append(matchers, m)
	}
	return matchers, nil
}

// BuildParsers builds every metadata parser configured for this path
// component.
func (c *PathComponent) BuildParsers() ([]media.MetadataParser, error) {
	parsers := make([]media.MetadataParser, 0, len(c.Parsers))
	for _, raw := range c.Parsers {
		p, err := raw.Build()
		if err != nil {
			return nil, err
		}
		parsers = append(parsers, p)
	}
	return parsers, nil
}

func decode(raw map[string]any, dest any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           dest,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return fmt.Errorf("failed to create decoder: %w", err)
	}
	if err := decoder.Decode(raw); err != nil {
		return fmt.Errorf("failed to decode: %w", err)
	}
	return nil
}
