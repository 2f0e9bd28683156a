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
	"time"

	"github.com/ngoviet/camera-card/pkg/media"
)

// Offset is a calendar-aware distance into the past. Days, hours and minutes
// may be fractional.
type Offset struct {
	Years   int     `mapstructure:"years"`
	Months  int     `mapstructure:"months"`
	Days    float64 `mapstructure:"days"`
	Hours   float64 `mapstructure:"hours"`
	Minutes float64 `mapstructure:"minutes"`
}

// Before returns t shifted into the past by the offset.
func (o Offset) Before(t time.Time) time.Time {
	shifted := t.AddDate(-o.Years, -o.Months, 0)
	d := time.Duration(o.Days*24*float64(time.Hour)) +
		time.Duration(o.Hours*float64(time.Hour)) +
		time.Duration(o.Minutes*float64(time.Minute))
	return shifted.Add(-d)
}

// Date matches nodes whose metadata start date is no older than the
// configured offset from now. Nodes with no start-date metadata never match.
type Date struct {
	Since Offset
}

// Match implements Matcher.
func (m *Date) Match(_ context.Context, node *media.Node, opts Options) bool {
	if node.Metadata == nil || node.Metadata.StartDate == nil {
		return false
	}
	threshold := m.Since.Before(opts.clock().Now())
	return !node.Metadata.StartDate.Before(threshold)
}
