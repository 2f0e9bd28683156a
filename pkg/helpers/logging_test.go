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

package helpers

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ngoviet/camera-card/pkg/config"
)

// testWriter is a no-op io.Writer for testing
type testWriter struct{}

func (*testWriter) Write(p []byte) (n int, err error) {
	return len(p), nil
}

func TestInitLogging(t *testing.T) {
	// Note: Cannot use t.Parallel() because InitLogging modifies global log.Logger

	t.Run("creates nested log directory", func(t *testing.T) {
		logDir := filepath.Join(t.TempDir(), "logs", "nested")

		err := InitLogging(config.Logging{}, logDir, nil)
		require.NoError(t, err)

		info, err := os.Stat(logDir)
		require.NoError(t, err)
		assert.True(t, info.IsDir())

		// Note: We don't check for log file existence because lumberjack
		// creates it lazily (only when something is logged).
	})

	t.Run("works when directory already exists", func(t *testing.T) {
		logDir := t.TempDir()
		err := InitLogging(config.Logging{Debug: true}, logDir, nil)
		require.NoError(t, err)
	})

	t.Run("works with additional writers", func(t *testing.T) {
		logDir := filepath.Join(t.TempDir(), "logs")
		err := InitLogging(config.Logging{}, logDir, []io.Writer{&testWriter{}})
		require.NoError(t, err)
	})

	t.Run("fails when log dir path is invalid", func(t *testing.T) {
		err := InitLogging(config.Logging{}, "/proc/invalid\x00path", nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to create log directory")
	})
}
