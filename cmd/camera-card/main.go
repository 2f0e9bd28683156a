/*
Camera Card
Copyright (c) 2026 The Camera Card Contributors.

This file is part of Camera Card.

Camera Card is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

Camera Card is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with Camera Card.  If not, see <http://www.gnu.org/licenses/>.
*/

// Command camera-card browses configured media folders against a live Home
// Assistant instance and prints what the card would show. It exists to
// exercise the folder engine outside a dashboard.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/rs/zerolog/log"

	"github.com/ngoviet/camera-card/pkg/config"
	"github.com/ngoviet/camera-card/pkg/folders"
	"github.com/ngoviet/camera-card/pkg/hass"
	"github.com/ngoviet/camera-card/pkg/helpers"
	"github.com/ngoviet/camera-card/pkg/view"
)

func main() {
	if err := run(); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String(
		"config",
		"camera-card.toml",
		"path to configuration file",
	)
	folderID := flag.String(
		"folder",
		"",
		"expand only the folder with this id",
	)
	showDownloads := flag.Bool(
		"downloads",
		false,
		"resolve and print download endpoints for media items",
	)
	verbose := flag.Bool(
		"verbose",
		false,
		"also log to stderr",
	)
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}

	var logWriters []io.Writer
	if *verbose {
		logWriters = []io.Writer{os.Stderr}
	}
	logDir := filepath.Join(os.TempDir(), "camera-card")
	if err := helpers.InitLogging(cfg.Logging, logDir, logWriters); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(
		context.Background(), os.Interrupt, syscall.SIGTERM,
	)
	defer stop()

	client, err := hass.Dial(ctx, cfg.HomeAssistant.URL, cfg.HomeAssistant.Token)
	if err != nil {
		return err
	}
	defer func() {
		if err := client.Close(); err != nil {
			log.Warn().Err(err).Msg("error closing client")
		}
	}()

	engine := folders.New(
		client,
		folders.WithResolver(client),
		folders.WithRenderer(client),
	)

	if err := printCameras(ctx, client, cfg); err != nil {
		return err
	}

	targets := cfg.Folders
	if *folderID != "" {
		folder := cfg.FolderByID(*folderID)
		if folder == nil {
			return fmt.Errorf("no folder configured with id %q", *folderID)
		}
		targets = []config.Folder{*folder}
	}

	for i := range targets {
		if err := expand(ctx, engine, &targets[i], *showDownloads); err != nil {
			return err
		}
	}
	return nil
}

// printCameras checks each configured camera entity against the host's
// entity registry.
func printCameras(ctx context.Context, client *hass.Client, cfg *config.Config) error {
	if len(cfg.Cameras) == 0 {
		return nil
	}

	registry := hass.NewRegistry(client)
	for _, camera := range cfg.Cameras {
		if camera.CameraEntity == "" {
			continue
		}
		entity, ok, err := registry.Entity(ctx, camera.CameraEntity)
		if err != nil {
			return fmt.Errorf("failed to look up %q: %w", camera.CameraEntity, err)
		}
		if !ok {
			log.Warn().Str("entity", camera.CameraEntity).
				Msg("configured camera entity not in registry")
			continue
		}
		fmt.Printf("camera %s -> %s (%s)\n", camera.ID, entity.EntityID, entity.Platform)
	}
	return nil
}

func expand(
	ctx context.Context,
	engine *folders.Engine,
	folder *config.Folder,
	showDownloads bool,
) error {
	q := engine.DefaultFolderQuery(folder)
	if q == nil {
		log.Info().Str("folder", folder.ID).Msg("skipping folder of unhandled type")
		return nil
	}

	items, err := engine.ExpandFolder(ctx, q, nil)
	if err != nil {
		return fmt.Errorf("failed to expand folder %q: %w", folder.ID, err)
	}

	fmt.Printf("%s (%d items)\n", folder.ID, len(items))
	for _, item := range items {
		switch typed := item.(type) {
		case *view.Folder:
			fmt.Printf("  [dir]   %s\n", typed.Title())
		case *view.Media:
			fmt.Printf("  [%s] %s\n", typed.Kind(), typed.Title())
			if showDownloads {
				endpoint, err := engine.DownloadPath(ctx, typed)
				if err != nil {
					log.Warn().Err(err).Str("id", typed.ID()).
						Msg("failed to resolve download path")
					continue
				}
				if endpoint != nil {
					fmt.Printf("          %s (%s)\n", endpoint.URL, endpoint.MIMEType)
				}
			}
		}
	}
	return nil
}
