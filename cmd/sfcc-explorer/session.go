// Copyright 2025 SFCC Metadata Explorer contributors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/david-mkhitaryan-dev/sfcc-metadata-explorer/config"
	"github.com/david-mkhitaryan-dev/sfcc-metadata-explorer/ocapi"
	"github.com/david-mkhitaryan-dev/sfcc-metadata-explorer/ocapi/client"
	"github.com/david-mkhitaryan-dev/sfcc-metadata-explorer/tree"
)

// settingsFile is the optional explorer settings file, looked up next to
// the project's dw.json.
const settingsFile = "explorer.yaml"

// sessionOptions are the persistent root flags shared by every subcommand
type sessionOptions struct {
	ProjectDir     string
	ConnectionFile string
	Token          string
}

// session holds the wired components a subcommand works with
type session struct {
	Settings config.Settings
	Resolver *ocapi.Resolver
	Client   *client.Client
	Tree     *tree.Materializer
}

// newSession discovers the connection, loads settings and wires the
// resolver, executor and materializer.
func newSession(opts *sessionOptions) (*session, error) {
	connPath := opts.ConnectionFile
	if connPath == "" {
		files, err := config.DiscoverConnectionFiles(opts.ProjectDir)
		if err != nil {
			return nil, fmt.Errorf("connection discovery failed: %w", err)
		}
		if len(files) == 0 {
			return nil, fmt.Errorf("no dw.json found under %s (use --connection)", opts.ProjectDir)
		}
		connPath = files[0]
	}

	cell := config.NewConnectionCell(func(ctx context.Context) (*config.Connection, error) {
		return config.LoadConnection(connPath)
	})

	settings, err := config.LoadSettings(filepath.Join(opts.ProjectDir, settingsFile))
	if err != nil {
		return nil, fmt.Errorf("settings: %w", err)
	}

	catalog := ocapi.DefaultCatalog()
	if settings.APIVersion != "" {
		catalog.APIVersion = settings.APIVersion
	}

	token := opts.Token
	if token == "" {
		token = os.Getenv("SFCC_ACCESS_TOKEN")
	}

	resolver := ocapi.NewResolver(catalog, cell, nil)
	executor := client.New(client.Config{
		Tokens:     client.StaticToken(token),
		Timeout:    time.Duration(settings.TimeoutMs) * time.Millisecond,
		MaxRetries: settings.MaxRetries,
	})

	return &session{
		Settings: settings,
		Resolver: resolver,
		Client:   executor,
		Tree:     tree.NewMaterializer(resolver, executor, settings, nil),
	}, nil
}

// execute resolves and dispatches one call, folding setup errors into the
// returned error.
func (s *session) execute(ctx context.Context, resource, call string, data map[string]interface{}) (*client.Response, error) {
	resolved := s.Resolver.Resolve(ctx, resource, call, data)
	return s.Client.Execute(ctx, resolved)
}
