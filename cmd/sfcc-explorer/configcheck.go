// Copyright 2025 SFCC Metadata Explorer contributors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/david-mkhitaryan-dev/sfcc-metadata-explorer/config"
	"github.com/david-mkhitaryan-dev/sfcc-metadata-explorer/ocapi"
)

// configCmd returns the configuration inspection command group
func configCmd(opts *sessionOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect connection files and settings",
	}

	cmd.AddCommand(configCheckCmd(opts))

	return cmd
}

func configCheckCmd(opts *sessionOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Validate discovered connection files and effective settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			files, err := config.DiscoverConnectionFiles(opts.ProjectDir)
			if err != nil {
				return fmt.Errorf("connection discovery failed: %w", err)
			}
			if opts.ConnectionFile != "" {
				files = []string{opts.ConnectionFile}
			}
			if len(files) == 0 {
				return fmt.Errorf("no dw.json found under %s", opts.ProjectDir)
			}

			ok := true
			for _, file := range files {
				conn, err := config.LoadConnection(file)
				if err != nil {
					fmt.Printf("%s: INVALID (%v)\n", file, err)
					ok = false
					continue
				}
				fmt.Printf("%s: ok (hostname %s)\n", file, conn.Hostname)
			}

			settings, err := config.LoadSettings(filepath.Join(opts.ProjectDir, settingsFile))
			if err != nil {
				return fmt.Errorf("settings: %w", err)
			}
			fmt.Println()
			fmt.Println("Effective settings:")
			apiVersion := settings.APIVersion
			if apiVersion == "" {
				apiVersion = ocapi.DefaultAPIVersion
			}
			fmt.Printf("  api_version:         %s\n", apiVersion)
			fmt.Printf("  instance_type:       %s\n", settings.InstanceType)
			fmt.Printf("  attribute_page_size: %d\n", settings.AttributePageSize)
			fmt.Printf("  group_page_size:     %d\n", settings.GroupPageSize)
			fmt.Printf("  system_objects:      %v\n", settings.SystemObjectsEnabled())
			fmt.Printf("  custom_objects:      %v\n", settings.CustomObjectsEnabled())
			fmt.Printf("  site_preferences:    %v\n", settings.SitePreferencesEnabled())

			if !ok {
				return fmt.Errorf("one or more connection files are invalid")
			}
			return nil
		},
	}

	return cmd
}
