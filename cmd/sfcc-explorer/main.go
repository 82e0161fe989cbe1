// Copyright 2025 SFCC Metadata Explorer contributors
// SPDX-License-Identifier: Apache-2.0

// Package main implements the sfcc-explorer CLI for browsing and exporting
// B2C Commerce system and custom object metadata.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "1.0.0"

func main() {
	var opts sessionOptions

	rootCmd := &cobra.Command{
		Use:     "sfcc-explorer",
		Short:   "Browse and export B2C Commerce object metadata",
		Long:    `sfcc-explorer browses system object definitions, custom object definitions and site preferences on a sandbox and exports them as impex XML.`,
		Version: version,
	}

	rootCmd.PersistentFlags().StringVarP(&opts.ProjectDir, "project", "p", ".", "Project directory searched for dw.json and explorer.yaml")
	rootCmd.PersistentFlags().StringVar(&opts.ConnectionFile, "connection", "", "Explicit dw.json path (overrides discovery)")
	rootCmd.PersistentFlags().StringVar(&opts.Token, "token", "", "OAuth access token (defaults to SFCC_ACCESS_TOKEN)")

	rootCmd.AddCommand(treeCmd(&opts))
	rootCmd.AddCommand(exportCmd(&opts))
	rootCmd.AddCommand(attributeCmd(&opts))
	rootCmd.AddCommand(groupCmd(&opts))
	rootCmd.AddCommand(sitesCmd(&opts))
	rootCmd.AddCommand(configCmd(&opts))

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
