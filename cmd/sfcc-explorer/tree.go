// Copyright 2025 SFCC Metadata Explorer contributors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/david-mkhitaryan-dev/sfcc-metadata-explorer/tree"
)

// treeCmd returns the command that prints the metadata tree to a depth
func treeCmd(opts *sessionOptions) *cobra.Command {
	var depth int

	cmd := &cobra.Command{
		Use:   "tree",
		Short: "Print the metadata tree",
		Long: `Print the metadata tree to the given depth.

Each level is materialized on demand, so deeper trees mean more Data API
calls. Failed branches render as messages instead of aborting the walk.

Examples:
  sfcc-explorer tree
  sfcc-explorer tree --depth 4`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if depth < 1 {
				return fmt.Errorf("--depth must be at least 1")
			}
			s, err := newSession(opts)
			if err != nil {
				return err
			}
			for _, root := range s.Tree.RootNodes() {
				if err := printSubtree(cmd.Context(), s.Tree, root, 0, depth); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&depth, "depth", "d", 2, "Levels to expand below the root")

	return cmd
}

func printSubtree(ctx context.Context, m *tree.Materializer, node tree.Node, level, depth int) error {
	marker := " "
	if node.Expandable {
		marker = "+"
	}
	fmt.Printf("%s%s %s\n", strings.Repeat("  ", level), marker, node.Label)

	if !node.Expandable || level >= depth {
		return nil
	}
	children, err := m.Expand(ctx, node)
	if err != nil {
		return fmt.Errorf("expanding %s: %w", node.Label, err)
	}
	for _, child := range children {
		if err := printSubtree(ctx, m, child, level+1, depth); err != nil {
			return err
		}
	}
	return nil
}
