// Copyright 2025 SFCC Metadata Explorer contributors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/david-mkhitaryan-dev/sfcc-metadata-explorer/export"
	"github.com/david-mkhitaryan-dev/sfcc-metadata-explorer/metadata"
)

// exportCmd returns the impex export command group
func exportCmd(opts *sessionOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export metadata as impex XML",
		Long:  `Export an attribute definition or attribute group as an impex XML document suitable for site import.`,
	}

	cmd.AddCommand(exportAttributeCmd(opts))
	cmd.AddCommand(exportGroupCmd(opts))

	return cmd
}

func exportAttributeCmd(opts *sessionOptions) *cobra.Command {
	var out string
	var custom bool

	cmd := &cobra.Command{
		Use:   "attribute <object-type> <attribute-id>",
		Short: "Export one attribute definition",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			objectType, attributeID := args[0], args[1]
			s, err := newSession(opts)
			if err != nil {
				return err
			}

			resource := "systemObjectDefinitions"
			if custom {
				resource = "customObjectDefinitions"
			}
			resp, err := s.execute(cmd.Context(), resource, "getAttribute", map[string]interface{}{
				"objectType": objectType,
				"id":         attributeID,
				"expand":     "value",
			})
			if err != nil {
				return fmt.Errorf("fetching %s.%s: %w", objectType, attributeID, err)
			}
			doc, err := resp.Document()
			if err != nil {
				return fmt.Errorf("fetching %s.%s: %w", objectType, attributeID, err)
			}

			rendered, err := export.AttributeDocument(objectType, metadata.ParseObjectAttributeDefinition(doc))
			if err != nil {
				return err
			}
			return writeOutput(out, rendered)
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "Write the document to a file instead of stdout")
	cmd.Flags().BoolVar(&custom, "custom", false, "Treat the object type as a custom object definition")

	return cmd
}

func exportGroupCmd(opts *sessionOptions) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "group <object-type> <group-id>",
		Short: "Export one attribute group",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			objectType, groupID := args[0], args[1]
			s, err := newSession(opts)
			if err != nil {
				return err
			}

			resp, err := s.execute(cmd.Context(), "systemObjectDefinitions", "getAttributeGroups", map[string]interface{}{
				"objectType": objectType,
				"select":     "(**)",
				"count":      s.Settings.GroupPageSize,
				"expand":     "definition",
			})
			if err != nil {
				return fmt.Errorf("fetching groups of %s: %w", objectType, err)
			}
			rows, err := resp.DataRows()
			if err != nil {
				return fmt.Errorf("fetching groups of %s: %w", objectType, err)
			}

			for _, row := range rows {
				group := metadata.ParseObjectAttributeGroup(row)
				if group.ID != groupID {
					continue
				}
				rendered, err := export.GroupDocument(objectType, group)
				if err != nil {
					return err
				}
				return writeOutput(out, rendered)
			}
			return fmt.Errorf("no attribute group %q on %s", groupID, objectType)
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "Write the document to a file instead of stdout")

	return cmd
}

func writeOutput(path, content string) error {
	if path == "" {
		fmt.Print(content)
		return nil
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	fmt.Printf("Wrote %s\n", path)
	return nil
}
