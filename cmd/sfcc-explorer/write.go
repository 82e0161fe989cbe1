// Copyright 2025 SFCC Metadata Explorer contributors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/david-mkhitaryan-dev/sfcc-metadata-explorer/ocapi"
)

// attributeCmd returns the attribute write command group
func attributeCmd(opts *sessionOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "attribute",
		Short: "Create or delete attribute definitions",
	}

	cmd.AddCommand(attributeCreateCmd(opts))
	cmd.AddCommand(attributeDeleteCmd(opts))

	return cmd
}

func attributeCreateCmd(opts *sessionOptions) *cobra.Command {
	var valueType string
	var display string
	var description string
	var mandatory bool
	var custom bool

	cmd := &cobra.Command{
		Use:   "create <object-type> <attribute-id>",
		Short: "Create an attribute definition",
		Long: `Create an attribute definition on an object type.

Examples:
  sfcc-explorer attribute create Product myAttr --type string --display "My Attr"
  sfcc-explorer attribute create MyObjects counter --type int --custom`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			objectType, attributeID := args[0], args[1]
			if valueType == "" {
				return fmt.Errorf("--type is required")
			}
			if display == "" {
				display = attributeID
			}
			s, err := newSession(opts)
			if err != nil {
				return err
			}

			body := map[string]interface{}{
				"value_type":   valueType,
				"display_name": map[string]interface{}{"default": display},
				"mandatory":    mandatory,
			}
			if description != "" {
				body["description"] = map[string]interface{}{"default": description}
			}

			resource := "systemObjectDefinitions"
			if custom {
				resource = "customObjectDefinitions"
			}
			_, err = s.execute(cmd.Context(), resource, "createAttribute", map[string]interface{}{
				"objectType":  objectType,
				"id":          attributeID,
				ocapi.BodyKey: body,
			})
			if err != nil {
				return fmt.Errorf("creating %s.%s: %w", objectType, attributeID, err)
			}
			fmt.Printf("Created attribute %s on %s\n", attributeID, objectType)
			return nil
		},
	}

	cmd.Flags().StringVarP(&valueType, "type", "t", "", "Value type, e.g. string, int, enum_of_string (required)")
	cmd.Flags().StringVar(&display, "display", "", "Default-locale display name (defaults to the attribute id)")
	cmd.Flags().StringVar(&description, "description", "", "Default-locale description")
	cmd.Flags().BoolVar(&mandatory, "mandatory", false, "Mark the attribute mandatory")
	cmd.Flags().BoolVar(&custom, "custom", false, "Target a custom object definition")

	return cmd
}

func attributeDeleteCmd(opts *sessionOptions) *cobra.Command {
	var custom bool

	cmd := &cobra.Command{
		Use:   "delete <object-type> <attribute-id>",
		Short: "Delete an attribute definition",
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
			_, err = s.execute(cmd.Context(), resource, "deleteAttribute", map[string]interface{}{
				"objectType": objectType,
				"id":         attributeID,
			})
			if err != nil {
				return fmt.Errorf("deleting %s.%s: %w", objectType, attributeID, err)
			}
			fmt.Printf("Deleted attribute %s from %s\n", attributeID, objectType)
			return nil
		},
	}

	cmd.Flags().BoolVar(&custom, "custom", false, "Target a custom object definition")

	return cmd
}

// groupCmd returns the attribute group write command group
func groupCmd(opts *sessionOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "group",
		Short: "Create attribute groups and assign members",
	}

	cmd.AddCommand(groupCreateCmd(opts))
	cmd.AddCommand(groupAssignCmd(opts))

	return cmd
}

func groupCreateCmd(opts *sessionOptions) *cobra.Command {
	var display string

	cmd := &cobra.Command{
		Use:   "create <object-type> <group-id>",
		Short: "Create an attribute group",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			objectType, groupID := args[0], args[1]
			if display == "" {
				display = groupID
			}
			s, err := newSession(opts)
			if err != nil {
				return err
			}

			body := map[string]interface{}{
				"id":           groupID,
				"display_name": map[string]interface{}{"default": display},
			}
			_, err = s.execute(cmd.Context(), "systemObjectDefinitions", "createAttributeGroup", map[string]interface{}{
				"objectType":  objectType,
				"id":          groupID,
				ocapi.BodyKey: body,
			})
			if err != nil {
				return fmt.Errorf("creating group %s on %s: %w", groupID, objectType, err)
			}
			fmt.Printf("Created attribute group %s on %s\n", groupID, objectType)
			return nil
		},
	}

	cmd.Flags().StringVar(&display, "display", "", "Default-locale display name (defaults to the group id)")

	return cmd
}

func groupAssignCmd(opts *sessionOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "assign <object-type> <group-id> <attribute-id>",
		Short: "Assign an attribute to a group",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			objectType, groupID, attributeID := args[0], args[1], args[2]
			s, err := newSession(opts)
			if err != nil {
				return err
			}

			_, err = s.execute(cmd.Context(), "systemObjectDefinitions", "assignAttributeToGroup", map[string]interface{}{
				"objectType":  objectType,
				"groupId":     groupID,
				"attributeId": attributeID,
			})
			if err != nil {
				return fmt.Errorf("assigning %s to %s: %w", attributeID, groupID, err)
			}
			fmt.Printf("Assigned %s to group %s on %s\n", attributeID, groupID, objectType)
			return nil
		},
	}

	return cmd
}
