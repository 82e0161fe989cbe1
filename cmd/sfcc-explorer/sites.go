// Copyright 2025 SFCC Metadata Explorer contributors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// sitesCmd returns the command listing the sites on the connected sandbox
func sitesCmd(opts *sessionOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sites",
		Short: "List the sites on the connected instance",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(opts)
			if err != nil {
				return err
			}

			resp, err := s.execute(cmd.Context(), "sites", "getAll", map[string]interface{}{
				"select": "(**)",
				"count":  200,
			})
			if err != nil {
				return fmt.Errorf("listing sites: %w", err)
			}
			rows, err := resp.DataRows()
			if err != nil {
				return fmt.Errorf("listing sites: %w", err)
			}
			if len(rows) == 0 {
				fmt.Println("No sites found")
				return nil
			}

			for _, row := range rows {
				id, _ := row["id"].(string)
				name := ""
				if dn, ok := row["display_name"].(map[string]interface{}); ok {
					name, _ = dn["default"].(string)
				}
				if name != "" && name != id {
					fmt.Printf("%s (%s)\n", id, name)
					continue
				}
				fmt.Println(id)
			}
			return nil
		},
	}

	return cmd
}
