// Copyright 2025 SFCC Metadata Explorer contributors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
)

// Connection holds the credentials of one sandbox instance as stored in a
// dw.json file. Field names follow the established dw.json key spelling.
type Connection struct {
	Hostname     string `json:"hostname"`
	Username     string `json:"username"`
	Password     string `json:"password"`
	ClientID     string `json:"client-id,omitempty"`
	ClientSecret string `json:"client-secret,omitempty"`
	CodeVersion  string `json:"code-version,omitempty"`
}

// OK reports whether the connection carries enough data to resolve calls
func (c *Connection) OK() bool {
	return c != nil && c.Hostname != ""
}

// LoadConnection reads and parses a dw.json file. Environment variable
// references (${VAR} / $VAR / ${VAR:-default}) in the file content are
// expanded before parsing.
func LoadConnection(path string) (*Connection, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read connection file %s: %w", path, err)
	}

	expanded := expandEnvVars(string(data))

	var conn Connection
	if err := json.Unmarshal([]byte(expanded), &conn); err != nil {
		return nil, fmt.Errorf("failed to parse connection file %s: %w", path, err)
	}

	if err := ValidateConnection(&conn); err != nil {
		return nil, err
	}
	return &conn, nil
}

// ValidateConnection checks the structural requirements of a connection
func ValidateConnection(conn *Connection) error {
	if conn.Hostname == "" {
		return fmt.Errorf("connection file must specify a hostname")
	}
	if strings.ContainsAny(conn.Hostname, " \t") {
		return fmt.Errorf("connection hostname %q contains whitespace", conn.Hostname)
	}
	return nil
}

// DiscoverConnectionFiles walks root for dw.json candidates, at most two
// directory levels deep. The returned paths are sorted so callers can
// present a stable pick list when several exist.
func DiscoverConnectionFiles(root string) ([]string, error) {
	var candidates []string

	direct := filepath.Join(root, "dw.json")
	if fileExists(direct) {
		candidates = append(candidates, direct)
	}

	entries, err := os.ReadDir(root)
	if err != nil {
		return candidates, nil //nolint:nilerr // a missing root only means no candidates
	}
	for _, entry := range entries {
		if !entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		nested := filepath.Join(root, entry.Name(), "dw.json")
		if fileExists(nested) {
			candidates = append(candidates, nested)
		}
	}

	sort.Strings(candidates)
	return candidates, nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// envVarRegex matches ${VAR_NAME} or $VAR_NAME patterns
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}|\$([A-Za-z_][A-Za-z0-9_]*)`)

// expandEnvVars expands environment variable references in the string.
// Supports ${VAR_NAME}, $VAR_NAME and ${VAR_NAME:-default} syntax; undefined
// variables without a default expand to the empty string.
func expandEnvVars(content string) string {
	return envVarRegex.ReplaceAllStringFunc(content, func(match string) string {
		var varName string
		if strings.HasPrefix(match, "${") {
			varName = match[2 : len(match)-1]
		} else {
			varName = match[1:]
		}

		defaultVal := ""
		if idx := strings.Index(varName, ":-"); idx != -1 {
			defaultVal = varName[idx+2:]
			varName = varName[:idx]
		}

		if value := os.Getenv(varName); value != "" {
			return value
		}
		return defaultVal
	})
}
