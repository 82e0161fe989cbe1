// Copyright 2025 SFCC Metadata Explorer contributors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Settings controls which tree categories are materialized and how list
// calls are sized. Loaded from an optional explorer.yaml next to dw.json;
// every field has a default so the file may be absent.
type Settings struct {
	// APIVersion overrides the Data API version segment (e.g. v23_2)
	APIVersion string `yaml:"api_version,omitempty"`

	// Category toggles. Disabled categories are omitted from the root
	// level, never shown disabled.
	ShowSystemObjects   *bool `yaml:"show_system_objects,omitempty"`
	ShowCustomObjects   *bool `yaml:"show_custom_objects,omitempty"`
	ShowSitePreferences *bool `yaml:"show_site_preferences,omitempty"`

	// Page sizes for list calls. Attribute schemas commonly run into the
	// hundreds, attribute groups rarely do.
	AttributePageSize int `yaml:"attribute_page_size,omitempty"`
	GroupPageSize     int `yaml:"group_page_size,omitempty"`

	// InstanceType selects the site-preference value column
	// (sandbox, development, staging, production).
	InstanceType string `yaml:"instance_type,omitempty"`

	// MaxRetries and TimeoutMs are passed through to the HTTP executor
	MaxRetries int `yaml:"max_retries,omitempty"`
	TimeoutMs  int `yaml:"timeout_ms,omitempty"`
}

// DefaultSettings returns the settings used when no explorer.yaml exists
func DefaultSettings() Settings {
	on := true
	return Settings{
		APIVersion:          "",
		ShowSystemObjects:   &on,
		ShowCustomObjects:   &on,
		ShowSitePreferences: &on,
		AttributePageSize:   700,
		GroupPageSize:       150,
		InstanceType:        "sandbox",
		MaxRetries:          3,
		TimeoutMs:           30000,
	}
}

// LoadSettings reads an explorer settings file, layering it over defaults.
// Environment variable references in the file content are expanded the same
// way as for connection files.
func LoadSettings(path string) (Settings, error) {
	settings := DefaultSettings()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return settings, nil
		}
		return settings, fmt.Errorf("failed to read settings file %s: %w", path, err)
	}

	expanded := expandEnvVars(string(data))

	var loaded Settings
	if err := yaml.Unmarshal([]byte(expanded), &loaded); err != nil {
		return settings, fmt.Errorf("failed to parse settings file %s: %w", path, err)
	}

	mergeSettings(&settings, loaded)
	if err := ValidateSettings(settings); err != nil {
		return DefaultSettings(), err
	}
	return settings, nil
}

func mergeSettings(base *Settings, loaded Settings) {
	if loaded.APIVersion != "" {
		base.APIVersion = loaded.APIVersion
	}
	if loaded.ShowSystemObjects != nil {
		base.ShowSystemObjects = loaded.ShowSystemObjects
	}
	if loaded.ShowCustomObjects != nil {
		base.ShowCustomObjects = loaded.ShowCustomObjects
	}
	if loaded.ShowSitePreferences != nil {
		base.ShowSitePreferences = loaded.ShowSitePreferences
	}
	if loaded.AttributePageSize > 0 {
		base.AttributePageSize = loaded.AttributePageSize
	}
	if loaded.GroupPageSize > 0 {
		base.GroupPageSize = loaded.GroupPageSize
	}
	if loaded.InstanceType != "" {
		base.InstanceType = loaded.InstanceType
	}
	if loaded.MaxRetries > 0 {
		base.MaxRetries = loaded.MaxRetries
	}
	if loaded.TimeoutMs > 0 {
		base.TimeoutMs = loaded.TimeoutMs
	}
}

// ValidateSettings checks the structural requirements of explorer settings
func ValidateSettings(s Settings) error {
	validInstanceTypes := map[string]bool{
		"sandbox":     true,
		"development": true,
		"staging":     true,
		"production":  true,
	}
	if !validInstanceTypes[s.InstanceType] {
		return fmt.Errorf("invalid instance_type %q", s.InstanceType)
	}
	if s.AttributePageSize <= 0 || s.GroupPageSize <= 0 {
		return fmt.Errorf("page sizes must be positive")
	}
	return nil
}

// SystemObjectsEnabled reports the effective system objects toggle
func (s Settings) SystemObjectsEnabled() bool {
	return s.ShowSystemObjects == nil || *s.ShowSystemObjects
}

// CustomObjectsEnabled reports the effective custom objects toggle
func (s Settings) CustomObjectsEnabled() bool {
	return s.ShowCustomObjects == nil || *s.ShowCustomObjects
}

// SitePreferencesEnabled reports the effective site preferences toggle
func (s Settings) SitePreferencesEnabled() bool {
	return s.ShowSitePreferences == nil || *s.ShowSitePreferences
}
