// Copyright 2025 SFCC Metadata Explorer contributors
// SPDX-License-Identifier: Apache-2.0

package metadata

// LocalizedString holds per-locale display values keyed by locale ID. The
// "default" entry is always present so display code never needs a nil or
// missing-key check.
type LocalizedString map[string]string

// DefaultLocale is the locale key OCAPI uses for unlocalized values
const DefaultLocale = "default"

// Default returns the default-locale value
func (ls LocalizedString) Default() string {
	return ls[DefaultLocale]
}

// localizedFromWire normalizes a wire localized-string object. Absent or
// malformed values yield a LocalizedString with an empty default entry.
func localizedFromWire(v interface{}) LocalizedString {
	ls := LocalizedString{DefaultLocale: ""}
	raw, ok := v.(map[string]interface{})
	if !ok {
		return ls
	}
	for locale, value := range raw {
		if s, ok := value.(string); ok {
			ls[locale] = s
		}
	}
	if _, ok := ls[DefaultLocale]; !ok {
		ls[DefaultLocale] = ""
	}
	return ls
}

// toWire projects the localized string back to its wire shape
func (ls LocalizedString) toWire() map[string]interface{} {
	out := make(map[string]interface{}, len(ls))
	for locale, value := range ls {
		out[locale] = value
	}
	return out
}

func stringField(raw map[string]interface{}, key string) string {
	s, _ := raw[key].(string)
	return s
}

func boolField(raw map[string]interface{}, key string) bool {
	b, _ := raw[key].(bool)
	return b
}

func intField(raw map[string]interface{}, key string) int {
	switch n := raw[key].(type) {
	case float64:
		return int(n)
	case int:
		return n
	default:
		return 0
	}
}

// restrict filters a wire projection to the requested field subset. An
// empty subset means no restriction.
func restrict(wire map[string]interface{}, fields []string) map[string]interface{} {
	if len(fields) == 0 {
		return wire
	}
	out := make(map[string]interface{}, len(fields))
	for _, f := range fields {
		if v, ok := wire[f]; ok {
			out[f] = v
		}
	}
	return out
}
