// Copyright 2025 SFCC Metadata Explorer contributors
// SPDX-License-Identifier: Apache-2.0

package metadata

// ObjectAttributeValueDefinition is one allowed value of an enumerated
// attribute: the stored value plus its localized display label.
type ObjectAttributeValueDefinition struct {
	ID          string
	Value       interface{}
	Display     LocalizedString
	Description LocalizedString
	Position    int
}

// ParseObjectAttributeValueDefinition normalizes a wire value definition
func ParseObjectAttributeValueDefinition(raw map[string]interface{}) *ObjectAttributeValueDefinition {
	return &ObjectAttributeValueDefinition{
		ID:          stringField(raw, "id"),
		Value:       raw["value"],
		Display:     localizedFromWire(raw["display"]),
		Description: localizedFromWire(raw["description"]),
		Position:    intField(raw, "position"),
	}
}

// DisplayLabel returns the default-locale display value, falling back to
// the raw value when no display is set.
func (v *ObjectAttributeValueDefinition) DisplayLabel() string {
	if label := v.Display.Default(); label != "" {
		return label
	}
	if s, ok := v.Value.(string); ok {
		return s
	}
	return ""
}

// Wire projects the value definition back to wire field names
func (v *ObjectAttributeValueDefinition) Wire(fields ...string) map[string]interface{} {
	wire := map[string]interface{}{
		"id":          v.ID,
		"value":       v.Value,
		"display":     v.Display.toWire(),
		"description": v.Description.toWire(),
		"position":    v.Position,
	}
	return restrict(wire, fields)
}
