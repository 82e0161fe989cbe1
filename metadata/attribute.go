// Copyright 2025 SFCC Metadata Explorer contributors
// SPDX-License-Identifier: Apache-2.0

package metadata

// Value types with special handling in the tree and the export schema
const (
	ValueTypeString     = "string"
	ValueTypeEnumString = "enum_of_string"
	ValueTypeEnumInt    = "enum_of_int"
)

// ObjectAttributeDefinition describes one field of a business object type.
// Enumerated attributes own an ordered list of value definitions; list
// calls do not return that list inline, it requires a dedicated fetch with
// expand=value.
type ObjectAttributeDefinition struct {
	ID          string
	DisplayName LocalizedString
	Description LocalizedString
	ValueType   string
	Unit        string
	Regex       string
	EffectiveID string

	Mandatory         bool
	Searchable        bool
	System            bool
	Localizable       bool
	SiteSpecific      bool
	Visible           bool
	ReadOnly          bool
	Queryable         bool
	ExternallyManaged bool
	ExternallyDefined bool
	OrderRequired     bool
	MultiValueType    bool
	SetValueType      bool

	MinLength   int
	FieldLength int
	FieldHeight int
	Scale       int

	DefaultValue     *ObjectAttributeValueDefinition
	ValueDefinitions []ObjectAttributeValueDefinition
}

// ParseObjectAttributeDefinition normalizes a wire attribute definition
func ParseObjectAttributeDefinition(raw map[string]interface{}) *ObjectAttributeDefinition {
	def := &ObjectAttributeDefinition{
		ID:          stringField(raw, "id"),
		DisplayName: localizedFromWire(raw["display_name"]),
		Description: localizedFromWire(raw["description"]),
		ValueType:   stringField(raw, "value_type"),
		Unit:        stringField(raw, "unit"),
		Regex:       stringField(raw, "regex"),
		EffectiveID: stringField(raw, "effective_id"),

		Mandatory:         boolField(raw, "mandatory"),
		Searchable:        boolField(raw, "searchable"),
		System:            boolField(raw, "system"),
		Localizable:       boolField(raw, "localizable"),
		SiteSpecific:      boolField(raw, "site_specific"),
		Visible:           boolField(raw, "visible"),
		ReadOnly:          boolField(raw, "read_only"),
		Queryable:         boolField(raw, "queryable"),
		ExternallyManaged: boolField(raw, "externally_managed"),
		ExternallyDefined: boolField(raw, "externally_defined"),
		OrderRequired:     boolField(raw, "order_required"),
		MultiValueType:    boolField(raw, "multi_value_type"),
		SetValueType:      boolField(raw, "set_value_type"),

		MinLength:   intField(raw, "min_length"),
		FieldLength: intField(raw, "field_length"),
		FieldHeight: intField(raw, "field_height"),
		Scale:       intField(raw, "scale"),
	}

	if dv, ok := raw["default_value"].(map[string]interface{}); ok {
		def.DefaultValue = ParseObjectAttributeValueDefinition(dv)
	}

	if list, ok := raw["value_definitions"].([]interface{}); ok {
		def.ValueDefinitions = make([]ObjectAttributeValueDefinition, 0, len(list))
		for _, item := range list {
			if row, ok := item.(map[string]interface{}); ok {
				def.ValueDefinitions = append(def.ValueDefinitions, *ParseObjectAttributeValueDefinition(row))
			}
		}
	}

	return def
}

// IsEnum reports whether the attribute's value type is an enumeration
func (d *ObjectAttributeDefinition) IsEnum() bool {
	return d.ValueType == ValueTypeEnumString || d.ValueType == ValueTypeEnumInt
}

// Wire projects the definition back to wire field names, optionally
// restricted to a field subset.
func (d *ObjectAttributeDefinition) Wire(fields ...string) map[string]interface{} {
	wire := map[string]interface{}{
		"id":           d.ID,
		"display_name": d.DisplayName.toWire(),
		"description":  d.Description.toWire(),
		"value_type":   d.ValueType,
		"unit":         d.Unit,
		"regex":        d.Regex,
		"effective_id": d.EffectiveID,

		"mandatory":          d.Mandatory,
		"searchable":         d.Searchable,
		"system":             d.System,
		"localizable":        d.Localizable,
		"site_specific":      d.SiteSpecific,
		"visible":            d.Visible,
		"read_only":          d.ReadOnly,
		"queryable":          d.Queryable,
		"externally_managed": d.ExternallyManaged,
		"externally_defined": d.ExternallyDefined,
		"order_required":     d.OrderRequired,
		"multi_value_type":   d.MultiValueType,
		"set_value_type":     d.SetValueType,

		"min_length":   d.MinLength,
		"field_length": d.FieldLength,
		"field_height": d.FieldHeight,
		"scale":        d.Scale,
	}

	if d.DefaultValue != nil {
		wire["default_value"] = d.DefaultValue.Wire()
	}
	if d.ValueDefinitions != nil {
		list := make([]interface{}, 0, len(d.ValueDefinitions))
		for i := range d.ValueDefinitions {
			list = append(list, d.ValueDefinitions[i].Wire())
		}
		wire["value_definitions"] = list
	}

	return restrict(wire, fields)
}
