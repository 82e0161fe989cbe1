// Copyright 2025 SFCC Metadata Explorer contributors
// SPDX-License-Identifier: Apache-2.0

package metadata

// CustomObjectMarker is the wire object_type carried by custom object type
// definitions. Rows carrying it together with a display name are custom
// object types; all other rows are system object types.
const CustomObjectMarker = "CustomObject"

// SitePreferencesObjectType is the system object type whose attribute
// groups hold site preferences.
const SitePreferencesObjectType = "SitePreferences"

// ObjectTypeDefinition describes one business object type on the sandbox
type ObjectTypeDefinition struct {
	ObjectType               string
	DisplayName              LocalizedString
	Description              LocalizedString
	AttributeDefinitionCount int
	AttributeGroupCount      int
	KeyAttributeID           string
	ContentObject            bool
	Queryable                bool
	ReadOnly                 bool
}

// ParseObjectTypeDefinition normalizes a wire object_type_definition row
func ParseObjectTypeDefinition(raw map[string]interface{}) *ObjectTypeDefinition {
	return &ObjectTypeDefinition{
		ObjectType:               stringField(raw, "object_type"),
		DisplayName:              localizedFromWire(raw["display_name"]),
		Description:              localizedFromWire(raw["description"]),
		AttributeDefinitionCount: intField(raw, "attribute_definition_count"),
		AttributeGroupCount:      intField(raw, "attribute_group_count"),
		KeyAttributeID:           stringField(raw, "key_attribute_definition_id"),
		ContentObject:            boolField(raw, "content_object"),
		Queryable:                boolField(raw, "queryable"),
		ReadOnly:                 boolField(raw, "read_only"),
	}
}

// IsCustom reports whether this row describes a custom object type
func (d *ObjectTypeDefinition) IsCustom() bool {
	return d.ObjectType == CustomObjectMarker && d.DisplayName.Default() != ""
}

// Label returns the tree display label: custom types are labeled by their
// display name, system types by their object type ID.
func (d *ObjectTypeDefinition) Label() string {
	if d.IsCustom() {
		return d.DisplayName.Default()
	}
	return d.ObjectType
}

// TypeID returns the identifier used in API paths for this object type
func (d *ObjectTypeDefinition) TypeID() string {
	return d.Label()
}

// Wire projects the definition back to wire field names, optionally
// restricted to a field subset.
func (d *ObjectTypeDefinition) Wire(fields ...string) map[string]interface{} {
	wire := map[string]interface{}{
		"object_type":                 d.ObjectType,
		"display_name":                d.DisplayName.toWire(),
		"description":                 d.Description.toWire(),
		"attribute_definition_count":  d.AttributeDefinitionCount,
		"attribute_group_count":       d.AttributeGroupCount,
		"key_attribute_definition_id": d.KeyAttributeID,
		"content_object":              d.ContentObject,
		"queryable":                   d.Queryable,
		"read_only":                   d.ReadOnly,
	}
	return restrict(wire, fields)
}
