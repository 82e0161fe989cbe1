// Copyright 2025 SFCC Metadata Explorer contributors
// SPDX-License-Identifier: Apache-2.0

package metadata

// ObjectAttributeGroup is a named, ordered collection of attribute
// definition references used for display grouping. Members are referenced
// by ID, not owned.
type ObjectAttributeGroup struct {
	ID          string
	DisplayName LocalizedString
	Description LocalizedString
	Internal    bool
	Position    int
	Link        string
	MemberIDs   []string
	MemberCount int

	// Members holds the inlined definitions when the group was fetched
	// with expand=definition. Plain list calls leave it nil.
	Members []ObjectAttributeDefinition
}

// ParseObjectAttributeGroup normalizes a wire attribute group. When the
// group was fetched with expand=definition the member rows are inlined and
// their IDs are collected in order.
func ParseObjectAttributeGroup(raw map[string]interface{}) *ObjectAttributeGroup {
	group := &ObjectAttributeGroup{
		ID:          stringField(raw, "id"),
		DisplayName: localizedFromWire(raw["display_name"]),
		Description: localizedFromWire(raw["description"]),
		Internal:    boolField(raw, "internal"),
		Position:    intField(raw, "position"),
		Link:        stringField(raw, "link"),
		MemberCount: intField(raw, "attribute_definitions_count"),
	}

	if list, ok := raw["attribute_definitions"].([]interface{}); ok {
		group.MemberIDs = make([]string, 0, len(list))
		group.Members = make([]ObjectAttributeDefinition, 0, len(list))
		for _, item := range list {
			if row, ok := item.(map[string]interface{}); ok {
				if id := stringField(row, "id"); id != "" {
					group.MemberIDs = append(group.MemberIDs, id)
					group.Members = append(group.Members, *ParseObjectAttributeDefinition(row))
				}
			}
		}
		if group.MemberCount == 0 {
			group.MemberCount = len(group.MemberIDs)
		}
	}

	return group
}

// Wire projects the group back to wire field names, optionally restricted
// to a field subset.
func (g *ObjectAttributeGroup) Wire(fields ...string) map[string]interface{} {
	wire := map[string]interface{}{
		"id":                          g.ID,
		"display_name":                g.DisplayName.toWire(),
		"description":                 g.Description.toWire(),
		"internal":                    g.Internal,
		"position":                    g.Position,
		"link":                        g.Link,
		"attribute_definitions_count": g.MemberCount,
	}

	if g.MemberIDs != nil {
		members := make([]interface{}, 0, len(g.MemberIDs))
		for _, id := range g.MemberIDs {
			members = append(members, map[string]interface{}{"id": id})
		}
		wire["attribute_definitions"] = members
	}

	return restrict(wire, fields)
}
