// Copyright 2025 SFCC Metadata Explorer contributors
// SPDX-License-Identifier: Apache-2.0

package tree

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync/atomic"

	"github.com/david-mkhitaryan-dev/sfcc-metadata-explorer/config"
	"github.com/david-mkhitaryan-dev/sfcc-metadata-explorer/metadata"
	"github.com/david-mkhitaryan-dev/sfcc-metadata-explorer/ocapi"
	"github.com/david-mkhitaryan-dev/sfcc-metadata-explorer/ocapi/client"
	"github.com/david-mkhitaryan-dev/sfcc-metadata-explorer/shared/logger"
)

const (
	rootPath = "root"

	selectAll        = "(**)"
	expandDefinition = "definition"
	expandValue      = "value"

	// objectTypePageSize bounds the top-level definition listing. Real
	// sandboxes stay well below it.
	objectTypePageSize = 500
)

// Root category labels
const (
	LabelSystemObjects   = "System Object Definitions"
	LabelCustomObjects   = "Custom Object Definitions"
	LabelSitePreferences = "Site Preferences"
)

// Informational messages rendered as terminal nodes
const (
	msgNoObjects     = "No object definitions found"
	msgNoAttributes  = "No attribute definitions defined"
	msgNoGroups      = "No attribute groups defined"
	msgNoSiteValues  = "No site values defined"
	msgObjectsFailed = "Unable to load object definitions"
	msgAttrsFailed   = "Unable to load attribute definitions"
	msgGroupsFailed  = "Unable to load attribute groups"
	msgValuesFailed  = "Unable to load value definitions"
	msgSitesFailed   = "Unable to load preference values"
)

// ErrNotExpandable is returned when Expand is called on a node that
// advertised Expandable=false. That is a caller bug, not a remote failure.
var ErrNotExpandable = errors.New("node is not expandable")

// Materializer builds tree levels on demand. Nodes are created when their
// parent is expanded and never mutated afterwards; a refresh bumps the
// generation so hosts drop everything and re-expand from the roots.
type Materializer struct {
	resolver *ocapi.Resolver
	exec     client.Executor
	settings config.Settings
	log      *logger.Logger

	generation atomic.Int64
}

// NewMaterializer wires a materializer over a resolver and an executor
func NewMaterializer(resolver *ocapi.Resolver, exec client.Executor, settings config.Settings, log *logger.Logger) *Materializer {
	if log == nil {
		log = logger.New("tree")
	}
	return &Materializer{
		resolver: resolver,
		exec:     exec,
		settings: settings,
		log:      log,
	}
}

// Generation returns the current tree generation
func (m *Materializer) Generation() int64 {
	return m.generation.Load()
}

// Refresh invalidates every previously materialized node by advancing the
// generation. There is no partial invalidation; hosts rebuild from
// RootNodes. Because nothing is cached here, concurrent refreshes are safe
// and the last completed rebuild wins.
func (m *Materializer) Refresh() int64 {
	gen := m.generation.Add(1)
	m.log.Info("", "tree refreshed", map[string]interface{}{"generation": gen})
	return gen
}

// RootNodes returns the enabled top-level categories. Disabled categories
// are omitted entirely, never rendered greyed out. No network calls.
func (m *Materializer) RootNodes() []Node {
	nodes := make([]Node, 0, 3)
	if m.settings.SystemObjectsEnabled() {
		nodes = append(nodes, Node{
			Label:      LabelSystemObjects,
			Expandable: true,
			Kind:       KindBaseCategory,
			Category:   CategorySystem,
			ParentPath: rootPath,
		})
	}
	if m.settings.CustomObjectsEnabled() {
		nodes = append(nodes, Node{
			Label:      LabelCustomObjects,
			Expandable: true,
			Kind:       KindBaseCategory,
			Category:   CategoryCustom,
			ParentPath: rootPath,
		})
	}
	if m.settings.SitePreferencesEnabled() {
		nodes = append(nodes, Node{
			Label:      LabelSitePreferences,
			Expandable: true,
			Kind:       KindBaseCategory,
			Category:   CategorySitePreferences,
			ParentPath: rootPath,
		})
	}
	return nodes
}

// Expand materializes the children of a node. Remote and schema failures
// surface as informational nodes, not errors; an error return means the
// caller violated the contract (expanding a terminal node or an unknown
// kind).
func (m *Materializer) Expand(ctx context.Context, node Node) ([]Node, error) {
	if !node.Expandable {
		return nil, ErrNotExpandable
	}

	switch node.Kind {
	case KindBaseCategory:
		return m.expandCategory(ctx, node), nil
	case KindObjectTypeDefinition:
		return m.expandObjectType(node)
	case KindParentContainer:
		return m.expandContainer(ctx, node)
	case KindObjectAttributeDefinition:
		return m.expandAttribute(ctx, node)
	case KindObjectAttributeGroup:
		return m.expandGroup(node)
	case KindValueDefinitionList:
		return m.expandValueList(node), nil
	case KindObjectAttributeValueDefinition:
		return m.expandValueDefinition(node)
	case KindStringList:
		return m.expandStringList(node), nil
	case KindSite:
		return m.expandSiteValues(ctx, node)
	default:
		return nil, fmt.Errorf("no expansion strategy for %s node", node.Kind)
	}
}

// expandCategory lists object type definitions, or preference groups for
// the site preference family.
func (m *Materializer) expandCategory(ctx context.Context, node Node) []Node {
	if node.Category == CategorySitePreferences {
		return m.fetchGroups(ctx, metadata.SitePreferencesObjectType,
			childPath(node.ParentPath, metadata.SitePreferencesObjectType), node.Category)
	}

	call := m.resolver.Resolve(ctx, "systemObjectDefinitions", "getAll", map[string]interface{}{
		"select": selectAll,
		"count":  objectTypePageSize,
	})
	resp, err := m.exec.Execute(ctx, call)
	if err != nil {
		m.log.ErrorWithCause("", "object definition listing failed", err, nil)
		return []Node{infoLeaf(msgObjectsFailed, node.ParentPath, true)}
	}
	rows, err := resp.DataRows()
	if err != nil {
		m.log.ErrorWithCause("", "object definition listing returned unexpected shape", err, nil)
		return []Node{infoLeaf(msgObjectsFailed, node.ParentPath, true)}
	}

	wantCustom := node.Category == CategoryCustom
	path := childPath(node.ParentPath, categorySegment(node.Category))
	nodes := make([]Node, 0, len(rows))
	for _, row := range rows {
		def := metadata.ParseObjectTypeDefinition(row)
		if def.IsCustom() != wantCustom {
			continue
		}
		nodes = append(nodes, Node{
			Label:      def.Label(),
			Expandable: true,
			Kind:       KindObjectTypeDefinition,
			Category:   node.Category,
			ParentPath: path,
			TypeDef:    def,
		})
	}
	if wantCustom {
		sort.Slice(nodes, func(i, j int) bool { return nodes[i].Label < nodes[j].Label })
	}
	if len(nodes) == 0 {
		return []Node{infoLeaf(msgNoObjects, node.ParentPath, false)}
	}
	return nodes
}

// expandObjectType produces the two fixed containers, always in attribute
// then group order. The group container of a custom object type is never
// expandable; the Data API exposes no groups for custom types.
func (m *Materializer) expandObjectType(node Node) ([]Node, error) {
	def := node.TypeDef
	if def == nil {
		return nil, fmt.Errorf("object type node %q has no definition payload", node.Label)
	}
	path := childPath(node.ParentPath, def.TypeID())
	return []Node{
		{
			Label:      fmt.Sprintf("Attribute Definitions (%d)", def.AttributeDefinitionCount),
			Expandable: true,
			Kind:       KindParentContainer,
			Container:  ContainerAttributes,
			Category:   node.Category,
			ParentPath: path,
			TypeDef:    def,
		},
		{
			Label:      fmt.Sprintf("Attribute Groups (%d)", def.AttributeGroupCount),
			Expandable: !def.IsCustom(),
			Kind:       KindParentContainer,
			Container:  ContainerGroups,
			Category:   node.Category,
			ParentPath: path,
			TypeDef:    def,
		},
	}, nil
}

func (m *Materializer) expandContainer(ctx context.Context, node Node) ([]Node, error) {
	objectType := node.OwningObjectType()
	switch node.Container {
	case ContainerAttributes:
		return m.fetchAttributes(ctx, objectType, node), nil
	case ContainerGroups:
		return m.fetchGroups(ctx, objectType, node.ParentPath, node.Category), nil
	default:
		return nil, fmt.Errorf("container node %q has no container kind", node.Label)
	}
}

func (m *Materializer) fetchAttributes(ctx context.Context, objectType string, node Node) []Node {
	call := m.resolver.Resolve(ctx, resourceFor(node.Category), "getAttributes", map[string]interface{}{
		"objectType": objectType,
		"select":     selectAll,
		"count":      m.settings.AttributePageSize,
	})
	resp, err := m.exec.Execute(ctx, call)
	if err != nil {
		m.log.ErrorWithCause("", "attribute listing failed", err,
			map[string]interface{}{"object_type": objectType})
		return []Node{infoLeaf(msgAttrsFailed, node.ParentPath, true)}
	}
	rows, err := resp.DataRows()
	if err != nil {
		m.log.ErrorWithCause("", "attribute listing returned unexpected shape", err,
			map[string]interface{}{"object_type": objectType})
		return []Node{infoLeaf(msgAttrsFailed, node.ParentPath, true)}
	}
	if len(rows) == 0 {
		return []Node{infoLeaf(msgNoAttributes, node.ParentPath, false)}
	}

	nodes := make([]Node, 0, len(rows))
	for _, row := range rows {
		attr := metadata.ParseObjectAttributeDefinition(row)
		nodes = append(nodes, Node{
			Label:      attr.ID,
			Expandable: true,
			Kind:       KindObjectAttributeDefinition,
			Category:   node.Category,
			ParentPath: node.ParentPath,
			AttrDef:    attr,
		})
	}
	return nodes
}

// fetchGroups lists attribute groups with member definitions inlined. An
// empty result is a successful outcome and renders as a single message
// node, distinct from a load failure.
func (m *Materializer) fetchGroups(ctx context.Context, objectType, parentPath string, category Category) []Node {
	call := m.resolver.Resolve(ctx, "systemObjectDefinitions", "getAttributeGroups", map[string]interface{}{
		"objectType": objectType,
		"select":     selectAll,
		"count":      m.settings.GroupPageSize,
		"expand":     expandDefinition,
	})
	resp, err := m.exec.Execute(ctx, call)
	if err != nil {
		m.log.ErrorWithCause("", "attribute group listing failed", err,
			map[string]interface{}{"object_type": objectType})
		return []Node{infoLeaf(msgGroupsFailed, parentPath, true)}
	}
	rows, err := resp.DataRows()
	if err != nil {
		m.log.ErrorWithCause("", "attribute group listing returned unexpected shape", err,
			map[string]interface{}{"object_type": objectType})
		return []Node{infoLeaf(msgGroupsFailed, parentPath, true)}
	}
	if len(rows) == 0 {
		return []Node{infoLeaf(msgNoGroups, parentPath, false)}
	}

	nodes := make([]Node, 0, len(rows))
	for _, row := range rows {
		group := metadata.ParseObjectAttributeGroup(row)
		nodes = append(nodes, Node{
			Label:      group.ID,
			Expandable: true,
			Kind:       KindObjectAttributeGroup,
			Category:   category,
			ParentPath: parentPath,
			Group:      group,
		})
	}
	return nodes
}

// expandAttribute renders the definition's fields as leaves and attaches
// the default value node, the value definition list for enumerations and,
// for site preferences, the per-site value lookup node. The value
// definition list requires a second call because list responses omit the
// nested definitions.
func (m *Materializer) expandAttribute(ctx context.Context, node Node) ([]Node, error) {
	attr := node.AttrDef
	if attr == nil {
		return nil, fmt.Errorf("attribute node %q has no definition payload", node.Label)
	}
	path := childPath(node.ParentPath, attr.ID)
	nodes := attributeLeaves(attr, path)

	if attr.DefaultValue != nil {
		nodes = append(nodes, Node{
			Label:      "Default Value",
			Expandable: true,
			Kind:       KindObjectAttributeValueDefinition,
			Category:   node.Category,
			ParentPath: path,
			ValueDef:   attr.DefaultValue,
		})
	}

	if attr.IsEnum() {
		nodes = append(nodes, m.fetchValueDefinitions(ctx, node, path)...)
	}

	if node.Category == CategorySitePreferences && node.GroupID != "" {
		nodes = append(nodes, Node{
			Label:      "Site Values",
			Expandable: true,
			Kind:       KindSite,
			Category:   node.Category,
			ParentPath: path,
			GroupID:    node.GroupID,
			AttrDef:    attr,
		})
	}

	return nodes, nil
}

func (m *Materializer) fetchValueDefinitions(ctx context.Context, node Node, path string) []Node {
	attr := node.AttrDef
	call := m.resolver.Resolve(ctx, resourceFor(node.Category), "getAttribute", map[string]interface{}{
		"objectType": node.OwningObjectType(),
		"id":         attr.ID,
		"expand":     expandValue,
	})
	resp, err := m.exec.Execute(ctx, call)
	if err != nil {
		m.log.ErrorWithCause("", "value definition fetch failed", err,
			map[string]interface{}{"attribute": attr.ID})
		return []Node{infoLeaf(msgValuesFailed, path, true)}
	}
	doc, err := resp.Document()
	if err != nil {
		return []Node{infoLeaf(msgValuesFailed, path, true)}
	}
	full := metadata.ParseObjectAttributeDefinition(doc)
	if len(full.ValueDefinitions) == 0 {
		return nil
	}
	return []Node{{
		Label:      fmt.Sprintf("Value Definitions (%d)", len(full.ValueDefinitions)),
		Expandable: true,
		Kind:       KindValueDefinitionList,
		Category:   node.Category,
		ParentPath: path,
		Values:     full.ValueDefinitions,
	}}
}

// expandGroup renders the group's own fields plus its membership. Site
// preference groups expand their inlined member definitions into full
// attribute nodes; other groups list members by ID only.
func (m *Materializer) expandGroup(node Node) ([]Node, error) {
	group := node.Group
	if group == nil {
		return nil, fmt.Errorf("group node %q has no group payload", node.Label)
	}
	path := childPath(node.ParentPath, group.ID)

	var nodes []Node
	if node.Category == CategorySitePreferences {
		for i := range group.Members {
			member := &group.Members[i]
			nodes = append(nodes, Node{
				Label:      member.ID,
				Expandable: true,
				Kind:       KindObjectAttributeDefinition,
				Category:   node.Category,
				ParentPath: node.ParentPath,
				GroupID:    group.ID,
				AttrDef:    member,
			})
		}
	} else {
		nodes = append(nodes, Node{
			Label:      fmt.Sprintf("Attributes (%d)", group.MemberCount),
			Expandable: len(group.MemberIDs) > 0,
			Kind:       KindStringList,
			Category:   node.Category,
			ParentPath: path,
			Strings:    group.MemberIDs,
		})
	}

	nodes = append(nodes,
		leaf(fmt.Sprintf("id: %s", group.ID), path),
		leaf(fmt.Sprintf("display_name: %s", group.DisplayName.Default()), path),
		leaf(fmt.Sprintf("description: %s", group.Description.Default()), path),
		leaf(fmt.Sprintf("internal: %v", group.Internal), path),
		leaf(fmt.Sprintf("position: %d", group.Position), path),
		leaf(fmt.Sprintf("link: %s", group.Link), path),
	)
	return nodes, nil
}

// expandValueList fans out over already-fetched value definitions
func (m *Materializer) expandValueList(node Node) []Node {
	nodes := make([]Node, 0, len(node.Values))
	for i := range node.Values {
		value := &node.Values[i]
		nodes = append(nodes, Node{
			Label:      value.DisplayLabel(),
			Expandable: true,
			Kind:       KindObjectAttributeValueDefinition,
			Category:   node.Category,
			ParentPath: node.ParentPath,
			ValueDef:   value,
		})
	}
	return nodes
}

func (m *Materializer) expandValueDefinition(node Node) ([]Node, error) {
	value := node.ValueDef
	if value == nil {
		return nil, fmt.Errorf("value node %q has no value payload", node.Label)
	}
	nodes := make([]Node, 0, 4)
	if value.ID != "" {
		nodes = append(nodes, leaf(fmt.Sprintf("id: %s", value.ID), node.ParentPath))
	}
	nodes = append(nodes,
		leaf(fmt.Sprintf("value: %v", value.Value), node.ParentPath),
		leaf(fmt.Sprintf("display: %s", value.Display.Default()), node.ParentPath),
		leaf(fmt.Sprintf("position: %d", value.Position), node.ParentPath),
	)
	return nodes, nil
}

func (m *Materializer) expandStringList(node Node) []Node {
	nodes := make([]Node, 0, len(node.Strings))
	for _, s := range node.Strings {
		nodes = append(nodes, leaf(s, node.ParentPath))
	}
	return nodes
}

// expandSiteValues looks up the per-site values of one preference on the
// configured instance type. Site IDs are sorted for stable output.
func (m *Materializer) expandSiteValues(ctx context.Context, node Node) ([]Node, error) {
	if node.AttrDef == nil || node.GroupID == "" {
		return nil, fmt.Errorf("site value node %q is missing its preference identity", node.Label)
	}
	call := m.resolver.Resolve(ctx, "sitePreferences", "get", map[string]interface{}{
		"groupId":      node.GroupID,
		"instanceType": m.settings.InstanceType,
		"preferenceId": node.AttrDef.ID,
		"expand":       expandValue,
	})
	resp, err := m.exec.Execute(ctx, call)
	if err != nil {
		m.log.ErrorWithCause("", "preference value fetch failed", err,
			map[string]interface{}{"preference": node.AttrDef.ID, "group": node.GroupID})
		return []Node{infoLeaf(msgSitesFailed, node.ParentPath, true)}, nil
	}
	doc, err := resp.Document()
	if err != nil {
		return []Node{infoLeaf(msgSitesFailed, node.ParentPath, true)}, nil
	}

	siteValues, _ := doc["site_values"].(map[string]interface{})
	if len(siteValues) == 0 {
		return []Node{infoLeaf(msgNoSiteValues, node.ParentPath, false)}, nil
	}
	siteIDs := make([]string, 0, len(siteValues))
	for siteID := range siteValues {
		siteIDs = append(siteIDs, siteID)
	}
	sort.Strings(siteIDs)

	nodes := make([]Node, 0, len(siteIDs))
	for _, siteID := range siteIDs {
		value := siteValues[siteID]
		if value == nil {
			nodes = append(nodes, leaf(fmt.Sprintf("%s: (not set)", siteID), node.ParentPath))
			continue
		}
		nodes = append(nodes, leaf(fmt.Sprintf("%s: %v", siteID, value), node.ParentPath))
	}
	return nodes, nil
}

// attributeLeaves renders every field of a definition in a fixed order
func attributeLeaves(attr *metadata.ObjectAttributeDefinition, path string) []Node {
	fields := []struct {
		name  string
		value interface{}
	}{
		{"id", attr.ID},
		{"display_name", attr.DisplayName.Default()},
		{"description", attr.Description.Default()},
		{"value_type", attr.ValueType},
		{"mandatory", attr.Mandatory},
		{"searchable", attr.Searchable},
		{"system", attr.System},
		{"localizable", attr.Localizable},
		{"site_specific", attr.SiteSpecific},
		{"visible", attr.Visible},
		{"read_only", attr.ReadOnly},
		{"queryable", attr.Queryable},
		{"externally_managed", attr.ExternallyManaged},
		{"externally_defined", attr.ExternallyDefined},
		{"order_required", attr.OrderRequired},
		{"multi_value_type", attr.MultiValueType},
		{"set_value_type", attr.SetValueType},
		{"min_length", attr.MinLength},
		{"field_length", attr.FieldLength},
		{"field_height", attr.FieldHeight},
		{"scale", attr.Scale},
		{"unit", attr.Unit},
		{"regex", attr.Regex},
		{"effective_id", attr.EffectiveID},
	}
	nodes := make([]Node, 0, len(fields))
	for _, f := range fields {
		nodes = append(nodes, leaf(fmt.Sprintf("%s: %v", f.name, f.value), path))
	}
	return nodes
}

// resourceFor selects the catalog resource serving a category's attribute
// calls. Site preferences piggyback on the system object resource.
func resourceFor(category Category) string {
	if category == CategoryCustom {
		return "customObjectDefinitions"
	}
	return "systemObjectDefinitions"
}

func categorySegment(category Category) string {
	switch category {
	case CategoryCustom:
		return "customObjectDefinitions"
	case CategorySitePreferences:
		return "sitePreferences"
	default:
		return "systemObjectDefinitions"
	}
}
