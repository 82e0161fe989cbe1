// Copyright 2025 SFCC Metadata Explorer contributors
// SPDX-License-Identifier: Apache-2.0

package tree

import (
	"strings"

	"github.com/david-mkhitaryan-dev/sfcc-metadata-explorer/metadata"
)

// NodeKind is the closed set of tree node variants. The materializer
// dispatches exhaustively on it; there are no free-form type strings.
type NodeKind int

const (
	KindRoot NodeKind = iota
	KindBaseCategory
	KindObjectTypeDefinition
	KindParentContainer
	KindObjectAttributeDefinition
	KindObjectAttributeGroup
	KindObjectAttributeValueDefinition
	KindValueDefinitionList
	KindStringList
	KindSite
	KindLeaf
)

var kindNames = map[NodeKind]string{
	KindRoot:                           "root",
	KindBaseCategory:                   "baseCategory",
	KindObjectTypeDefinition:           "objectTypeDefinition",
	KindParentContainer:                "parentContainer",
	KindObjectAttributeDefinition:      "objectAttributeDefinition",
	KindObjectAttributeGroup:           "objectAttributeGroup",
	KindObjectAttributeValueDefinition: "objectAttributeValueDefinition",
	KindValueDefinitionList:            "valueDefinitionList",
	KindStringList:                     "stringList",
	KindSite:                           "site",
	KindLeaf:                           "leaf",
}

func (k NodeKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Category selects which top-level family a node belongs to. It decides
// which catalog resource serves the node's list calls.
type Category int

const (
	CategoryNone Category = iota
	CategorySystem
	CategoryCustom
	CategorySitePreferences
)

// ContainerKind discriminates the two fixed containers under an object
// type definition node.
type ContainerKind int

const (
	ContainerNone ContainerKind = iota
	ContainerAttributes
	ContainerGroups
)

// Informational is the payload of a node that carries a message instead of
// data. Failure distinguishes "unable to load" from "empty but successful"
// without label matching.
type Informational struct {
	Message string
	Failure bool
}

// Node is the atomic unit of the hierarchical view. Nodes are immutable
// after creation; re-expansion re-creates children from scratch. ParentPath
// is the dot-joined lineage used both for display grouping and to re-derive
// ancestor identifiers (the owning object type is its last segment for
// attribute and group nodes).
type Node struct {
	Label      string
	Expandable bool
	Kind       NodeKind
	Category   Category
	Container  ContainerKind
	ParentPath string

	// GroupID carries the owning preference group for nodes in the site
	// preference family, where the group is needed for value lookups.
	GroupID string

	// Payload: exactly one of the following is set for data-bearing nodes.
	TypeDef  *metadata.ObjectTypeDefinition
	AttrDef  *metadata.ObjectAttributeDefinition
	Group    *metadata.ObjectAttributeGroup
	ValueDef *metadata.ObjectAttributeValueDefinition
	Values   []metadata.ObjectAttributeValueDefinition
	Strings  []string
	Info     *Informational
}

// PathSegments returns the lineage split at dots
func (n Node) PathSegments() []string {
	if n.ParentPath == "" {
		return nil
	}
	return strings.Split(n.ParentPath, ".")
}

// LastPathSegment returns the final lineage segment, or "" for root-level
// nodes.
func (n Node) LastPathSegment() string {
	segments := n.PathSegments()
	if len(segments) == 0 {
		return ""
	}
	return segments[len(segments)-1]
}

// OwningObjectType derives the object type an attribute or group node
// belongs to from its lineage.
func (n Node) OwningObjectType() string {
	return n.LastPathSegment()
}

// IsInformational reports whether the node carries a message payload
func (n Node) IsInformational() bool {
	return n.Info != nil
}

// childPath extends a lineage by one segment
func childPath(parentPath, segment string) string {
	if parentPath == "" {
		return segment
	}
	return parentPath + "." + segment
}

// leaf builds a terminal node with no payload
func leaf(label, parentPath string) Node {
	return Node{
		Label:      label,
		Expandable: false,
		Kind:       KindLeaf,
		ParentPath: parentPath,
	}
}

// infoLeaf builds a terminal informational node
func infoLeaf(message, parentPath string, failure bool) Node {
	return Node{
		Label:      message,
		Expandable: false,
		Kind:       KindLeaf,
		ParentPath: parentPath,
		Info:       &Informational{Message: message, Failure: failure},
	}
}
