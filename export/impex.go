// Copyright 2025 SFCC Metadata Explorer contributors
// SPDX-License-Identifier: Apache-2.0

// Package export renders metadata documents as system object impex XML
// suitable for site import on another instance.
package export

import (
	"encoding/xml"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/david-mkhitaryan-dev/sfcc-metadata-explorer/metadata"
	"github.com/david-mkhitaryan-dev/sfcc-metadata-explorer/tree"
)

// Namespace is the impex metadata schema namespace
const Namespace = "http://www.demandware.com/xml/impex/metadata/2006-10-31"

// defaultLang is the impex locale attribute for unlocalized values
const defaultLang = "x-default"

// SerializationError reports a document that could not be rendered. Export
// never degrades silently; a partial document is worse than none.
type SerializationError struct {
	Subject string
	Cause   error
}

func (e *SerializationError) Error() string {
	return fmt.Sprintf("cannot serialize %s: %v", e.Subject, e.Cause)
}

func (e *SerializationError) Unwrap() error {
	return e.Cause
}

// impexMetadata is the document root
type impexMetadata struct {
	XMLName    xml.Name        `xml:"metadata"`
	Xmlns      string          `xml:"xmlns,attr"`
	Extensions []typeExtension `xml:"type-extension"`
}

type typeExtension struct {
	TypeID     string                `xml:"type-id,attr"`
	Attributes *attributeDefinitions `xml:"custom-attribute-definitions,omitempty"`
	Groups     *groupDefinitions     `xml:"group-definitions,omitempty"`
}

type attributeDefinitions struct {
	Definitions []attributeDefinition `xml:"attribute-definition"`
}

type groupDefinitions struct {
	Groups []attributeGroup `xml:"attribute-group"`
}

// localizedValue renders one xml:lang variant of a localizable element
type localizedValue struct {
	Lang  string `xml:"xml:lang,attr"`
	Value string `xml:",chardata"`
}

// attributeDefinition mirrors the impex schema element. Field order
// matters; the schema validates child element sequence. Optional elements
// use pointers so absent means omitted, not empty.
type attributeDefinition struct {
	AttributeID           string           `xml:"attribute-id,attr"`
	DisplayName           []localizedValue `xml:"display-name"`
	Description           []localizedValue `xml:"description,omitempty"`
	Type                  string           `xml:"type"`
	LocalizableFlag       *bool            `xml:"localizable-flag,omitempty"`
	SiteSpecificFlag      *bool            `xml:"site-specific-flag,omitempty"`
	MandatoryFlag         bool             `xml:"mandatory-flag"`
	VisibleFlag           *bool            `xml:"visible-flag,omitempty"`
	ExternallyManagedFlag bool             `xml:"externally-managed-flag"`
	ExternallyDefinedFlag *bool            `xml:"externally-defined-flag,omitempty"`
	OrderRequiredFlag     *bool            `xml:"order-required-flag,omitempty"`
	MinLength             *int             `xml:"min-length,omitempty"`
	ValueDefinitions      *valueDefs       `xml:"value-definitions,omitempty"`
	DefaultValue          *string          `xml:"default-value,omitempty"`
}

type valueDefs struct {
	Definitions []valueDefinition `xml:"value-definition"`
}

type valueDefinition struct {
	Display []localizedValue `xml:"display"`
	Value   string           `xml:"value"`
}

type attributeGroup struct {
	GroupID     string           `xml:"group-id,attr"`
	DisplayName []localizedValue `xml:"display-name,omitempty"`
	Description []localizedValue `xml:"description,omitempty"`
	Attributes  []attributeRef   `xml:"attribute"`
}

type attributeRef struct {
	AttributeID string `xml:"attribute-id,attr"`
}

// NodeDocument serializes a tree node into a complete impex document. Only
// attribute definition and attribute group nodes are exportable; the owning
// object type comes from the node's lineage.
func NodeDocument(node tree.Node) (string, error) {
	switch node.Kind {
	case tree.KindObjectAttributeDefinition:
		if node.AttrDef == nil {
			return "", &SerializationError{Subject: node.Label, Cause: fmt.Errorf("attribute node has no definition payload")}
		}
		return AttributeDocument(node.OwningObjectType(), node.AttrDef)
	case tree.KindObjectAttributeGroup:
		if node.Group == nil {
			return "", &SerializationError{Subject: node.Label, Cause: fmt.Errorf("group node has no group payload")}
		}
		return GroupDocument(node.OwningObjectType(), node.Group)
	default:
		return "", &SerializationError{Subject: node.Label, Cause: fmt.Errorf("%s nodes are not exportable", node.Kind)}
	}
}

// AttributeDocument renders one attribute definition inside a type
// extension for its owning object type.
func AttributeDocument(objectType string, attr *metadata.ObjectAttributeDefinition) (string, error) {
	if objectType == "" {
		return "", &SerializationError{Subject: attr.ID, Cause: fmt.Errorf("owning object type is unknown")}
	}
	def, err := buildAttributeDefinition(objectType, attr)
	if err != nil {
		return "", err
	}
	doc := impexMetadata{
		Xmlns: Namespace,
		Extensions: []typeExtension{{
			TypeID:     objectType,
			Attributes: &attributeDefinitions{Definitions: []attributeDefinition{def}},
		}},
	}
	return render(attr.ID, doc)
}

// GroupDocument renders one attribute group with its member references
func GroupDocument(objectType string, group *metadata.ObjectAttributeGroup) (string, error) {
	if objectType == "" {
		return "", &SerializationError{Subject: group.ID, Cause: fmt.Errorf("owning object type is unknown")}
	}
	out := attributeGroup{
		GroupID:     group.ID,
		DisplayName: localized(group.DisplayName),
		Description: localized(group.Description),
	}
	for _, id := range group.MemberIDs {
		out.Attributes = append(out.Attributes, attributeRef{AttributeID: id})
	}
	doc := impexMetadata{
		Xmlns: Namespace,
		Extensions: []typeExtension{{
			TypeID: objectType,
			Groups: &groupDefinitions{Groups: []attributeGroup{out}},
		}},
	}
	return render(group.ID, doc)
}

// buildAttributeDefinition maps the document model onto the schema
// element. The flag set depends on the owning object type: Product carries
// the full storefront flag set, SitePreferences only the default value, all
// other types the common core.
func buildAttributeDefinition(objectType string, attr *metadata.ObjectAttributeDefinition) (attributeDefinition, error) {
	if attr.ID == "" {
		return attributeDefinition{}, &SerializationError{Subject: objectType, Cause: fmt.Errorf("attribute has no id")}
	}
	def := attributeDefinition{
		AttributeID:           attr.ID,
		DisplayName:           localizedAlways(attr.DisplayName),
		Description:           localizedAlways(attr.Description),
		Type:                  impexType(attr.ValueType),
		MandatoryFlag:         attr.Mandatory,
		ExternallyManagedFlag: attr.ExternallyManaged,
	}

	if attr.ValueType == metadata.ValueTypeString {
		minLength := attr.MinLength
		def.MinLength = &minLength
	}

	if attr.IsEnum() {
		defs := make([]valueDefinition, 0, len(attr.ValueDefinitions))
		for i := range attr.ValueDefinitions {
			v := &attr.ValueDefinitions[i]
			// Entries missing either half are unusable on import.
			if v.Value == nil || v.Display.Default() == "" {
				continue
			}
			defs = append(defs, valueDefinition{
				Display: []localizedValue{{Lang: defaultLang, Value: v.Display.Default()}},
				Value:   valueText(v.Value),
			})
		}
		if len(defs) > 0 {
			def.ValueDefinitions = &valueDefs{Definitions: defs}
		}
	}

	switch objectType {
	case "Product":
		def.LocalizableFlag = boolPtr(attr.Localizable)
		def.SiteSpecificFlag = boolPtr(attr.SiteSpecific)
		def.VisibleFlag = boolPtr(attr.Visible)
		def.OrderRequiredFlag = boolPtr(attr.OrderRequired)
		def.ExternallyDefinedFlag = boolPtr(attr.ExternallyDefined)
		if attr.DefaultValue != nil && attr.DefaultValue.Value != nil {
			text := valueText(attr.DefaultValue.Value)
			def.DefaultValue = &text
		}
	case metadata.SitePreferencesObjectType:
		if attr.DefaultValue != nil && attr.DefaultValue.Value != nil {
			text := valueText(attr.DefaultValue.Value)
			def.DefaultValue = &text
		}
	}

	return def, nil
}

func render(subject string, doc impexMetadata) (string, error) {
	out, err := xml.MarshalIndent(doc, "", "    ")
	if err != nil {
		return "", &SerializationError{Subject: subject, Cause: err}
	}
	return xml.Header + string(out) + "\n", nil
}

// localized projects a localized string into per-locale elements. The
// default locale maps to x-default; other locales keep their tags. Empty
// values are omitted.
func localized(ls metadata.LocalizedString) []localizedValue {
	if len(ls) == 0 {
		return nil
	}
	values := make([]localizedValue, 0, len(ls))
	if v := ls.Default(); v != "" {
		values = append(values, localizedValue{Lang: defaultLang, Value: v})
	}
	locales := make([]string, 0, len(ls))
	for lang := range ls {
		if lang != metadata.DefaultLocale && ls[lang] != "" {
			locales = append(locales, lang)
		}
	}
	sort.Strings(locales)
	for _, lang := range locales {
		values = append(values, localizedValue{Lang: lang, Value: ls[lang]})
	}
	if len(values) == 0 {
		return nil
	}
	return values
}

// localizedAlways is localized with a guaranteed x-default element, for
// schema positions that require the element even when the value is empty.
func localizedAlways(ls metadata.LocalizedString) []localizedValue {
	values := localized(ls)
	if len(values) == 0 {
		return []localizedValue{{Lang: defaultLang}}
	}
	return values
}

// impexType maps wire value types to schema type names
func impexType(valueType string) string {
	return strings.ReplaceAll(valueType, "_", "-")
}

// valueText renders an arbitrary wire value as element text. JSON numbers
// arrive as float64; integral ones are printed without a fraction.
func valueText(value interface{}) string {
	switch v := value.(type) {
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case float64:
		if v == math.Trunc(v) && math.Abs(v) < 1e15 {
			return strconv.FormatInt(int64(v), 10)
		}
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	default:
		return fmt.Sprintf("%v", v)
	}
}

func boolPtr(b bool) *bool {
	return &b
}
