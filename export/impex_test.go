// Copyright 2025 SFCC Metadata Explorer contributors
// SPDX-License-Identifier: Apache-2.0

package export

import (
	"encoding/xml"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/david-mkhitaryan-dev/sfcc-metadata-explorer/metadata"
	"github.com/david-mkhitaryan-dev/sfcc-metadata-explorer/tree"
)

func TestAttributeDocument_ProductStringAttribute(t *testing.T) {
	attr := &metadata.ObjectAttributeDefinition{
		ID:          "myAttr",
		DisplayName: metadata.LocalizedString{"default": "My Attr"},
		ValueType:   "string",
		Mandatory:   true,
	}

	doc, err := AttributeDocument("Product", attr)

	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(doc, xml.Header))
	assert.Contains(t, doc, `xmlns="http://www.demandware.com/xml/impex/metadata/2006-10-31"`)
	assert.Contains(t, doc, `<type-extension type-id="Product">`)
	assert.Contains(t, doc, `<attribute-definition attribute-id="myAttr">`)
	assert.Contains(t, doc, `<display-name xml:lang="x-default">My Attr</display-name>`)
	assert.Contains(t, doc, `<type>string</type>`)
	assert.Contains(t, doc, `<mandatory-flag>true</mandatory-flag>`)
	assert.Contains(t, doc, `<externally-managed-flag>false</externally-managed-flag>`)
	// String attributes carry min-length even at zero.
	assert.Contains(t, doc, `<min-length>0</min-length>`)
	assert.Contains(t, doc, `<localizable-flag>false</localizable-flag>`)
	assert.NotContains(t, doc, "<value-definitions>")
}

func TestAttributeDocument_ProductCarriesStorefrontFlags(t *testing.T) {
	attr := &metadata.ObjectAttributeDefinition{
		ID:           "color",
		ValueType:    "string",
		Localizable:  true,
		SiteSpecific: true,
		DefaultValue: &metadata.ObjectAttributeValueDefinition{Value: "red"},
	}

	doc, err := AttributeDocument("Product", attr)

	require.NoError(t, err)
	assert.Contains(t, doc, `<localizable-flag>true</localizable-flag>`)
	assert.Contains(t, doc, `<site-specific-flag>true</site-specific-flag>`)
	assert.Contains(t, doc, `<visible-flag>false</visible-flag>`)
	assert.Contains(t, doc, `<order-required-flag>false</order-required-flag>`)
	assert.Contains(t, doc, `<externally-defined-flag>false</externally-defined-flag>`)
	assert.Contains(t, doc, `<default-value>red</default-value>`)
}

func TestAttributeDocument_NonProductOmitsStorefrontFlags(t *testing.T) {
	attr := &metadata.ObjectAttributeDefinition{
		ID:           "size",
		ValueType:    "string",
		Localizable:  true,
		DefaultValue: &metadata.ObjectAttributeValueDefinition{Value: "M"},
	}

	doc, err := AttributeDocument("Category", attr)

	require.NoError(t, err)
	assert.NotContains(t, doc, "localizable-flag")
	assert.NotContains(t, doc, "default-value")
}

func TestAttributeDocument_SitePreferencesKeepsDefaultValueOnly(t *testing.T) {
	attr := &metadata.ObjectAttributeDefinition{
		ID:           "siteTitle",
		ValueType:    "string",
		Localizable:  true,
		DefaultValue: &metadata.ObjectAttributeValueDefinition{Value: "Acme"},
	}

	doc, err := AttributeDocument("SitePreferences", attr)

	require.NoError(t, err)
	assert.Contains(t, doc, `<default-value>Acme</default-value>`)
	assert.NotContains(t, doc, "localizable-flag")
}

func TestAttributeDocument_EnumValueDefinitions(t *testing.T) {
	attr := &metadata.ObjectAttributeDefinition{
		ID:        "rating",
		ValueType: "enum_of_int",
		ValueDefinitions: []metadata.ObjectAttributeValueDefinition{
			{Value: float64(1), Display: metadata.LocalizedString{"default": "One"}},
			{Value: float64(2)},                                          // no display, dropped
			{Display: metadata.LocalizedString{"default": "Orphan"}},     // no value, dropped
			{Value: float64(3), Display: metadata.LocalizedString{"default": "Three"}},
		},
	}

	doc, err := AttributeDocument("Product", attr)

	require.NoError(t, err)
	assert.Contains(t, doc, `<type>enum-of-int</type>`)
	assert.Contains(t, doc, `<display xml:lang="x-default">One</display>`)
	assert.Contains(t, doc, `<value>1</value>`)
	assert.Contains(t, doc, `<value>3</value>`)
	assert.NotContains(t, doc, `<value>2</value>`)
	assert.NotContains(t, doc, "Orphan")
	assert.Equal(t, 2, strings.Count(doc, "<value-definition>"))
}

func TestAttributeDocument_TypeNamesUseHyphens(t *testing.T) {
	attr := &metadata.ObjectAttributeDefinition{ID: "tags", ValueType: "enum_of_string"}

	doc, err := AttributeDocument("Product", attr)

	require.NoError(t, err)
	assert.Contains(t, doc, `<type>enum-of-string</type>`)
}

func TestAttributeDocument_FailsWithoutOwner(t *testing.T) {
	attr := &metadata.ObjectAttributeDefinition{ID: "x", ValueType: "string"}

	_, err := AttributeDocument("", attr)

	var serr *SerializationError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, "x", serr.Subject)
}

func TestGroupDocument_MembersAsReferences(t *testing.T) {
	group := &metadata.ObjectAttributeGroup{
		ID:          "storefront",
		DisplayName: metadata.LocalizedString{"default": "Storefront"},
		MemberIDs:   []string{"color", "size"},
	}

	doc, err := GroupDocument("Product", group)

	require.NoError(t, err)
	assert.Contains(t, doc, `<type-extension type-id="Product">`)
	assert.Contains(t, doc, `<attribute-group group-id="storefront">`)
	assert.Contains(t, doc, `<display-name xml:lang="x-default">Storefront</display-name>`)
	assert.Contains(t, doc, `<attribute attribute-id="color">`)
	assert.Contains(t, doc, `<attribute attribute-id="size">`)
}

func TestNodeDocument_DerivesOwnerFromLineage(t *testing.T) {
	node := tree.Node{
		Label:      "myAttr",
		Kind:       tree.KindObjectAttributeDefinition,
		ParentPath: "root.systemObjectDefinitions.Product",
		AttrDef:    &metadata.ObjectAttributeDefinition{ID: "myAttr", ValueType: "string"},
	}

	doc, err := NodeDocument(node)

	require.NoError(t, err)
	assert.Contains(t, doc, `<type-extension type-id="Product">`)
}

func TestNodeDocument_RejectsNonExportableKinds(t *testing.T) {
	node := tree.Node{Label: "Attribute Definitions (3)", Kind: tree.KindParentContainer}

	_, err := NodeDocument(node)

	var serr *SerializationError
	assert.ErrorAs(t, err, &serr)
}

func TestAttributeDocument_OutputIsWellFormed(t *testing.T) {
	attr := &metadata.ObjectAttributeDefinition{
		ID:          "myAttr",
		DisplayName: metadata.LocalizedString{"default": "My Attr", "de": "Mein Attr"},
		ValueType:   "enum_of_string",
		ValueDefinitions: []metadata.ObjectAttributeValueDefinition{
			{Value: "a", Display: metadata.LocalizedString{"default": "A"}},
		},
	}

	doc, err := AttributeDocument("Product", attr)
	require.NoError(t, err)

	var decoded struct {
		XMLName    xml.Name `xml:"metadata"`
		Extensions []struct {
			TypeID string `xml:"type-id,attr"`
		} `xml:"type-extension"`
	}
	require.NoError(t, xml.Unmarshal([]byte(doc), &decoded))
	require.Len(t, decoded.Extensions, 1)
	assert.Equal(t, "Product", decoded.Extensions[0].TypeID)
}
