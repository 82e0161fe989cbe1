// Copyright 2025 SFCC Metadata Explorer contributors
// SPDX-License-Identifier: Apache-2.0

package ocapi

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticConn string

func (s staticConn) Hostname(ctx context.Context) (string, error) {
	if s == "" {
		return "", errors.New("no dw.json found")
	}
	return string(s), nil
}

func newTestResolver(host string) *Resolver {
	return NewResolver(DefaultCatalog(), staticConn(host), nil)
}

func TestResolve_ValidCallHasNoResidualPlaceholders(t *testing.T) {
	r := newTestResolver("dev01.sandbox.example.com")

	call := r.Resolve(context.Background(), "systemObjectDefinitions", "getAttributes", map[string]interface{}{
		"objectType": "Product",
		"select":     "(**)",
		"count":      700,
	})

	require.False(t, call.SetupError, "setup error: %s", call.SetupErrMsg)
	assert.NotContains(t, call.Endpoint, "{")
	assert.NotContains(t, call.Endpoint, "}")
	assert.Equal(t, "GET", call.Method)
	assert.Contains(t, call.Endpoint, "/system_object_definitions/Product/attribute_definitions")
	assert.Contains(t, call.Endpoint, "count=700")
}

func TestResolve_QueryParameterEncoding(t *testing.T) {
	// Single declared query parameter against a fixed v20_4 base endpoint.
	catalog := Catalog{
		APIVersion: "v20_4",
		Resources: map[string]Resource{
			"systemObjectDefinitions": {
				Calls: map[string]Call{
					"getAll": {
						Path:    "system_object_definitions",
						Method:  "GET",
						Headers: jsonHeaders,
						Params: []Param{
							{ID: "select", Type: ParamString, Location: QueryParam},
						},
					},
				},
			},
		},
	}
	r := NewResolver(catalog, staticConn("https://host.example"), nil)

	call := r.Resolve(context.Background(), "systemObjectDefinitions", "getAll", map[string]interface{}{
		"select": "(**)",
	})

	require.False(t, call.SetupError, "setup error: %s", call.SetupErrMsg)
	assert.Equal(t,
		"https://host.example/s/-/dw/data/v20_4/system_object_definitions?select=%28%2A%2A%29",
		call.Endpoint)
}

func TestResolve_UnknownResource(t *testing.T) {
	r := newTestResolver("host.example")

	call := r.Resolve(context.Background(), "inventoryLists", "getAll", nil)

	assert.True(t, call.SetupError)
	assert.Contains(t, call.SetupErrMsg, "unknown resource")
	assert.Empty(t, call.Endpoint)
}

func TestResolve_UnknownCall(t *testing.T) {
	r := newTestResolver("host.example")

	call := r.Resolve(context.Background(), "systemObjectDefinitions", "patchAll", nil)

	assert.True(t, call.SetupError)
	assert.Contains(t, call.SetupErrMsg, "unknown call")
}

func TestResolve_CollectsAllViolations(t *testing.T) {
	r := newTestResolver("host.example")

	// objectType is missing entirely, count carries the wrong type.
	call := r.Resolve(context.Background(), "systemObjectDefinitions", "getAttributes", map[string]interface{}{
		"select": "(**)",
		"count":  "700",
	})

	require.True(t, call.SetupError)
	lines := strings.Split(call.SetupErrMsg, "\n")
	assert.Len(t, lines, 2)
	assert.Contains(t, call.SetupErrMsg, "missing required parameter: objectType")
	assert.Contains(t, call.SetupErrMsg, "parameter count has wrong type")
}

func TestResolve_MissingConnection(t *testing.T) {
	r := NewResolver(DefaultCatalog(), staticConn(""), nil)

	call := r.Resolve(context.Background(), "systemObjectDefinitions", "getAll", map[string]interface{}{
		"select": "(**)",
		"count":  500,
	})

	assert.True(t, call.SetupError)
	assert.Contains(t, call.SetupErrMsg, "no connection configured")
}

func TestResolve_BodyEncoding(t *testing.T) {
	r := newTestResolver("host.example")

	call := r.Resolve(context.Background(), "systemObjectDefinitions", "createAttribute", map[string]interface{}{
		"objectType": "Product",
		"id":         "myAttr",
		BodyKey: map[string]interface{}{
			"value_type": "string",
		},
	})

	require.False(t, call.SetupError, "setup error: %s", call.SetupErrMsg)
	assert.Equal(t, "PUT", call.Method)
	assert.JSONEq(t, `{"value_type":"string"}`, string(call.Body))
}

func TestResolve_PathParameterSubstitution(t *testing.T) {
	r := newTestResolver("host.example")

	call := r.Resolve(context.Background(), "systemObjectDefinitions", "assignAttributeToGroup", map[string]interface{}{
		"objectType":  "SitePreferences",
		"groupId":     "storefront",
		"attributeId": "showMiniCart",
	})

	require.False(t, call.SetupError, "setup error: %s", call.SetupErrMsg)
	assert.Contains(t, call.Endpoint,
		"/system_object_definitions/SitePreferences/attribute_groups/storefront/attribute_definitions/showMiniCart")
}

func TestFormatParamValue(t *testing.T) {
	tests := []struct {
		name  string
		value interface{}
		typ   ParamType
		want  string
		ok    bool
	}{
		{"string", "Product", ParamString, "Product", true},
		{"string rejects int", 5, ParamString, "", false},
		{"int", 700, ParamNumber, "700", true},
		{"float64 whole", float64(150), ParamNumber, "150", true},
		{"number rejects string", "700", ParamNumber, "", false},
		{"bool", true, ParamBoolean, "true", true},
		{"bool rejects string", "true", ParamBoolean, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := formatParamValue(tt.value, tt.typ)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}
