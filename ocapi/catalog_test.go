// Copyright 2025 SFCC Metadata Explorer contributors
// SPDX-License-Identifier: Apache-2.0

package ocapi

import (
	"fmt"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var placeholderPattern = regexp.MustCompile(`\{([^}]+)\}`)

// Every {token} in a path template must have a matching PathParam entry and
// every PathParam entry must be used by a token.
func TestDefaultCatalog_PathTokensMatchParams(t *testing.T) {
	catalog := DefaultCatalog()
	require.NotEmpty(t, catalog.Resources)

	for resName, res := range catalog.Resources {
		for callName, call := range res.Calls {
			t.Run(fmt.Sprintf("%s.%s", resName, callName), func(t *testing.T) {
				tokens := map[string]bool{}
				for _, m := range placeholderPattern.FindAllStringSubmatch(call.Path, -1) {
					tokens[m[1]] = true
				}

				pathParams := map[string]bool{}
				for _, p := range call.Params {
					if p.Location == PathParam {
						pathParams[p.ID] = true
					}
				}

				for token := range tokens {
					assert.Truef(t, pathParams[token],
						"token {%s} in path %q has no PATH param", token, call.Path)
				}
				for id := range pathParams {
					assert.Truef(t, tokens[id],
						"PATH param %q is unused by path %q", id, call.Path)
				}
			})
		}
	}
}

func TestDefaultCatalog_DeclaredCallKeys(t *testing.T) {
	catalog := DefaultCatalog()

	system := catalog.Resources["systemObjectDefinitions"]
	for _, call := range []string{
		"get", "getAll", "getAttribute", "getAttributes",
		"createAttribute", "deleteAttribute",
		"createAttributeGroup", "getAttributeGroups", "assignAttributeToGroup",
	} {
		_, ok := system.Calls[call]
		assert.Truef(t, ok, "systemObjectDefinitions is missing call %q", call)
	}

	custom := catalog.Resources["customObjectDefinitions"]
	for _, call := range []string{"getAttributes", "getAttribute", "createAttribute", "deleteAttribute"} {
		_, ok := custom.Calls[call]
		assert.Truef(t, ok, "customObjectDefinitions is missing call %q", call)
	}

	_, ok := catalog.Resources["sitePreferences"].Calls["get"]
	assert.True(t, ok, "sitePreferences is missing call get")

	_, ok = catalog.Resources["sites"].Calls["getAll"]
	assert.True(t, ok, "sites is missing call getAll")
}

func TestDefaultCatalog_EveryCallHasMethodAndAuth(t *testing.T) {
	catalog := DefaultCatalog()

	for resName, res := range catalog.Resources {
		for callName, call := range res.Calls {
			assert.NotEmptyf(t, call.Method, "%s.%s has no method", resName, callName)
			assert.Equalf(t, AuthBearer, call.Authorization, "%s.%s authorization", resName, callName)
			assert.Equalf(t, "application/json", call.Headers["Content-Type"],
				"%s.%s content type header", resName, callName)
		}
	}
}
