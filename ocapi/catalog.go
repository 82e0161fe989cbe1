// Copyright 2025 SFCC Metadata Explorer contributors
// SPDX-License-Identifier: Apache-2.0

package ocapi

// ParamType is the expected runtime type of a call parameter
type ParamType string

const (
	ParamString  ParamType = "string"
	ParamNumber  ParamType = "number"
	ParamBoolean ParamType = "boolean"
)

// ParamLocation states where a parameter is bound in the resolved URL
type ParamLocation int

const (
	// PathParam replaces a {placeholder} token in the path template
	PathParam ParamLocation = iota
	// QueryParam is appended to the query string, percent-encoded
	QueryParam
)

// Param declares one required parameter of a call
type Param struct {
	ID       string
	Type     ParamType
	Location ParamLocation
}

// Call declares one operation within a resource: the HTTP method, the path
// template relative to the Data API version segment, default headers and
// the full set of required parameters.
type Call struct {
	Path          string
	Method        string
	Authorization string
	Headers       map[string]string
	Params        []Param
}

// Resource is a named family of remote endpoints
type Resource struct {
	Calls map[string]Call
}

// Catalog is the static table mapping (resource, call) pairs to endpoint
// declarations. It contains no logic; the Resolver consumes it.
type Catalog struct {
	// BasePath is the Data API prefix inserted between the host and the
	// version segment.
	BasePath string
	// APIVersion is the default version segment (e.g. v23_2)
	APIVersion string
	Resources  map[string]Resource
}

const (
	// DefaultBasePath is the OCAPI Data API prefix
	DefaultBasePath = "/s/-/dw/data/"

	// DefaultAPIVersion is the Data API version used when the settings
	// file does not override it
	DefaultAPIVersion = "v23_2"

	// AuthBearer marks calls that require an OAuth bearer token
	AuthBearer = "BEARER"
)

var jsonHeaders = map[string]string{
	"Content-Type": "application/json",
}

// DefaultCatalog returns the endpoint catalog for the OCAPI Data API.
// Every {placeholder} in a path template has a matching PathParam entry
// and every PathParam entry has a matching token (verified by tests).
func DefaultCatalog() Catalog {
	return Catalog{
		BasePath:   DefaultBasePath,
		APIVersion: DefaultAPIVersion,
		Resources: map[string]Resource{
			"systemObjectDefinitions": {
				Calls: map[string]Call{
					"get": {
						Path:          "system_object_definitions/{objectType}",
						Method:        "GET",
						Authorization: AuthBearer,
						Headers:       jsonHeaders,
						Params: []Param{
							{ID: "objectType", Type: ParamString, Location: PathParam},
						},
					},
					"getAll": {
						Path:          "system_object_definitions",
						Method:        "GET",
						Authorization: AuthBearer,
						Headers:       jsonHeaders,
						Params: []Param{
							{ID: "select", Type: ParamString, Location: QueryParam},
							{ID: "count", Type: ParamNumber, Location: QueryParam},
						},
					},
					"getAttributes": {
						Path:          "system_object_definitions/{objectType}/attribute_definitions",
						Method:        "GET",
						Authorization: AuthBearer,
						Headers:       jsonHeaders,
						Params: []Param{
							{ID: "objectType", Type: ParamString, Location: PathParam},
							{ID: "select", Type: ParamString, Location: QueryParam},
							{ID: "count", Type: ParamNumber, Location: QueryParam},
						},
					},
					"getAttribute": {
						Path:          "system_object_definitions/{objectType}/attribute_definitions/{id}",
						Method:        "GET",
						Authorization: AuthBearer,
						Headers:       jsonHeaders,
						Params: []Param{
							{ID: "objectType", Type: ParamString, Location: PathParam},
							{ID: "id", Type: ParamString, Location: PathParam},
							{ID: "expand", Type: ParamString, Location: QueryParam},
						},
					},
					"createAttribute": {
						Path:          "system_object_definitions/{objectType}/attribute_definitions/{id}",
						Method:        "PUT",
						Authorization: AuthBearer,
						Headers:       jsonHeaders,
						Params: []Param{
							{ID: "objectType", Type: ParamString, Location: PathParam},
							{ID: "id", Type: ParamString, Location: PathParam},
						},
					},
					"deleteAttribute": {
						Path:          "system_object_definitions/{objectType}/attribute_definitions/{id}",
						Method:        "DELETE",
						Authorization: AuthBearer,
						Headers:       jsonHeaders,
						Params: []Param{
							{ID: "objectType", Type: ParamString, Location: PathParam},
							{ID: "id", Type: ParamString, Location: PathParam},
						},
					},
					"getAttributeGroups": {
						Path:          "system_object_definitions/{objectType}/attribute_groups",
						Method:        "GET",
						Authorization: AuthBearer,
						Headers:       jsonHeaders,
						Params: []Param{
							{ID: "objectType", Type: ParamString, Location: PathParam},
							{ID: "select", Type: ParamString, Location: QueryParam},
							{ID: "count", Type: ParamNumber, Location: QueryParam},
							{ID: "expand", Type: ParamString, Location: QueryParam},
						},
					},
					"createAttributeGroup": {
						Path:          "system_object_definitions/{objectType}/attribute_groups/{id}",
						Method:        "PUT",
						Authorization: AuthBearer,
						Headers:       jsonHeaders,
						Params: []Param{
							{ID: "objectType", Type: ParamString, Location: PathParam},
							{ID: "id", Type: ParamString, Location: PathParam},
						},
					},
					"assignAttributeToGroup": {
						Path:          "system_object_definitions/{objectType}/attribute_groups/{groupId}/attribute_definitions/{attributeId}",
						Method:        "PUT",
						Authorization: AuthBearer,
						Headers:       jsonHeaders,
						Params: []Param{
							{ID: "objectType", Type: ParamString, Location: PathParam},
							{ID: "groupId", Type: ParamString, Location: PathParam},
							{ID: "attributeId", Type: ParamString, Location: PathParam},
						},
					},
				},
			},
			"customObjectDefinitions": {
				Calls: map[string]Call{
					"getAttributes": {
						Path:          "custom_object_definitions/{objectType}/attribute_definitions",
						Method:        "GET",
						Authorization: AuthBearer,
						Headers:       jsonHeaders,
						Params: []Param{
							{ID: "objectType", Type: ParamString, Location: PathParam},
							{ID: "select", Type: ParamString, Location: QueryParam},
							{ID: "count", Type: ParamNumber, Location: QueryParam},
						},
					},
					"getAttribute": {
						Path:          "custom_object_definitions/{objectType}/attribute_definitions/{id}",
						Method:        "GET",
						Authorization: AuthBearer,
						Headers:       jsonHeaders,
						Params: []Param{
							{ID: "objectType", Type: ParamString, Location: PathParam},
							{ID: "id", Type: ParamString, Location: PathParam},
							{ID: "expand", Type: ParamString, Location: QueryParam},
						},
					},
					"createAttribute": {
						Path:          "custom_object_definitions/{objectType}/attribute_definitions/{id}",
						Method:        "PUT",
						Authorization: AuthBearer,
						Headers:       jsonHeaders,
						Params: []Param{
							{ID: "objectType", Type: ParamString, Location: PathParam},
							{ID: "id", Type: ParamString, Location: PathParam},
						},
					},
					"deleteAttribute": {
						Path:          "custom_object_definitions/{objectType}/attribute_definitions/{id}",
						Method:        "DELETE",
						Authorization: AuthBearer,
						Headers:       jsonHeaders,
						Params: []Param{
							{ID: "objectType", Type: ParamString, Location: PathParam},
							{ID: "id", Type: ParamString, Location: PathParam},
						},
					},
				},
			},
			"sitePreferences": {
				Calls: map[string]Call{
					"get": {
						Path:          "site_preferences/preference_groups/{groupId}/{instanceType}/preferences/{preferenceId}",
						Method:        "GET",
						Authorization: AuthBearer,
						Headers:       jsonHeaders,
						Params: []Param{
							{ID: "groupId", Type: ParamString, Location: PathParam},
							{ID: "instanceType", Type: ParamString, Location: PathParam},
							{ID: "preferenceId", Type: ParamString, Location: PathParam},
							{ID: "expand", Type: ParamString, Location: QueryParam},
						},
					},
				},
			},
			"sites": {
				Calls: map[string]Call{
					"getAll": {
						Path:          "sites",
						Method:        "GET",
						Authorization: AuthBearer,
						Headers:       jsonHeaders,
						Params: []Param{
							{ID: "select", Type: ParamString, Location: QueryParam},
							{ID: "count", Type: ParamNumber, Location: QueryParam},
						},
					},
				},
			},
		},
	}
}
