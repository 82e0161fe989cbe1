// Copyright 2025 SFCC Metadata Explorer contributors
// SPDX-License-Identifier: Apache-2.0

package ocapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/david-mkhitaryan-dev/sfcc-metadata-explorer/shared/logger"
)

// BodyKey is the reserved data bag key whose value becomes the request body.
// A string or []byte value is used verbatim, anything else is JSON-encoded.
const BodyKey = "body"

// ConnectionProvider yields the hostname of the active sandbox connection.
// Implementations must be safe to call from concurrent resolutions and must
// converge on a single underlying fetch.
type ConnectionProvider interface {
	Hostname(ctx context.Context) (string, error)
}

// ResolvedCall is a fully prepared request descriptor. When SetupError is
// set the call must never be dispatched; Endpoint and Body are undefined
// and SetupErrMsg lists every violation found during resolution.
type ResolvedCall struct {
	Resource      string
	Call          string
	Endpoint      string
	Method        string
	Authorization string
	Headers       map[string]string
	Body          []byte
	SetupError    bool
	SetupErrMsg   string
}

// Resolver turns a (resource, call, data bag) triple into a ResolvedCall.
// All failure modes are reported as data on the ResolvedCall rather than as
// returned errors so callers can render a fallback node instead of failing.
type Resolver struct {
	catalog Catalog
	conn    ConnectionProvider
	log     *logger.Logger
}

// NewResolver creates a Resolver over the given catalog and connection source
func NewResolver(catalog Catalog, conn ConnectionProvider, log *logger.Logger) *Resolver {
	if log == nil {
		log = logger.New("resolver")
	}
	if catalog.APIVersion == "" {
		catalog.APIVersion = DefaultAPIVersion
	}
	if catalog.BasePath == "" {
		catalog.BasePath = DefaultBasePath
	}
	return &Resolver{catalog: catalog, conn: conn, log: log}
}

// Resolve validates the data bag against the catalog entry for
// (resource, call), substitutes path placeholders, appends percent-encoded
// query parameters and prefixes the active connection endpoint. Violations
// do not short-circuit; every missing or mistyped parameter is collected
// into one multi-line setup error.
func (r *Resolver) Resolve(ctx context.Context, resource, call string, data map[string]interface{}) ResolvedCall {
	setup := ResolvedCall{Resource: resource, Call: call}

	res, ok := r.catalog.Resources[resource]
	if !ok {
		return r.setupFailure(setup, fmt.Sprintf("unknown resource: %s", resource))
	}

	c, ok := res.Calls[call]
	if !ok {
		return r.setupFailure(setup, fmt.Sprintf("unknown call %s on resource %s", call, resource))
	}

	setup.Method = c.Method
	setup.Authorization = c.Authorization
	setup.Headers = make(map[string]string, len(c.Headers))
	for k, v := range c.Headers {
		setup.Headers[k] = v
	}

	path := c.Path
	var query strings.Builder
	var violations []string

	for _, param := range c.Params {
		value, present := data[param.ID]
		if !present {
			violations = append(violations, fmt.Sprintf("missing required parameter: %s", param.ID))
			continue
		}

		formatted, ok := formatParamValue(value, param.Type)
		if !ok {
			violations = append(violations, fmt.Sprintf(
				"parameter %s has wrong type: expected %s, got %T", param.ID, param.Type, value))
			continue
		}

		switch param.Location {
		case PathParam:
			token := "{" + param.ID + "}"
			if !strings.Contains(path, token) {
				violations = append(violations, fmt.Sprintf(
					"path template %s has no token for parameter %s", c.Path, param.ID))
				continue
			}
			path = strings.ReplaceAll(path, token, formatted)
		case QueryParam:
			if query.Len() == 0 {
				query.WriteString("?")
			} else {
				query.WriteString("&")
			}
			query.WriteString(url.QueryEscape(param.ID))
			query.WriteString("=")
			query.WriteString(url.QueryEscape(formatted))
		}
	}

	if len(violations) > 0 {
		return r.setupFailure(setup, strings.Join(violations, "\n"))
	}

	host, err := r.conn.Hostname(ctx)
	if err != nil {
		return r.setupFailure(setup, fmt.Sprintf("no connection configured: %v", err))
	}
	if host == "" {
		return r.setupFailure(setup, "no connection configured: empty hostname")
	}

	if body, present := data[BodyKey]; present {
		encoded, err := encodeBody(body)
		if err != nil {
			return r.setupFailure(setup, fmt.Sprintf("cannot encode request body: %v", err))
		}
		setup.Body = encoded
	}

	setup.Endpoint = buildEndpoint(host, r.catalog.BasePath, r.catalog.APIVersion, path) + query.String()
	return setup
}

// setupFailure records the violation message on the call and logs it. The
// returned call carries no endpoint and must not reach the network.
func (r *Resolver) setupFailure(setup ResolvedCall, msg string) ResolvedCall {
	setup.SetupError = true
	setup.SetupErrMsg = msg
	setup.Endpoint = ""
	setup.Body = nil
	r.log.Warn("", "call setup failed", map[string]interface{}{
		"resource": setup.Resource,
		"call":     setup.Call,
		"reason":   msg,
	})
	return setup
}

// formatParamValue checks the runtime type of a data bag value against the
// declared parameter type and renders it for URL use.
func formatParamValue(value interface{}, t ParamType) (string, bool) {
	switch t {
	case ParamString:
		s, ok := value.(string)
		return s, ok
	case ParamNumber:
		switch n := value.(type) {
		case int:
			return fmt.Sprintf("%d", n), true
		case int64:
			return fmt.Sprintf("%d", n), true
		case float64:
			return fmt.Sprintf("%v", n), true
		default:
			return "", false
		}
	case ParamBoolean:
		b, ok := value.(bool)
		if !ok {
			return "", false
		}
		return fmt.Sprintf("%t", b), true
	default:
		return "", false
	}
}

func encodeBody(body interface{}) ([]byte, error) {
	switch b := body.(type) {
	case nil:
		return nil, nil
	case []byte:
		return b, nil
	case string:
		return []byte(b), nil
	default:
		return json.Marshal(b)
	}
}

// buildEndpoint joins host, Data API prefix, version segment and call path
// into a fully qualified URL.
func buildEndpoint(host, basePath, apiVersion, path string) string {
	host = strings.TrimSuffix(host, "/")
	if !strings.HasPrefix(host, "http://") && !strings.HasPrefix(host, "https://") {
		host = "https://" + host
	}
	return host + basePath + apiVersion + "/" + strings.TrimPrefix(path, "/")
}
