// Copyright 2025 SFCC Metadata Explorer contributors
// SPDX-License-Identifier: Apache-2.0

package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// ErrSchemaMismatch is returned when a response body does not carry the
// expected envelope (e.g. a list response with neither data nor count).
var ErrSchemaMismatch = errors.New("unexpected response shape")

// Response is a decoded OCAPI response. List endpoints wrap their rows in a
// data array with count/total bookkeeping; single-item endpoints return the
// raw document itself.
type Response struct {
	StatusCode int
	Body       map[string]interface{}
	RequestID  string
}

// DataRows returns the rows of a list response. A body with a count field
// but no data array is an empty-but-successful result and yields no rows;
// a body with neither is a schema mismatch.
func (r *Response) DataRows() ([]map[string]interface{}, error) {
	if r.Body == nil {
		return nil, fmt.Errorf("%w: empty body", ErrSchemaMismatch)
	}

	raw, ok := r.Body["data"]
	if !ok {
		if _, hasCount := r.Body["count"]; hasCount {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: body has no data array", ErrSchemaMismatch)
	}

	list, ok := raw.([]interface{})
	if !ok {
		return nil, fmt.Errorf("%w: data is not an array", ErrSchemaMismatch)
	}

	rows := make([]map[string]interface{}, 0, len(list))
	for _, item := range list {
		row, ok := item.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("%w: data row is not an object", ErrSchemaMismatch)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// Document returns the body of a single-item response
func (r *Response) Document() (map[string]interface{}, error) {
	if r.Body == nil {
		return nil, fmt.Errorf("%w: empty body", ErrSchemaMismatch)
	}
	return r.Body, nil
}

// Total returns the total field of a list response, or -1 when absent
func (r *Response) Total() int {
	if v, ok := r.Body["total"].(float64); ok {
		return int(v)
	}
	return -1
}

// APIError represents an OCAPI fault document
type APIError struct {
	StatusCode int
	Type       string
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("ocapi fault (status %d, type %s): %s", e.StatusCode, e.Type, e.Message)
}

// IsAuthError returns true for authentication/authorization faults
func (e *APIError) IsAuthError() bool {
	return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
}

// IsNotFound returns true when the addressed document does not exist
func (e *APIError) IsNotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// decodeEnvelope parses the response body and converts fault documents on
// non-2xx statuses into APIError values. 2xx responses with empty bodies
// (e.g. DELETE) decode to a nil body.
func decodeEnvelope(statusCode int, body []byte) (map[string]interface{}, *APIError) {
	var decoded map[string]interface{}
	if len(body) > 0 {
		if err := json.Unmarshal(body, &decoded); err != nil {
			decoded = nil
		}
	}

	if statusCode >= 200 && statusCode < 300 {
		return decoded, nil
	}

	apiErr := &APIError{StatusCode: statusCode}
	if fault, ok := decoded["fault"].(map[string]interface{}); ok {
		if t, ok := fault["type"].(string); ok {
			apiErr.Type = t
		}
		if m, ok := fault["message"].(string); ok {
			apiErr.Message = m
		}
	}
	if apiErr.Message == "" {
		msg := string(body)
		if len(msg) > 200 {
			msg = msg[:200] + "..."
		}
		apiErr.Message = msg
	}
	return nil, apiErr
}
