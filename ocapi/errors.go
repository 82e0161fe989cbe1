// Copyright 2025 SFCC Metadata Explorer contributors
// SPDX-License-Identifier: Apache-2.0

package ocapi

// OCAPIError represents errors scoped to one resource/call pair.
type OCAPIError struct {
	Resource string
	Call     string
	Message  string
	Cause    error
}

func (e *OCAPIError) Error() string {
	if e.Cause != nil {
		return e.Resource + "." + e.Call + ": " + e.Message + " (cause: " + e.Cause.Error() + ")"
	}
	return e.Resource + "." + e.Call + ": " + e.Message
}

func (e *OCAPIError) Unwrap() error {
	return e.Cause
}

// NewOCAPIError creates a new OCAPIError
func NewOCAPIError(resource, call, message string, cause error) *OCAPIError {
	return &OCAPIError{
		Resource: resource,
		Call:     call,
		Message:  message,
		Cause:    cause,
	}
}
