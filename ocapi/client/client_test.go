// Copyright 2025 SFCC Metadata Explorer contributors
// SPDX-License-Identifier: Apache-2.0

package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/david-mkhitaryan-dev/sfcc-metadata-explorer/ocapi"
)

func getCall(endpoint string) ocapi.ResolvedCall {
	return ocapi.ResolvedCall{
		Resource:      "systemObjectDefinitions",
		Call:          "getAll",
		Endpoint:      endpoint,
		Method:        http.MethodGet,
		Headers:       map[string]string{"Content-Type": "application/json"},
		Authorization: ocapi.AuthBearer,
	}
}

func newTestClient(ts *httptest.Server) *Client {
	return New(Config{
		HTTPClient: ts.Client(),
		Tokens:     StaticToken("token-123"),
		RetryDelay: time.Millisecond,
	})
}

func TestExecute_DecodesListEnvelope(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer token-123", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		assert.NotEmpty(t, r.Header.Get("X-Request-ID"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"count":2,"total":2,"data":[{"object_type":"Product"},{"object_type":"Order"}]}`))
	}))
	defer ts.Close()

	c := newTestClient(ts)
	resp, err := c.Execute(context.Background(), getCall(ts.URL+"/system_object_definitions"))
	require.NoError(t, err)

	rows, err := resp.DataRows()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Product", rows[0]["object_type"])
	assert.Equal(t, 2, resp.Total())
}

func TestExecute_SetupErrorNeverReachesNetwork(t *testing.T) {
	var hits int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
	}))
	defer ts.Close()

	c := newTestClient(ts)
	_, err := c.Execute(context.Background(), ocapi.ResolvedCall{
		Resource:    "systemObjectDefinitions",
		Call:        "getAll",
		SetupError:  true,
		SetupErrMsg: "missing required parameter: select",
	})

	require.ErrorIs(t, err, ErrSetup)
	assert.Zero(t, atomic.LoadInt32(&hits))
}

func TestExecute_RetriesOnRetryableStatus(t *testing.T) {
	var hits int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&hits, 1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(`{"count":0}`))
	}))
	defer ts.Close()

	c := newTestClient(ts)
	resp, err := c.Execute(context.Background(), getCall(ts.URL+"/sites"))
	require.NoError(t, err)
	assert.Equal(t, int32(2), atomic.LoadInt32(&hits))

	rows, err := resp.DataRows()
	require.NoError(t, err)
	assert.Empty(t, rows)
	assert.Equal(t, int64(1), c.Metrics().Snapshot().Retries)
}

func TestExecute_NoRetryForPost(t *testing.T) {
	var hits int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer ts.Close()

	c := newTestClient(ts)
	call := getCall(ts.URL + "/jobs")
	call.Method = http.MethodPost

	_, err := c.Execute(context.Background(), call)
	require.Error(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&hits))
}

func TestExecute_FaultBecomesAPIError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"_v":"23.2","fault":{"type":"ObjectTypeNotFoundException","message":"No object type with ID 'Nope'."}}`))
	}))
	defer ts.Close()

	c := newTestClient(ts)
	_, err := c.Execute(context.Background(), getCall(ts.URL+"/system_object_definitions/Nope"))
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Equal(t, "ObjectTypeNotFoundException", apiErr.Type)
	assert.True(t, apiErr.IsNotFound())
	assert.False(t, apiErr.IsAuthError())
}

func TestExecute_EmptyDeleteBody(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer ts.Close()

	c := newTestClient(ts)
	call := getCall(ts.URL + "/attribute_definitions/a1")
	call.Method = http.MethodDelete

	resp, err := c.Execute(context.Background(), call)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Nil(t, resp.Body)
}

func TestExecute_ResponseSizeLimit(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(make([]byte, 2048))
	}))
	defer ts.Close()

	c := New(Config{
		HTTPClient:      ts.Client(),
		Tokens:          StaticToken("t"),
		MaxResponseSize: 1024,
		RetryDelay:      time.Millisecond,
	})

	_, err := c.Execute(context.Background(), getCall(ts.URL))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exceeds limit")
}

func TestExecute_MissingTokenProvider(t *testing.T) {
	c := New(Config{RetryDelay: time.Millisecond})

	_, err := c.Execute(context.Background(), getCall("https://host.example/x"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "token")
}

func TestStaticToken(t *testing.T) {
	tok, err := StaticToken("abc").Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "abc", tok)

	_, err = StaticToken("").Token(context.Background())
	assert.Error(t, err)
}

func TestMetrics_RecordsFailures(t *testing.T) {
	m := NewCallMetrics()
	m.Record(10*time.Millisecond, nil)
	m.Record(30*time.Millisecond, errors.New("boom"))

	snap := m.Snapshot()
	assert.Equal(t, int64(2), snap.Calls)
	assert.Equal(t, int64(1), snap.Failures)
	assert.Equal(t, 20*time.Millisecond, snap.AvgLatency)
}

func TestResponse_DataRowsSchemaMismatch(t *testing.T) {
	resp := &Response{StatusCode: 200, Body: map[string]interface{}{"unexpected": true}}
	_, err := resp.DataRows()
	require.ErrorIs(t, err, ErrSchemaMismatch)

	resp = &Response{StatusCode: 200, Body: map[string]interface{}{"data": "not-a-list"}}
	_, err = resp.DataRows()
	require.ErrorIs(t, err, ErrSchemaMismatch)
}
