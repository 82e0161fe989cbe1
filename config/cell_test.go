// Copyright 2025 SFCC Metadata Explorer contributors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnectionCell_FetchesOnce(t *testing.T) {
	var fetches int32
	cell := NewConnectionCell(func(ctx context.Context) (*Connection, error) {
		atomic.AddInt32(&fetches, 1)
		return &Connection{Hostname: "host.example"}, nil
	})

	ctx := context.Background()
	for i := 0; i < 5; i++ {
		conn, err := cell.Get(ctx)
		require.NoError(t, err)
		assert.Equal(t, "host.example", conn.Hostname)
	}
	assert.Equal(t, int32(1), atomic.LoadInt32(&fetches))
}

func TestConnectionCell_ConcurrentCallersConverge(t *testing.T) {
	var fetches int32
	cell := NewConnectionCell(func(ctx context.Context) (*Connection, error) {
		atomic.AddInt32(&fetches, 1)
		return &Connection{Hostname: "host.example"}, nil
	})

	const callers = 32
	var wg sync.WaitGroup
	results := make([]*Connection, callers)

	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			conn, err := cell.Get(context.Background())
			require.NoError(t, err)
			results[i] = conn
		}(i)
	}
	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&fetches), "duplicate concurrent fetches must converge")
	for i := 1; i < callers; i++ {
		assert.Same(t, results[0], results[i])
	}
}

func TestConnectionCell_FetchErrorIsSticky(t *testing.T) {
	fetchErr := errors.New("no dw.json found")
	var fetches int32
	cell := NewConnectionCell(func(ctx context.Context) (*Connection, error) {
		atomic.AddInt32(&fetches, 1)
		return nil, fetchErr
	})

	_, err := cell.Get(context.Background())
	require.ErrorIs(t, err, fetchErr)
	_, err = cell.Get(context.Background())
	require.ErrorIs(t, err, fetchErr)
	assert.Equal(t, int32(1), atomic.LoadInt32(&fetches))
}

func TestConnectionCell_RejectsUnusableConnection(t *testing.T) {
	cell := NewConnectionCell(func(ctx context.Context) (*Connection, error) {
		return &Connection{}, nil
	})

	_, err := cell.Get(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing hostname")
}

func TestConnectionCell_Hostname(t *testing.T) {
	cell := NewStaticCell(&Connection{Hostname: "dev01.sandbox.example.com"})

	host, err := cell.Hostname(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "dev01.sandbox.example.com", host)
}

func TestConnectionCell_NoSource(t *testing.T) {
	cell := NewConnectionCell(nil)
	_, err := cell.Get(context.Background())
	assert.Error(t, err)
}
