// Copyright 2025 SFCC Metadata Explorer contributors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"context"
	"fmt"
	"sync"
)

// FetchFunc produces the active connection, e.g. by reading a discovered
// dw.json or by prompting the host to pick one of several candidates.
type FetchFunc func(ctx context.Context) (*Connection, error)

// ConnectionCell is a once-initialized lazy holder for the session's
// connection. The fetch runs at most once; concurrent callers block on the
// same in-flight fetch and all observe the same result. The stored
// connection is treated as immutable for the rest of the session.
type ConnectionCell struct {
	fetch FetchFunc

	once sync.Once
	conn *Connection
	err  error
}

// NewConnectionCell creates a cell around the given fetch function
func NewConnectionCell(fetch FetchFunc) *ConnectionCell {
	return &ConnectionCell{fetch: fetch}
}

// NewStaticCell creates a cell pre-resolved to a fixed connection
func NewStaticCell(conn *Connection) *ConnectionCell {
	cell := &ConnectionCell{}
	cell.once.Do(func() {})
	cell.conn = conn
	if !conn.OK() {
		cell.err = fmt.Errorf("connection is not usable: missing hostname")
		cell.conn = nil
	}
	return cell
}

// Get returns the session connection, fetching it on first use
func (c *ConnectionCell) Get(ctx context.Context) (*Connection, error) {
	c.once.Do(func() {
		if c.fetch == nil {
			c.err = fmt.Errorf("no connection source configured")
			return
		}
		conn, err := c.fetch(ctx)
		if err != nil {
			c.err = err
			return
		}
		if !conn.OK() {
			c.err = fmt.Errorf("connection is not usable: missing hostname")
			return
		}
		c.conn = conn
	})
	return c.conn, c.err
}

// Hostname implements the resolver's ConnectionProvider contract
func (c *ConnectionCell) Hostname(ctx context.Context) (string, error) {
	conn, err := c.Get(ctx)
	if err != nil {
		return "", err
	}
	return conn.Hostname, nil
}
