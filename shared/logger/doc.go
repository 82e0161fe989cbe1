// Copyright 2025 SFCC Metadata Explorer contributors
// SPDX-License-Identifier: Apache-2.0

/*
Package logger provides structured JSON logging for explorer components.

Each log entry is a single JSON line on stdout carrying:
  - Timestamp (RFC3339Nano)
  - Log level (DEBUG, INFO, WARN, ERROR)
  - Component name (resolver, executor, materializer, ...)
  - Sandbox instance hostname (for multi-instance setups)
  - Request ID (one OCAPI round trip)
  - Custom fields

Create a logger for your component and bind it to the active instance:

	log := logger.New("materializer").WithInstance(conn.Hostname)

Log a message with request correlation:

	log.Info(requestID, "expanding node", map[string]interface{}{
	    "kind":  node.Kind.String(),
	    "label": node.Label,
	})

Logger instances are safe for concurrent use from multiple goroutines.
*/
package logger
