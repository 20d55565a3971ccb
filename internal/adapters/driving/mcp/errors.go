// Package mcp provides an MCP (Model Context Protocol) server adapter for bureau.
// It lets AI assistants extract bureau XML and query stored reports.
package mcp

import "errors"

var (
	// ErrMissingIngestService is returned when the ingest service is not provided.
	ErrMissingIngestService = errors.New("mcp: ingest service is required")

	// ErrMissingReportService is returned when the report service is not provided.
	ErrMissingReportService = errors.New("mcp: report service is required")
)
