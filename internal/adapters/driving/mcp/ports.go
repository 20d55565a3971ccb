package mcp

import (
	"github.com/custodia-labs/bureau-cli/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Ingest runs the extraction engine.
	Ingest driving.IngestService

	// Reports queries stored reports.
	Reports driving.ReportService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Ingest == nil {
		return ErrMissingIngestService
	}
	if p.Reports == nil {
		return ErrMissingReportService
	}
	return nil
}
