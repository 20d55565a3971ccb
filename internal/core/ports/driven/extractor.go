package driven

import "github.com/custodia-labs/bureau-cli/internal/core/domain"

// ReportExtractor maps a raw bureau document onto the normalised report.
//
// Extraction is synchronous and side-effect free. The only failure is
// domain.ErrMalformedDocument; every other irregularity degrades to defaults.
type ReportExtractor interface {
	Extract(data []byte) (*domain.Report, error)
}

// FormatExtractor maps the root of one detected schema onto a report.
// Implementations never fail: missing or oddly shaped fields become defaults.
type FormatExtractor interface {
	// Format returns the schema this extractor handles.
	Format() domain.ReportFormat

	// Extract builds a report from the schema root.
	Extract(root any) domain.Report
}
