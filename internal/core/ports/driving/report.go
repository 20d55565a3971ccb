package driving

import (
	"context"

	"github.com/custodia-labs/bureau-cli/internal/core/domain"
)

// ReportService queries stored reports.
type ReportService interface {
	// Get retrieves a report by ID.
	Get(ctx context.Context, id string) (*domain.Report, error)

	// GetByPAN retrieves the most recent report for an applicant PAN.
	GetByPAN(ctx context.Context, pan string) (*domain.Report, error)

	// List returns report summaries, newest first.
	List(ctx context.Context, opts domain.ListOptions) ([]domain.ReportListing, error)

	// Delete removes a report.
	Delete(ctx context.Context, id string) error
}
