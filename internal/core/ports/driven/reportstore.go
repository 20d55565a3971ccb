package driven

import (
	"context"

	"github.com/custodia-labs/bureau-cli/internal/core/domain"
)

// ReportStore persists normalised reports.
// Backed by SQLite by default; PostgreSQL and memory are alternatives.
type ReportStore interface {
	// Save stores a report. It assigns ID and CreatedAt when they are unset.
	Save(ctx context.Context, report *domain.Report) error

	// Get retrieves a report by ID. Returns domain.ErrNotFound if it does not exist.
	Get(ctx context.Context, id string) (*domain.Report, error)

	// GetByPAN retrieves the most recently created report for a PAN.
	GetByPAN(ctx context.Context, pan string) (*domain.Report, error)

	// List returns report summaries, newest first.
	List(ctx context.Context, opts domain.ListOptions) ([]domain.ReportListing, error)

	// Delete removes a report. Returns domain.ErrNotFound if it does not exist.
	Delete(ctx context.Context, id string) error

	// DeleteAll removes every report.
	DeleteAll(ctx context.Context) error
}
