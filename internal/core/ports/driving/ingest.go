package driving

import (
	"context"

	"github.com/custodia-labs/bureau-cli/internal/core/domain"
)

// IngestService turns bureau documents into stored reports.
type IngestService interface {
	// Extract runs the extraction engine without persisting anything.
	Extract(upload domain.Upload) (*domain.Report, error)

	// Ingest validates, extracts and stores one upload.
	Ingest(ctx context.Context, upload domain.Upload) (*domain.Report, error)

	// IngestFile reads a file from disk and ingests it.
	IngestFile(ctx context.Context, path string) (*domain.Report, error)

	// Seed ingests every XML file in a directory.
	Seed(ctx context.Context, dir string, opts SeedOptions) (*SeedResult, error)

	// Watch ingests XML files as they appear in a directory until ctx is done.
	Watch(ctx context.Context, dir string, onResult func(WatchEvent)) error
}

// SeedOptions configures a batch load.
type SeedOptions struct {
	// Reset clears every stored report before loading.
	Reset bool
}

// SeedResult reports the outcome of a batch load.
type SeedResult struct {
	// Loaded lists files stored successfully, in load order.
	Loaded []SeededReport

	// Failed lists files that could not be ingested.
	Failed []SeedFailure
}

// SeededReport is one successfully loaded file.
type SeededReport struct {
	File     string
	ReportID string
	Name     string
}

// SeedFailure is one file that failed to load.
type SeedFailure struct {
	File string
	Err  error
}

// WatchEvent reports the outcome of ingesting one file seen by Watch.
type WatchEvent struct {
	File   string
	Report *domain.Report
	Err    error
}
