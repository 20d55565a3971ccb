package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/bureau-cli/internal/core/domain"
	"github.com/custodia-labs/bureau-cli/internal/core/ports/driven"
	"github.com/custodia-labs/bureau-cli/internal/core/ports/driving"
)

// Ensure ReportService implements the interface.
var _ driving.ReportService = (*ReportService)(nil)

// ReportService queries stored reports.
type ReportService struct {
	store    driven.ReportStore
	pageSize int
}

// NewReportService creates a new report service.
// A non-positive pageSize uses domain.DefaultPageSize.
func NewReportService(store driven.ReportStore, pageSize int) *ReportService {
	if pageSize <= 0 {
		pageSize = domain.DefaultPageSize
	}
	return &ReportService{
		store:    store,
		pageSize: pageSize,
	}
}

// Get retrieves a report by ID.
func (s *ReportService) Get(ctx context.Context, id string) (*domain.Report, error) {
	if strings.TrimSpace(id) == "" {
		return nil, fmt.Errorf("report id is required: %w", domain.ErrInvalidInput)
	}
	return s.store.Get(ctx, id)
}

// GetByPAN retrieves the most recent report for an applicant PAN.
func (s *ReportService) GetByPAN(ctx context.Context, pan string) (*domain.Report, error) {
	pan = strings.TrimSpace(pan)
	if pan == "" {
		return nil, fmt.Errorf("pan is required: %w", domain.ErrInvalidInput)
	}
	return s.store.GetByPAN(ctx, pan)
}

// List returns report summaries, newest first.
func (s *ReportService) List(ctx context.Context, opts domain.ListOptions) ([]domain.ReportListing, error) {
	return s.store.List(ctx, opts.Normalise(s.pageSize))
}

// Delete removes a report.
func (s *ReportService) Delete(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("report id is required: %w", domain.ErrInvalidInput)
	}
	return s.store.Delete(ctx, id)
}
