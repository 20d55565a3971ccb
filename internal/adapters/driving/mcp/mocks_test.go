package mcp

import (
	"context"

	"github.com/custodia-labs/bureau-cli/internal/core/domain"
	"github.com/custodia-labs/bureau-cli/internal/core/ports/driving"
)

// mockIngestService is a mock implementation of driving.IngestService.
type mockIngestService struct {
	report   *domain.Report
	err      error
	lastName string
	lastXML  string
}

func (m *mockIngestService) Extract(upload domain.Upload) (*domain.Report, error) {
	m.lastName = upload.Name
	m.lastXML = string(upload.Content)
	return m.report, m.err
}

func (m *mockIngestService) Ingest(_ context.Context, _ domain.Upload) (*domain.Report, error) {
	return m.report, m.err
}

func (m *mockIngestService) IngestFile(_ context.Context, _ string) (*domain.Report, error) {
	return m.report, m.err
}

func (m *mockIngestService) Seed(_ context.Context, _ string, _ driving.SeedOptions) (*driving.SeedResult, error) {
	return &driving.SeedResult{}, m.err
}

func (m *mockIngestService) Watch(_ context.Context, _ string, _ func(driving.WatchEvent)) error {
	return m.err
}

// mockReportService is a mock implementation of driving.ReportService.
type mockReportService struct {
	report   *domain.Report
	listings []domain.ReportListing
	err      error

	lastID   string
	lastPAN  string
	lastOpts domain.ListOptions
}

func (m *mockReportService) Get(_ context.Context, id string) (*domain.Report, error) {
	m.lastID = id
	return m.report, m.err
}

func (m *mockReportService) GetByPAN(_ context.Context, pan string) (*domain.Report, error) {
	m.lastPAN = pan
	return m.report, m.err
}

func (m *mockReportService) List(_ context.Context, opts domain.ListOptions) ([]domain.ReportListing, error) {
	m.lastOpts = opts
	return m.listings, m.err
}

func (m *mockReportService) Delete(_ context.Context, _ string) error {
	return m.err
}

// Ensure mocks implement interfaces.
var (
	_ driving.IngestService = (*mockIngestService)(nil)
	_ driving.ReportService = (*mockReportService)(nil)
)
