package memory

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/bureau-cli/internal/core/domain"
	"github.com/custodia-labs/bureau-cli/internal/core/ports/driven"
)

// Ensure ReportStore implements the interface.
var _ driven.ReportStore = (*ReportStore)(nil)

// ReportStore is an in-memory implementation of driven.ReportStore.
type ReportStore struct {
	mu      sync.RWMutex
	reports map[string]storedReport
	seq     uint64
}

// storedReport records insertion order to break creation time ties.
type storedReport struct {
	report domain.Report
	seq    uint64
}

// NewReportStore creates a new in-memory report store.
func NewReportStore() *ReportStore {
	return &ReportStore{
		reports: make(map[string]storedReport),
	}
}

// Save stores a report, assigning its ID and creation time when unset.
func (s *ReportStore) Save(_ context.Context, report *domain.Report) error {
	if report == nil {
		return domain.ErrInvalidInput
	}
	if report.ID == "" {
		report.ID = uuid.New().String()
	}
	if report.CreatedAt.IsZero() {
		report.CreatedAt = time.Now().UTC()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	s.reports[report.ID] = storedReport{report: clone(report), seq: s.seq}
	return nil
}

// Get retrieves a report by ID.
func (s *ReportStore) Get(_ context.Context, id string) (*domain.Report, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	stored, ok := s.reports[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	report := clone(&stored.report)
	return &report, nil
}

// GetByPAN retrieves the most recent report for an applicant PAN.
func (s *ReportStore) GetByPAN(_ context.Context, pan string) (*domain.Report, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, stored := range s.sorted() {
		if stored.report.BasicDetails.PAN == pan {
			report := clone(&stored.report)
			return &report, nil
		}
	}
	return nil, domain.ErrNotFound
}

// List returns report listings, newest first.
func (s *ReportStore) List(_ context.Context, opts domain.ListOptions) ([]domain.ReportListing, error) {
	opts = opts.Normalise(domain.DefaultPageSize)

	s.mu.RLock()
	defer s.mu.RUnlock()
	all := s.sorted()
	listings := make([]domain.ReportListing, 0, min(opts.Limit, len(all)))
	for i := opts.Offset; i < len(all) && len(listings) < opts.Limit; i++ {
		listings = append(listings, all[i].report.Listing())
	}
	return listings, nil
}

// Delete removes a report.
func (s *ReportStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.reports[id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.reports, id)
	return nil
}

// DeleteAll removes every report.
func (s *ReportStore) DeleteAll(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reports = make(map[string]storedReport)
	return nil
}

// sorted returns stored reports newest first. Callers hold the lock.
func (s *ReportStore) sorted() []storedReport {
	all := make([]storedReport, 0, len(s.reports))
	for _, stored := range s.reports {
		all = append(all, stored)
	}
	slices.SortFunc(all, func(a, b storedReport) int {
		if c := b.report.CreatedAt.Compare(a.report.CreatedAt); c != 0 {
			return c
		}
		if a.seq > b.seq {
			return -1
		}
		return 1
	})
	return all
}

// clone copies a report so callers cannot mutate stored accounts.
func clone(report *domain.Report) domain.Report {
	c := *report
	c.CreditAccounts = slices.Clone(report.CreditAccounts)
	return c
}
