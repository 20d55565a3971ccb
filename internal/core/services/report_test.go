package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/bureau-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/bureau-cli/internal/core/domain"
)

func seedReports(t *testing.T, store *memory.ReportStore, n int) []*domain.Report {
	t.Helper()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	reports := make([]*domain.Report, 0, n)
	for i := range n {
		r := &domain.Report{
			BasicDetails: domain.BasicDetails{Name: fmt.Sprintf("User %d", i), PAN: fmt.Sprintf("PAN%d", i%2)},
			CreatedAt:    base.Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, store.Save(context.Background(), r))
		reports = append(reports, r)
	}
	return reports
}

func TestNewReportService_DefaultPageSize(t *testing.T) {
	service := NewReportService(memory.NewReportStore(), 0)
	assert.Equal(t, domain.DefaultPageSize, service.pageSize)
}

func TestReportService_Get(t *testing.T) {
	store := memory.NewReportStore()
	reports := seedReports(t, store, 1)
	service := NewReportService(store, 10)
	ctx := context.Background()

	got, err := service.Get(ctx, reports[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "User 0", got.BasicDetails.Name)

	_, err = service.Get(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = service.Get(ctx, "  ")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestReportService_GetByPAN(t *testing.T) {
	store := memory.NewReportStore()
	seedReports(t, store, 4)
	service := NewReportService(store, 10)
	ctx := context.Background()

	got, err := service.GetByPAN(ctx, " PAN0 ")
	require.NoError(t, err)
	assert.Equal(t, "User 2", got.BasicDetails.Name, "most recent report wins")

	_, err = service.GetByPAN(ctx, "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = service.GetByPAN(ctx, "UNKNOWN")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestReportService_List(t *testing.T) {
	store := memory.NewReportStore()
	seedReports(t, store, 5)
	ctx := context.Background()

	t.Run("configured page size applies", func(t *testing.T) {
		listings, err := NewReportService(store, 3).List(ctx, domain.ListOptions{})
		require.NoError(t, err)
		require.Len(t, listings, 3)
		assert.Equal(t, "User 4", listings[0].BasicDetails.Name)
	})

	t.Run("explicit limit wins", func(t *testing.T) {
		listings, err := NewReportService(store, 3).List(ctx, domain.ListOptions{Limit: 5, Offset: 1})
		require.NoError(t, err)
		require.Len(t, listings, 4)
		assert.Equal(t, "User 3", listings[0].BasicDetails.Name)
	})
}

func TestReportService_Delete(t *testing.T) {
	store := memory.NewReportStore()
	reports := seedReports(t, store, 1)
	service := NewReportService(store, 10)
	ctx := context.Background()

	require.NoError(t, service.Delete(ctx, reports[0].ID))
	assert.ErrorIs(t, service.Delete(ctx, reports[0].ID), domain.ErrNotFound)
	assert.ErrorIs(t, service.Delete(ctx, ""), domain.ErrInvalidInput)
}
