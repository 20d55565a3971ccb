package postgres

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/custodia-labs/bureau-cli/internal/core/domain"
)

func sampleReport() *domain.Report {
	return &domain.Report{
		ID:         "report-1",
		Format:     domain.FormatExperian,
		SourceFile: "sample.xml",
		BasicDetails: domain.BasicDetails{
			Name:        "Asha Rao",
			PAN:         "ABCDE1234F",
			CreditScore: 745,
		},
		CreditAccounts: []domain.CreditAccount{
			{Type: "Credit Card", BureauAccountDetails: &domain.BureauAccountDetails{CreditLimit: 1000}},
		},
		CreatedAt: time.Date(2024, 2, 3, 4, 5, 6, 0, time.UTC),
	}
}

func TestReportRecord_TableName(t *testing.T) {
	assert.Equal(t, "reports", reportRecord{}.TableName())
}

func TestToRecord(t *testing.T) {
	report := sampleReport()

	record, err := toRecord(report)
	require.NoError(t, err)

	assert.Equal(t, "report-1", record.ID)
	assert.Equal(t, "experian", record.Format)
	assert.Equal(t, "sample.xml", record.SourceFile)
	assert.Equal(t, "Asha Rao", record.Name)
	assert.Equal(t, "ABCDE1234F", record.PAN)
	assert.Equal(t, 745.0, record.CreditScore)
	assert.Equal(t, report.CreatedAt, record.CreatedAt)
	assert.Contains(t, record.Document, `"creditLimit":1000`)
}

func TestFromRecord_RoundTrip(t *testing.T) {
	report := sampleReport()

	record, err := toRecord(report)
	require.NoError(t, err)

	got, err := fromRecord(&record)
	require.NoError(t, err)
	assert.Equal(t, report, got)
}

func TestFromRecord_InvalidDocument(t *testing.T) {
	_, err := fromRecord(&reportRecord{ID: "x", Document: "{not json"})
	assert.Error(t, err)
}

func TestFromResult_NotFound(t *testing.T) {
	_, err := fromResult(&reportRecord{}, gorm.ErrRecordNotFound)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestNewStore_EmptyDSN(t *testing.T) {
	_, err := NewStore("")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// TestStore_Integration runs against a live database when
// BUREAU_TEST_POSTGRES_DSN is set.
func TestStore_Integration(t *testing.T) {
	dsn := os.Getenv("BUREAU_TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("BUREAU_TEST_POSTGRES_DSN not set")
	}

	store, err := NewStore(dsn)
	require.NoError(t, err)
	defer store.Close()

	ctx := context.Background()
	require.NoError(t, store.DeleteAll(ctx))

	report := sampleReport()
	report.ID = ""
	require.NoError(t, store.Save(ctx, report))
	assert.NotEmpty(t, report.ID)

	got, err := store.GetByPAN(ctx, "ABCDE1234F")
	require.NoError(t, err)
	assert.Equal(t, report.ID, got.ID)

	listings, err := store.List(ctx, domain.ListOptions{})
	require.NoError(t, err)
	assert.Len(t, listings, 1)

	require.NoError(t, store.Delete(ctx, report.ID))
	assert.ErrorIs(t, store.Delete(ctx, report.ID), domain.ErrNotFound)
}
