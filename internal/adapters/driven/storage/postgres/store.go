// Package postgres provides a PostgreSQL implementation of driven.ReportStore
// built on gorm.
//
// The reports table is created with AutoMigrate. Each row carries the full
// JSON encoding of the report alongside indexed pan and created_at columns.
package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/custodia-labs/bureau-cli/internal/core/domain"
	"github.com/custodia-labs/bureau-cli/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.ReportStore = (*Store)(nil)

// reportRecord is the gorm model for a stored report.
type reportRecord struct {
	ID          string    `gorm:"primaryKey;type:text"`
	Format      string    `gorm:"type:text;not null;default:''"`
	SourceFile  string    `gorm:"type:text;not null;default:''"`
	Name        string    `gorm:"type:text;not null;default:''"`
	PAN         string    `gorm:"column:pan;type:text;not null;default:'';index:idx_reports_pan"`
	CreditScore float64   `gorm:"not null;default:0"`
	Document    string    `gorm:"type:jsonb;not null"`
	CreatedAt   time.Time `gorm:"not null;index:idx_reports_created_at"`
}

// TableName returns the table the record maps to.
func (reportRecord) TableName() string {
	return "reports"
}

// Store persists reports in PostgreSQL.
type Store struct {
	db *gorm.DB
}

// NewStore connects to PostgreSQL and migrates the reports table.
func NewStore(dsn string) (*Store, error) {
	if dsn == "" {
		return nil, fmt.Errorf("postgres dsn: %w", domain.ErrInvalidInput)
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("connecting to postgres: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("getting database handle: %w", err)
	}
	sqlDB.SetConnMaxLifetime(time.Hour)

	return NewStoreWithDB(db)
}

// NewStoreWithDB wraps an existing gorm connection and migrates the reports table.
func NewStoreWithDB(db *gorm.DB) (*Store, error) {
	if err := db.AutoMigrate(&reportRecord{}); err != nil {
		return nil, fmt.Errorf("migrating reports table: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying connection pool.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Save stores a report, assigning its ID and creation time when unset.
func (s *Store) Save(ctx context.Context, report *domain.Report) error {
	if report == nil {
		return domain.ErrInvalidInput
	}
	if report.ID == "" {
		report.ID = uuid.New().String()
	}
	if report.CreatedAt.IsZero() {
		report.CreatedAt = time.Now().UTC()
	}

	record, err := toRecord(report)
	if err != nil {
		return err
	}

	if err := s.db.WithContext(ctx).Save(&record).Error; err != nil {
		return fmt.Errorf("saving report: %w", err)
	}
	return nil
}

// Get retrieves a report by ID.
func (s *Store) Get(ctx context.Context, id string) (*domain.Report, error) {
	var record reportRecord
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&record).Error
	return fromResult(&record, err)
}

// GetByPAN retrieves the most recent report for an applicant PAN.
func (s *Store) GetByPAN(ctx context.Context, pan string) (*domain.Report, error) {
	var record reportRecord
	err := s.db.WithContext(ctx).
		Where("pan = ?", pan).
		Order("created_at DESC").
		First(&record).Error
	return fromResult(&record, err)
}

// List returns report listings, newest first.
func (s *Store) List(ctx context.Context, opts domain.ListOptions) ([]domain.ReportListing, error) {
	opts = opts.Normalise(domain.DefaultPageSize)

	var records []reportRecord
	err := s.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(opts.Limit).
		Offset(opts.Offset).
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("querying reports: %w", err)
	}

	listings := make([]domain.ReportListing, 0, len(records))
	for i := range records {
		report, err := fromRecord(&records[i])
		if err != nil {
			return nil, err
		}
		listings = append(listings, report.Listing())
	}
	return listings, nil
}

// Delete removes a report.
func (s *Store) Delete(ctx context.Context, id string) error {
	result := s.db.WithContext(ctx).Where("id = ?", id).Delete(&reportRecord{})
	if result.Error != nil {
		return fmt.Errorf("deleting report: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// DeleteAll removes every report.
func (s *Store) DeleteAll(ctx context.Context) error {
	err := s.db.WithContext(ctx).
		Session(&gorm.Session{AllowGlobalUpdate: true}).
		Delete(&reportRecord{}).Error
	if err != nil {
		return fmt.Errorf("deleting reports: %w", err)
	}
	return nil
}

func toRecord(report *domain.Report) (reportRecord, error) {
	document, err := json.Marshal(report)
	if err != nil {
		return reportRecord{}, fmt.Errorf("marshalling report: %w", err)
	}
	return reportRecord{
		ID:          report.ID,
		Format:      string(report.Format),
		SourceFile:  report.SourceFile,
		Name:        report.BasicDetails.Name,
		PAN:         report.BasicDetails.PAN,
		CreditScore: report.BasicDetails.CreditScore,
		Document:    string(document),
		CreatedAt:   report.CreatedAt,
	}, nil
}

func fromRecord(record *reportRecord) (*domain.Report, error) {
	var report domain.Report
	if err := json.Unmarshal([]byte(record.Document), &report); err != nil {
		return nil, fmt.Errorf("unmarshaling report: %w", err)
	}
	report.ID = record.ID
	report.CreatedAt = record.CreatedAt.UTC()
	return &report, nil
}

func fromResult(record *reportRecord, err error) (*domain.Report, error) {
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("querying report: %w", err)
	}
	return fromRecord(record)
}
