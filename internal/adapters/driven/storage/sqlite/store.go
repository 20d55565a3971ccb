package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/bureau-cli/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/bureau-cli/internal/core/domain"
	"github.com/custodia-labs/bureau-cli/internal/core/ports/driven"
)

// Store is a SQLite-based storage that provides access to the
// store interfaces through wrapper types.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.bureau/data/reports.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".bureau", "data")
	}

	// Ensure directory exists
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "reports.db")

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	// Run migrations
	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// ReportStore returns a ReportStore interface backed by this store.
func (s *Store) ReportStore() driven.ReportStore {
	return &reportStore{store: s}
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	// Ensure schema_migrations table exists
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	// Get current version
	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	// Find all up migrations
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// Extract version number (e.g., "001_reports.up.sql" -> 1)
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue // Skip files that don't match pattern
		}

		if version <= currentVersion {
			continue // Already applied
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
	}

	return nil
}

// ==================== Report Store ====================

// reportStore implements driven.ReportStore.
type reportStore struct {
	store *Store
}

var _ driven.ReportStore = (*reportStore)(nil)

// Save stores a report, assigning its ID and creation time when unset.
func (s *reportStore) Save(ctx context.Context, report *domain.Report) error {
	if report == nil {
		return domain.ErrInvalidInput
	}
	if report.ID == "" {
		report.ID = uuid.New().String()
	}
	if report.CreatedAt.IsZero() {
		report.CreatedAt = time.Now().UTC()
	}

	document, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("marshalling report: %w", err)
	}

	_, err = s.store.db.ExecContext(ctx, `
		INSERT INTO reports (id, format, source_file, name, pan, credit_score, document, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			format = excluded.format,
			source_file = excluded.source_file,
			name = excluded.name,
			pan = excluded.pan,
			credit_score = excluded.credit_score,
			document = excluded.document
	`, report.ID, string(report.Format), report.SourceFile, report.BasicDetails.Name,
		report.BasicDetails.PAN, report.BasicDetails.CreditScore, string(document),
		report.CreatedAt.UnixNano())
	if err != nil {
		return fmt.Errorf("saving report: %w", err)
	}
	return nil
}

// Get retrieves a report by ID.
func (s *reportStore) Get(ctx context.Context, id string) (*domain.Report, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT document FROM reports WHERE id = ?
	`, id)
	return scanReport(row)
}

// GetByPAN retrieves the most recent report for an applicant PAN.
func (s *reportStore) GetByPAN(ctx context.Context, pan string) (*domain.Report, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT document FROM reports
		WHERE pan = ?
		ORDER BY created_at DESC, rowid DESC
		LIMIT 1
	`, pan)
	return scanReport(row)
}

// List returns report listings, newest first.
func (s *reportStore) List(ctx context.Context, opts domain.ListOptions) ([]domain.ReportListing, error) {
	opts = opts.Normalise(domain.DefaultPageSize)

	rows, err := s.store.db.QueryContext(ctx, `
		SELECT document FROM reports
		ORDER BY created_at DESC, rowid DESC
		LIMIT ? OFFSET ?
	`, opts.Limit, opts.Offset)
	if err != nil {
		return nil, fmt.Errorf("querying reports: %w", err)
	}
	defer rows.Close()

	listings := make([]domain.ReportListing, 0, opts.Limit)
	for rows.Next() {
		var document string
		if err := rows.Scan(&document); err != nil {
			return nil, fmt.Errorf("scanning report: %w", err)
		}

		var report domain.Report
		if err := json.Unmarshal([]byte(document), &report); err != nil {
			return nil, fmt.Errorf("unmarshaling report: %w", err)
		}
		listings = append(listings, report.Listing())
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating reports: %w", err)
	}

	return listings, nil
}

// Delete removes a report.
func (s *reportStore) Delete(ctx context.Context, id string) error {
	result, err := s.store.db.ExecContext(ctx, "DELETE FROM reports WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting report: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting report: %w", err)
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// DeleteAll removes every report.
func (s *reportStore) DeleteAll(ctx context.Context) error {
	if _, err := s.store.db.ExecContext(ctx, "DELETE FROM reports"); err != nil {
		return fmt.Errorf("deleting reports: %w", err)
	}
	return nil
}

func scanReport(row *sql.Row) (*domain.Report, error) {
	var document string
	if err := row.Scan(&document); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning report: %w", err)
	}

	var report domain.Report
	if err := json.Unmarshal([]byte(document), &report); err != nil {
		return nil, fmt.Errorf("unmarshaling report: %w", err)
	}
	return &report, nil
}
