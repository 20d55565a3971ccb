package services

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/bureau-cli/internal/core/domain"
	"github.com/custodia-labs/bureau-cli/internal/core/ports/driven"
	"github.com/custodia-labs/bureau-cli/internal/core/ports/driving"
	"github.com/custodia-labs/bureau-cli/internal/logger"
)

// Ensure IngestService implements the interface.
var _ driving.IngestService = (*IngestService)(nil)

// watchSettle is how long a file must be quiet before Watch ingests it.
// Editors and copies emit several write events per file.
const watchSettle = 200 * time.Millisecond

// IngestService extracts bureau documents and stores the resulting reports.
type IngestService struct {
	extractor driven.ReportExtractor
	store     driven.ReportStore
}

// NewIngestService creates a new ingest service.
func NewIngestService(extractor driven.ReportExtractor, store driven.ReportStore) *IngestService {
	return &IngestService{
		extractor: extractor,
		store:     store,
	}
}

// Extract runs the extraction engine on an upload without storing it.
func (s *IngestService) Extract(upload domain.Upload) (*domain.Report, error) {
	report, err := s.extractor.Extract(upload.Content)
	if err != nil {
		return nil, fmt.Errorf("extract %s: %w", displayName(upload.Name), err)
	}
	if upload.Name != "" {
		report.SourceFile = filepath.Base(upload.Name)
	}
	return report, nil
}

// Ingest validates, extracts and stores one upload.
func (s *IngestService) Ingest(ctx context.Context, upload domain.Upload) (*domain.Report, error) {
	if !upload.IsXML() {
		return nil, fmt.Errorf("%s: %w", displayName(upload.Name), domain.ErrUnsupportedFile)
	}

	report, err := s.Extract(upload)
	if err != nil {
		return nil, err
	}

	if err := s.store.Save(ctx, report); err != nil {
		return nil, fmt.Errorf("save report: %w", err)
	}

	logger.Debug("Stored report %s from %s (%s)", report.ID, report.SourceFile, report.Format)
	return report, nil
}

// IngestFile reads a file and ingests it.
func (s *IngestService) IngestFile(ctx context.Context, path string) (*domain.Report, error) {
	if !(domain.Upload{Name: path}).IsXML() {
		return nil, fmt.Errorf("%s: %w", path, domain.ErrUnsupportedFile)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	return s.Ingest(ctx, domain.Upload{Name: filepath.Base(path), Content: content})
}

// Seed ingests every XML file in dir in name order.
// A file that fails is recorded and the batch continues.
func (s *IngestService) Seed(ctx context.Context, dir string, opts driving.SeedOptions) (*driving.SeedResult, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read samples directory: %w", err)
	}

	if opts.Reset {
		if err := s.store.DeleteAll(ctx); err != nil {
			return nil, fmt.Errorf("clear reports: %w", err)
		}
		logger.Info("Cleared stored reports")
	}

	result := &driving.SeedResult{}
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		if entry.IsDir() || !(domain.Upload{Name: entry.Name()}).IsXML() {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		report, err := s.IngestFile(ctx, path)
		if err != nil {
			logger.Warn("Failed to load %s: %v", entry.Name(), err)
			result.Failed = append(result.Failed, driving.SeedFailure{File: entry.Name(), Err: err})
			continue
		}

		logger.Info("Loaded %s as %s", entry.Name(), report.ID)
		result.Loaded = append(result.Loaded, driving.SeededReport{
			File:     entry.Name(),
			ReportID: report.ID,
			Name:     report.BasicDetails.Name,
		})
	}

	return result, nil
}

// Watch ingests XML files created or written in dir until ctx is cancelled.
// Each ingested file is reported through onResult, which may be nil.
func (s *IngestService) Watch(ctx context.Context, dir string, onResult func(driving.WatchEvent)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}

	logger.Info("Watching %s for XML reports", dir)

	return s.watchLoop(ctx, watcher.Events, watcher.Errors, watchSettle, onResult)
}

// watchLoop ingests each path from events once it has been quiet for settle.
// It returns when ctx is cancelled or either channel closes, after every
// pending settle callback has exited.
func (s *IngestService) watchLoop(
	ctx context.Context,
	events <-chan fsnotify.Event,
	errs <-chan error,
	settle time.Duration,
	onResult func(driving.WatchEvent),
) error {
	ready := make(chan string)
	done := make(chan struct{})
	var (
		mu      sync.Mutex
		pending sync.WaitGroup
	)
	timers := make(map[string]*time.Timer)
	defer func() {
		close(done)
		mu.Lock()
		for _, t := range timers {
			if t.Stop() {
				pending.Done()
			}
		}
		mu.Unlock()
		pending.Wait()
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-events:
			if !ok {
				return nil
			}
			if !shouldIngest(event) {
				continue
			}

			mu.Lock()
			if t, exists := timers[event.Name]; exists {
				// A timer that already fired is about to deliver the path.
				if t.Stop() {
					t.Reset(settle)
				}
			} else {
				name := event.Name
				pending.Add(1)
				timers[name] = time.AfterFunc(settle, func() {
					defer pending.Done()
					select {
					case ready <- name:
					case <-done:
					case <-ctx.Done():
					}
				})
			}
			mu.Unlock()

		case path := <-ready:
			mu.Lock()
			delete(timers, path)
			mu.Unlock()

			report, err := s.IngestFile(ctx, path)
			if err != nil {
				logger.Warn("Failed to ingest %s: %v", path, err)
			}
			if onResult != nil {
				onResult(driving.WatchEvent{File: path, Report: report, Err: err})
			}

		case err, ok := <-errs:
			if !ok {
				return nil
			}
			logger.Warn("Watcher error: %v", err)
		}
	}
}

// shouldIngest reports whether a filesystem event names an XML file that
// was created or written.
func shouldIngest(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
		return false
	}

	base := filepath.Base(event.Name)
	if strings.HasPrefix(base, ".") || !(domain.Upload{Name: base}).IsXML() {
		return false
	}

	info, err := os.Stat(event.Name)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

func displayName(name string) string {
	if name == "" {
		return "document"
	}
	return name
}

// IsClientError reports whether err stems from the caller's input rather
// than from storage or the environment.
func IsClientError(err error) bool {
	return errors.Is(err, domain.ErrUnsupportedFile) ||
		errors.Is(err, domain.ErrMalformedDocument) ||
		errors.Is(err, domain.ErrInvalidInput)
}
