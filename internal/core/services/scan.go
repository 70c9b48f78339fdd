package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dustin/go-humanize/english"
	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/custodia-labs/stackprobe/internal/core/domain"
	"github.com/custodia-labs/stackprobe/internal/core/ports/driven"
	"github.com/custodia-labs/stackprobe/internal/core/ports/driving"
	"github.com/custodia-labs/stackprobe/internal/logger"
)

// Ensure ScanOrchestrator implements the interface.
var _ driving.ScanService = (*ScanOrchestrator)(nil)

// progressInterval limits how often scan progress is logged.
const progressInterval = 2 * time.Second

// drainTimeout bounds how long a cancelled scan waits for the source to close.
const drainTimeout = 2 * time.Second

// ScanOrchestrator streams a page source into the detector.
type ScanOrchestrator struct {
	detector driving.DetectorService
	factory  driven.SourceFactory
	archive  driven.PageArchive
	settings driving.SettingsService

	// now is replaced in tests.
	now func() time.Time

	mu     sync.RWMutex
	status domain.ScanStatus
}

// NewScanOrchestrator creates a scan orchestrator.
// The archive and settings are optional; without an archive pages are never saved,
// without settings archiving defaults to on when an archive is present.
func NewScanOrchestrator(
	detector driving.DetectorService,
	factory driven.SourceFactory,
	archive driven.PageArchive,
	settings driving.SettingsService,
) *ScanOrchestrator {
	return &ScanOrchestrator{
		detector: detector,
		factory:  factory,
		archive:  archive,
		settings: settings,
		now:      time.Now,
	}
}

// Scan resets the session and streams the requested source into it.
// Cancelling ctx ends the scan early without an error; the result is marked Cancelled.
func (o *ScanOrchestrator) Scan(ctx context.Context, req domain.ScanRequest, opts ...driving.ScanOption) (*domain.ScanResult, error) {
	cfg := driving.ApplyScanOptions(opts...)

	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("scan request: %w", err)
	}
	if o.factory == nil {
		return nil, fmt.Errorf("create source: source factory not configured")
	}

	sessionID := uuid.New().String()
	if err := o.begin(sessionID, req.Label()); err != nil {
		return nil, err
	}
	defer o.finish()

	source, err := o.factory.Create(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("create source: %w", err)
	}
	defer source.Close()

	if err := source.Validate(ctx); err != nil {
		return nil, fmt.Errorf("validate source: %w", err)
	}

	o.detector.Reset(sessionID)
	started := o.now()
	logger.Info("Starting scan %s from %s", sessionID, source.Name())

	archive := o.shouldArchive(req, cfg)
	var collected []domain.Page

	pagesCh, errsCh := source.Stream(ctx)
	cancelled, streamErr := o.processPages(ctx, pagesCh, errsCh, func(page domain.Page) {
		if archive && page.Valid() {
			collected = append(collected, page)
		}
		if cfg.OnPage != nil {
			cfg.OnPage(page, o.Status())
		}
	})

	status := o.Status()
	result := &domain.ScanResult{
		SessionID:     sessionID,
		Source:        source.Name(),
		PagesReceived: status.PagesReceived,
		ValidPages:    status.ValidPages,
		Duration:      o.now().Sub(started),
		Summary:       o.detector.Summary(),
		Cancelled:     cancelled,
	}
	result.Message = CompletionMessage(result)

	if streamErr != nil {
		if result.PagesReceived == 0 {
			return result, fmt.Errorf("stream pages: %w", streamErr)
		}
		// Pages already received are kept, reported and archived.
		result.Partial = true
		result.Warning = fmt.Sprintf("source ended early: %v", streamErr)
		logger.Warn("Scan %s ended early after %d pages: %v", sessionID, result.PagesReceived, streamErr)
	}

	if archive && len(collected) > 0 {
		session := domain.ArchiveSession{
			ID:        sessionID,
			Source:    req.Kind.String(),
			Targets:   archiveTargets(req),
			PageCount: len(collected),
			CreatedAt: started,
		}
		// A cancelled scan still saves what it received.
		if err := o.archive.Save(context.WithoutCancel(ctx), session, collected); err != nil {
			logger.Warn("Failed to archive pages for %s: %v", sessionID, err)
		} else {
			result.Archived = true
		}
	}

	logger.Info("Scan complete: %d pages, %d valid, %d technologies",
		result.PagesReceived, result.ValidPages, result.Summary.Technologies)
	return result, nil
}

// Status returns the progress of the current or last scan.
func (o *ScanOrchestrator) Status() domain.ScanStatus {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.status
}

// CompletionMessage formats the line shown after a scan, e.g. "3 pages crawled in 1.2s".
func CompletionMessage(result *domain.ScanResult) string {
	if result == nil {
		return ""
	}
	return fmt.Sprintf("%s crawled in %s",
		english.Plural(result.PagesReceived, "page", ""),
		result.Duration.Round(time.Millisecond))
}

// processPages drains the source until both channels close or ctx is cancelled.
// A source error does not stop the loop: pages the source sent before
// failing are still ingested. It reports whether the scan was cancelled and
// the first source error.
func (o *ScanOrchestrator) processPages(
	ctx context.Context,
	pagesCh <-chan domain.Page,
	errsCh <-chan error,
	onPage func(domain.Page),
) (bool, error) {
	progress := rate.Sometimes{First: 1, Interval: progressInterval}
	var firstErr error

	ingest := func(page domain.Page) {
		valid := o.detector.Ingest(page)
		o.record(valid)
		onPage(page)
	}

	for pagesCh != nil || errsCh != nil {
		select {
		case <-ctx.Done():
			logger.Info("Scan cancelled")
			o.drain(pagesCh, ingest)
			return true, firstErr

		case err, ok := <-errsCh:
			if !ok {
				errsCh = nil
				continue
			}
			if err == nil {
				continue
			}
			if ctx.Err() != nil && (errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)) {
				o.drain(pagesCh, ingest)
				return true, firstErr
			}
			if firstErr == nil {
				firstErr = err
			}

		case page, ok := <-pagesCh:
			if !ok {
				pagesCh = nil
				continue
			}

			ingest(page)

			progress.Do(func() {
				s := o.Status()
				logger.Debug("Scan progress: %d pages received, %d valid, %d technologies",
					s.PagesReceived, s.ValidPages, s.Technologies)
			})
		}
	}
	return false, firstErr
}

// drain ingests the pages a cancelled source still delivers, such as a
// flushed trailing record, until it closes or drainTimeout passes.
func (o *ScanOrchestrator) drain(pagesCh <-chan domain.Page, ingest func(domain.Page)) {
	if pagesCh == nil {
		return
	}
	timer := time.NewTimer(drainTimeout)
	defer timer.Stop()

	for {
		select {
		case page, ok := <-pagesCh:
			if !ok {
				return
			}
			ingest(page)
		case <-timer.C:
			logger.Debug("Source did not close within %s of cancellation", drainTimeout)
			return
		}
	}
}

func (o *ScanOrchestrator) begin(sessionID, source string) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.status.Running {
		return domain.ErrScanInProgress
	}
	o.status = domain.ScanStatus{
		SessionID: sessionID,
		Source:    source,
		Running:   true,
		StartedAt: o.now(),
	}
	return nil
}

func (o *ScanOrchestrator) finish() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.status.Running = false
}

func (o *ScanOrchestrator) record(valid bool) {
	technologies := o.detector.Len()

	o.mu.Lock()
	defer o.mu.Unlock()
	o.status.PagesReceived++
	if valid {
		o.status.ValidPages++
	}
	o.status.Technologies = technologies
}

func (o *ScanOrchestrator) shouldArchive(req domain.ScanRequest, cfg driving.ScanConfig) bool {
	if o.archive == nil || req.Kind == domain.SourceArchive {
		return false
	}
	if cfg.Archive != nil {
		return *cfg.Archive
	}
	if o.settings == nil {
		return true
	}
	settings, err := o.settings.Get()
	if err != nil {
		logger.Warn("Failed to read archive setting: %v", err)
		return false
	}
	return settings.Archive.Enabled
}

func archiveTargets(req domain.ScanRequest) []string {
	switch req.Kind {
	case domain.SourceCrawl:
		return req.Crawl.Targets
	case domain.SourceFile:
		return []string{req.Path}
	case domain.SourceQueue:
		return []string{req.Queue.URL}
	default:
		return nil
	}
}
