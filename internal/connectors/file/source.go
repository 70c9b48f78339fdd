package file

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/stackprobe/internal/core/domain"
	"github.com/custodia-labs/stackprobe/internal/core/ports/driven"
	"github.com/custodia-labs/stackprobe/internal/logger"
	"github.com/custodia-labs/stackprobe/internal/ndjson"
)

// Ensure Source implements the interface.
var _ driven.PageSource = (*Source)(nil)

// Stdin is the path that selects standard input.
const Stdin = "-"

// DefaultDebounce coalesces bursts of write events while following.
const DefaultDebounce = 50 * time.Millisecond

// chunkSize is the read size while following.
const chunkSize = 32 * 1024

// finalSendTimeout bounds delivery of the trailing record after cancellation.
const finalSendTimeout = time.Second

// Source streams pages from an NDJSON file.
type Source struct {
	path     string
	follow   bool
	stdin    io.Reader
	debounce time.Duration
}

// Option configures a Source.
type Option func(*Source)

// WithStdin replaces os.Stdin as the reader for the "-" path.
func WithStdin(r io.Reader) Option {
	return func(s *Source) {
		s.stdin = r
	}
}

// WithDebounce sets how long to wait for further writes before reading.
func WithDebounce(d time.Duration) Option {
	return func(s *Source) {
		s.debounce = d
	}
}

// New creates a file source. When follow is set the source keeps reading
// appended data after EOF until the context is cancelled.
func New(path string, follow bool, opts ...Option) *Source {
	s := &Source{
		path:     path,
		follow:   follow,
		stdin:    os.Stdin,
		debounce: DefaultDebounce,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Name returns "stdin" or the file path.
func (s *Source) Name() string {
	if s.path == Stdin {
		return "stdin"
	}
	return s.path
}

// Validate checks the file exists and is a regular file.
func (s *Source) Validate(_ context.Context) error {
	if s.path == "" {
		return fmt.Errorf("%w: file path is required", domain.ErrInvalidInput)
	}
	if s.path == Stdin {
		if s.follow {
			return fmt.Errorf("%w: cannot follow standard input", domain.ErrInvalidInput)
		}
		return nil
	}

	info, err := os.Stat(s.path)
	if err != nil {
		return fmt.Errorf("stat %s: %w", s.path, err)
	}
	if info.IsDir() {
		return fmt.Errorf("%w: %s is a directory", domain.ErrInvalidInput, s.path)
	}
	return nil
}

// Stream reads the file and sends each page.
func (s *Source) Stream(ctx context.Context) (<-chan domain.Page, <-chan error) {
	pages := make(chan domain.Page)
	errs := make(chan error, 1)

	go func() {
		defer close(pages)
		defer close(errs)

		emit := func(p domain.Page) error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case pages <- p:
				return nil
			}
		}

		// final delivers the record flushed after cancellation. The consumer
		// may already have stopped reading, so the send is bounded.
		final := func(p domain.Page) error {
			select {
			case pages <- p:
				return nil
			case <-time.After(finalSendTimeout):
				logger.Debug("Dropping trailing record from %s: no reader", s.path)
				return ctx.Err()
			}
		}

		if err := s.run(ctx, emit, final); err != nil {
			errs <- err
		}
	}()

	return pages, errs
}

// Close releases resources.
func (s *Source) Close() error {
	return nil
}

func (s *Source) run(ctx context.Context, emit, final func(domain.Page) error) error {
	if s.path == Stdin {
		return ndjson.Decode(ctx, s.stdin, emit)
	}
	if s.follow {
		return s.tail(ctx, emit, final)
	}

	f, err := os.Open(s.path)
	if err != nil {
		return fmt.Errorf("open %s: %w", s.path, err)
	}
	defer f.Close()
	return ndjson.Decode(ctx, f, emit)
}

// tail reads the file to EOF, then waits for writes and reads again until
// ctx is done. When the file is replaced the new one is read from the start.
// The unterminated tail is flushed through final when following stops.
func (s *Source) tail(ctx context.Context, emit, final func(domain.Page) error) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer watcher.Close()

	// Watch the directory so editors that replace the file are still seen.
	if err := watcher.Add(filepath.Dir(s.path)); err != nil {
		return fmt.Errorf("watching %s: %w", s.path, err)
	}
	target, _ := filepath.Abs(s.path)

	f, err := os.Open(s.path)
	if err != nil {
		return fmt.Errorf("open %s: %w", s.path, err)
	}
	defer func() { f.Close() }()

	var framer ndjson.Framer
	flush := func(send func(domain.Page) error) error {
		if p, ok := framer.Flush(); ok {
			return send(p)
		}
		return nil
	}

	buf := make([]byte, chunkSize)
	for {
		n, readErr := f.Read(buf)
		if n > 0 {
			for _, p := range framer.Write(buf[:n]) {
				if err := emit(p); err != nil {
					return err
				}
			}
		}
		if readErr == nil {
			continue
		}
		if !errors.Is(readErr, io.EOF) {
			_ = flush(final)
			return fmt.Errorf("read %s: %w", s.path, readErr)
		}

		logger.Debug("Waiting for writes to %s (%d bytes pending)", s.path, framer.Pending())
		replaced, err := s.waitForWrite(ctx, watcher, target)
		if err != nil {
			if ferr := flush(final); ferr != nil && !errors.Is(ferr, context.Canceled) {
				return ferr
			}
			return err
		}
		if !replaced {
			continue
		}

		// The old file's unterminated tail will never be completed.
		if err := flush(emit); err != nil {
			return err
		}
		nf, err := os.Open(s.path)
		if err != nil {
			return fmt.Errorf("reopen %s: %w", s.path, err)
		}
		f.Close()
		f = nf
		logger.Debug("Reopened replaced file %s", s.path)
	}
}

// waitForWrite blocks until target is written or created, then waits out
// the debounce interval so a burst of writes is read at once. It reports
// whether target was created, i.e. replaced by a new file.
func (s *Source) waitForWrite(ctx context.Context, watcher *fsnotify.Watcher, target string) (bool, error) {
	written, replaced := false, false
	var settle <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return false, ctx.Err()

		case event, ok := <-watcher.Events:
			if !ok {
				return false, domain.ErrSourceClosed
			}
			if abs, _ := filepath.Abs(event.Name); abs != target {
				continue
			}
			if event.Has(fsnotify.Create) {
				replaced = true
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
				written = true
				settle = time.After(s.debounce)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return false, domain.ErrSourceClosed
			}
			logger.Warn("Watcher error on %s: %v", s.path, err)

		case <-settle:
			if written {
				return replaced, nil
			}
		}
	}
}
