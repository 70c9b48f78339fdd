package services

import (
	"context"
	"errors"
	"sync"

	"github.com/custodia-labs/stackprobe/internal/core/domain"
	"github.com/custodia-labs/stackprobe/internal/core/ports/driven"
)

// mockSource implements driven.PageSource for testing.
type mockSource struct {
	pages       []domain.Page
	streamErr   error
	validateErr error

	// block keeps the stream open after the pages until ctx is cancelled.
	block bool
	// gate, when set, is received from before each page is sent.
	gate chan struct{}

	mu     sync.Mutex
	closed bool
}

func (m *mockSource) Name() string { return "mock" }

func (m *mockSource) Validate(_ context.Context) error { return m.validateErr }

func (m *mockSource) Stream(ctx context.Context) (<-chan domain.Page, <-chan error) {
	pages := make(chan domain.Page)
	errs := make(chan error, 1)

	go func() {
		defer close(pages)
		defer close(errs)

		for _, p := range m.pages {
			if m.gate != nil {
				select {
				case <-ctx.Done():
					errs <- ctx.Err()
					return
				case <-m.gate:
				}
			}
			select {
			case <-ctx.Done():
				errs <- ctx.Err()
				return
			case pages <- p:
			}
		}
		if m.streamErr != nil {
			errs <- m.streamErr
			return
		}
		if m.block {
			<-ctx.Done()
			errs <- ctx.Err()
		}
	}()

	return pages, errs
}

func (m *mockSource) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

func (m *mockSource) isClosed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

// mockFactory implements driven.SourceFactory for testing.
type mockFactory struct {
	source    driven.PageSource
	createErr error
	requests  []domain.ScanRequest
}

func (m *mockFactory) Create(_ context.Context, req domain.ScanRequest) (driven.PageSource, error) {
	m.requests = append(m.requests, req)
	if m.createErr != nil {
		return nil, m.createErr
	}
	return m.source, nil
}

// channelSource streams whatever the test sends on its channels.
type channelSource struct {
	pages chan domain.Page
	errs  chan error
}

func (c *channelSource) Name() string { return "channel" }

func (c *channelSource) Validate(_ context.Context) error { return nil }

func (c *channelSource) Stream(_ context.Context) (<-chan domain.Page, <-chan error) {
	return c.pages, c.errs
}

func (c *channelSource) Close() error { return nil }

// failingArchive implements driven.PageArchive and fails every write.
type failingArchive struct{}

var errArchiveWrite = errors.New("disk full")

func (failingArchive) Save(context.Context, domain.ArchiveSession, []domain.Page) error {
	return errArchiveWrite
}

func (failingArchive) List(context.Context) ([]domain.ArchiveSession, error) {
	return nil, errArchiveWrite
}

func (failingArchive) Get(context.Context, string) (*domain.ArchiveSession, error) {
	return nil, errArchiveWrite
}

func (failingArchive) Pages(context.Context, string) ([]domain.Page, error) {
	return nil, errArchiveWrite
}

func (failingArchive) Delete(context.Context, string) error {
	return errArchiveWrite
}
