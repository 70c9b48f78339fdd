package domain

import (
	"fmt"
	"strings"
)

// SourceKind identifies where a scan reads its pages from.
type SourceKind string

// Supported page sources.
const (
	SourceCrawl   SourceKind = "crawl"
	SourceFile    SourceKind = "file"
	SourceQueue   SourceKind = "queue"
	SourceArchive SourceKind = "archive"
)

// IsValid returns true if the source kind is recognised.
func (k SourceKind) IsValid() bool {
	switch k {
	case SourceCrawl, SourceFile, SourceQueue, SourceArchive:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (k SourceKind) String() string {
	return string(k)
}

// ScanRequest describes the page source for one scan.
// Only the fields for Kind are read.
type ScanRequest struct {
	Kind SourceKind

	// Crawl is used by SourceCrawl.
	Crawl CrawlOptions

	// Path is used by SourceFile; "-" reads standard input.
	Path string
	// Follow keeps reading a file as it grows.
	Follow bool

	// Queue is used by SourceQueue.
	Queue QueueSettings

	// ArchiveID is used by SourceArchive.
	ArchiveID string
}

// Validate checks that the fields for Kind are present.
func (r *ScanRequest) Validate() error {
	switch r.Kind {
	case SourceCrawl:
		return r.Crawl.Validate()
	case SourceFile:
		if r.Path == "" {
			return fmt.Errorf("%w: file path is required", ErrInvalidInput)
		}
	case SourceQueue:
		if r.Queue.URL == "" {
			return fmt.Errorf("%w: queue url is required", ErrInvalidInput)
		}
	case SourceArchive:
		if r.ArchiveID == "" {
			return fmt.Errorf("%w: archive session id is required", ErrInvalidInput)
		}
	default:
		return fmt.Errorf("%w: unknown source %q", ErrInvalidInput, r.Kind)
	}
	return nil
}

// Label returns a short human readable description of the source.
func (r ScanRequest) Label() string {
	switch r.Kind {
	case SourceCrawl:
		return fmt.Sprintf("crawl %s", strings.Join(r.Crawl.Targets, ","))
	case SourceFile:
		if r.Path == "-" {
			return "stdin"
		}
		return "file " + r.Path
	case SourceQueue:
		return "queue " + r.Queue.URL
	case SourceArchive:
		return "archive " + r.ArchiveID
	default:
		return string(r.Kind)
	}
}
