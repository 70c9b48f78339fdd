// Package ndjson frames newline-delimited JSON page records from a byte stream.
//
// Chunks may split or merge records at arbitrary byte boundaries. The Framer
// keeps the unterminated tail between writes and only emits complete,
// parsed records. Blank and malformed lines are dropped.
package ndjson

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"

	"github.com/custodia-labs/stackprobe/internal/core/domain"
	"github.com/custodia-labs/stackprobe/internal/logger"
)

// chunkSize is the read size used by Decode.
const chunkSize = 32 * 1024

// Framer reassembles page records from arbitrary chunks.
// The zero value is ready to use. A Framer is not safe for concurrent use.
type Framer struct {
	buf     []byte
	dropped int
}

// Write appends a chunk and returns the records completed by it, in order.
func (f *Framer) Write(chunk []byte) []domain.Page {
	f.buf = append(f.buf, chunk...)

	var pages []domain.Page
	for {
		i := bytes.IndexByte(f.buf, '\n')
		if i < 0 {
			break
		}
		line := f.buf[:i]
		if p, ok := f.parse(line); ok {
			pages = append(pages, p)
		}
		f.buf = f.buf[i+1:]
	}

	// Compact so a long stream does not pin every chunk it has seen.
	if len(f.buf) == 0 {
		f.buf = nil
	} else if cap(f.buf) > 2*len(f.buf)+chunkSize {
		f.buf = append([]byte(nil), f.buf...)
	}
	return pages
}

// Flush parses whatever remains after the last newline as a final record.
// It returns false when the tail is empty or malformed. The buffer is cleared.
func (f *Framer) Flush() (domain.Page, bool) {
	tail := f.buf
	f.buf = nil
	return f.parse(tail)
}

// Pending returns the number of buffered bytes not yet terminated by a newline.
func (f *Framer) Pending() int {
	return len(f.buf)
}

// Dropped returns how many non-blank lines failed to parse.
func (f *Framer) Dropped() int {
	return f.dropped
}

// Reset discards buffered data and counters.
func (f *Framer) Reset() {
	f.buf = nil
	f.dropped = 0
}

func (f *Framer) parse(line []byte) (domain.Page, bool) {
	line = bytes.TrimSpace(line)
	if len(line) == 0 {
		return domain.Page{}, false
	}
	var p domain.Page
	if err := json.Unmarshal(line, &p); err != nil {
		f.dropped++
		logger.Debug("Dropping malformed record (%d bytes): %v", len(line), err)
		return domain.Page{}, false
	}
	return p, true
}

// Decode reads r until EOF, calling emit for every record in arrival order.
//
// On EOF or a read error the unterminated tail is emitted as a best-effort
// final record. EOF ends the stream cleanly; other read errors are returned
// after the flush. Cancelling ctx stops between reads and returns ctx.Err().
// An error from emit stops decoding and is returned as is.
func Decode(ctx context.Context, r io.Reader, emit func(domain.Page) error) error {
	var f Framer
	buf := make([]byte, chunkSize)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		n, readErr := r.Read(buf)
		if n > 0 {
			for _, p := range f.Write(buf[:n]) {
				if err := emit(p); err != nil {
					return err
				}
			}
		}

		if readErr != nil {
			if p, ok := f.Flush(); ok {
				if err := emit(p); err != nil {
					return err
				}
			}
			if errors.Is(readErr, io.EOF) {
				return nil
			}
			return readErr
		}
	}
}
