package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/custodia-labs/stackprobe/internal/core/domain"
	"github.com/custodia-labs/stackprobe/internal/core/ports/driven"
)

// pageArchive implements driven.PageArchive.
type pageArchive struct {
	store *Store
}

var _ driven.PageArchive = (*pageArchive)(nil)

// Save stores a session and its pages in one transaction, replacing any
// earlier session with the same ID.
func (a *pageArchive) Save(ctx context.Context, session domain.ArchiveSession, pages []domain.Page) error {
	if session.ID == "" {
		return fmt.Errorf("%w: session id is required", domain.ErrInvalidInput)
	}

	targets := session.Targets
	if targets == nil {
		targets = []string{}
	}
	targetsJSON, err := json.Marshal(targets)
	if err != nil {
		return fmt.Errorf("marshalling targets: %w", err)
	}
	if session.CreatedAt.IsZero() {
		session.CreatedAt = time.Now()
	}

	tx, err := a.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	if _, err := tx.ExecContext(ctx, `DELETE FROM archive_sessions WHERE id = ?`, session.ID); err != nil {
		return fmt.Errorf("replacing session: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO archive_sessions (id, source, targets, page_count, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, session.ID, session.Source, string(targetsJSON), len(pages), session.CreatedAt.UnixNano())
	if err != nil {
		return fmt.Errorf("saving session: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO archive_pages (session_id, seq, url, content) VALUES (?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing page insert: %w", err)
	}
	defer stmt.Close()

	for i, p := range pages {
		if _, err := stmt.ExecContext(ctx, session.ID, i, p.URL, p.Content); err != nil {
			return fmt.Errorf("saving page %s: %w", p.URL, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing session: %w", err)
	}
	return nil
}

// List returns all sessions, newest first.
func (a *pageArchive) List(ctx context.Context) ([]domain.ArchiveSession, error) {
	rows, err := a.store.db.QueryContext(ctx, `
		SELECT id, source, targets, page_count, created_at
		FROM archive_sessions
		ORDER BY created_at DESC, id
	`)
	if err != nil {
		return nil, fmt.Errorf("querying sessions: %w", err)
	}
	defer rows.Close()

	var sessions []domain.ArchiveSession //nolint:prealloc // size unknown from query
	for rows.Next() {
		session, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, *session)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating sessions: %w", err)
	}
	return sessions, nil
}

// Get retrieves a session by ID.
func (a *pageArchive) Get(ctx context.Context, id string) (*domain.ArchiveSession, error) {
	row := a.store.db.QueryRowContext(ctx, `
		SELECT id, source, targets, page_count, created_at
		FROM archive_sessions WHERE id = ?
	`, id)
	return scanSession(row)
}

// Pages returns the pages of a session in save order.
func (a *pageArchive) Pages(ctx context.Context, id string) ([]domain.Page, error) {
	if _, err := a.Get(ctx, id); err != nil {
		return nil, err
	}

	rows, err := a.store.db.QueryContext(ctx, `
		SELECT url, content FROM archive_pages WHERE session_id = ? ORDER BY seq
	`, id)
	if err != nil {
		return nil, fmt.Errorf("querying pages: %w", err)
	}
	defer rows.Close()

	var pages []domain.Page //nolint:prealloc // size unknown from query
	for rows.Next() {
		var p domain.Page
		if err := rows.Scan(&p.URL, &p.Content); err != nil {
			return nil, fmt.Errorf("scanning page: %w", err)
		}
		pages = append(pages, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating pages: %w", err)
	}
	return pages, nil
}

// Delete removes a session; its pages are removed by cascade.
func (a *pageArchive) Delete(ctx context.Context, id string) error {
	if _, err := a.store.db.ExecContext(ctx, `DELETE FROM archive_sessions WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting session: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSession(row rowScanner) (*domain.ArchiveSession, error) {
	var session domain.ArchiveSession
	var targetsJSON string
	var createdAt int64
	if err := row.Scan(&session.ID, &session.Source, &targetsJSON, &session.PageCount, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning session: %w", err)
	}

	if err := json.Unmarshal([]byte(targetsJSON), &session.Targets); err != nil {
		return nil, fmt.Errorf("unmarshalling targets: %w", err)
	}
	session.CreatedAt = time.Unix(0, createdAt).UTC()
	return &session, nil
}
