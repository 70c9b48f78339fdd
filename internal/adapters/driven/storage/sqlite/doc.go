// Package sqlite provides the SQLite page archive.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that
// requires no CGO. It stores the raw pages of crawls so a session can be
// replayed through detection later. Detection results are never stored.
//
// # Schema
//
// The schema is managed through versioned migrations in the migrations/
// directory. Each migration is a pair of .up.sql and .down.sql files; applied
// versions are recorded in schema_migrations.
//
// # Data Location
//
// By default, the database is stored at ~/.stackprobe/data/archive.db
//
// # Thread Safety
//
// All operations are thread-safe. The store uses SQLite in WAL mode.
package sqlite
