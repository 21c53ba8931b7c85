// Package sqlite provides the SQLite dialect: connection setup through
// mattn/go-sqlite3, constraint error classification and embedded goose
// migrations.
package sqlite
