// Package sqlstore implements the store interfaces on database/sql through
// sqlx. Queries are written once with '?' placeholders and rebound for the
// connection's driver, so the same stores serve PostgreSQL and SQLite. Driver
// specific error classification is supplied by a Dialect.
package sqlstore
