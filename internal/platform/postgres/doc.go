// Package postgres provides the PostgreSQL dialect for the SQL stores:
// connection setup through the pgx database/sql driver, SQLSTATE based error
// classification and embedded goose migrations.
package postgres
