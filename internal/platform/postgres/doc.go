// Package postgres implements the store interfaces on PostgreSQL through
// database/sql and the pgx driver. Account queries are plain SQL; catalog
// queries are built with goqu and scanned with sqlx. The package also owns
// the embedded goose migrations and the mapping from PostgreSQL error codes
// to store errors.
package postgres
