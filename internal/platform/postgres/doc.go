// Package postgres provides PostgreSQL-specific implementations for the data
// storage interfaces defined in the internal/store package.
// It handles the details of database connections, query execution, schema
// migrations, and data mapping between domain entities and database records.
//
// Connections go through database/sql with the pgx stdlib driver; the schema
// lives in migrations/ and is embedded into the binary for goose.
package postgres
