// Package testdb provides helpers for integration tests that need a real
// PostgreSQL database.
//
// Tests using it should carry the integration build tag:
//
//	//go:build integration
//
// GetTestDBWithT skips the calling test when no database URL is configured,
// so the tagged suites can run in any environment. Schema setup goes through
// the same embedded goose migrations the server runs.
package testdb
