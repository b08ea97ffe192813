// Package testutil provides testing utilities for repository tests.
//
// Repository tests run against a sqlmock database so they exercise the exact
// SQL each repository issues without needing a live server:
//
//	db, mock := testutil.NewMockDB(t)
//	defer testutil.TeardownDB(t, db, mock)
package testutil

import (
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

// NewMockDB creates a sqlmock-backed database handle. Expectations use
// regexp matching, so tests can anchor on SQL fragments instead of the full
// statement text.
func NewMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	return db, mock
}

// TeardownDB closes the mock database and verifies every declared
// expectation was met.
func TeardownDB(t *testing.T, db *sql.DB, mock sqlmock.Sqlmock) {
	t.Helper()

	require.NoError(t, mock.ExpectationsWereMet())
	mock.ExpectClose()
	require.NoError(t, db.Close())
}
