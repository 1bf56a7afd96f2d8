// Package sqlite_test contains integration tests for SQLite repositories.
//
// Every test database is built from db.GetSchemaSQL() so tests run against
// the authoritative schema. Do not hardcode CREATE TABLE statements here.
package sqlite_test

import (
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"

	"github.com/example/searchops/internal/db"
)

// setupTestDB creates an in-memory database with the authoritative schema.
// The pool is pinned to one connection so every query sees the same database.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	testDB, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	testDB.SetMaxOpenConns(1)

	_, err = testDB.Exec(db.GetSchemaSQL())
	if err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}

	t.Cleanup(func() {
		testDB.Close()
	})

	return testDB
}

// seedWitness inserts an AVAILABLE witness.
func seedWitness(t *testing.T, db *sql.DB, id, gender string) {
	t.Helper()
	_, err := db.Exec("INSERT INTO resources (id, type, name, gender) VALUES (?, 'WITNESS', ?, ?)", id, "Witness "+id, gender)
	if err != nil {
		t.Fatalf("failed to seed witness: %v", err)
	}
}

// seedPremise inserts an APPROVED premise with a small requisition.
func seedPremise(t *testing.T, db *sql.DB, id, searchID string) {
	t.Helper()
	_, err := db.Exec(
		`INSERT INTO premises (id, search_id, name, nature, has_requirements, male_witness, recce_status, decision_status)
		VALUES (?, ?, ?, 'OFFICE', 1, 1, 'COMPLETED', 'APPROVED')`,
		id, searchID, "Premise "+id,
	)
	if err != nil {
		t.Fatalf("failed to seed premise: %v", err)
	}
}

// seedAllocation inserts an allocation and marks the resource ASSIGNED.
func seedAllocation(t *testing.T, db *sql.DB, premiseID, resourceID string) {
	t.Helper()
	if _, err := db.Exec("INSERT INTO allocations (id, premise_id, resource_id, source) VALUES (?, ?, ?, 'sync')",
		premiseID+"/"+resourceID, premiseID, resourceID); err != nil {
		t.Fatalf("failed to seed allocation: %v", err)
	}
	if _, err := db.Exec("UPDATE resources SET status = 'ASSIGNED' WHERE id = ?", resourceID); err != nil {
		t.Fatalf("failed to mark resource assigned: %v", err)
	}
}
