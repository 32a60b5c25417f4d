// Package sqlite_test contains integration tests for SQLite repositories.
//
// All test setup functions use db.GetSchemaSQL() so tests run against the
// authoritative schema. Do not hardcode CREATE TABLE statements in test
// files; use setupTestDB() and the seed* helpers instead.
package sqlite_test

import (
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"

	"github.com/example/techmarket/internal/db"
)

// setupTestDB creates an in-memory database with the authoritative schema.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	testDB, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}

	if _, err := testDB.Exec("PRAGMA foreign_keys = ON"); err != nil {
		t.Fatalf("failed to enable foreign keys: %v", err)
	}

	if _, err := testDB.Exec(db.GetSchemaSQL()); err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}

	t.Cleanup(func() {
		testDB.Close()
	})

	return testDB
}

// seedProfile inserts a test profile and returns its ID.
func seedProfile(t *testing.T, db *sql.DB, id, role string) string {
	t.Helper()
	if id == "" {
		id = "PRO-001"
	}
	if role == "" {
		role = "technician"
	}
	_, err := db.Exec(
		"INSERT INTO profiles (id, role, first_name, last_name, email, phone, profile_url, rate) VALUES (?, ?, 'Test', 'Person', 'test@example.com', '+1-555-0100', 'https://example.com/p', 90)",
		id, role,
	)
	if err != nil {
		t.Fatalf("failed to seed profile: %v", err)
	}
	return id
}

// seedMission inserts a test mission between two profiles and returns its ID.
func seedMission(t *testing.T, db *sql.DB, id, clientID, techID, status string) string {
	t.Helper()
	if id == "" {
		id = "MSN-001"
	}
	if status == "" {
		status = "pending"
	}
	var acceptedAt any
	if status == "accepted" || status == "completed" {
		acceptedAt = "2026-02-01T10:00:00Z"
	}
	_, err := db.Exec(
		"INSERT INTO missions (id, title, status, client_profile_id, technician_id, accepted_at) VALUES (?, 'Test Mission', ?, ?, ?, ?)",
		id, status, clientID, techID, acceptedAt,
	)
	if err != nil {
		t.Fatalf("failed to seed mission: %v", err)
	}
	return id
}

// seedGuestMission inserts a mission submitted by a guest and returns its ID.
func seedGuestMission(t *testing.T, db *sql.DB, id, guestToken, techID, status string) string {
	t.Helper()
	if id == "" {
		id = "MSN-001"
	}
	if status == "" {
		status = "pending"
	}
	_, err := db.Exec(
		"INSERT INTO missions (id, title, status, guest_token, guest_name, guest_email, technician_id) VALUES (?, 'Guest Mission', ?, ?, 'Jane Doe', 'jane@x.com', ?)",
		id, status, guestToken, techID,
	)
	if err != nil {
		t.Fatalf("failed to seed guest mission: %v", err)
	}
	return id
}

// seedMessage inserts a test message and returns its ID.
func seedMessage(t *testing.T, db *sql.DB, id, missionID, senderRef, body string) string {
	t.Helper()
	if id == "" {
		id = "MSG-001"
	}
	if body == "" {
		body = "Test message"
	}
	_, err := db.Exec(
		"INSERT INTO messages (id, mission_id, sender_ref, body) VALUES (?, ?, ?, ?)",
		id, missionID, senderRef, body,
	)
	if err != nil {
		t.Fatalf("failed to seed message: %v", err)
	}
	return id
}
