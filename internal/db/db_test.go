package db_test

import (
	"testing"

	"github.com/dmcosta/shelfmark/internal/testutil"
)

func TestForeignKeyCascadeDelete(t *testing.T) {
	// Setup test database with migrations already applied
	db := testutil.SetupTestDB(t)

	// Verify foreign keys are enabled
	var foreignKeysEnabled int
	err := db.QueryRow("PRAGMA foreign_keys").Scan(&foreignKeysEnabled)
	if err != nil {
		t.Fatalf("Failed to check foreign keys status: %v", err)
	}
	if foreignKeysEnabled != 1 {
		t.Errorf("Foreign keys should be enabled, got: %d", foreignKeysEnabled)
	}

	// Create a user with a session and a backup
	_, err = db.Exec("INSERT INTO users (username, password_hash, role, created_at) VALUES (?, ?, ?, datetime('now'))",
		"testuser", "hash", "user")
	if err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}
	_, err = db.Exec("INSERT INTO sessions (token, user_id, expiry) VALUES (?, ?, datetime('now', '+1 day'))",
		"tok", 1)
	if err != nil {
		t.Fatalf("Failed to create test session: %v", err)
	}
	_, err = db.Exec("INSERT INTO backups (user_id, data, updated_at) VALUES (?, ?, datetime('now'))",
		1, `{"version":1,"entries":[]}`)
	if err != nil {
		t.Fatalf("Failed to create test backup: %v", err)
	}

	// Delete the user and verify sessions and backups cascade
	_, err = db.Exec("DELETE FROM users WHERE id = 1")
	if err != nil {
		t.Fatalf("Failed to delete user: %v", err)
	}

	var count int
	err = db.QueryRow("SELECT COUNT(*) FROM sessions WHERE user_id = 1").Scan(&count)
	if err != nil {
		t.Fatalf("Failed to check sessions: %v", err)
	}
	if count != 0 {
		t.Errorf("Expected 0 sessions after user deletion, got %d", count)
	}

	err = db.QueryRow("SELECT COUNT(*) FROM backups WHERE user_id = 1").Scan(&count)
	if err != nil {
		t.Fatalf("Failed to check backups: %v", err)
	}
	if count != 0 {
		t.Errorf("Expected 0 backups after user deletion, got %d", count)
	}
}
