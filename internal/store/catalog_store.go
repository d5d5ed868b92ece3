package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/dmcosta/shelfmark/internal/models"
)

// LoadCatalog reads the persisted catalog for a scope. A missing row and a
// payload that no longer parses both yield an empty catalog: the caller
// always gets a working catalog rather than a storage error. Genuine
// database failures are still returned.
func (s *Store) LoadCatalog(scope string) ([]models.Entry, error) {
	var payload string
	err := s.db.QueryRow("SELECT payload FROM catalogs WHERE scope = ?", scope).Scan(&payload)
	if err == sql.ErrNoRows {
		return []models.Entry{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load catalog for scope %s: %w", scope, err)
	}

	var entries []models.Entry
	if err := json.Unmarshal([]byte(payload), &entries); err != nil {
		// Corrupt payload. Reset silently: an empty working catalog beats
		// surfacing a parse error the user cannot act on.
		log.Printf("Catalog payload for scope %s is corrupt, starting empty: %v", scope, err)
		return []models.Entry{}, nil
	}
	if entries == nil {
		entries = []models.Entry{}
	}
	return entries, nil
}

// SaveCatalog overwrites the entire stored catalog for a scope with the
// given entry list. Catalogs are personal-scale, so a full rewrite per
// mutation is fine.
func (s *Store) SaveCatalog(scope string, entries []models.Entry) error {
	if entries == nil {
		entries = []models.Entry{}
	}
	payload, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("encode catalog for scope %s: %w", scope, err)
	}

	query := `
		INSERT INTO catalogs (scope, payload, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(scope) DO UPDATE SET
			payload = excluded.payload,
			updated_at = excluded.updated_at;
	`
	_, err = s.db.Exec(query, scope, string(payload), time.Now())
	if err != nil {
		return fmt.Errorf("save catalog for scope %s: %w", scope, err)
	}
	return nil
}
