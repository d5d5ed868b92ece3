package store

import (
	"database/sql"
	"time"

	"github.com/dmcosta/shelfmark/internal/models"
)

// CreateAccessCode stores a new one-time registration code. createdBy may be
// zero for codes provisioned at first startup.
func (s *Store) CreateAccessCode(code string, createdBy int64) error {
	var by any
	if createdBy != 0 {
		by = createdBy
	}
	_, err := s.db.Exec("INSERT INTO access_codes (code, used, created_by, created_at) VALUES (?, 0, ?, ?)",
		code, by, time.Now())
	return err
}

// GetAccessCode retrieves a registration code.
func (s *Store) GetAccessCode(code string) (*models.AccessCode, error) {
	var ac models.AccessCode
	var usedAt sql.NullTime
	query := "SELECT code, used, used_at, created_at FROM access_codes WHERE code = ?"
	err := s.db.QueryRow(query, code).Scan(&ac.Code, &ac.Used, &usedAt, &ac.CreatedAt)
	if err != nil {
		return nil, err
	}
	if usedAt.Valid {
		ac.UsedAt = &usedAt.Time
	}
	return &ac, nil
}

// MarkAccessCodeUsed burns a registration code so it cannot be reused.
func (s *Store) MarkAccessCodeUsed(code string) error {
	_, err := s.db.Exec("UPDATE access_codes SET used = 1, used_at = ? WHERE code = ?", time.Now(), code)
	return err
}
