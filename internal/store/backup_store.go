package store

import (
	"time"
)

// UpsertBackup saves or replaces the single backup snapshot held for a user.
// Last write wins; there is no version vector or conflict detection.
func (s *Store) UpsertBackup(userID int64, data string) (time.Time, error) {
	now := time.Now()
	query := `
		INSERT INTO backups (user_id, data, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET
			data = excluded.data,
			updated_at = excluded.updated_at;
	`
	_, err := s.db.Exec(query, userID, data, now)
	if err != nil {
		return time.Time{}, err
	}
	return now, nil
}

// GetBackup returns the stored backup payload and its timestamp for a user.
// sql.ErrNoRows is passed through when no backup has ever been saved.
func (s *Store) GetBackup(userID int64) (string, time.Time, error) {
	var data string
	var updatedAt time.Time
	err := s.db.QueryRow("SELECT data, updated_at FROM backups WHERE user_id = ?", userID).Scan(&data, &updatedAt)
	if err != nil {
		return "", time.Time{}, err
	}
	return data, updatedAt, nil
}
