package syncer

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/dmcosta/shelfmark/internal/models"
)

// EncodeSnapshot writes a snapshot as the portable JSON document
// `{"version": 1, "entries": [...]}` used for manual transfer between
// devices.
func EncodeSnapshot(w io.Writer, snap models.Snapshot) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(snap); err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	return nil
}

// DecodeSnapshot parses a portable snapshot document. A document that does
// not parse yields ErrInvalidSnapshot; the version tag is carried through
// without being checked.
func DecodeSnapshot(r io.Reader) (models.Snapshot, error) {
	var snap models.Snapshot
	if err := json.NewDecoder(r).Decode(&snap); err != nil {
		return models.Snapshot{}, fmt.Errorf("%w: %v", ErrInvalidSnapshot, err)
	}
	if snap.Entries == nil {
		return models.Snapshot{}, fmt.Errorf("%w: document has no entries field", ErrInvalidSnapshot)
	}
	return snap, nil
}
