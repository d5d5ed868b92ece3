package models

// SnapshotVersion is the version tag written into exported snapshots.
// Incoming snapshots carry their version through unvalidated; the core is
// deliberately permissive about mismatches.
const SnapshotVersion = 1

// Snapshot is the whole-catalog transfer unit used for file export/import
// and remote backup. A Snapshot is a value: transferring one never
// partially mutates its source.
type Snapshot struct {
	Version int     `json:"version"`
	Entries []Entry `json:"entries"`
}

// Clone returns a deep copy of the snapshot.
func (s Snapshot) Clone() Snapshot {
	c := Snapshot{Version: s.Version}
	if s.Entries != nil {
		c.Entries = make([]Entry, len(s.Entries))
		for i, e := range s.Entries {
			c.Entries[i] = e.Clone()
		}
	}
	return c
}
