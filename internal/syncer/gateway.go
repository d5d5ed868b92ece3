// The syncer package replicates whole-catalog snapshots: to a portable
// file for manual transfer, or to a remote backup service over HTTP.
// Transfers are always full snapshots — last write wins, no merging, no
// deltas.

package syncer

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/dmcosta/shelfmark/internal/catalog"
	"github.com/dmcosta/shelfmark/internal/models"
)

// Gateway moves snapshots between the local catalog and the outside world.
type Gateway struct {
	svc    *catalog.Service
	client *Client
}

// NewGateway creates a gateway over the given catalog service. client may
// be nil when no remote service is configured; the file paths keep working.
func NewGateway(svc *catalog.Service, client *Client) *Gateway {
	return &Gateway{svc: svc, client: client}
}

// Export produces a version-1 snapshot of the full catalog, in canonical
// order. The snapshot is a deep copy; exporting never disturbs the source.
func (g *Gateway) Export(scope string) (models.Snapshot, error) {
	entries, err := g.svc.List(scope)
	if err != nil {
		return models.Snapshot{}, err
	}
	snap := models.Snapshot{Version: models.SnapshotVersion, Entries: entries}
	return snap.Clone(), nil
}

// Import replaces the whole catalog for a scope with the snapshot's
// entries — it is not a merge. The snapshot is validated in full first, so
// a bad one leaves the existing catalog untouched. The version tag is
// accepted as-is.
func (g *Gateway) Import(scope string, snap models.Snapshot) error {
	if snap.Entries == nil {
		return fmt.Errorf("%w: snapshot has no entries", ErrInvalidSnapshot)
	}
	for i := range snap.Entries {
		if err := snap.Entries[i].Validate(); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidSnapshot, err)
		}
	}
	return g.svc.Replace(scope, snap.Entries)
}

// ExportToFile writes the catalog as a portable snapshot document.
func (g *Gateway) ExportToFile(scope string, w io.Writer) error {
	snap, err := g.Export(scope)
	if err != nil {
		return err
	}
	return EncodeSnapshot(w, snap)
}

// ImportFromFile reads a portable snapshot document and replaces the
// catalog with it. Parse or validation failures leave the catalog as it
// was.
func (g *Gateway) ImportFromFile(scope string, r io.Reader) error {
	snap, err := DecodeSnapshot(r)
	if err != nil {
		return err
	}
	return g.Import(scope, snap)
}

// PushRemote uploads the full catalog to the remote backup service using
// the given bearer token. It returns the remote's updatedAt stamp.
func (g *Gateway) PushRemote(ctx context.Context, token, scope string) (time.Time, error) {
	if g.client == nil {
		return time.Time{}, fmt.Errorf("%w: no remote backup service configured", ErrServer)
	}
	snap, err := g.Export(scope)
	if err != nil {
		return time.Time{}, err
	}
	return g.client.Push(ctx, token, snap)
}

// PullRemote downloads the remote snapshot and replaces the local catalog
// with it. ErrNotFound means no snapshot was ever pushed for this identity;
// the local catalog is untouched in every non-success case.
func (g *Gateway) PullRemote(ctx context.Context, token, scope string) (models.Snapshot, error) {
	if g.client == nil {
		return models.Snapshot{}, fmt.Errorf("%w: no remote backup service configured", ErrServer)
	}
	snap, _, err := g.client.Pull(ctx, token)
	if err != nil {
		return models.Snapshot{}, err
	}
	if err := g.Import(scope, snap); err != nil {
		return models.Snapshot{}, err
	}
	return snap, nil
}
