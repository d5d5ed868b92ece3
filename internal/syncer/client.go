package syncer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/dmcosta/shelfmark/internal/models"
)

// Client talks to a remote backup service, typically another shelfmark
// instance. The service holds a single snapshot per authenticated identity;
// push always overwrites it wholesale.
type Client struct {
	client  *http.Client
	baseURL string
}

// NewClient creates a client for the backup service at baseURL.
func NewClient(baseURL string) *Client {
	return &Client{
		client:  &http.Client{Timeout: 20 * time.Second},
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

type pushRequest struct {
	Data json.RawMessage `json:"data"`
}

type backupResponse struct {
	Data      json.RawMessage `json:"data,omitempty"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// Push uploads a snapshot, overwriting whatever the service held before.
// An empty snapshot is rejected locally: pushing one would only wipe the
// remote copy.
func (c *Client) Push(ctx context.Context, token string, snap models.Snapshot) (time.Time, error) {
	if len(snap.Entries) == 0 {
		return time.Time{}, fmt.Errorf("%w: refusing to push an empty snapshot", ErrInvalidSnapshot)
	}

	data, err := json.Marshal(snap)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %v", ErrInvalidSnapshot, err)
	}
	body, err := json.Marshal(pushRequest{Data: data})
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %v", ErrInvalidSnapshot, err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/api/backup", bytes.NewReader(body))
	if err != nil {
		return time.Time{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.client.Do(req)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %v", ErrServer, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return time.Time{}, errFromStatus(resp.StatusCode)
	}

	var out backupResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return time.Time{}, fmt.Errorf("%w: %v", ErrServer, err)
	}
	return out.UpdatedAt, nil
}

// Pull fetches the snapshot stored for the authenticated identity.
// ErrNotFound means nothing was ever pushed; callers must not treat that as
// a failure.
func (c *Client) Pull(ctx context.Context, token string) (models.Snapshot, time.Time, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", c.baseURL+"/api/backup", nil)
	if err != nil {
		return models.Snapshot{}, time.Time{}, err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.client.Do(req)
	if err != nil {
		return models.Snapshot{}, time.Time{}, fmt.Errorf("%w: %v", ErrServer, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return models.Snapshot{}, time.Time{}, errFromStatus(resp.StatusCode)
	}

	var out backupResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return models.Snapshot{}, time.Time{}, fmt.Errorf("%w: %v", ErrServer, err)
	}

	snap, err := DecodeSnapshot(bytes.NewReader(out.Data))
	if err != nil {
		return models.Snapshot{}, time.Time{}, err
	}
	return snap, out.UpdatedAt, nil
}

func errFromStatus(code int) error {
	switch code {
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusForbidden:
		return ErrForbidden
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusBadRequest:
		return ErrInvalidSnapshot
	default:
		return fmt.Errorf("%w: unexpected status %d", ErrServer, code)
	}
}
