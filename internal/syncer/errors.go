package syncer

import "errors"

// Sync failure taxonomy. Each is caller-visible and distinct so callers can
// pick the right remedy: re-authenticate, upgrade the account tier, fix the
// input, or retry later. ErrNotFound on pull is a valid terminal outcome
// ("nothing to restore"), not a failure. The gateway never retries.
var (
	ErrUnauthorized    = errors.New("sync: missing or invalid credential")
	ErrForbidden       = errors.New("sync: account tier cannot save remote backups")
	ErrNotFound        = errors.New("sync: no remote snapshot exists")
	ErrInvalidSnapshot = errors.New("sync: snapshot is empty or malformed")
	ErrServer          = errors.New("sync: remote service failure")
)
