package api

// Handlers for moving whole-catalog snapshots in and out: as a downloadable
// file, or against the configured remote backup service.

import (
	"errors"
	"net/http"

	"github.com/dmcosta/shelfmark/internal/syncer"
)

func (s *Server) handleExportSnapshot(w http.ResponseWriter, r *http.Request) {
	user := getUserFromContext(r)

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="shelfmark-backup.json"`)
	if err := s.gateway.ExportToFile(scopeForUser(user.ID), w); err != nil {
		RespondWithError(w, http.StatusInternalServerError, "Failed to export snapshot")
		return
	}
}

func (s *Server) handleImportSnapshot(w http.ResponseWriter, r *http.Request) {
	user := getUserFromContext(r)

	if err := s.gateway.ImportFromFile(scopeForUser(user.ID), r.Body); err != nil {
		if errors.Is(err, syncer.ErrInvalidSnapshot) {
			RespondWithError(w, http.StatusBadRequest, "Invalid snapshot file")
			return
		}
		RespondWithError(w, http.StatusInternalServerError, "Failed to import snapshot")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleSyncPush uploads the caller's catalog to the remote backup service.
// The remote bearer token travels in the X-Remote-Token header; this server
// never stores it.
func (s *Server) handleSyncPush(w http.ResponseWriter, r *http.Request) {
	user := getUserFromContext(r)
	token := r.Header.Get("X-Remote-Token")
	if token == "" {
		RespondWithError(w, http.StatusBadRequest, "Missing X-Remote-Token header")
		return
	}

	updatedAt, err := s.gateway.PushRemote(r.Context(), token, scopeForUser(user.ID))
	if err != nil {
		respondSyncError(w, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, map[string]any{"updatedAt": updatedAt})
}

// handleSyncPull replaces the caller's catalog with the remote snapshot.
// A remote that holds no snapshot yet is not an error: the response is 204
// and the local catalog stays as it was.
func (s *Server) handleSyncPull(w http.ResponseWriter, r *http.Request) {
	user := getUserFromContext(r)
	token := r.Header.Get("X-Remote-Token")
	if token == "" {
		RespondWithError(w, http.StatusBadRequest, "Missing X-Remote-Token header")
		return
	}

	snap, err := s.gateway.PullRemote(r.Context(), token, scopeForUser(user.ID))
	if err != nil {
		if errors.Is(err, syncer.ErrNotFound) {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		respondSyncError(w, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, map[string]any{"imported": len(snap.Entries)})
}

// respondSyncError translates the sync error taxonomy onto HTTP statuses.
func respondSyncError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, syncer.ErrUnauthorized):
		RespondWithError(w, http.StatusUnauthorized, "Remote rejected the token")
	case errors.Is(err, syncer.ErrForbidden):
		RespondWithError(w, http.StatusForbidden, "Remote forbids this operation")
	case errors.Is(err, syncer.ErrInvalidSnapshot):
		RespondWithError(w, http.StatusBadRequest, err.Error())
	default:
		RespondWithError(w, http.StatusBadGateway, "Remote backup service failed")
	}
}
