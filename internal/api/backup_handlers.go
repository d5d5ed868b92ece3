package api

// The backup endpoints are the server side of remote sync: one snapshot per
// account, last write wins. They authenticate with bearer tokens so other
// shelfmark instances (or any sync client) can call them directly.

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dmcosta/shelfmark/internal/models"
)

func (s *Server) handleSaveBackup(w http.ResponseWriter, r *http.Request) {
	claims := getClaimsFromContext(r)
	if claims == nil {
		RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	// Demo accounts may read but never overwrite the stored snapshot.
	if claims.Role == models.RoleDemo {
		RespondWithError(w, http.StatusForbidden, "Demo accounts cannot save backups")
		return
	}

	var payload struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || len(payload.Data) == 0 {
		RespondWithError(w, http.StatusBadRequest, "Missing backup data")
		return
	}

	updatedAt, err := s.store.UpsertBackup(claims.UserID, string(payload.Data))
	if err != nil {
		RespondWithError(w, http.StatusInternalServerError, "Failed to save backup")
		return
	}

	RespondWithJSON(w, http.StatusOK, map[string]any{"updatedAt": updatedAt})
}

func (s *Server) handleGetBackup(w http.ResponseWriter, r *http.Request) {
	claims := getClaimsFromContext(r)
	if claims == nil {
		RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	data, updatedAt, err := s.store.GetBackup(claims.UserID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			RespondWithError(w, http.StatusNotFound, "No backup found")
			return
		}
		RespondWithError(w, http.StatusInternalServerError, "Failed to load backup")
		return
	}

	RespondWithJSON(w, http.StatusOK, map[string]any{
		"data":      json.RawMessage(data),
		"updatedAt": updatedAt,
	})
}
