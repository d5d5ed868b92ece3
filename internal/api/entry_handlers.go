package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/dmcosta/shelfmark/internal/catalog"
	"github.com/dmcosta/shelfmark/internal/models"
	"github.com/dmcosta/shelfmark/internal/query"
)

// handleListEntries returns a derived view of the caller's catalog. Without
// query parameters it is the default view: everything, newest first, one
// page revealed.
func (s *Server) handleListEntries(w http.ResponseWriter, r *http.Request) {
	user := getUserFromContext(r)
	entries, err := s.catalog.List(scopeForUser(user.ID))
	if err != nil {
		RespondWithError(w, http.StatusInternalServerError, "Failed to load catalog")
		return
	}

	q := r.URL.Query()
	spec := query.Spec{
		Status:  query.StatusFilter(q.Get("status")),
		Type:    models.MediaType(q.Get("type")),
		Weekday: models.Weekday(q.Get("weekday")),
		Search:  q.Get("q"),
		Sort:    query.Sort(q.Get("sort")),
	}
	if raw := q.Get("reveal"); raw != "" {
		reveal, err := strconv.Atoi(raw)
		if err != nil {
			RespondWithError(w, http.StatusBadRequest, "Invalid reveal value")
			return
		}
		spec.Reveal = reveal
	}

	RespondWithJSON(w, http.StatusOK, query.View(entries, spec))
}

func (s *Server) handleCreateEntry(w http.ResponseWriter, r *http.Request) {
	user := getUserFromContext(r)

	var input catalog.EntryInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	entry, err := s.catalog.Create(scopeForUser(user.ID), input)
	if err != nil {
		RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	RespondWithJSON(w, http.StatusCreated, entry)
}

func (s *Server) handleUpdateEntry(w http.ResponseWriter, r *http.Request) {
	user := getUserFromContext(r)
	entryID := chi.URLParam(r, "entryID")

	var input catalog.EntryInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	entry, ok, err := s.catalog.Update(scopeForUser(user.ID), entryID, input)
	if err != nil {
		RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	if !ok {
		RespondWithError(w, http.StatusNotFound, "Entry not found")
		return
	}
	RespondWithJSON(w, http.StatusOK, entry)
}

func (s *Server) handleDeleteEntry(w http.ResponseWriter, r *http.Request) {
	user := getUserFromContext(r)
	entryID := chi.URLParam(r, "entryID")

	ok, err := s.catalog.Remove(scopeForUser(user.ID), entryID)
	if err != nil {
		RespondWithError(w, http.StatusInternalServerError, "Failed to delete entry")
		return
	}
	if !ok {
		RespondWithError(w, http.StatusNotFound, "Entry not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleToggleFavorite(w http.ResponseWriter, r *http.Request) {
	user := getUserFromContext(r)
	entryID := chi.URLParam(r, "entryID")

	entry, ok, err := s.catalog.ToggleFavorite(scopeForUser(user.ID), entryID)
	if err != nil {
		RespondWithError(w, http.StatusInternalServerError, "Failed to update entry")
		return
	}
	if !ok {
		RespondWithError(w, http.StatusNotFound, "Entry not found")
		return
	}
	RespondWithJSON(w, http.StatusOK, entry)
}

func (s *Server) handleSetStatus(w http.ResponseWriter, r *http.Request) {
	user := getUserFromContext(r)
	entryID := chi.URLParam(r, "entryID")

	var payload struct {
		Status models.Status `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	entry, ok, err := s.catalog.SetStatus(scopeForUser(user.ID), entryID, payload.Status)
	if err != nil {
		RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	if !ok {
		RespondWithError(w, http.StatusNotFound, "Entry not found")
		return
	}
	RespondWithJSON(w, http.StatusOK, entry)
}

func (s *Server) handleAdjustChapter(w http.ResponseWriter, r *http.Request) {
	user := getUserFromContext(r)
	entryID := chi.URLParam(r, "entryID")

	var payload struct {
		Delta int `json:"delta"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	entry, ok, err := s.catalog.AdjustChapter(scopeForUser(user.ID), entryID, payload.Delta)
	if err != nil {
		RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	if !ok {
		RespondWithError(w, http.StatusNotFound, "Entry not found")
		return
	}
	RespondWithJSON(w, http.StatusOK, entry)
}
