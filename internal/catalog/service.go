// The catalog package owns a user's entry collection and its write-through
// persistence discipline: every mutation rewrites the stored catalog before
// returning. Reads always succeed; a scope that has never been written (or
// whose stored payload went bad) behaves as an empty catalog.

package catalog

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dmcosta/shelfmark/internal/models"
)

// Persister is the storage port the service writes through. The sqlite
// store implements it; tests use MemStore.
type Persister interface {
	LoadCatalog(scope string) ([]models.Entry, error)
	SaveCatalog(scope string, entries []models.Entry) error
}

// Service applies mutations to per-scope catalogs. The clock and the id
// generator are injectable for tests.
type Service struct {
	store Persister
	now   func() time.Time
	newID func() string
}

// NewService creates a catalog service backed by the given persister.
func NewService(store Persister) *Service {
	return &Service{
		store: store,
		now:   time.Now,
		newID: uuid.NewString,
	}
}

// WithClock overrides the service clock. Test hook.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// WithIDGenerator overrides the id generator. Test hook.
func (s *Service) WithIDGenerator(newID func() string) *Service {
	s.newID = newID
	return s
}

// EntryInput carries the user-editable fields of an entry. Rating and
// chapter arrive as raw text from forms and are sanitized, not rejected:
// unparsable text leaves the field unset, out-of-range values are clamped.
type EntryInput struct {
	Title           string           `json:"title"`
	MediaType       models.MediaType `json:"mediaType"`
	Status          models.Status    `json:"status"`
	RatingText      string           `json:"rating"`
	ChapterText     string           `json:"chapterProgress"`
	Comment         string           `json:"comment"`
	CoverImageURL   string           `json:"coverImageUrl"`
	ExternalLinkURL string           `json:"externalLinkUrl"`
	ReleaseWeekday  models.Weekday   `json:"releaseWeekday"`
}

func (in *EntryInput) validate() error {
	if in.Title == "" {
		return fmt.Errorf("title must not be empty")
	}
	if !in.MediaType.Valid() {
		return fmt.Errorf("unknown media type %q", in.MediaType)
	}
	if !in.Status.Valid() {
		return fmt.Errorf("unknown status %q", in.Status)
	}
	if !in.ReleaseWeekday.Valid() {
		return fmt.Errorf("unknown release weekday %q", in.ReleaseWeekday)
	}
	return nil
}

// List returns the full catalog for a scope in canonical (insertion) order.
func (s *Service) List(scope string) ([]models.Entry, error) {
	return s.store.LoadCatalog(scope)
}

// Create appends a new entry to the catalog and persists it. The entry gets
// a fresh id, favorite off, empty tags and matching created/updated stamps.
func (s *Service) Create(scope string, in EntryInput) (models.Entry, error) {
	if err := in.validate(); err != nil {
		return models.Entry{}, err
	}

	entries, err := s.store.LoadCatalog(scope)
	if err != nil {
		return models.Entry{}, err
	}

	now := s.now()
	entry := models.Entry{
		ID:              s.newID(),
		Title:           in.Title,
		MediaType:       in.MediaType,
		Status:          in.Status,
		Favorite:        false,
		Tags:            []string{},
		Rating:          ParseRating(in.RatingText),
		Comment:         in.Comment,
		CoverImageURL:   in.CoverImageURL,
		ExternalLinkURL: in.ExternalLinkURL,
		ChapterProgress: ParseChapter(in.ChapterText),
		ReleaseWeekday:  in.ReleaseWeekday,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	entries = append(entries, entry)
	if err := s.store.SaveCatalog(scope, entries); err != nil {
		return models.Entry{}, err
	}
	return entry.Clone(), nil
}

// Update replaces the mutable fields of an entry and stamps updatedAt.
// An unknown id is a no-op: ok is false and nothing is persisted.
func (s *Service) Update(scope, id string, in EntryInput) (models.Entry, bool, error) {
	if err := in.validate(); err != nil {
		return models.Entry{}, false, err
	}
	return s.mutate(scope, id, func(e *models.Entry) {
		e.Title = in.Title
		e.MediaType = in.MediaType
		e.Status = in.Status
		e.Rating = ParseRating(in.RatingText)
		e.Comment = in.Comment
		e.CoverImageURL = in.CoverImageURL
		e.ExternalLinkURL = in.ExternalLinkURL
		e.ChapterProgress = ParseChapter(in.ChapterText)
		e.ReleaseWeekday = in.ReleaseWeekday
	})
}

// ToggleFavorite flips the favorite flag of an entry.
func (s *Service) ToggleFavorite(scope, id string) (models.Entry, bool, error) {
	return s.mutate(scope, id, func(e *models.Entry) {
		e.Favorite = !e.Favorite
	})
}

// SetStatus moves an entry to the given status. Any status is reachable
// from any other; there is no transition graph.
func (s *Service) SetStatus(scope, id string, status models.Status) (models.Entry, bool, error) {
	if !status.Valid() {
		return models.Entry{}, false, fmt.Errorf("unknown status %q", status)
	}
	return s.mutate(scope, id, func(e *models.Entry) {
		e.Status = status
	})
}

// AdjustChapter moves the chapter counter by delta (+1 or -1), flooring the
// result at zero. An unset counter counts as zero.
func (s *Service) AdjustChapter(scope, id string, delta int) (models.Entry, bool, error) {
	if delta != 1 && delta != -1 {
		return models.Entry{}, false, fmt.Errorf("chapter delta must be +1 or -1, got %d", delta)
	}
	return s.mutate(scope, id, func(e *models.Entry) {
		current := 0
		if e.ChapterProgress != nil {
			current = *e.ChapterProgress
		}
		next := current + delta
		if next < 0 {
			next = 0
		}
		e.ChapterProgress = &next
	})
}

// Remove permanently deletes an entry. There is no tombstone and no
// recovery path; confirmation is a UI concern.
func (s *Service) Remove(scope, id string) (bool, error) {
	entries, err := s.store.LoadCatalog(scope)
	if err != nil {
		return false, err
	}

	kept := entries[:0]
	found := false
	for _, e := range entries {
		if e.ID == id {
			found = true
			continue
		}
		kept = append(kept, e)
	}
	if !found {
		return false, nil
	}

	if err := s.store.SaveCatalog(scope, kept); err != nil {
		return false, err
	}
	return true, nil
}

// Replace swaps the whole catalog for a scope. Used by snapshot import.
func (s *Service) Replace(scope string, entries []models.Entry) error {
	copied := make([]models.Entry, len(entries))
	for i, e := range entries {
		copied[i] = e.Clone()
	}
	return s.store.SaveCatalog(scope, copied)
}

// mutate loads the catalog, applies fn to the entry with the given id,
// stamps updatedAt and persists. A missing id is a silent no-op.
func (s *Service) mutate(scope, id string, fn func(*models.Entry)) (models.Entry, bool, error) {
	entries, err := s.store.LoadCatalog(scope)
	if err != nil {
		return models.Entry{}, false, err
	}

	for i := range entries {
		if entries[i].ID != id {
			continue
		}
		fn(&entries[i])
		entries[i].UpdatedAt = s.now()
		if err := s.store.SaveCatalog(scope, entries); err != nil {
			return models.Entry{}, false, err
		}
		return entries[i].Clone(), true, nil
	}
	return models.Entry{}, false, nil
}
