// This file defines the core data structures (models) for our application.
// These structs represent the tracked media entries in a user's catalog.

package models

import (
	"fmt"
	"time"
)

// MediaType classifies what kind of media an entry tracks.
type MediaType string

const (
	TypeAnime  MediaType = "ANIME"
	TypeManga  MediaType = "MANGA"
	TypeSeries MediaType = "SERIES"
	TypeFilm   MediaType = "FILM"
	TypeNovel  MediaType = "NOVEL"
	TypeOther  MediaType = "OTHER"
)

// Valid reports whether m is one of the known media types.
func (m MediaType) Valid() bool {
	switch m {
	case TypeAnime, TypeManga, TypeSeries, TypeFilm, TypeNovel, TypeOther:
		return true
	}
	return false
}

// Status is the tracking state of an entry. There is no transition graph;
// any status is reachable from any other.
type Status string

const (
	StatusInProgress Status = "IN_PROGRESS"
	StatusOnHold     Status = "ON_HOLD"
	StatusCompleted  Status = "COMPLETED"
	StatusCancelled  Status = "CANCELLED"
	StatusDropped    Status = "DROPPED"
)

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusInProgress, StatusOnHold, StatusCompleted, StatusCancelled, StatusDropped:
		return true
	}
	return false
}

// Statuses lists all statuses in their fixed priority order, used by the
// STATUS_ORDER sort and the aggregate count buckets.
func Statuses() []Status {
	return []Status{StatusInProgress, StatusOnHold, StatusCompleted, StatusCancelled, StatusDropped}
}

// Weekday is an optional release day. The empty string means "no scheduled day".
type Weekday string

const (
	Monday    Weekday = "MON"
	Tuesday   Weekday = "TUE"
	Wednesday Weekday = "WED"
	Thursday  Weekday = "THU"
	Friday    Weekday = "FRI"
	Saturday  Weekday = "SAT"
	Sunday    Weekday = "SUN"
)

// Valid reports whether w is a known weekday or unset.
func (w Weekday) Valid() bool {
	switch w {
	case "", Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday:
		return true
	}
	return false
}

// Entry represents a single tracked media item in a user's catalog.
type Entry struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	MediaType       MediaType `json:"mediaType"`
	Status          Status    `json:"status"`
	Favorite        bool      `json:"favorite"`
	Tags            []string  `json:"tags"`
	Rating          *float64  `json:"rating,omitempty"`          // nil means unrated, never the same as 0
	Comment         string    `json:"comment,omitempty"`
	CoverImageURL   string    `json:"coverImageUrl,omitempty"`
	ExternalLinkURL string    `json:"externalLinkUrl,omitempty"`
	ChapterProgress *int      `json:"chapterProgress,omitempty"` // nil means untracked
	ReleaseWeekday  Weekday   `json:"releaseWeekday,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// Clone returns a deep copy of the entry, so callers can hand entries
// across boundaries without sharing the optional-field pointers.
func (e Entry) Clone() Entry {
	c := e
	if e.Tags != nil {
		c.Tags = append([]string(nil), e.Tags...)
	}
	if e.Rating != nil {
		r := *e.Rating
		c.Rating = &r
	}
	if e.ChapterProgress != nil {
		p := *e.ChapterProgress
		c.ChapterProgress = &p
	}
	return c
}

// Validate checks the entry invariants: non-empty id and title, known
// enum values, rating within [0,10] and chapter progress non-negative.
func (e *Entry) Validate() error {
	if e.ID == "" {
		return fmt.Errorf("entry has no id")
	}
	if e.Title == "" {
		return fmt.Errorf("entry %s has an empty title", e.ID)
	}
	if !e.MediaType.Valid() {
		return fmt.Errorf("entry %s has unknown media type %q", e.ID, e.MediaType)
	}
	if !e.Status.Valid() {
		return fmt.Errorf("entry %s has unknown status %q", e.ID, e.Status)
	}
	if !e.ReleaseWeekday.Valid() {
		return fmt.Errorf("entry %s has unknown release weekday %q", e.ID, e.ReleaseWeekday)
	}
	if e.Rating != nil && (*e.Rating < 0 || *e.Rating > 10) {
		return fmt.Errorf("entry %s has rating %v outside [0,10]", e.ID, *e.Rating)
	}
	if e.ChapterProgress != nil && *e.ChapterProgress < 0 {
		return fmt.Errorf("entry %s has negative chapter progress %d", e.ID, *e.ChapterProgress)
	}
	return nil
}
