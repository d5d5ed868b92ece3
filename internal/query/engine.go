// The query package derives filtered, sorted, paginated views and aggregate
// counts from a catalog. Evaluation is pure and synchronous: the same
// (entries, spec) pair always produces the same result, so callers may
// memoize freely.

package query

import (
	"sort"
	"strings"

	"github.com/dmcosta/shelfmark/internal/models"
)

// StatusFilter selects which status bucket a view shows. Besides the two
// specials it can hold any models.Status value.
type StatusFilter string

const (
	FilterAll       StatusFilter = "ALL"
	FilterFavorites StatusFilter = "FAVORITES"
)

// TypeFilterAll matches every media type.
const TypeFilterAll models.MediaType = "ALL"

// Sort names a view ordering. Every ordering is a deterministic total
// order (the final tiebreak is the entry id), so pagination is stable
// across recomputation with unchanged inputs.
type Sort string

const (
	SortRecencyDesc    Sort = "RECENCY_DESC"
	SortRecencyAsc     Sort = "RECENCY_ASC"
	SortRatingDesc     Sort = "RATING_DESC"
	SortRatingAsc      Sort = "RATING_ASC"
	SortFavoritesFirst Sort = "FAV_FIRST"
	SortStatusOrder    Sort = "STATUS_ORDER"
)

// Spec is the full set of parameters driving a derived view.
type Spec struct {
	Status  StatusFilter     `json:"status"`
	Type    models.MediaType `json:"type"`    // "" or "ALL" matches all types
	Weekday models.Weekday   `json:"weekday"` // "" matches any day
	Search  string           `json:"search"`
	Sort    Sort             `json:"sort"`
	Reveal  int              `json:"reveal"` // visible prefix length; <=0 means PageSize
}

// Counts are the aggregate bucket sizes shown alongside a view. They are
// computed over the weekday+search base only: changing the status or type
// filter never changes the numbers on the buckets.
type Counts struct {
	Total      int `json:"total"`
	Favorites  int `json:"favorites"`
	InProgress int `json:"inProgress"`
	OnHold     int `json:"onHold"`
	Completed  int `json:"completed"`
	Cancelled  int `json:"cancelled"`
	Dropped    int `json:"dropped"`
}

// Result is a derived view: the revealed entry window, the aggregate
// counts, and the total number of entries matching all filters (the
// window's upper bound).
type Result struct {
	Entries []models.Entry `json:"entries"`
	Counts  Counts         `json:"counts"`
	Matched int            `json:"matched"`
}

// statusRank is the fixed priority used by SortStatusOrder.
var statusRank = map[models.Status]int{
	models.StatusInProgress: 0,
	models.StatusOnHold:     1,
	models.StatusCompleted:  2,
	models.StatusCancelled:  3,
	models.StatusDropped:    4,
}

// View evaluates spec against a catalog. The pipeline order is fixed:
// weekday filter, search filter, aggregate counts, status filter, type
// filter, sort, reveal slice. The input slice is never modified.
func View(entries []models.Entry, spec Spec) Result {
	// Weekday and search narrow the base that everything else sees,
	// including the counts.
	base := make([]models.Entry, 0, len(entries))
	search := strings.ToLower(strings.TrimSpace(spec.Search))
	for _, e := range entries {
		if spec.Weekday != "" && e.ReleaseWeekday != spec.Weekday {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(e.Title), search) {
			continue
		}
		base = append(base, e)
	}

	counts := countBuckets(base)

	filtered := make([]models.Entry, 0, len(base))
	for _, e := range base {
		if !matchStatus(e, spec.Status) {
			continue
		}
		if spec.Type != "" && spec.Type != TypeFilterAll && e.MediaType != spec.Type {
			continue
		}
		filtered = append(filtered, e)
	}

	sortEntries(filtered, spec.Sort)

	reveal := spec.Reveal
	if reveal <= 0 {
		reveal = PageSize
	}
	if reveal > len(filtered) {
		reveal = len(filtered)
	}

	return Result{
		Entries: filtered[:reveal],
		Counts:  counts,
		Matched: len(filtered),
	}
}

func matchStatus(e models.Entry, f StatusFilter) bool {
	switch f {
	case "", FilterAll:
		return true
	case FilterFavorites:
		return e.Favorite
	default:
		return e.Status == models.Status(f)
	}
}

func countBuckets(entries []models.Entry) Counts {
	c := Counts{Total: len(entries)}
	for _, e := range entries {
		if e.Favorite {
			c.Favorites++
		}
		switch e.Status {
		case models.StatusInProgress:
			c.InProgress++
		case models.StatusOnHold:
			c.OnHold++
		case models.StatusCompleted:
			c.Completed++
		case models.StatusCancelled:
			c.Cancelled++
		case models.StatusDropped:
			c.Dropped++
		}
	}
	return c
}

// ratingOf maps an unrated entry below every numeric rating, so unrated
// entries sort last descending and first ascending.
func ratingOf(e models.Entry) float64 {
	if e.Rating == nil {
		return -1
	}
	return *e.Rating
}

func sortEntries(entries []models.Entry, s Sort) {
	sort.Slice(entries, func(i, j int) bool {
		return less(entries[i], entries[j], s)
	})
}

// less implements every comparator as a chain that ends in the entry id,
// making each ordering total.
func less(a, b models.Entry, s Sort) bool {
	switch s {
	case SortRecencyAsc:
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
	case SortRatingDesc:
		if ratingOf(a) != ratingOf(b) {
			return ratingOf(a) > ratingOf(b)
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
	case SortRatingAsc:
		if ratingOf(a) != ratingOf(b) {
			return ratingOf(a) < ratingOf(b)
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
	case SortFavoritesFirst:
		if a.Favorite != b.Favorite {
			return a.Favorite
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
	case SortStatusOrder:
		if statusRank[a.Status] != statusRank[b.Status] {
			return statusRank[a.Status] < statusRank[b.Status]
		}
		if a.Favorite != b.Favorite {
			return a.Favorite
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
	default: // SortRecencyDesc
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
	}
	return a.ID < b.ID
}
