package api_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dmcosta/shelfmark/internal/models"
	"github.com/dmcosta/shelfmark/internal/query"
	"github.com/dmcosta/shelfmark/internal/testutil"
)

// doJSON performs an authenticated request with a JSON body and returns the recorder.
func doJSON(t *testing.T, router http.Handler, cookie *http.Cookie, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Buffer
	if body != "" {
		reader = bytes.NewBufferString(body)
	} else {
		reader = &bytes.Buffer{}
	}
	req, _ := http.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func createEntry(t *testing.T, router http.Handler, cookie *http.Cookie, body string) models.Entry {
	t.Helper()
	rr := doJSON(t, router, cookie, "POST", "/api/entries", body)
	if rr.Code != http.StatusCreated {
		t.Fatalf("Failed to create entry: got %v want %v (%s)", rr.Code, http.StatusCreated, rr.Body.String())
	}
	var entry models.Entry
	if err := json.Unmarshal(rr.Body.Bytes(), &entry); err != nil {
		t.Fatalf("Could not unmarshal entry: %v", err)
	}
	return entry
}

func TestEntryHandlers(t *testing.T) {
	server, _ := testutil.SetupTestServer(t)
	router := server.Router()
	cookie := testutil.CookieForUser(t, server, "reader", "password", "user")

	t.Run("Requires Authentication", func(t *testing.T) {
		rr := doJSON(t, router, nil, "GET", "/api/entries", "")
		if rr.Code != http.StatusUnauthorized {
			t.Errorf("got %v want %v", rr.Code, http.StatusUnauthorized)
		}
	})

	t.Run("Create Entry With Defaults", func(t *testing.T) {
		entry := createEntry(t, router, cookie,
			`{"title":"Berserk","mediaType":"MANGA","status":"IN_PROGRESS"}`)

		if entry.ID == "" {
			t.Error("Expected a generated id")
		}
		if entry.Favorite {
			t.Error("New entries must not start as favorites")
		}
		if entry.Tags == nil || len(entry.Tags) != 0 {
			t.Errorf("Expected empty tag list, got %v", entry.Tags)
		}
		if !entry.CreatedAt.Equal(entry.UpdatedAt) {
			t.Error("createdAt and updatedAt must match on creation")
		}
	})

	t.Run("Create Sanitizes Numeric Text", func(t *testing.T) {
		entry := createEntry(t, router, cookie,
			`{"title":"Clamped","mediaType":"ANIME","status":"COMPLETED","rating":"15","chapterProgress":"-3"}`)

		if entry.Rating == nil || *entry.Rating != 10 {
			t.Errorf("rating 15 should clamp to 10, got %v", entry.Rating)
		}
		if entry.ChapterProgress == nil || *entry.ChapterProgress != 0 {
			t.Errorf("chapter -3 should clamp to 0, got %v", entry.ChapterProgress)
		}
	})

	t.Run("Create Rejects Invalid Input", func(t *testing.T) {
		cases := []string{
			`{"title":"","mediaType":"MANGA","status":"IN_PROGRESS"}`,
			`{"title":"X","mediaType":"LASERDISC","status":"IN_PROGRESS"}`,
			`{"title":"X","mediaType":"MANGA","status":"READING_MAYBE"}`,
		}
		for i, body := range cases {
			rr := doJSON(t, router, cookie, "POST", "/api/entries", body)
			if rr.Code != http.StatusBadRequest {
				t.Errorf("case %d: got %v want %v", i, rr.Code, http.StatusBadRequest)
			}
		}
	})

	t.Run("Update Entry", func(t *testing.T) {
		entry := createEntry(t, router, cookie,
			`{"title":"Before","mediaType":"MANGA","status":"IN_PROGRESS"}`)

		rr := doJSON(t, router, cookie, "PUT", "/api/entries/"+entry.ID,
			`{"title":"After","mediaType":"MANGA","status":"ON_HOLD","rating":"8.5"}`)
		if rr.Code != http.StatusOK {
			t.Fatalf("got %v want %v (%s)", rr.Code, http.StatusOK, rr.Body.String())
		}

		var updated models.Entry
		json.Unmarshal(rr.Body.Bytes(), &updated)
		if updated.Title != "After" {
			t.Errorf("Expected title 'After', got '%s'", updated.Title)
		}
		if updated.Status != models.StatusOnHold {
			t.Errorf("Expected status ON_HOLD, got %s", updated.Status)
		}
		if updated.Rating == nil || *updated.Rating != 8.5 {
			t.Errorf("Expected rating 8.5, got %v", updated.Rating)
		}
	})

	t.Run("Update Unknown Entry Is 404", func(t *testing.T) {
		rr := doJSON(t, router, cookie, "PUT", "/api/entries/no-such-id",
			`{"title":"X","mediaType":"MANGA","status":"IN_PROGRESS"}`)
		if rr.Code != http.StatusNotFound {
			t.Errorf("got %v want %v", rr.Code, http.StatusNotFound)
		}
	})

	t.Run("Toggle Favorite", func(t *testing.T) {
		entry := createEntry(t, router, cookie,
			`{"title":"Fav","mediaType":"NOVEL","status":"IN_PROGRESS"}`)

		rr := doJSON(t, router, cookie, "POST", "/api/entries/"+entry.ID+"/favorite", "")
		var toggled models.Entry
		json.Unmarshal(rr.Body.Bytes(), &toggled)
		if !toggled.Favorite {
			t.Error("First toggle should set favorite")
		}

		rr = doJSON(t, router, cookie, "POST", "/api/entries/"+entry.ID+"/favorite", "")
		json.Unmarshal(rr.Body.Bytes(), &toggled)
		if toggled.Favorite {
			t.Error("Second toggle should clear favorite")
		}
	})

	t.Run("Set Status", func(t *testing.T) {
		entry := createEntry(t, router, cookie,
			`{"title":"Statusful","mediaType":"SERIES","status":"IN_PROGRESS"}`)

		rr := doJSON(t, router, cookie, "POST", "/api/entries/"+entry.ID+"/status", `{"status":"DROPPED"}`)
		if rr.Code != http.StatusOK {
			t.Fatalf("got %v want %v (%s)", rr.Code, http.StatusOK, rr.Body.String())
		}
		var updated models.Entry
		json.Unmarshal(rr.Body.Bytes(), &updated)
		if updated.Status != models.StatusDropped {
			t.Errorf("Expected status DROPPED, got %s", updated.Status)
		}

		rr = doJSON(t, router, cookie, "POST", "/api/entries/"+entry.ID+"/status", `{"status":"WATCHING"}`)
		if rr.Code != http.StatusBadRequest {
			t.Errorf("invalid status: got %v want %v", rr.Code, http.StatusBadRequest)
		}
	})

	t.Run("Adjust Chapter", func(t *testing.T) {
		entry := createEntry(t, router, cookie,
			`{"title":"Chapters","mediaType":"MANGA","status":"IN_PROGRESS"}`)

		var updated models.Entry
		for want := 1; want <= 3; want++ {
			rr := doJSON(t, router, cookie, "POST", "/api/entries/"+entry.ID+"/chapter", `{"delta":1}`)
			json.Unmarshal(rr.Body.Bytes(), &updated)
			if updated.ChapterProgress == nil || *updated.ChapterProgress != want {
				t.Fatalf("after %d increments got %v", want, updated.ChapterProgress)
			}
		}

		// Decrement below zero floors at zero.
		for i := 0; i < 5; i++ {
			rr := doJSON(t, router, cookie, "POST", "/api/entries/"+entry.ID+"/chapter", `{"delta":-1}`)
			json.Unmarshal(rr.Body.Bytes(), &updated)
		}
		if updated.ChapterProgress == nil || *updated.ChapterProgress != 0 {
			t.Errorf("chapter should floor at 0, got %v", updated.ChapterProgress)
		}

		rr := doJSON(t, router, cookie, "POST", "/api/entries/"+entry.ID+"/chapter", `{"delta":5}`)
		if rr.Code != http.StatusBadRequest {
			t.Errorf("delta 5: got %v want %v", rr.Code, http.StatusBadRequest)
		}
	})

	t.Run("Delete Entry", func(t *testing.T) {
		entry := createEntry(t, router, cookie,
			`{"title":"Doomed","mediaType":"FILM","status":"COMPLETED"}`)

		rr := doJSON(t, router, cookie, "DELETE", "/api/entries/"+entry.ID, "")
		if rr.Code != http.StatusNoContent {
			t.Errorf("got %v want %v", rr.Code, http.StatusNoContent)
		}

		rr = doJSON(t, router, cookie, "DELETE", "/api/entries/"+entry.ID, "")
		if rr.Code != http.StatusNotFound {
			t.Errorf("deleting twice: got %v want %v", rr.Code, http.StatusNotFound)
		}
	})
}

func TestListEntriesView(t *testing.T) {
	server, _ := testutil.SetupTestServer(t)
	router := server.Router()
	cookie := testutil.CookieForUser(t, server, "viewer", "password", "user")

	// Thirty manga plus one anime, so the default page size is exceeded.
	for i := 0; i < 30; i++ {
		createEntry(t, router, cookie,
			fmt.Sprintf(`{"title":"Manga %02d","mediaType":"MANGA","status":"IN_PROGRESS"}`, i))
	}
	anime := createEntry(t, router, cookie,
		`{"title":"Lone Anime","mediaType":"ANIME","status":"COMPLETED","releaseWeekday":"WED"}`)
	doJSON(t, router, cookie, "POST", "/api/entries/"+anime.ID+"/favorite", "")

	list := func(params string) query.Result {
		rr := doJSON(t, router, cookie, "GET", "/api/entries"+params, "")
		if rr.Code != http.StatusOK {
			t.Fatalf("list failed: %v (%s)", rr.Code, rr.Body.String())
		}
		var result query.Result
		if err := json.Unmarshal(rr.Body.Bytes(), &result); err != nil {
			t.Fatalf("Could not unmarshal view: %v", err)
		}
		return result
	}

	t.Run("Default View Reveals One Page", func(t *testing.T) {
		result := list("")
		if len(result.Entries) != query.PageSize {
			t.Errorf("Expected %d revealed entries, got %d", query.PageSize, len(result.Entries))
		}
		if result.Matched != 31 {
			t.Errorf("Expected 31 matched, got %d", result.Matched)
		}
		if result.Counts.Total != 31 {
			t.Errorf("Expected total 31, got %d", result.Counts.Total)
		}
	})

	t.Run("Reveal Extends The Window", func(t *testing.T) {
		result := list("?reveal=48")
		if len(result.Entries) != 31 {
			t.Errorf("Expected all 31 entries, got %d", len(result.Entries))
		}
	})

	t.Run("Counts Ignore Status And Type Filters", func(t *testing.T) {
		result := list("?status=COMPLETED&type=ANIME")
		if result.Matched != 1 {
			t.Errorf("Expected 1 matched, got %d", result.Matched)
		}
		if result.Counts.Total != 31 {
			t.Errorf("Counts must cover the full base, got total %d", result.Counts.Total)
		}
		if result.Counts.Favorites != 1 {
			t.Errorf("Expected 1 favorite, got %d", result.Counts.Favorites)
		}
	})

	t.Run("Weekday Narrows Counts", func(t *testing.T) {
		result := list("?weekday=WED")
		if result.Counts.Total != 1 {
			t.Errorf("Expected weekday base of 1, got %d", result.Counts.Total)
		}
	})

	t.Run("Search Filters By Title", func(t *testing.T) {
		result := list("?q=lone")
		if result.Matched != 1 {
			t.Errorf("Expected 1 match for 'lone', got %d", result.Matched)
		}
		if len(result.Entries) != 1 || result.Entries[0].Title != "Lone Anime" {
			t.Errorf("Unexpected search result: %+v", result.Entries)
		}
	})

	t.Run("Invalid Reveal Is Rejected", func(t *testing.T) {
		rr := doJSON(t, router, cookie, "GET", "/api/entries?reveal=lots", "")
		if rr.Code != http.StatusBadRequest {
			t.Errorf("got %v want %v", rr.Code, http.StatusBadRequest)
		}
	})
}

func TestCatalogsAreIsolatedPerUser(t *testing.T) {
	server, _ := testutil.SetupTestServer(t)
	router := server.Router()

	aliceCookie := testutil.CookieForUser(t, server, "alice", "password", "user")
	bobCookie := testutil.CookieForUser(t, server, "bob", "password", "user")

	entry := createEntry(t, router, aliceCookie,
		`{"title":"Private","mediaType":"MANGA","status":"IN_PROGRESS"}`)

	// Bob sees an empty catalog and cannot touch Alice's entry.
	rr := doJSON(t, router, bobCookie, "GET", "/api/entries", "")
	var result query.Result
	json.Unmarshal(rr.Body.Bytes(), &result)
	if result.Matched != 0 {
		t.Errorf("Expected empty catalog for bob, got %d entries", result.Matched)
	}

	rr = doJSON(t, router, bobCookie, "DELETE", "/api/entries/"+entry.ID, "")
	if rr.Code != http.StatusNotFound {
		t.Errorf("got %v want %v", rr.Code, http.StatusNotFound)
	}
}
