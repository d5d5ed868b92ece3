package testutil

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dmcosta/shelfmark/internal/api"
	"github.com/dmcosta/shelfmark/internal/auth"
)

// CreateTestUser creates a user with a properly hashed password.
func CreateTestUser(t *testing.T, s *api.Server, username, password, role string) {
	t.Helper()

	passwordHash, err := auth.HashPassword(password)
	if err != nil {
		t.Fatalf("Failed to hash password for test user: %v", err)
	}
	// The store's CreateUser expects a hash, not a plaintext password.
	if _, err := s.Store().CreateUser(username, passwordHash, role); err != nil {
		t.Fatalf("Failed to create test user '%s': %v", username, err)
	}
}

// CookieForUser creates a user, logs them in, and returns a valid session cookie.
func CookieForUser(t *testing.T, s *api.Server, username, password, role string) *http.Cookie {
	t.Helper()

	CreateTestUser(t, s, username, password, role)

	loginPayload := map[string]string{"username": username, "password": password}
	payloadBytes, _ := json.Marshal(loginPayload)
	req, _ := http.NewRequest("POST", "/api/users/login", bytes.NewBuffer(payloadBytes))
	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()
	s.Router().ServeHTTP(rr, req)

	if status := rr.Code; status != http.StatusOK {
		t.Fatalf("Login failed within test helper for user '%s': got status %d, want 200", username, status)
	}

	for _, cookie := range rr.Result().Cookies() {
		if cookie.Name == "session_token" {
			return cookie
		}
	}

	t.Fatal("Failed to get session cookie after successful login for test user")
	return nil
}

// TokenForUser creates a user and exchanges their credentials for a bearer
// token via the token login endpoint.
func TokenForUser(t *testing.T, s *api.Server, username, password, role string) string {
	t.Helper()

	CreateTestUser(t, s, username, password, role)

	loginPayload := map[string]string{"username": username, "password": password}
	payloadBytes, _ := json.Marshal(loginPayload)
	req, _ := http.NewRequest("POST", "/api/auth/login", bytes.NewBuffer(payloadBytes))
	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()
	s.Router().ServeHTTP(rr, req)

	if status := rr.Code; status != http.StatusOK {
		t.Fatalf("Token login failed within test helper for user '%s': got status %d, want 200", username, status)
	}

	var resp struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode token response: %v", err)
	}
	if resp.Token == "" {
		t.Fatal("Token login returned an empty token")
	}
	return resp.Token
}
