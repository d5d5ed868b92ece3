package auth

import (
	"testing"
	"time"

	"github.com/dmcosta/shelfmark/internal/models"
)

func TestTokenSignAndParse(t *testing.T) {
	ts := TokenService{Secret: []byte("test-secret"), Duration: time.Hour}
	user := &models.User{ID: 42, Username: "ana", Role: models.RoleDemo}

	token, exp, err := ts.Sign(user)
	if err != nil {
		t.Fatalf("Sign returned an error: %v", err)
	}
	if time.Until(exp) > time.Hour || time.Until(exp) < 59*time.Minute {
		t.Errorf("Unexpected expiry %v", exp)
	}

	claims, err := ts.Parse(token)
	if err != nil {
		t.Fatalf("Parse returned an error: %v", err)
	}
	if claims.UserID != 42 {
		t.Errorf("Expected user id 42, got %d", claims.UserID)
	}
	if claims.Username != "ana" {
		t.Errorf("Expected username 'ana', got %q", claims.Username)
	}
	if claims.Role != models.RoleDemo {
		t.Errorf("Expected role %q, got %q", models.RoleDemo, claims.Role)
	}
}

func TestTokenParseRejectsWrongSecret(t *testing.T) {
	ts := TokenService{Secret: []byte("test-secret"), Duration: time.Hour}
	token, _, err := ts.Sign(&models.User{ID: 1, Username: "u", Role: models.RoleUser})
	if err != nil {
		t.Fatalf("Sign returned an error: %v", err)
	}

	other := TokenService{Secret: []byte("different"), Duration: time.Hour}
	if _, err := other.Parse(token); err == nil {
		t.Fatal("Expected parse with wrong secret to fail")
	}
}

func TestTokenParseRejectsExpired(t *testing.T) {
	ts := TokenService{Secret: []byte("test-secret"), Duration: -time.Minute}
	token, _, err := ts.Sign(&models.User{ID: 1, Username: "u", Role: models.RoleUser})
	if err != nil {
		t.Fatalf("Sign returned an error: %v", err)
	}
	if _, err := ts.Parse(token); err == nil {
		t.Fatal("Expected parse of expired token to fail")
	}
}
