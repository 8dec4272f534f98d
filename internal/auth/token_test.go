package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/famfin/famfin-be/internal/models"
)

func TestGenerateParseRoundTrip(t *testing.T) {
	manager := NewTokenManager("test-secret", "famfin-test", time.Hour)
	user := models.User{ID: uuid.New(), Email: "ana@example.com"}

	token, err := manager.Generate(user)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	claims, err := manager.Parse(token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.Email != user.Email {
		t.Errorf("email = %q, want %q", claims.Email, user.Email)
	}
	parsedID, err := claims.UserID()
	if err != nil {
		t.Fatalf("parse subject: %v", err)
	}
	if parsedID != user.ID {
		t.Errorf("user id = %s, want %s", parsedID, user.ID)
	}
	if claims.Issuer != "famfin-test" {
		t.Errorf("issuer = %q", claims.Issuer)
	}
}

func TestParseRejectsExpiredToken(t *testing.T) {
	manager := NewTokenManager("test-secret", "famfin-test", -time.Minute)
	token, err := manager.Generate(models.User{ID: uuid.New(), Email: "ana@example.com"})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, err := manager.Parse(token); err == nil {
		t.Fatal("expected expired token to be rejected")
	}
}

func TestParseRejectsWrongSecret(t *testing.T) {
	issuer := NewTokenManager("secret-a", "famfin-test", time.Hour)
	verifier := NewTokenManager("secret-b", "famfin-test", time.Hour)

	token, err := issuer.Generate(models.User{ID: uuid.New(), Email: "ana@example.com"})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, err := verifier.Parse(token); err == nil {
		t.Fatal("expected token signed with another secret to be rejected")
	}
}

func TestParseRejectsGarbage(t *testing.T) {
	manager := NewTokenManager("test-secret", "famfin-test", time.Hour)
	for _, tokenString := range []string{"", "not-a-token", "a.b.c"} {
		if _, err := manager.Parse(tokenString); err == nil {
			t.Errorf("expected %q to be rejected", tokenString)
		}
	}
}
