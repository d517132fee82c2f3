package util

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/harbourview/aptly/internal/domain"
)

func TestGenerateAndValidateToken(t *testing.T) {
	identity := &domain.Identity{
		ID:        uuid.New(),
		Name:      "Amara",
		Email:     "amara@example.com",
		Role:      domain.RoleResident,
		Apartment: "Lakeview",
		Status:    domain.StatusApproved,
	}

	t.Run("Round Trip", func(t *testing.T) {
		token, err := GenerateToken(identity, "secret", time.Hour)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		claims, err := ValidateToken(token, "secret")
		if err != nil {
			t.Fatalf("expected valid token, got %v", err)
		}
		if claims.UserID != identity.ID {
			t.Error("user id claim mismatch")
		}
		if claims.Role != domain.RoleResident {
			t.Errorf("expected role %q, got %q", domain.RoleResident, claims.Role)
		}
		if claims.Apartment != "Lakeview" {
			t.Errorf("expected apartment %q, got %q", "Lakeview", claims.Apartment)
		}
	})

	t.Run("Wrong Secret", func(t *testing.T) {
		token, err := GenerateToken(identity, "secret", time.Hour)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if _, err := ValidateToken(token, "other-secret"); err == nil {
			t.Fatal("expected an error for a wrong secret, got nil")
		}
	})

	t.Run("Expired Token", func(t *testing.T) {
		token, err := GenerateToken(identity, "secret", -time.Minute)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if _, err := ValidateToken(token, "secret"); err == nil {
			t.Fatal("expected an error for an expired token, got nil")
		}
	})

	t.Run("No Apartment Claim For Providers", func(t *testing.T) {
		provider := &domain.Identity{
			ID:   uuid.New(),
			Role: domain.RoleServiceProvider,
		}
		token, err := GenerateToken(provider, "secret", time.Hour)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		claims, err := ValidateToken(token, "secret")
		if err != nil {
			t.Fatalf("expected valid token, got %v", err)
		}
		if claims.Apartment != "" {
			t.Errorf("expected empty apartment claim, got %q", claims.Apartment)
		}
	})
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("secret123")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if hash == "secret123" {
		t.Fatal("hash must not equal the plaintext")
	}
	if !CheckPasswordHash("secret123", hash) {
		t.Error("correct password rejected")
	}
	if CheckPasswordHash("wrong", hash) {
		t.Error("wrong password accepted")
	}
}
