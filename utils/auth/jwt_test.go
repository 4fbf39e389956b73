package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/AradGolbaghi/new-hw-planner/model"
)

func testManager(expiry time.Duration) *JWTManager {
	return NewJWTManager(JWTConfig{
		Secret: "test-secret",
		Expiry: expiry,
		Issuer: "hw-planner-test",
	})
}

func TestGenerateAndValidateToken(t *testing.T) {
	manager := testManager(time.Hour)
	identity := model.Identity{Email: "alice@school.test", Name: "Alice", IsAdmin: true}

	token, err := manager.GenerateToken(identity)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	claims, err := manager.ValidateToken(token)
	if err != nil {
		t.Fatalf("validate failed: %v", err)
	}
	if got := claims.Identity(); got != identity {
		t.Errorf("identity round trip mismatch: %+v", got)
	}
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	token, err := testManager(time.Hour).GenerateToken(model.Identity{Email: "a@s.test"})
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	other := NewJWTManager(JWTConfig{Secret: "different", Expiry: time.Hour})
	if _, err := other.ValidateToken(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestValidateTokenRejectsExpired(t *testing.T) {
	manager := testManager(-time.Minute)
	token, err := manager.GenerateToken(model.Identity{Email: "a@s.test"})
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	if _, err := manager.ValidateToken(token); !errors.Is(err, ErrExpiredToken) {
		t.Fatalf("expected ErrExpiredToken, got %v", err)
	}
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	if _, err := testManager(time.Hour).ValidateToken("not.a.token"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestValidateTokenRejectsEmptyEmail(t *testing.T) {
	manager := testManager(time.Hour)
	token, err := manager.GenerateToken(model.Identity{Name: "No Email"})
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	if _, err := manager.ValidateToken(token); !errors.Is(err, ErrInvalidClaims) {
		t.Fatalf("expected ErrInvalidClaims, got %v", err)
	}
}
