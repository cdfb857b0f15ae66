package auth

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const testSecret = "test-secret-at-least-32-chars-long-for-security"

func TestJWTManager_GenerateAndValidate_Success(t *testing.T) {
	manager := NewJWTManager(testSecret, "threads-test", 15*time.Minute)

	token, err := manager.GenerateAccessToken(42)
	if err != nil {
		t.Fatalf("GenerateAccessToken failed: %v", err)
	}
	if token == "" {
		t.Fatal("expected non-empty token")
	}

	claims, err := manager.ValidateAccessToken(token)
	if err != nil {
		t.Fatalf("ValidateAccessToken failed: %v", err)
	}
	if claims.UserID != 42 {
		t.Errorf("expected userID 42, got %d", claims.UserID)
	}
	if claims.IssuedAt.IsZero() {
		t.Error("expected IssuedAt to be set")
	}
	if got := claims.ExpiresAt.Sub(claims.IssuedAt); got != 15*time.Minute {
		t.Errorf("expected 15m lifetime, got %v", got)
	}
}

func TestJWTManager_ValidateToken_Context(t *testing.T) {
	manager := NewJWTManager(testSecret, "threads-test", time.Minute)
	token, err := manager.GenerateAccessToken(7)
	if err != nil {
		t.Fatalf("GenerateAccessToken failed: %v", err)
	}

	claims, err := manager.ValidateToken(context.Background(), token)
	if err != nil {
		t.Fatalf("ValidateToken failed: %v", err)
	}
	if claims.UserID != 7 {
		t.Errorf("expected userID 7, got %d", claims.UserID)
	}
}

func TestJWTManager_ValidateAccessToken_Expired(t *testing.T) {
	manager := NewJWTManager(testSecret, "threads-test", -1*time.Hour)

	token, err := manager.GenerateAccessToken(1)
	if err != nil {
		t.Fatalf("GenerateAccessToken failed: %v", err)
	}

	_, err = manager.ValidateAccessToken(token)
	if !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for expired token, got %v", err)
	}
	if !strings.Contains(err.Error(), "expired") {
		t.Errorf("expected expiry-related error, got: %v", err)
	}
}

func TestJWTManager_ValidateAccessToken_InvalidSignature(t *testing.T) {
	manager1 := NewJWTManager(testSecret, "threads-test", 15*time.Minute)
	manager2 := NewJWTManager("different-secret-32-chars-long-for-security!!", "threads-test", 15*time.Minute)

	token, err := manager1.GenerateAccessToken(1)
	if err != nil {
		t.Fatalf("GenerateAccessToken failed: %v", err)
	}

	if _, err := manager2.ValidateAccessToken(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for invalid signature, got %v", err)
	}
}

func TestJWTManager_ValidateAccessToken_Malformed(t *testing.T) {
	manager := NewJWTManager(testSecret, "threads-test", 15*time.Minute)

	for _, token := range []string{"not.a.jwt", "invalid-token", "header.payload"} {
		if _, err := manager.ValidateAccessToken(token); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("expected ErrInvalidToken for malformed token %q, got %v", token, err)
		}
	}
}

func TestJWTManager_ValidateAccessToken_WrongIssuer(t *testing.T) {
	manager1 := NewJWTManager(testSecret, "threads-test", 15*time.Minute)
	manager2 := NewJWTManager(testSecret, "wrong-issuer", 15*time.Minute)

	token, err := manager1.GenerateAccessToken(1)
	if err != nil {
		t.Fatalf("GenerateAccessToken failed: %v", err)
	}

	if _, err := manager2.ValidateAccessToken(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for wrong issuer, got %v", err)
	}
}

func TestJWTManager_ValidateAccessToken_EmptyString(t *testing.T) {
	manager := NewJWTManager(testSecret, "threads-test", 15*time.Minute)

	_, err := manager.ValidateAccessToken("")
	if !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
	if !strings.Contains(err.Error(), "empty") {
		t.Errorf("expected 'empty' error, got: %v", err)
	}
}

func TestJWTManager_ValidateAccessToken_NonNumericSubject(t *testing.T) {
	manager := NewJWTManager(testSecret, "threads-test", 15*time.Minute)

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "alice",
		Issuer:    "threads-test",
		ExpiresAt: jwt.NewNumericDate(now.Add(time.Minute)),
		IssuedAt:  jwt.NewNumericDate(now),
	})
	signed, err := token.SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, err := manager.ValidateAccessToken(signed); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for non-numeric subject, got %v", err)
	}
}

func TestJWTManager_ValidateAccessToken_MissingExpiry(t *testing.T) {
	manager := NewJWTManager(testSecret, "threads-test", 15*time.Minute)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject: "5",
		Issuer:  "threads-test",
	})
	signed, err := token.SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, err := manager.ValidateAccessToken(signed); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for token without exp, got %v", err)
	}
}
