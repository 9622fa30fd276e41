package crypto

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestNewSessionToken(t *testing.T) {
	token, err := NewSessionToken(42, "test-secret", time.Hour)
	if err != nil {
		t.Fatalf("NewSessionToken() unexpected error: %v", err)
	}
	if token == "" {
		t.Fatal("NewSessionToken() returned empty string")
	}
}

func TestParseSessionTokenValid(t *testing.T) {
	secret := "test-secret"
	userID := int64(42)

	token, err := NewSessionToken(userID, secret, time.Hour)
	if err != nil {
		t.Fatalf("NewSessionToken() unexpected error: %v", err)
	}

	claims, err := ParseSessionToken(token, secret)
	if err != nil {
		t.Fatalf("ParseSessionToken() unexpected error: %v", err)
	}
	if claims.UserID != userID {
		t.Errorf("ParseSessionToken() UserID = %d, want %d", claims.UserID, userID)
	}
}

func TestParseSessionTokenInvalid(t *testing.T) {
	_, err := ParseSessionToken("not-a-valid-token", "test-secret")
	if err == nil {
		t.Error("ParseSessionToken() expected error for invalid token")
	}
}

func TestParseSessionTokenWrongSecret(t *testing.T) {
	token, err := NewSessionToken(42, "correct-secret", time.Hour)
	if err != nil {
		t.Fatalf("NewSessionToken() unexpected error: %v", err)
	}

	_, err = ParseSessionToken(token, "wrong-secret")
	if err == nil {
		t.Error("ParseSessionToken() expected error for wrong secret")
	}
}

func TestParseSessionTokenExpired(t *testing.T) {
	token, err := NewSessionToken(42, "test-secret", time.Millisecond)
	if err != nil {
		t.Fatalf("NewSessionToken() unexpected error: %v", err)
	}

	time.Sleep(10 * time.Millisecond)

	_, err = ParseSessionToken(token, "test-secret")
	if err == nil {
		t.Error("ParseSessionToken() expected error for expired token")
	}
}

func TestParseSessionTokenWrongIssuer(t *testing.T) {
	secret := "test-secret"

	claims := SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "wrong-issuer",
			Audience:  jwt.ClaimStrings{"inkshelf-api"},
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
		UserID: 42,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("SignedString() unexpected error: %v", err)
	}

	_, err = ParseSessionToken(tokenString, secret)
	if err == nil {
		t.Error("ParseSessionToken() expected error for wrong issuer")
	}
}

func TestParseSessionTokenWrongAudience(t *testing.T) {
	secret := "test-secret"

	claims := SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "inkshelf",
			Audience:  jwt.ClaimStrings{"wrong-audience"},
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
		UserID: 42,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("SignedString() unexpected error: %v", err)
	}

	_, err = ParseSessionToken(tokenString, secret)
	if err == nil {
		t.Error("ParseSessionToken() expected error for wrong audience")
	}
}
