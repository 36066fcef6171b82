package jwtutil

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const testSecret = "test-secret"

func TestGenerateAndParse(t *testing.T) {
	tok, err := GenerateToken(testSecret, 0, 42)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	claims, err := ParseToken(testSecret, tok)
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}
	if claims.UserID != 42 {
		t.Fatalf("expected user id 42, got %d", claims.UserID)
	}
	if claims.ExpiresAt != nil {
		t.Fatalf("zero expiration must not set exp, got %v", claims.ExpiresAt)
	}
}

func TestGenerateWithExpiration(t *testing.T) {
	tok, err := GenerateToken(testSecret, time.Hour, 7)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	claims, err := ParseToken(testSecret, tok)
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}
	if claims.ExpiresAt == nil || time.Until(claims.ExpiresAt.Time) <= 0 {
		t.Fatalf("expected exp in the future, got %v", claims.ExpiresAt)
	}
}

func TestParseRejects(t *testing.T) {
	valid, err := GenerateToken(testSecret, 0, 1)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		UserID: 1,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	})
	expiredStr, err := expired.SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign expired: %v", err)
	}

	noUser := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"foo": "bar"})
	noUserStr, err := noUser.SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign no user: %v", err)
	}

	tests := []struct {
		name    string
		secret  string
		token   string
		wantErr error
	}{
		{name: "wrong secret", secret: "other", token: valid, wantErr: ErrInvalidToken},
		{name: "garbage", secret: testSecret, token: "not-a-jwt", wantErr: ErrInvalidToken},
		{name: "expired", secret: testSecret, token: expiredStr, wantErr: ErrInvalidToken},
		{name: "missing user id", secret: testSecret, token: noUserStr, wantErr: ErrInvalidClaims},
		{name: "empty secret", secret: "", token: valid, wantErr: ErrEmptySecret},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseToken(tt.secret, tt.token)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestGenerateEmptySecret(t *testing.T) {
	if _, err := GenerateToken("", 0, 1); !errors.Is(err, ErrEmptySecret) {
		t.Fatalf("expected ErrEmptySecret, got %v", err)
	}
}
