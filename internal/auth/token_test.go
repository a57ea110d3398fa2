package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/nin-supply/commerce/internal/errors"
)

func TestIssueVerifyRoundTrip(t *testing.T) {
	svc := NewTokenService("test-secret")

	token, err := svc.Issue(Identity{Email: "alice@example.com", Name: "Alice", Role: "admin"})
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	claims, err := svc.Verify(token)
	if err != nil {
		t.Fatalf("Verify error: %v", err)
	}
	if claims.Email != "alice@example.com" {
		t.Fatalf("claims.Email = %q, want alice@example.com", claims.Email)
	}
	if claims.Role != "admin" {
		t.Fatalf("claims.Role = %q, want admin", claims.Role)
	}

	remaining := time.Until(claims.ExpiresAt.Time)
	if remaining <= 0 || remaining > TokenTTL {
		t.Fatalf("token expiry %v outside the 1-hour window", remaining)
	}
}

func TestIssueRequiresEmail(t *testing.T) {
	svc := NewTokenService("test-secret")

	if _, err := svc.Issue(Identity{Name: "nobody"}); err == nil {
		t.Fatal("Issue without email should fail")
	}
}

func TestVerifyExpiredToken(t *testing.T) {
	secret := "test-secret"
	svc := NewTokenService(secret)

	claims := &Claims{
		Email: "alice@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
		},
	}
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("failed to sign expired token: %v", err)
	}

	_, err = svc.Verify(expired)
	se := errors.GetServiceError(err)
	if se == nil {
		t.Fatalf("Verify(expired) error = %v, want ServiceError", err)
	}
	if se.HTTPStatus != 401 {
		t.Fatalf("HTTPStatus = %d, want 401", se.HTTPStatus)
	}
	if se.Reason() != errors.ReasonTokenExpired {
		t.Fatalf("reason = %q, want %q", se.Reason(), errors.ReasonTokenExpired)
	}
}

func TestVerifyRejectsGarbageAndWrongKey(t *testing.T) {
	svc := NewTokenService("test-secret")

	cases := []struct {
		name   string
		token  string
		reason string
	}{
		{name: "empty", token: "", reason: errors.ReasonTokenMissing},
		{name: "garbage", token: "not-a-token", reason: errors.ReasonTokenMalformed},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Verify(tc.token)
			se := errors.GetServiceError(err)
			if se == nil {
				t.Fatalf("Verify(%q) error = %v, want ServiceError", tc.token, err)
			}
			if se.Reason() != tc.reason {
				t.Fatalf("reason = %q, want %q", se.Reason(), tc.reason)
			}
		})
	}

	other := NewTokenService("different-secret")
	token, err := other.Issue(Identity{Email: "alice@example.com"})
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}
	_, err = svc.Verify(token)
	se := errors.GetServiceError(err)
	if se == nil || se.Reason() != errors.ReasonTokenInvalid {
		t.Fatalf("Verify with wrong key error = %v, want reason %q", err, errors.ReasonTokenInvalid)
	}
}
