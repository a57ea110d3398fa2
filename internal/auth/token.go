// Package auth implements the identity token service: issuing and verifying
// signed, time-limited JWTs.
package auth

import (
	stderrors "errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/nin-supply/commerce/internal/errors"
)

// TokenTTL is the fixed validity window for issued tokens.
const TokenTTL = time.Hour

// Identity is the payload a client presents at login. Email is mandatory;
// everything else rides along as claims.
type Identity struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
	Role  string `json:"role,omitempty"`
}

// Claims are the verified contents of an identity token.
type Claims struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
	Role  string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// TokenService signs and verifies identity tokens with a process-wide secret.
type TokenService struct {
	secret []byte
	issuer string
}

// NewTokenService creates a token service using the given HMAC secret.
func NewTokenService(secret string) *TokenService {
	return &TokenService{
		secret: []byte(secret),
		issuer: "nin-supply",
	}
}

// Issue signs a token for the identity with a 1-hour expiry. It touches no
// storage; the token is never persisted server-side and cannot be revoked.
func (s *TokenService) Issue(identity Identity) (string, error) {
	if identity.Email == "" {
		return "", errors.BadRequest("email is required")
	}

	now := time.Now()
	claims := &Claims{
		Email: identity.Email,
		Name:  identity.Name,
		Role:  identity.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    s.issuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", errors.Internal("failed to sign token", err)
	}
	return signed, nil
}

// Verify validates signature and expiry and returns the claims. Every
// failure is a single Unauthorized kind carrying a reason code.
func (s *TokenService) Verify(tokenString string) (*Claims, error) {
	if tokenString == "" {
		return nil, errors.InvalidToken(errors.ReasonTokenMissing, nil)
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, stderrors.New("unexpected signing method")
		}
		return s.secret, nil
	})
	if err != nil {
		switch {
		case stderrors.Is(err, jwt.ErrTokenExpired):
			return nil, errors.InvalidToken(errors.ReasonTokenExpired, err)
		case stderrors.Is(err, jwt.ErrTokenMalformed):
			return nil, errors.InvalidToken(errors.ReasonTokenMalformed, err)
		default:
			return nil, errors.InvalidToken(errors.ReasonTokenInvalid, err)
		}
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.InvalidToken(errors.ReasonTokenInvalid, nil)
	}
	return claims, nil
}
