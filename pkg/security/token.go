package security

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type TokenKind string

const (
	TokenKindAccess  TokenKind = "access"
	TokenKindRefresh TokenKind = "refresh"
)

const RefreshTokenTTL = 7 * 24 * time.Hour

var (
	ErrTokenMalformed = errors.New("token is malformed")
	ErrTokenSignature = errors.New("token signature is invalid")
	ErrTokenExpired   = errors.New("token is expired")
)

// TokenMaker issues and verifies the two JWT kinds used for sessions.
// Access and refresh tokens are signed with separate secrets so that a
// leaked secret of one kind can't forge the other.
type TokenMaker struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
}

func NewTokenMaker(accessSecret, refreshSecret string, accessTTL time.Duration) *TokenMaker {
	if accessTTL <= 0 {
		accessTTL = 15 * time.Minute
	}

	return &TokenMaker{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		accessTTL:     accessTTL,
	}
}

func (m *TokenMaker) Issue(userID string, kind TokenKind) (string, error) {
	ttl := m.accessTTL
	if kind == TokenKindRefresh {
		ttl = RefreshTokenTTL
	}

	now := time.Now()
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	})

	return t.SignedString(m.secretFor(kind))
}

// Verify checks the signature, signing algorithm and expiry of a token and
// returns the user ID it was issued for. Tokens signed with anything other
// than HS256 are rejected outright.
func (m *TokenMaker) Verify(token string, kind TokenKind) (string, error) {
	claims := &jwt.RegisteredClaims{}

	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		return m.secretFor(kind), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return "", ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return "", ErrTokenSignature
		default:
			return "", ErrTokenMalformed
		}
	}

	if !parsed.Valid || claims.Subject == "" {
		return "", ErrTokenMalformed
	}

	return claims.Subject, nil
}

func (m *TokenMaker) secretFor(kind TokenKind) []byte {
	if kind == TokenKindRefresh {
		return m.refreshSecret
	}

	return m.accessSecret
}
