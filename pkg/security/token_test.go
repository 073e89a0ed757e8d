package security

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMaker() *TokenMaker {
	return NewTokenMaker("access-secret", "refresh-secret", 15*time.Minute)
}

func TestTokenRoundTrip(t *testing.T) {
	t.Parallel()

	m := newTestMaker()

	for _, kind := range []TokenKind{TokenKindAccess, TokenKindRefresh} {
		tok, err := m.Issue("user-123", kind)
		require.NoError(t, err)

		userID, err := m.Verify(tok, kind)
		require.NoError(t, err)
		assert.Equal(t, "user-123", userID)
	}
}

func TestTokenKindsUseSeparateSecrets(t *testing.T) {
	t.Parallel()

	m := newTestMaker()

	refresh, err := m.Issue("user-123", TokenKindRefresh)
	require.NoError(t, err)

	// A refresh token must never pass as an access token
	_, err = m.Verify(refresh, TokenKindAccess)
	assert.ErrorIs(t, err, ErrTokenSignature)

	access, err := m.Issue("user-123", TokenKindAccess)
	require.NoError(t, err)

	_, err = m.Verify(access, TokenKindRefresh)
	assert.ErrorIs(t, err, ErrTokenSignature)
}

func TestTokenExpired(t *testing.T) {
	t.Parallel()

	m := newTestMaker()

	now := time.Now()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "user-123",
		IssuedAt:  jwt.NewNumericDate(now.Add(-time.Hour)),
		ExpiresAt: jwt.NewNumericDate(now.Add(-time.Minute)),
	})

	signed, err := tok.SignedString([]byte("access-secret"))
	require.NoError(t, err)

	_, err = m.Verify(signed, TokenKindAccess)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestTokenTampered(t *testing.T) {
	t.Parallel()

	m := newTestMaker()

	tok, err := m.Issue("user-123", TokenKindAccess)
	require.NoError(t, err)

	// Flip a bit in the payload
	b := []byte(tok)
	b[len(b)/2] ^= 0x01

	_, err = m.Verify(string(b), TokenKindAccess)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrTokenExpired)
}

func TestTokenWrongAlgorithmRejected(t *testing.T) {
	t.Parallel()

	m := newTestMaker()

	// Same secret, different signing method. Must not verify.
	tok := jwt.NewWithClaims(jwt.SigningMethodHS512, jwt.RegisteredClaims{
		Subject:   "user-123",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})

	signed, err := tok.SignedString([]byte("access-secret"))
	require.NoError(t, err)

	_, err = m.Verify(signed, TokenKindAccess)
	assert.Error(t, err)
}

func TestTokenMalformed(t *testing.T) {
	t.Parallel()

	m := newTestMaker()

	for _, tok := range []string{"", "garbage", "not.a.jwt"} {
		_, err := m.Verify(tok, TokenKindAccess)
		assert.ErrorIs(t, err, ErrTokenMalformed)
	}
}

func TestTokenWithoutSubjectRejected(t *testing.T) {
	t.Parallel()

	m := newTestMaker()

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})

	signed, err := tok.SignedString([]byte("access-secret"))
	require.NoError(t, err)

	_, err = m.Verify(signed, TokenKindAccess)
	assert.ErrorIs(t, err, ErrTokenMalformed)
}
