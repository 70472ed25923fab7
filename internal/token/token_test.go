package token

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndVerify(t *testing.T) {
	svc := NewService([]byte("test-secret"), time.Hour)

	tok, err := svc.Issue(42)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	userID, err := svc.Verify(tok)
	require.NoError(t, err)
	assert.Equal(t, 42, userID)
}

func TestVerifyMalformed(t *testing.T) {
	svc := NewService([]byte("test-secret"), time.Hour)

	_, err := svc.Verify("not.a.token")
	require.Error(t, err)
	assert.ErrorIs(t, err, jwt.ErrTokenMalformed)
}

func TestVerifyTamperedSignature(t *testing.T) {
	svc := NewService([]byte("test-secret"), time.Hour)

	tok, err := svc.Issue(7)
	require.NoError(t, err)

	// Flip a character in the signature segment.
	parts := strings.Split(tok, ".")
	require.Len(t, parts, 3)
	sig := []byte(parts[2])
	if sig[0] == 'A' {
		sig[0] = 'B'
	} else {
		sig[0] = 'A'
	}
	parts[2] = string(sig)

	_, err = svc.Verify(strings.Join(parts, "."))
	require.Error(t, err)
	assert.ErrorIs(t, err, jwt.ErrTokenSignatureInvalid)
}

func TestVerifyWrongSecret(t *testing.T) {
	issuer := NewService([]byte("secret-a"), time.Hour)
	verifier := NewService([]byte("secret-b"), time.Hour)

	tok, err := issuer.Issue(7)
	require.NoError(t, err)

	_, err = verifier.Verify(tok)
	require.Error(t, err)
	assert.ErrorIs(t, err, jwt.ErrTokenSignatureInvalid)
}

func TestVerifyExpired(t *testing.T) {
	svc := NewService([]byte("test-secret"), -time.Minute)

	tok, err := svc.Issue(7)
	require.NoError(t, err)

	_, err = svc.Verify(tok)
	require.Error(t, err)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestVerifyBadSubject(t *testing.T) {
	secret := []byte("test-secret")
	claims := jwt.RegisteredClaims{
		Subject:   "not-a-number",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	require.NoError(t, err)

	svc := NewService(secret, time.Hour)
	_, err = svc.Verify(tok)
	assert.ErrorIs(t, err, ErrInvalidSubject)
}
