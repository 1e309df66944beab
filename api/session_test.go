package api

import (
	"net/http/httptest"
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionSignAndParse(t *testing.T) {
	s := newSessions([]byte("secret-one"), false)
	principal := Principal{ID: uuid.New(), Email: "user@mail.com", Name: "User"}

	token, err := s.sign(principal)
	require.NoError(t, err)

	parsed, err := s.parse(token)
	require.NoError(t, err)
	assert.Equal(t, principal, *parsed)
}

func TestSessionRejectsWrongSecret(t *testing.T) {
	signer := newSessions([]byte("secret-one"), false)
	verifier := newSessions([]byte("secret-two"), false)

	token, err := signer.sign(Principal{ID: uuid.New()})
	require.NoError(t, err)

	_, err = verifier.parse(token)
	assert.Error(t, err)
}

func TestSessionRejectsExpiredToken(t *testing.T) {
	s := sessions{secret: []byte("secret-one"), ttl: -time.Hour}

	token, err := s.sign(Principal{ID: uuid.New()})
	require.NoError(t, err)

	_, err = s.parse(token)
	assert.Error(t, err)
}

func TestSessionRejectsGarbage(t *testing.T) {
	s := newSessions([]byte("secret-one"), false)

	_, err := s.parse("not-a-token")
	assert.Error(t, err)
}

func TestSessionRejectsUnexpectedAlgorithm(t *testing.T) {
	secret := []byte("secret-one")
	s := newSessions(secret, false)

	// a token signed with any method other than HS256 must never verify,
	// even when the signature itself checks out against the shared secret
	claims := sessionClaims{
		UID: uuid.NewString(),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString(secret)
	require.NoError(t, err)

	_, err = s.parse(token)
	assert.Error(t, err)
}

func TestSessionCookieSecureFlag(t *testing.T) {
	token := "opaque"

	insecure := httptest.NewRecorder()
	newSessions([]byte("secret-one"), false).setCookie(insecure, token)
	require.Len(t, insecure.Result().Cookies(), 1)
	assert.False(t, insecure.Result().Cookies()[0].Secure)

	secure := httptest.NewRecorder()
	s := newSessions([]byte("secret-one"), true)
	s.setCookie(secure, token)
	require.Len(t, secure.Result().Cookies(), 1)
	assert.True(t, secure.Result().Cookies()[0].Secure)

	cleared := httptest.NewRecorder()
	s.clearCookie(cleared)
	require.Len(t, cleared.Result().Cookies(), 1)
	assert.True(t, cleared.Result().Cookies()[0].Secure)
}
