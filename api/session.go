package api

import (
	"errors"
	"net/http"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const sessionCookieName = "sc_session"

const sessionTTL = 30 * 24 * time.Hour

// Principal is the authenticated identity attached to a request. Absence of
// a Principal means the visitor is anonymous; that is never an error by
// itself, callers decide whether it matters.
type Principal struct {
	ID    uuid.UUID
	Email string
	Name  string
}

type sessionClaims struct {
	UID   string `json:"uid"`
	Email string `json:"email"`
	Name  string `json:"name"`
	jwt.RegisteredClaims
}

// sessions signs and verifies the session cookie token. Constructed once per
// server with an explicit secret; no package-level state. secure marks the
// cookie HTTPS-only and should be on in any deployment behind TLS.
type sessions struct {
	secret []byte
	ttl    time.Duration
	secure bool
}

func newSessions(secret []byte, secure bool) sessions {
	return sessions{secret: secret, ttl: sessionTTL, secure: secure}
}

func (s sessions) sign(p Principal) (string, error) {
	now := time.Now()
	claims := sessionClaims{
		UID:   p.ID.String(),
		Email: p.Email,
		Name:  p.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

func (s sessions) parse(token string) (*Principal, error) {
	t, err := jwt.ParseWithClaims(token, &sessionClaims{}, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil {
		return nil, err
	}
	claims, ok := t.Claims.(*sessionClaims)
	if !ok || !t.Valid {
		return nil, errors.New("invalid session token")
	}
	uid, err := uuid.Parse(claims.UID)
	if err != nil {
		return nil, err
	}
	return &Principal{ID: uid, Email: claims.Email, Name: claims.Name}, nil
}

// resolve reads the session cookie and returns the principal, or nil for
// anonymous visitors. A missing or expired cookie is the "no session"
// result, not an error.
func (s sessions) resolve(r *http.Request) *Principal {
	cookie, err := r.Cookie(sessionCookieName)
	if err != nil || cookie.Value == "" {
		return nil
	}
	principal, err := s.parse(cookie.Value)
	if err != nil {
		return nil
	}
	return principal
}

func (s sessions) setCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(s.ttl.Seconds()),
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (s sessions) clearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})
}
