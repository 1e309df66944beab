package api

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sessionCookieFrom(w interface{ Result() *http.Response }) *http.Cookie {
	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == sessionCookieName {
			return cookie
		}
	}
	return nil
}

func TestSignupCreatesAccountAndSession(t *testing.T) {
	env := setupTestEnv(t)

	w := env.postForm("/signup", url.Values{
		"full_name": {"New Researcher"},
		"email":     {"new@mail.com"},
		"password":  {"password123"},
	})
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/dashboard", w.Header().Get("Location"))

	cookie := sessionCookieFrom(w)
	require.NotNil(t, cookie)
	assert.True(t, cookie.HttpOnly)

	principal, err := env.sessions.parse(cookie.Value)
	require.NoError(t, err)
	assert.Equal(t, "new@mail.com", principal.Email)
	assert.Equal(t, "New Researcher", principal.Name)

	user, err := env.database.UserRepo().FindByEmail("new@mail.com")
	require.NoError(t, err)
	require.NotNil(t, user)

	profile, err := env.database.ProfileRepo().FindByID(user.ID)
	require.NoError(t, err)
	require.NotNil(t, profile)
	assert.Equal(t, "New Researcher", profile.FullName)
}

func TestSignupValidation(t *testing.T) {
	env := setupTestEnv(t)

	tests := []struct {
		name   string
		form   url.Values
		status int
	}{
		{
			"missing name",
			url.Values{"email": {"a@mail.com"}, "password": {"password123"}},
			http.StatusBadRequest,
		},
		{
			"invalid email",
			url.Values{"full_name": {"A"}, "email": {"not-an-email"}, "password": {"password123"}},
			http.StatusBadRequest,
		},
		{
			"short password",
			url.Values{"full_name": {"A"}, "email": {"a@mail.com"}, "password": {"short"}},
			http.StatusBadRequest,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			w := env.postForm("/signup", test.form)
			assert.Equal(t, test.status, w.Code)
			assert.Nil(t, sessionCookieFrom(w))
		})
	}
}

func TestSignupDuplicateEmail(t *testing.T) {
	env := setupTestEnv(t)
	env.createAccount(t, "taken@mail.com", "First", "password123")

	w := env.postForm("/signup", url.Values{
		"full_name": {"Second"},
		"email":     {"taken@mail.com"},
		"password":  {"password123"},
	})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "already exists")
}

func TestLoginAndRedirectBack(t *testing.T) {
	env := setupTestEnv(t)
	env.createAccount(t, "back@mail.com", "Returning", "password123")

	w := env.postForm("/login", url.Values{
		"email":    {"back@mail.com"},
		"password": {"password123"},
		"redirect": {"/surveys/create"},
	})
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/surveys/create", w.Header().Get("Location"))

	cookie := sessionCookieFrom(w)
	require.NotNil(t, cookie)

	// the session now opens the protected page
	page := env.get("/surveys/create", cookie)
	assert.Equal(t, http.StatusOK, page.Code)
}

func TestLoginRejectsExternalRedirect(t *testing.T) {
	env := setupTestEnv(t)
	env.createAccount(t, "user@mail.com", "User", "password123")

	w := env.postForm("/login", url.Values{
		"email":    {"user@mail.com"},
		"password": {"password123"},
		"redirect": {"https://evil.example.com"},
	})
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/dashboard", w.Header().Get("Location"))
}

func TestLoginWrongPassword(t *testing.T) {
	env := setupTestEnv(t)
	env.createAccount(t, "user@mail.com", "User", "password123")

	w := env.postForm("/login", url.Values{
		"email":    {"user@mail.com"},
		"password": {"wrong-password"},
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Nil(t, sessionCookieFrom(w))

	// unknown email gets the same response
	w = env.postForm("/login", url.Values{
		"email":    {"nobody@mail.com"},
		"password": {"password123"},
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLogoutClearsSession(t *testing.T) {
	env := setupTestEnv(t)
	principal := env.createAccount(t, "user@mail.com", "User", "password123")
	cookie := env.sessionCookie(t, principal)

	w := env.postForm("/logout", url.Values{}, cookie)
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))

	cleared := sessionCookieFrom(w)
	require.NotNil(t, cleared)
	assert.Empty(t, cleared.Value)
	assert.Negative(t, cleared.MaxAge)
}
