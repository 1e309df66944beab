package api

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/survey-collective/backend/config"
	"github.com/survey-collective/backend/database"
	"github.com/survey-collective/backend/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testSessionSecret = "test-session-secret"

type testEnv struct {
	database database.Database
	router   http.Handler
	sessions sessions
}

// setupTestEnv wires the full router over an in-memory database. A single
// connection keeps every query on the same in-memory instance.
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(db))

	currentDB := database.New(db)
	router := NewRouter(currentDB, WithConfig(map[string]string{
		config.KeySessionSecret: testSessionSecret,
	}))

	return &testEnv{
		database: currentDB,
		router:   router,
		sessions: newSessions([]byte(testSessionSecret), false),
	}
}

// createAccount inserts a user with a working password plus their profile
// and returns the principal for session cookies.
func (env *testEnv) createAccount(t *testing.T, email, fullName, password string) Principal {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	user := models.User{Email: email, PasswordHash: hash}
	require.NoError(t, env.database.UserRepo().Add(&user))
	require.NoError(t, env.database.ProfileRepo().Add(&models.Profile{ID: user.ID, FullName: fullName}))

	return Principal{ID: user.ID, Email: user.Email, Name: fullName}
}

func (env *testEnv) sessionCookie(t *testing.T, principal Principal) *http.Cookie {
	t.Helper()

	token, err := env.sessions.sign(principal)
	require.NoError(t, err)
	return &http.Cookie{Name: sessionCookieName, Value: token}
}

func (env *testEnv) createSurvey(t *testing.T, creatorID uuid.UUID, title string, status models.SurveyStatus, closingDate *time.Time) *models.Survey {
	t.Helper()

	survey := models.Survey{
		Title:         title,
		Description:   "A study about " + title,
		CategoryID:    1,
		CreatorID:     creatorID,
		ExternalURL:   "https://example.com/s",
		EstimatedTime: 10,
		ClosingDate:   closingDate,
		Status:        status,
	}
	require.NoError(t, env.database.SurveyRepo().Add(&survey))
	return &survey
}

func (env *testEnv) get(path string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

func (env *testEnv) postForm(path string, form url.Values, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}
