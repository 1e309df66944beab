package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/survey-collective/backend/models"
)

func TestHomeShowsFeaturedSurveys(t *testing.T) {
	env := setupTestEnv(t)
	creator := env.createAccount(t, "owner@mail.com", "Owner", "password123")

	featured := env.createSurvey(t, creator.ID, "Featured Study", models.SurveyActive, nil)
	featured.IsFeatured = true
	require.NoError(t, env.database.SurveyRepo().Update(featured))

	env.createSurvey(t, creator.ID, "Ordinary Study", models.SurveyActive, nil)

	w := env.get("/")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Featured Study")
	assert.NotContains(t, w.Body.String(), "Ordinary Study")
}

func TestStaticPages(t *testing.T) {
	env := setupTestEnv(t)

	w := env.get("/about")
	assert.Equal(t, http.StatusOK, w.Code)

	w = env.get("/contact")
	assert.Equal(t, http.StatusOK, w.Code)
}
