package api

import (
	"github.com/survey-collective/backend/database"
)

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct
func initializeHandlers(database database.Database, sessions sessions) *routeHandlers {
	renderer := newRenderer()

	return &routeHandlers{
		pageHandler:      newPageHandler(renderer, database.SurveyRepo(), database.ParticipantRepo()),
		authHandler:      newAuthHandler(renderer, sessions, database.UserRepo(), database.ProfileRepo()),
		surveyHandler:    newSurveyHandler(renderer, database.SurveyRepo(), database.CategoryRepo(), database.ParticipantRepo()),
		dashboardHandler: newDashboardHandler(renderer, database.SurveyRepo(), database.ParticipantRepo()),
		profileHandler:   newProfileHandler(renderer, database.ProfileRepo()),
	}
}
