package api

import (
	"time"

	"github.com/survey-collective/backend/database"
	"github.com/survey-collective/backend/models"
	"golang.org/x/sync/errgroup"
)

// routeHandlers contains all the handlers for different route types
type routeHandlers struct {
	pageHandler      pageHandler
	authHandler      authHandler
	surveyHandler    surveyHandler
	dashboardHandler dashboardHandler
	profileHandler   profileHandler
}

// SurveyView is a survey plus the per-record follow-up data every listing
// page attaches: the participant count and the computed closed state.
type SurveyView struct {
	*models.Survey
	ParticipantCount int64
	Closed           bool
}

// attachParticipantCounts issues one count query per survey, concurrently,
// and waits for all of them. All-or-nothing: if any count fails the whole
// page load is treated as failed.
func attachParticipantCounts(repo *database.ParticipantRepo, surveys []*models.Survey, now time.Time) ([]SurveyView, error) {
	views := make([]SurveyView, len(surveys))
	var g errgroup.Group
	for i, survey := range surveys {
		views[i] = SurveyView{Survey: survey, Closed: survey.IsClosed(now)}
		g.Go(func() error {
			count, err := repo.CountBySurvey(survey.ID)
			if err != nil {
				return err
			}
			views[i].ParticipantCount = count
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return views, nil
}
