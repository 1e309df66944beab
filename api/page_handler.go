package api

import (
	"net/http"
	"time"

	"github.com/survey-collective/backend/database"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const featuredSurveyLimit = 6

type pageHandler struct {
	renderer        renderer
	logger          zerolog.Logger
	surveyRepo      *database.SurveyRepo
	participantRepo *database.ParticipantRepo
}

func newPageHandler(renderer renderer, surveyRepo *database.SurveyRepo, participantRepo *database.ParticipantRepo) pageHandler {
	logger := log.With().Str("handlerName", "pageHandler").Logger()

	return pageHandler{
		renderer:        renderer,
		logger:          logger,
		surveyRepo:      surveyRepo,
		participantRepo: participantRepo,
	}
}

// home renders the landing page with the featured active surveys.
func (h pageHandler) home() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		featured, err := h.surveyRepo.FindFeatured(featuredSurveyLimit)
		if err != nil {
			h.logger.Error().Err(err).Msg("Failed to fetch featured surveys")
			h.renderer.RenderError(w, r, http.StatusInternalServerError, "Something went wrong, please try again.")
			return
		}

		views, err := attachParticipantCounts(h.participantRepo, featured, time.Now())
		if err != nil {
			h.logger.Error().Err(err).Msg("Failed to count participants for featured surveys")
			h.renderer.RenderError(w, r, http.StatusInternalServerError, "Something went wrong, please try again.")
			return
		}

		h.renderer.Render(w, http.StatusOK, "home", pageData{
			Title:     "Home",
			Principal: principalFromCtx(r.Context()),
			Data:      map[string]any{"Featured": views},
		})
	}
}

func (h pageHandler) about() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.renderer.Render(w, http.StatusOK, "about", pageData{
			Title:     "About",
			Principal: principalFromCtx(r.Context()),
		})
	}
}

func (h pageHandler) contact() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.renderer.Render(w, http.StatusOK, "contact", pageData{
			Title:     "Contact",
			Principal: principalFromCtx(r.Context()),
		})
	}
}
