package api

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/survey-collective/backend/database"
	"github.com/survey-collective/backend/errs"
	"github.com/survey-collective/backend/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type surveyHandler struct {
	renderer        renderer
	responder       Responder
	logger          zerolog.Logger
	surveyRepo      *database.SurveyRepo
	categoryRepo    *database.CategoryRepo
	participantRepo *database.ParticipantRepo
}

func newSurveyHandler(renderer renderer, surveyRepo *database.SurveyRepo, categoryRepo *database.CategoryRepo, participantRepo *database.ParticipantRepo) surveyHandler {
	logger := log.With().Str("handlerName", "surveyHandler").Logger()

	return surveyHandler{
		renderer:        renderer,
		responder:       NewResponder(logger),
		logger:          logger,
		surveyRepo:      surveyRepo,
		categoryRepo:    categoryRepo,
		participantRepo: participantRepo,
	}
}

// surveyForm carries the survey create/edit fields as submitted, so a
// validation failure can re-render the form with the visitor's input intact.
type surveyForm struct {
	Title         string
	Description   string
	CategoryID    int
	ExternalURL   string
	EstimatedTime int
	ClosingDate   string // yyyy-mm-dd, empty for none
	Status        string
}

func parseSurveyForm(r *http.Request) surveyForm {
	categoryID, _ := strconv.Atoi(r.PostFormValue("category_id"))
	estimatedTime, _ := strconv.Atoi(r.PostFormValue("estimated_time"))
	return surveyForm{
		Title:         strings.TrimSpace(r.PostFormValue("title")),
		Description:   strings.TrimSpace(r.PostFormValue("description")),
		CategoryID:    categoryID,
		ExternalURL:   strings.TrimSpace(r.PostFormValue("external_url")),
		EstimatedTime: estimatedTime,
		ClosingDate:   strings.TrimSpace(r.PostFormValue("closing_date")),
		Status:        r.PostFormValue("status"),
	}
}

// validate returns a user-facing message for the first failed check, or ""
// when the form is acceptable. Nothing is submitted on a validation failure.
func (f surveyForm) validate() string {
	switch {
	case f.Title == "":
		return "Title is required."
	case f.Description == "":
		return "Description is required."
	case f.CategoryID <= 0:
		return "Please choose a category."
	case f.ExternalURL == "" || !(strings.HasPrefix(f.ExternalURL, "http://") || strings.HasPrefix(f.ExternalURL, "https://")):
		return "A valid survey link is required."
	case f.EstimatedTime <= 0:
		return "Estimated completion time must be a positive number of minutes."
	case !models.ValidStatus(models.SurveyStatus(f.Status)):
		return "Status must be active, draft or completed."
	}
	if f.ClosingDate != "" {
		if _, err := time.Parse("2006-01-02", f.ClosingDate); err != nil {
			return "Closing date must be a valid date."
		}
	}
	return ""
}

// apply copies the form fields onto the survey record.
func (f surveyForm) apply(survey *models.Survey) {
	survey.Title = f.Title
	survey.Description = f.Description
	survey.CategoryID = f.CategoryID
	survey.ExternalURL = f.ExternalURL
	survey.EstimatedTime = f.EstimatedTime
	survey.Status = models.SurveyStatus(f.Status)
	if f.ClosingDate == "" {
		survey.ClosingDate = nil
	} else {
		closing, _ := time.Parse("2006-01-02", f.ClosingDate)
		survey.ClosingDate = &closing
	}
}

func formFromSurvey(survey *models.Survey) surveyForm {
	closing := ""
	if survey.ClosingDate != nil {
		closing = survey.ClosingDate.Format("2006-01-02")
	}
	return surveyForm{
		Title:         survey.Title,
		Description:   survey.Description,
		CategoryID:    survey.CategoryID,
		ExternalURL:   survey.ExternalURL,
		EstimatedTime: survey.EstimatedTime,
		ClosingDate:   closing,
		Status:        string(survey.Status),
	}
}

// list renders the public survey listing with filters, sort and pagination.
func (h surveyHandler) list() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		categoryID, _ := strconv.Atoi(query.Get("category"))
		page, _ := strconv.Atoi(query.Get("page"))
		if page < 1 {
			page = 1
		}
		sort := query.Get("sort")
		if sort == "" {
			sort = database.SortNewest
		}
		search := strings.TrimSpace(query.Get("q"))
		minTime, _ := strconv.Atoi(query.Get("min_time"))
		maxTime, _ := strconv.Atoi(query.Get("max_time"))

		filter := database.SurveyFilter{
			Status:     models.SurveyActive,
			CategoryID: categoryID,
			Search:     search,
			MinTime:    minTime,
			MaxTime:    maxTime,
			Sort:       sort,
			Page:       page,
			Limit:      database.DefaultPageSize,
		}

		surveys, total, err := h.surveyRepo.List(filter)
		if err != nil {
			h.logger.Error().Err(err).Msg("Failed to list surveys")
			h.renderer.RenderError(w, r, http.StatusInternalServerError, "Something went wrong, please try again.")
			return
		}

		views, err := attachParticipantCounts(h.participantRepo, surveys, time.Now())
		if err != nil {
			h.logger.Error().Err(err).Msg("Failed to count participants for survey listing")
			h.renderer.RenderError(w, r, http.StatusInternalServerError, "Something went wrong, please try again.")
			return
		}

		categories, err := h.categoryRepo.FindAll()
		if err != nil {
			h.logger.Error().Err(err).Msg("Failed to fetch categories")
			h.renderer.RenderError(w, r, http.StatusInternalServerError, "Something went wrong, please try again.")
			return
		}

		totalPages := int((total + database.DefaultPageSize - 1) / database.DefaultPageSize)
		if totalPages < 1 {
			totalPages = 1
		}

		h.renderer.Render(w, http.StatusOK, "surveys", pageData{
			Title:     "Browse Surveys",
			Principal: principalFromCtx(r.Context()),
			Data: map[string]any{
				"Surveys":    views,
				"Categories": categories,
				"CategoryID": categoryID,
				"MinTime":    minTime,
				"MaxTime":    maxTime,
				"Sort":       sort,
				"Query":      search,
				"Total":      total,
				"Page":       page,
				"TotalPages": totalPages,
				"PrevPage":   page - 1,
				"NextPage":   page + 1,
			},
		})
	}
}

// detail renders one survey. Participation is offered unless the survey is
// closed; for signed-in visitors a best-effort pre-read hides the action
// when they already participated.
func (h surveyHandler) detail() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		surveyID, err := uuid.Parse(chi.URLParam(r, "surveyID"))
		if err != nil {
			h.renderer.RenderError(w, r, http.StatusNotFound, "Survey not found.")
			return
		}

		survey, err := h.surveyRepo.FindByID(surveyID)
		if err != nil {
			h.logger.Error().Err(err).Msg("Failed to fetch survey")
			h.renderer.RenderError(w, r, http.StatusInternalServerError, "Something went wrong, please try again.")
			return
		}
		if survey == nil {
			h.renderer.RenderError(w, r, http.StatusNotFound, "Survey not found.")
			return
		}

		count, err := h.participantRepo.CountBySurvey(survey.ID)
		if err != nil {
			h.logger.Error().Err(err).Msg("Failed to count participants")
			h.renderer.RenderError(w, r, http.StatusInternalServerError, "Something went wrong, please try again.")
			return
		}

		principal := principalFromCtx(r.Context())
		hasParticipated := false
		if principal != nil {
			hasParticipated, err = h.participantRepo.HasParticipated(survey.ID, principal.ID)
			if err != nil {
				h.logger.Error().Err(err).Msg("Failed to check participation")
				h.renderer.RenderError(w, r, http.StatusInternalServerError, "Something went wrong, please try again.")
				return
			}
		}

		errorMessage := ""
		switch r.URL.Query().Get("error") {
		case "closed":
			errorMessage = "This survey is closed and no longer accepting participants."
		case "failed":
			errorMessage = "Could not record your participation, please try again."
		}

		h.renderer.Render(w, http.StatusOK, "survey_detail", pageData{
			Title:     survey.Title,
			Principal: principal,
			Data: map[string]any{
				"Survey":           SurveyView{Survey: survey, ParticipantCount: count, Closed: survey.IsClosed(time.Now())},
				"HasParticipated":  hasParticipated,
				"JustParticipated": r.URL.Query().Get("participated") == "1",
				"ErrorMessage":     errorMessage,
			},
		})
	}
}

// participate records a participation attempt. Signed-in visitors are
// recorded by user reference; anonymous visitors get a generated opaque
// identifier. A closed survey rejects the attempt.
func (h surveyHandler) participate() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		surveyID, err := uuid.Parse(chi.URLParam(r, "surveyID"))
		if err != nil {
			h.renderer.RenderError(w, r, http.StatusNotFound, "Survey not found.")
			return
		}

		survey, err := h.surveyRepo.FindByID(surveyID)
		if err != nil {
			h.logger.Error().Err(err).Msg("Failed to fetch survey")
			h.renderer.RenderError(w, r, http.StatusInternalServerError, "Something went wrong, please try again.")
			return
		}
		if survey == nil {
			h.renderer.RenderError(w, r, http.StatusNotFound, "Survey not found.")
			return
		}

		detailPath := fmt.Sprintf("/surveys/%s", survey.ID)

		if survey.IsClosed(time.Now()) {
			http.Redirect(w, r, detailPath+"?error=closed", http.StatusSeeOther)
			return
		}

		participant := models.Participant{SurveyID: survey.ID}
		if principal := principalFromCtx(r.Context()); principal != nil {
			userID := principal.ID
			participant.UserID = &userID
		} else {
			anonymousID := "anon_" + uuid.NewString()
			participant.AnonymousID = &anonymousID
		}

		if err := h.participantRepo.Add(&participant); err != nil {
			h.logger.Error().Err(err).Msg("Failed to record participation")
			http.Redirect(w, r, detailPath+"?error=failed", http.StatusSeeOther)
			return
		}

		http.Redirect(w, r, detailPath+"?participated=1", http.StatusSeeOther)
	}
}

func (h surveyHandler) createForm() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.renderForm(w, r, surveyForm{Status: string(models.SurveyActive)}, "", false, uuid.Nil, http.StatusOK)
	}
}

// create validates the form and inserts a survey owned by the caller.
func (h surveyHandler) create() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		principal := principalFromCtx(r.Context())
		if principal == nil {
			http.Redirect(w, r, "/login?redirect=/surveys/create", http.StatusSeeOther)
			return
		}

		if err := r.ParseForm(); err != nil {
			h.renderer.RenderError(w, r, http.StatusBadRequest, "Malformed form submission.")
			return
		}

		form := parseSurveyForm(r)
		if message := form.validate(); message != "" {
			h.renderForm(w, r, form, message, false, uuid.Nil, http.StatusBadRequest)
			return
		}

		survey := models.Survey{CreatorID: principal.ID}
		form.apply(&survey)

		if err := h.surveyRepo.Add(&survey); err != nil {
			h.logger.Error().Err(err).Msg("Failed to create survey")
			h.renderForm(w, r, form, "Could not create the survey, please try again.", false, uuid.Nil, http.StatusInternalServerError)
			return
		}

		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
	}
}

func (h surveyHandler) editForm() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		survey, ok := h.requireOwnedSurvey(w, r, "edit")
		if !ok {
			return
		}
		h.renderForm(w, r, formFromSurvey(survey), "", true, survey.ID, http.StatusOK)
	}
}

// update re-checks ownership on every mutation, then applies the submitted
// fields. The updated-at timestamp moves as a side effect of the save.
func (h surveyHandler) update() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		survey, ok := h.requireOwnedSurvey(w, r, "edit")
		if !ok {
			return
		}

		if err := r.ParseForm(); err != nil {
			h.renderer.RenderError(w, r, http.StatusBadRequest, "Malformed form submission.")
			return
		}

		form := parseSurveyForm(r)
		if message := form.validate(); message != "" {
			h.renderForm(w, r, form, message, true, survey.ID, http.StatusBadRequest)
			return
		}

		form.apply(survey)
		if err := h.surveyRepo.Update(survey); err != nil {
			h.logger.Error().Err(err).Msg("Failed to update survey")
			h.renderForm(w, r, form, "Could not save the survey, please try again.", true, survey.ID, http.StatusInternalServerError)
			return
		}

		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
	}
}

// deleteSurvey is the action-style endpoint behind the dashboard delete
// button: 401 without a session, 404 for not-found-or-not-owned, 500 on a
// backend failure, redirect to the dashboard on success.
func (h surveyHandler) deleteSurvey() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		principal := principalFromCtx(r.Context())
		if principal == nil {
			h.responder.WriteError(w, errs.NewUnauthorizedError("unauthorized"))
			return
		}

		surveyID, err := uuid.Parse(chi.URLParam(r, "surveyID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid surveyID"))
			return
		}

		survey, err := h.surveyRepo.FindOwned(surveyID, principal.ID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find survey", "survey", err))
			return
		}
		if survey == nil {
			h.responder.WriteError(w, errs.NewNotFoundOrNoPermission("survey", "delete"))
			return
		}

		if err := h.surveyRepo.Delete(survey.ID); err != nil {
			h.responder.WriteError(w, errs.NewInternalErrorWithCause("failed to delete survey", err))
			return
		}

		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
	}
}

// requireOwnedSurvey resolves the session and runs the fused
// existence+ownership fetch. An empty result renders the combined
// not-found/no-permission page; the two cases are never distinguished.
func (h surveyHandler) requireOwnedSurvey(w http.ResponseWriter, r *http.Request, action string) (*models.Survey, bool) {
	principal := principalFromCtx(r.Context())
	if principal == nil {
		http.Redirect(w, r, "/login?redirect="+r.URL.Path, http.StatusSeeOther)
		return nil, false
	}

	surveyID, err := uuid.Parse(chi.URLParam(r, "surveyID"))
	if err != nil {
		h.renderer.RenderError(w, r, http.StatusNotFound, "Survey not found.")
		return nil, false
	}

	survey, err := h.surveyRepo.FindOwned(surveyID, principal.ID)
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to fetch owned survey")
		h.renderer.RenderError(w, r, http.StatusInternalServerError, "Something went wrong, please try again.")
		return nil, false
	}
	if survey == nil {
		apiErr := errs.NewNotFoundOrNoPermission("survey", action)
		h.renderer.RenderError(w, r, apiErr.StatusCode, "Survey not found or you do not have permission to "+action+" it.")
		return nil, false
	}
	return survey, true
}

func (h surveyHandler) renderForm(w http.ResponseWriter, r *http.Request, form surveyForm, errorMessage string, isEdit bool, surveyID uuid.UUID, status int) {
	categories, err := h.categoryRepo.FindAll()
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to fetch categories")
		h.renderer.RenderError(w, r, http.StatusInternalServerError, "Something went wrong, please try again.")
		return
	}

	action := "/surveys/create"
	title := "Create Survey"
	if isEdit {
		action = "/surveys/edit/" + surveyID.String()
		title = "Edit Survey"
	}

	h.renderer.Render(w, status, "survey_form", pageData{
		Title:     title,
		Principal: principalFromCtx(r.Context()),
		Data: map[string]any{
			"Form":       form,
			"Categories": categories,
			"Error":      errorMessage,
			"IsEdit":     isEdit,
			"Action":     action,
		},
	})
}
