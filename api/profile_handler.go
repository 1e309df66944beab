package api

import (
	"net/http"
	"strings"

	"github.com/survey-collective/backend/database"
	"github.com/survey-collective/backend/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type profileHandler struct {
	renderer    renderer
	logger      zerolog.Logger
	profileRepo *database.ProfileRepo
}

func newProfileHandler(renderer renderer, profileRepo *database.ProfileRepo) profileHandler {
	return profileHandler{
		renderer:    renderer,
		logger:      log.With().Str("handlerName", "profileHandler").Logger(),
		profileRepo: profileRepo,
	}
}

func (h profileHandler) show() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		principal := principalFromCtx(r.Context())
		if principal == nil {
			http.Redirect(w, r, "/login?redirect=/profile", http.StatusSeeOther)
			return
		}

		profile, err := h.loadProfile(w, r, principal)
		if profile == nil || err != nil {
			return
		}

		h.render(w, r, profile, "", false)
	}
}

// update saves the caller's display name and optional avatar link. The
// caller can only ever touch their own profile record.
func (h profileHandler) update() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		principal := principalFromCtx(r.Context())
		if principal == nil {
			http.Redirect(w, r, "/login?redirect=/profile", http.StatusSeeOther)
			return
		}

		profile, err := h.loadProfile(w, r, principal)
		if profile == nil || err != nil {
			return
		}

		if err := r.ParseForm(); err != nil {
			h.renderer.RenderError(w, r, http.StatusBadRequest, "Malformed form submission.")
			return
		}

		fullName := strings.TrimSpace(r.PostFormValue("full_name"))
		if fullName == "" {
			h.render(w, r, profile, "Display name is required.", false)
			return
		}

		profile.FullName = fullName
		if avatarURL := strings.TrimSpace(r.PostFormValue("avatar_url")); avatarURL != "" {
			profile.AvatarURL = &avatarURL
		} else {
			profile.AvatarURL = nil
		}

		if err := h.profileRepo.Update(profile); err != nil {
			h.logger.Error().Err(err).Msg("Failed to update profile")
			h.render(w, r, profile, "Could not save your profile, please try again.", false)
			return
		}

		h.render(w, r, profile, "", true)
	}
}

func (h profileHandler) loadProfile(w http.ResponseWriter, r *http.Request, principal *Principal) (*models.Profile, error) {
	profile, err := h.profileRepo.FindByID(principal.ID)
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to fetch profile")
		h.renderer.RenderError(w, r, http.StatusInternalServerError, "Something went wrong, please try again.")
		return nil, err
	}
	if profile == nil {
		h.renderer.RenderError(w, r, http.StatusNotFound, "Profile not found.")
		return nil, nil
	}
	return profile, nil
}

func (h profileHandler) render(w http.ResponseWriter, r *http.Request, profile *models.Profile, errorMessage string, saved bool) {
	status := http.StatusOK
	if errorMessage != "" {
		status = http.StatusBadRequest
	}
	h.renderer.Render(w, status, "profile", pageData{
		Title:     "Your Profile",
		Principal: principalFromCtx(r.Context()),
		Data: map[string]any{
			"Profile": profile,
			"Error":   errorMessage,
			"Saved":   saved,
		},
	})
}
