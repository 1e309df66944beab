package api

import (
	"net/http"
	"strings"

	"github.com/survey-collective/backend/database"
	"github.com/survey-collective/backend/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 8

type authHandler struct {
	renderer    renderer
	logger      zerolog.Logger
	sessions    sessions
	userRepo    *database.UserRepo
	profileRepo *database.ProfileRepo
}

func newAuthHandler(renderer renderer, sessions sessions, userRepo *database.UserRepo, profileRepo *database.ProfileRepo) authHandler {
	logger := log.With().Str("handlerName", "authHandler").Logger()

	return authHandler{
		renderer:    renderer,
		logger:      logger,
		sessions:    sessions,
		userRepo:    userRepo,
		profileRepo: profileRepo,
	}
}

// safeRedirect keeps the post-auth redirect on this site. Anything that is
// not a local absolute path falls back to the dashboard.
func safeRedirect(path string) string {
	if strings.HasPrefix(path, "/") && !strings.HasPrefix(path, "//") {
		return path
	}
	return "/dashboard"
}

func (h authHandler) loginForm() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.renderer.Render(w, http.StatusOK, "login", pageData{
			Title: "Log In",
			Data:  map[string]any{"Redirect": r.URL.Query().Get("redirect"), "Email": "", "Error": ""},
		})
	}
}

func (h authHandler) login() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			h.renderer.RenderError(w, r, http.StatusBadRequest, "Malformed form submission.")
			return
		}

		email := strings.TrimSpace(r.PostFormValue("email"))
		password := r.PostFormValue("password")
		redirect := r.PostFormValue("redirect")

		renderWithError := func(status int, message string) {
			h.renderer.Render(w, status, "login", pageData{
				Title: "Log In",
				Data:  map[string]any{"Redirect": redirect, "Email": email, "Error": message},
			})
		}

		if email == "" || password == "" {
			renderWithError(http.StatusBadRequest, "Email and password are required.")
			return
		}

		user, err := h.userRepo.FindByEmail(email)
		if err != nil {
			h.logger.Error().Err(err).Msg("Failed to look up user by email")
			renderWithError(http.StatusInternalServerError, "Something went wrong, please try again.")
			return
		}
		if user == nil || bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password)) != nil {
			renderWithError(http.StatusUnauthorized, "Invalid email or password.")
			return
		}

		name := user.Email
		profile, err := h.profileRepo.FindByID(user.ID)
		if err != nil {
			h.logger.Error().Err(err).Msg("Failed to load profile at login")
		} else if profile != nil {
			name = profile.FullName
		}

		token, err := h.sessions.sign(Principal{ID: user.ID, Email: user.Email, Name: name})
		if err != nil {
			h.logger.Error().Err(err).Msg("Failed to sign session token")
			renderWithError(http.StatusInternalServerError, "Something went wrong, please try again.")
			return
		}

		h.sessions.setCookie(w, token)
		http.Redirect(w, r, safeRedirect(redirect), http.StatusSeeOther)
	}
}

func (h authHandler) signupForm() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.renderer.Render(w, http.StatusOK, "signup", pageData{
			Title: "Sign Up",
			Data:  map[string]any{"Redirect": r.URL.Query().Get("redirect"), "Email": "", "FullName": "", "Error": ""},
		})
	}
}

// signup creates the User credentials row and the Profile row in one flow;
// the profile shares the user's id and is the only part other visitors see.
func (h authHandler) signup() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			h.renderer.RenderError(w, r, http.StatusBadRequest, "Malformed form submission.")
			return
		}

		fullName := strings.TrimSpace(r.PostFormValue("full_name"))
		email := strings.TrimSpace(r.PostFormValue("email"))
		password := r.PostFormValue("password")
		redirect := r.PostFormValue("redirect")

		renderWithError := func(status int, message string) {
			h.renderer.Render(w, status, "signup", pageData{
				Title: "Sign Up",
				Data:  map[string]any{"Redirect": redirect, "Email": email, "FullName": fullName, "Error": message},
			})
		}

		switch {
		case fullName == "":
			renderWithError(http.StatusBadRequest, "Full name is required.")
			return
		case email == "" || !strings.Contains(email, "@"):
			renderWithError(http.StatusBadRequest, "A valid email is required.")
			return
		case len(password) < minPasswordLength:
			renderWithError(http.StatusBadRequest, "Password must be at least 8 characters.")
			return
		}

		existing, err := h.userRepo.FindByEmail(email)
		if err != nil {
			h.logger.Error().Err(err).Msg("Failed to look up user by email")
			renderWithError(http.StatusInternalServerError, "Something went wrong, please try again.")
			return
		}
		if existing != nil {
			renderWithError(http.StatusConflict, "An account with this email already exists.")
			return
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			h.logger.Error().Err(err).Msg("Failed to hash password")
			renderWithError(http.StatusInternalServerError, "Something went wrong, please try again.")
			return
		}

		user := models.User{Email: email, PasswordHash: hash}
		if err := h.userRepo.Add(&user); err != nil {
			h.logger.Error().Err(err).Msg("Failed to create user")
			renderWithError(http.StatusInternalServerError, "Something went wrong, please try again.")
			return
		}

		if err := h.profileRepo.Add(&models.Profile{ID: user.ID, FullName: fullName}); err != nil {
			h.logger.Error().Err(err).Msg("Failed to create profile")
			renderWithError(http.StatusInternalServerError, "Something went wrong, please try again.")
			return
		}

		token, err := h.sessions.sign(Principal{ID: user.ID, Email: user.Email, Name: fullName})
		if err != nil {
			h.logger.Error().Err(err).Msg("Failed to sign session token")
			renderWithError(http.StatusInternalServerError, "Something went wrong, please try again.")
			return
		}

		h.sessions.setCookie(w, token)
		http.Redirect(w, r, safeRedirect(redirect), http.StatusSeeOther)
	}
}

func (h authHandler) logout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.sessions.clearCookie(w)
		http.Redirect(w, r, "/", http.StatusSeeOther)
	}
}
