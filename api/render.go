package api

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageNames = []string{
	"home", "about", "contact", "login", "signup",
	"surveys", "survey_detail", "survey_form",
	"dashboard", "profile", "error",
}

// pageData is the envelope every template receives: the signed-in principal
// (nil for anonymous visitors) plus the page-specific payload.
type pageData struct {
	Title     string
	Principal *Principal
	Data      any
}

// renderer holds the parsed page templates. Constructed once per server and
// handed to each handler; no package-level template state.
type renderer struct {
	templates map[string]*template.Template
	logger    zerolog.Logger
}

func newRenderer() renderer {
	funcs := template.FuncMap{
		"date": func(v any) string {
			switch t := v.(type) {
			case time.Time:
				return t.Format("Jan 2, 2006")
			case *time.Time:
				if t != nil {
					return t.Format("Jan 2, 2006")
				}
			}
			return ""
		},
	}

	templates := make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		templates[name] = template.Must(
			template.New("layout.html").Funcs(funcs).ParseFS(
				templateFS, "templates/layout.html", "templates/"+name+".html"),
		)
	}

	return renderer{
		templates: templates,
		logger:    log.With().Str("handlerName", "renderer").Logger(),
	}
}

// Render writes the named page. The template executes into a buffer first so
// a rendering failure becomes a clean 500 instead of a half-written page.
func (rd renderer) Render(w http.ResponseWriter, status int, page string, data pageData) {
	tmpl, ok := rd.templates[page]
	if !ok {
		rd.logger.Error().Str("page", page).Msg("unknown page template")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout.html", data); err != nil {
		rd.logger.Error().Err(err).Str("page", page).Msg("error rendering page")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		rd.logger.Error().Err(err).Str("page", page).Msg("error writing page")
	}
}

// RenderError writes the shared error page with a user-facing message.
func (rd renderer) RenderError(w http.ResponseWriter, r *http.Request, status int, message string) {
	rd.Render(w, status, "error", pageData{
		Title:     "Error",
		Principal: principalFromCtx(r.Context()),
		Data:      map[string]any{"Status": status, "Message": message},
	})
}
