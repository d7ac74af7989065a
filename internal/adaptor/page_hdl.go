package adaptor

import (
	"bytes"
	"html/template"
	"net/http"
	"strings"

	"moviehub/internal/dto/response"
	"moviehub/internal/usecase"
	"moviehub/internal/web"
	"moviehub/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// PageHandler serves the server-rendered HTML pages; the embedded script
// hydrates them through the JSON API
type PageHandler struct {
	service   *usecase.Service
	templates map[string]*template.Template
	log       *zap.Logger
}

type pageData struct {
	Title  string
	User   *response.CurrentUserResponse
	Movies []response.MovieResponse
	Movie  *response.MovieDetailResponse
}

func NewPageHandler(service *usecase.Service, log *zap.Logger) *PageHandler {
	templates, err := web.ParseTemplates()
	if err != nil {
		// Templates are embedded; a parse failure is a packaging bug
		log.Fatal("Failed to parse page templates", zap.Error(err))
	}

	return &PageHandler{
		service:   service,
		templates: templates,
		log:       log.With(zap.String("handler", "page")),
	}
}

// Dashboard handles GET / (public)
func (h *PageHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	movies, err := h.service.Movie.GetMovies(r.Context())
	if err != nil {
		h.log.Error("Failed to load dashboard movies", zap.Error(err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	h.render(w, "dashboard", &pageData{
		Title:  "Dashboard",
		User:   h.currentUser(r),
		Movies: movies,
	})
}

// MovieDetail handles GET /movies/{id} (public)
func (h *PageHandler) MovieDetail(w http.ResponseWriter, r *http.Request) {
	movieID := chi.URLParam(r, "id")

	movie, err := h.service.Movie.GetMovieByID(r.Context(), movieID)
	if err != nil {
		if strings.Contains(err.Error(), "not found") || strings.Contains(err.Error(), "invalid") {
			http.NotFound(w, r)
			return
		}
		h.log.Error("Failed to load movie detail",
			zap.Error(err),
			zap.String("movie_id", movieID))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	h.render(w, "movie_detail", &pageData{
		Title: movie.Title,
		User:  h.currentUser(r),
		Movie: movie,
	})
}

// Login handles GET /login
func (h *PageHandler) Login(w http.ResponseWriter, r *http.Request) {
	// Already signed in, nothing to do here
	if h.currentUser(r) != nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	h.render(w, "login", &pageData{Title: "Log in"})
}

// Register handles GET /register
func (h *PageHandler) Register(w http.ResponseWriter, r *http.Request) {
	if h.currentUser(r) != nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	h.render(w, "register", &pageData{Title: "Register"})
}

// currentUser resolves the session user when one is present
func (h *PageHandler) currentUser(r *http.Request) *response.CurrentUserResponse {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		return nil
	}

	user, err := h.service.Auth.CurrentUser(r.Context(), userID)
	if err != nil {
		h.log.Warn("Failed to resolve page user",
			zap.Error(err),
			zap.String("user_id", userID.String()))
		return nil
	}

	return user
}

// render executes into a buffer first so a template fault never leaks a
// half-written page
func (h *PageHandler) render(w http.ResponseWriter, page string, data *pageData) {
	tmpl, ok := h.templates[page]
	if !ok {
		h.log.Error("Unknown page template", zap.String("page", page))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout.html", data); err != nil {
		h.log.Error("Failed to render page",
			zap.Error(err),
			zap.String("page", page))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	buf.WriteTo(w)
}
