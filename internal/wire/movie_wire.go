package wire

import (
	"moviehub/internal/adaptor"
	"moviehub/internal/data/repository"
	"moviehub/pkg/middleware"
	"moviehub/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireMovie(
	r chi.Router,
	movieHandler *adaptor.MovieHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	// GET /api/movies - full catalogue (public)
	r.Get("/api/movies", movieHandler.GetMovies)

	// GET /api/movies/search - live-search endpoint; registered before the
	// {id} pattern so "search" never matches as an id
	r.Get("/api/movies/search", movieHandler.SearchMovies)

	// GET /api/movies/{id} - movie details with review stats (public)
	r.Get("/api/movies/{id}", movieHandler.GetMovieByID)

	// ==================== ADMIN ROUTES ====================
	// Catalogue writes are admin only
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, repo.User, log))
		r.Use(middleware.Admin(repo.User, log))

		r.Post("/api/movies", movieHandler.CreateMovie)
		r.Patch("/api/movies/{id}", movieHandler.UpdateMovie)
		r.Delete("/api/movies/{id}", movieHandler.DeleteMovie)
	})
}
