package wire

import (
	"moviehub/internal/adaptor"
	"moviehub/internal/data/repository"
	"moviehub/pkg/middleware"
	"moviehub/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wirePage(
	r chi.Router,
	pageHandler *adaptor.PageHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	// Pages are public; OptionalAuth only decorates the request with the
	// session user so templates can tell visitors from members
	r.Group(func(r chi.Router) {
		r.Use(middleware.OptionalAuth(repo.Session, repo.User, log))

		r.Get("/", pageHandler.Dashboard)
		r.Get("/movies/{id}", pageHandler.MovieDetail)
		r.Get("/login", pageHandler.Login)
		r.Get("/register", pageHandler.Register)
	})
}
