package adaptor

import (
	"moviehub/internal/usecase"

	"go.uber.org/zap"
)

type Handler struct {
	Auth   *AuthHandler
	Movie  *MovieHandler
	Review *ReviewHandler
	Page   *PageHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Auth:   NewAuthHandler(service.Auth, log),
		Movie:  NewMovieHandler(service.Movie, log),
		Review: NewReviewHandler(service.Review, log),
		Page:   NewPageHandler(service, log),
	}
}
