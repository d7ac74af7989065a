package usecase

import (
	"moviehub/internal/data/repository"
	"moviehub/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Auth   AuthService
	Movie  MovieService
	Review ReviewService
}

func NewService(repo *repository.Repository, config *utils.Config, log *zap.Logger) *Service {
	return &Service{
		Auth:   NewAuthService(repo, config, log),
		Movie:  NewMovieService(repo, log),
		Review: NewReviewService(repo, log),
	}
}
