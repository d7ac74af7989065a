package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"moviehub/internal/data/entity"
	"moviehub/internal/data/repository"
	"moviehub/internal/dto/request"
	"moviehub/internal/dto/response"
	"moviehub/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SearchMinQueryLen is the minimum query length before search runs;
// shorter queries return an empty result set
const SearchMinQueryLen = 3

// SearchResultLimit caps the number of titles the live-search dropdown shows
const SearchResultLimit = 10

type MovieService interface {
	GetMovies(ctx context.Context) ([]response.MovieResponse, error)
	GetMovieByID(ctx context.Context, movieID string) (*response.MovieDetailResponse, error)
	CreateMovie(ctx context.Context, req *request.MovieRequest) (*response.MovieResponse, error)
	UpdateMovie(ctx context.Context, movieID string, req *request.MovieUpdateRequest) (*response.MovieResponse, error)
	DeleteMovie(ctx context.Context, movieID string) error
	SearchMovies(ctx context.Context, query string) ([]response.MovieResponse, error)
}

type movieService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewMovieService(repo *repository.Repository, log *zap.Logger) MovieService {
	return &movieService{
		repo: repo,
		log:  log.With(zap.String("service", "movie")),
	}
}

func (s *movieService) GetMovies(ctx context.Context) ([]response.MovieResponse, error) {
	movies, err := s.repo.Movie.FindAll(ctx)
	if err != nil {
		s.log.Error("Failed to get movies", zap.Error(err))
		return nil, fmt.Errorf("get movies: %w", err)
	}

	movieResponses := make([]response.MovieResponse, len(movies))
	for i, movie := range movies {
		movieResponses[i] = response.MovieToResponse(movie)
	}

	s.log.Info("Movies retrieved", zap.Int("count", len(movies)))

	return movieResponses, nil
}

func (s *movieService) GetMovieByID(ctx context.Context, movieID string) (*response.MovieDetailResponse, error) {
	id, err := uuid.Parse(movieID)
	if err != nil {
		s.log.Warn("Invalid movie ID format",
			zap.String("movie_id", movieID),
			zap.Error(err),
		)
		return nil, fmt.Errorf("invalid movie id: %w", err)
	}

	movie, err := s.repo.Movie.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to get movie by ID",
			zap.Error(err),
			zap.String("movie_id", movieID),
		)
		return nil, fmt.Errorf("get movie by id: %w", err)
	}

	if movie == nil {
		return nil, fmt.Errorf("movie not found")
	}

	avgRating, reviewCount, err := s.repo.Review.GetMovieReviewStats(ctx, movie.ID)
	if err != nil {
		s.log.Warn("Failed to get review stats for movie",
			zap.Error(err),
			zap.String("movie_id", movieID),
		)
		avgRating = 0
		reviewCount = 0
	}

	s.log.Info("Movie retrieved",
		zap.String("movie_id", movieID),
		zap.String("title", movie.Title),
		zap.Int64("review_count", reviewCount),
	)

	detail := response.MovieToDetailResponse(movie, avgRating, reviewCount)
	return &detail, nil
}

func (s *movieService) CreateMovie(ctx context.Context, req *request.MovieRequest) (*response.MovieResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create movie validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	releaseDate, err := time.Parse("2006-01-02", req.ReleaseDate)
	if err != nil {
		s.log.Warn("Invalid release date format",
			zap.String("release_date", req.ReleaseDate),
			zap.Error(err),
		)
		return nil, fmt.Errorf("invalid release date: %w", err)
	}

	now := time.Now()
	movie := &entity.Movie{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Title:       req.Title,
		Description: req.Description,
		ReleaseDate: releaseDate,
		Genre:       req.Genre,
		ImageURL:    req.ImageURL,
	}

	if err := s.repo.Movie.Create(ctx, movie); err != nil {
		s.log.Error("Failed to create movie",
			zap.Error(err),
			zap.String("title", req.Title),
		)
		return nil, fmt.Errorf("create movie: %w", err)
	}

	s.log.Info("Movie created",
		zap.String("movie_id", movie.ID.String()),
		zap.String("title", movie.Title),
	)

	movieResp := response.MovieToResponse(movie)
	return &movieResp, nil
}

func (s *movieService) UpdateMovie(ctx context.Context, movieID string, req *request.MovieUpdateRequest) (*response.MovieResponse, error) {
	id, err := uuid.Parse(movieID)
	if err != nil {
		return nil, fmt.Errorf("invalid movie id: %w", err)
	}

	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update movie validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	movie, err := s.repo.Movie.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find movie: %w", err)
	}
	if movie == nil {
		return nil, fmt.Errorf("movie not found")
	}

	// Apply partial updates only for provided fields
	updated := false

	if req.Title != nil && *req.Title != movie.Title {
		movie.Title = *req.Title
		updated = true
	}

	if req.Description != nil && *req.Description != movie.Description {
		movie.Description = *req.Description
		updated = true
	}

	if req.ReleaseDate != nil {
		releaseDate, err := time.Parse("2006-01-02", *req.ReleaseDate)
		if err != nil {
			return nil, fmt.Errorf("invalid release date: %w", err)
		}
		movie.ReleaseDate = releaseDate
		updated = true
	}

	if req.Genre != nil && *req.Genre != movie.Genre {
		movie.Genre = *req.Genre
		updated = true
	}

	if req.ImageURL != nil {
		movie.ImageURL = req.ImageURL
		updated = true
	}

	// Save only if changes were made
	if updated {
		movie.UpdatedAt = time.Now()
		if err := s.repo.Movie.Update(ctx, movie); err != nil {
			s.log.Error("Failed to update movie",
				zap.Error(err),
				zap.String("movie_id", movieID),
			)
			return nil, fmt.Errorf("update movie: %w", err)
		}
	}

	s.log.Info("Movie updated",
		zap.String("movie_id", movieID),
		zap.String("title", movie.Title),
		zap.Bool("was_updated", updated),
	)

	movieResp := response.MovieToResponse(movie)
	return &movieResp, nil
}

func (s *movieService) DeleteMovie(ctx context.Context, movieID string) error {
	id, err := uuid.Parse(movieID)
	if err != nil {
		return fmt.Errorf("invalid movie id: %w", err)
	}

	movie, err := s.repo.Movie.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("find movie: %w", err)
	}
	if movie == nil {
		return fmt.Errorf("movie not found")
	}

	// The repository removes the movie and its reviews in one transaction
	if err := s.repo.Movie.Delete(ctx, id); err != nil {
		s.log.Error("Failed to delete movie",
			zap.Error(err),
			zap.String("movie_id", movieID),
		)
		return fmt.Errorf("delete movie: %w", err)
	}

	s.log.Info("Movie deleted",
		zap.String("movie_id", movieID),
		zap.String("title", movie.Title),
	)

	return nil
}

func (s *movieService) SearchMovies(ctx context.Context, query string) ([]response.MovieResponse, error) {
	query = strings.TrimSpace(query)

	// The live-search widget only fires past two characters; shorter
	// input clears the dropdown, so mirror that server-side
	if len(query) < SearchMinQueryLen {
		return []response.MovieResponse{}, nil
	}

	movies, err := s.repo.Movie.Search(ctx, query, SearchResultLimit)
	if err != nil {
		s.log.Error("Failed to search movies",
			zap.Error(err),
			zap.String("query", query),
		)
		return nil, fmt.Errorf("search movies: %w", err)
	}

	movieResponses := make([]response.MovieResponse, len(movies))
	for i, movie := range movies {
		movieResponses[i] = response.MovieToResponse(movie)
	}

	s.log.Info("Movies searched",
		zap.String("query", query),
		zap.Int("count", len(movies)),
	)

	return movieResponses, nil
}
