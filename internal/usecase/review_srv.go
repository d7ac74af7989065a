package usecase

import (
	"context"
	"fmt"
	"time"

	"moviehub/internal/data/entity"
	"moviehub/internal/data/repository"
	"moviehub/internal/dto/request"
	"moviehub/internal/dto/response"
	"moviehub/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ReviewService interface {
	// GetReviews lists reviews, optionally filtered to one movie
	GetReviews(ctx context.Context, movieID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.ReviewResponse], error)
	CreateReview(ctx context.Context, userID string, req *request.CreateReviewRequest) (*response.ReviewResponse, error)
	UpdateReview(ctx context.Context, reviewID, userID string, req *request.UpdateReviewRequest) (*response.ReviewResponse, error)
	DeleteReview(ctx context.Context, reviewID, userID string) error

	// Stats
	GetMovieReviewStats(ctx context.Context, movieID string) (*response.MovieReviewStats, error)
}

type reviewService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewReviewService(repo *repository.Repository, log *zap.Logger) ReviewService {
	return &reviewService{
		repo: repo,
		log:  log.With(zap.String("service", "review")),
	}
}

func (s *reviewService) GetReviews(ctx context.Context, movieID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.ReviewResponse], error) {
	limit := req.Limit()
	offset := req.Offset()

	var (
		reviews []*entity.Review
		total   int64
		err     error
	)

	if movieID != "" {
		movieUUID, parseErr := uuid.Parse(movieID)
		if parseErr != nil {
			return nil, fmt.Errorf("invalid movie ID format %s: %w", movieID, parseErr)
		}

		reviews, err = s.repo.Review.FindByMovieID(ctx, movieUUID, limit, offset)
		if err == nil {
			total, err = s.repo.Review.CountByMovieID(ctx, movieUUID)
		}
	} else {
		reviews, err = s.repo.Review.FindAll(ctx, limit, offset)
		if err == nil {
			total, err = s.repo.Review.CountAll(ctx)
		}
	}

	if err != nil {
		s.log.Error("Failed to get reviews",
			zap.Error(err),
			zap.String("movie_id", movieID),
			zap.Int("page", req.Page),
			zap.Int("per_page", req.PerPage),
		)
		return nil, fmt.Errorf("get reviews: %w", err)
	}

	// Expand each review with its owner's display name and movie title
	reviewResponses := make([]response.ReviewResponse, len(reviews))
	for i, review := range reviews {
		username, movieTitle := s.expandReview(ctx, review)
		reviewResponses[i] = response.ReviewToResponse(review, username, movieTitle)
	}

	s.log.Info("Reviews retrieved",
		zap.String("movie_id", movieID),
		zap.Int("count", len(reviews)),
		zap.Int64("total", total),
		zap.Int("page", req.Page),
	)

	return response.NewPaginatedResponse(reviewResponses, req.Page, limit, total), nil
}

// expandReview resolves author name and movie title for display; a failed
// lookup leaves the field blank but is logged, never silently swallowed
func (s *reviewService) expandReview(ctx context.Context, review *entity.Review) (username, movieTitle string) {
	user, err := s.repo.User.FindByID(ctx, review.UserID)
	if err != nil {
		s.log.Warn("Failed to load review author",
			zap.Error(err),
			zap.String("review_id", review.ID.String()),
			zap.String("user_id", review.UserID.String()),
		)
	} else if user != nil {
		username = user.Username
	}

	movie, err := s.repo.Movie.FindByID(ctx, review.MovieID)
	if err != nil {
		s.log.Warn("Failed to load reviewed movie",
			zap.Error(err),
			zap.String("review_id", review.ID.String()),
			zap.String("movie_id", review.MovieID.String()),
		)
	} else if movie != nil {
		movieTitle = movie.Title
	}

	return username, movieTitle
}

func (s *reviewService) CreateReview(ctx context.Context, userID string, req *request.CreateReviewRequest) (*response.ReviewResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create review validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	// The owner always comes from the session, never from the payload
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID format %s: %w", userID, err)
	}

	movieID, err := uuid.Parse(req.MovieID)
	if err != nil {
		return nil, fmt.Errorf("invalid movie ID format %s: %w", req.MovieID, err)
	}

	movie, err := s.repo.Movie.FindByID(ctx, movieID)
	if err != nil || movie == nil {
		return nil, fmt.Errorf("movie %s not found", req.MovieID)
	}

	user, err := s.repo.User.FindByID(ctx, userUUID)
	if err != nil || user == nil {
		return nil, fmt.Errorf("user %s not found", userID)
	}

	now := time.Now()
	review := &entity.Review{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: now,
		},
		UserID:  userUUID,
		MovieID: movieID,
		Rating:  req.Rating,
		Comment: req.Comment,
	}

	if err := s.repo.Review.Create(ctx, review); err != nil {
		s.log.Error("Failed to create review",
			zap.Error(err),
			zap.String("user_id", userID),
			zap.String("movie_id", req.MovieID),
		)
		return nil, fmt.Errorf("create review: %w", err)
	}

	s.log.Info("Review created",
		zap.String("review_id", review.ID.String()),
		zap.String("user_id", userID),
		zap.String("movie_id", req.MovieID),
		zap.Int("rating", req.Rating),
	)

	reviewResp := response.ReviewToResponse(review, user.Username, movie.Title)
	return &reviewResp, nil
}

func (s *reviewService) UpdateReview(ctx context.Context, reviewID, userID string, req *request.UpdateReviewRequest) (*response.ReviewResponse, error) {
	reviewUUID, err := uuid.Parse(reviewID)
	if err != nil {
		return nil, fmt.Errorf("invalid review ID format %s: %w", reviewID, err)
	}

	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID format %s: %w", userID, err)
	}

	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update review validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	review, err := s.repo.Review.FindByID(ctx, reviewUUID)
	if err != nil || review == nil {
		return nil, fmt.Errorf("review %s not found", reviewID)
	}

	// Only the owner may modify a review
	if review.UserID != userUUID {
		s.log.Warn("Non-owner tried to update review",
			zap.String("review_id", reviewID),
			zap.String("user_id", userID),
			zap.String("owner_id", review.UserID.String()),
		)
		return nil, fmt.Errorf("forbidden: not the review owner")
	}

	updated := false

	if req.Rating != nil && *req.Rating != review.Rating {
		review.Rating = *req.Rating
		updated = true
	}

	if req.Comment != nil && *req.Comment != review.Comment {
		review.Comment = *req.Comment
		updated = true
	}

	if updated {
		if err := s.repo.Review.Update(ctx, review); err != nil {
			s.log.Error("Failed to update review",
				zap.Error(err),
				zap.String("review_id", reviewID),
			)
			return nil, fmt.Errorf("update review: %w", err)
		}
	}

	username, movieTitle := s.expandReview(ctx, review)

	s.log.Info("Review updated",
		zap.String("review_id", reviewID),
		zap.String("user_id", userID),
		zap.Bool("was_updated", updated),
	)

	reviewResp := response.ReviewToResponse(review, username, movieTitle)
	return &reviewResp, nil
}

func (s *reviewService) DeleteReview(ctx context.Context, reviewID, userID string) error {
	reviewUUID, err := uuid.Parse(reviewID)
	if err != nil {
		return fmt.Errorf("invalid review ID format %s: %w", reviewID, err)
	}

	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return fmt.Errorf("invalid user ID format %s: %w", userID, err)
	}

	review, err := s.repo.Review.FindByID(ctx, reviewUUID)
	if err != nil || review == nil {
		return fmt.Errorf("review %s not found", reviewID)
	}

	// Only the owner may delete a review
	if review.UserID != userUUID {
		s.log.Warn("Non-owner tried to delete review",
			zap.String("review_id", reviewID),
			zap.String("user_id", userID),
			zap.String("owner_id", review.UserID.String()),
		)
		return fmt.Errorf("forbidden: not the review owner")
	}

	if err := s.repo.Review.Delete(ctx, reviewUUID); err != nil {
		s.log.Error("Failed to delete review",
			zap.Error(err),
			zap.String("review_id", reviewID),
		)
		return fmt.Errorf("delete review: %w", err)
	}

	s.log.Info("Review deleted",
		zap.String("review_id", reviewID),
		zap.String("user_id", userID),
	)

	return nil
}

func (s *reviewService) GetMovieReviewStats(ctx context.Context, movieID string) (*response.MovieReviewStats, error) {
	movieUUID, err := uuid.Parse(movieID)
	if err != nil {
		return nil, fmt.Errorf("invalid movie ID format %s: %w", movieID, err)
	}

	avgRating, reviewCount, err := s.repo.Review.GetMovieReviewStats(ctx, movieUUID)
	if err != nil {
		s.log.Error("Failed to get movie review stats",
			zap.Error(err),
			zap.String("movie_id", movieID),
		)
		return nil, fmt.Errorf("get movie review stats: %w", err)
	}

	return &response.MovieReviewStats{
		AverageRating: avgRating,
		ReviewCount:   reviewCount,
	}, nil
}
