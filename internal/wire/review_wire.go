package wire

import (
	"moviehub/internal/adaptor"
	"moviehub/internal/data/repository"
	"moviehub/pkg/middleware"
	"moviehub/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireReview(
	r chi.Router,
	reviewHandler *adaptor.ReviewHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	// GET /api/reviews?movie_id=&page= - paginated review listing (public)
	r.Get("/api/reviews", reviewHandler.GetReviews)

	// GET /api/movies/{id}/review-stats - rating statistics (public)
	r.Get("/api/movies/{id}/review-stats", reviewHandler.GetMovieReviewStats)

	// ==================== PROTECTED ROUTES (require auth) ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, repo.User, log))

		// POST /api/reviews - create review (authenticated users only)
		r.Post("/api/reviews", reviewHandler.CreateReview)

		// PATCH /api/reviews/{id} - update review (owner only)
		r.Patch("/api/reviews/{id}", reviewHandler.UpdateReview)

		// DELETE /api/reviews/{id} - delete review (owner only)
		r.Delete("/api/reviews/{id}", reviewHandler.DeleteReview)
	})
}
