package adaptor

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"moviehub/internal/dto/request"
	"moviehub/internal/dto/response"
	"moviehub/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// Service stubs with overridable function fields so handler tests can
// drive each error path without a repository.

type stubMovieService struct {
	getMovies    func(ctx context.Context) ([]response.MovieResponse, error)
	getMovieByID func(ctx context.Context, movieID string) (*response.MovieDetailResponse, error)
	createMovie  func(ctx context.Context, req *request.MovieRequest) (*response.MovieResponse, error)
	updateMovie  func(ctx context.Context, movieID string, req *request.MovieUpdateRequest) (*response.MovieResponse, error)
	deleteMovie  func(ctx context.Context, movieID string) error
	searchMovies func(ctx context.Context, query string) ([]response.MovieResponse, error)
}

func (s *stubMovieService) GetMovies(ctx context.Context) ([]response.MovieResponse, error) {
	return s.getMovies(ctx)
}

func (s *stubMovieService) GetMovieByID(ctx context.Context, movieID string) (*response.MovieDetailResponse, error) {
	return s.getMovieByID(ctx, movieID)
}

func (s *stubMovieService) CreateMovie(ctx context.Context, req *request.MovieRequest) (*response.MovieResponse, error) {
	return s.createMovie(ctx, req)
}

func (s *stubMovieService) UpdateMovie(ctx context.Context, movieID string, req *request.MovieUpdateRequest) (*response.MovieResponse, error) {
	return s.updateMovie(ctx, movieID, req)
}

func (s *stubMovieService) DeleteMovie(ctx context.Context, movieID string) error {
	return s.deleteMovie(ctx, movieID)
}

func (s *stubMovieService) SearchMovies(ctx context.Context, query string) ([]response.MovieResponse, error) {
	return s.searchMovies(ctx, query)
}

type stubReviewService struct {
	getReviews          func(ctx context.Context, movieID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.ReviewResponse], error)
	createReview        func(ctx context.Context, userID string, req *request.CreateReviewRequest) (*response.ReviewResponse, error)
	updateReview        func(ctx context.Context, reviewID, userID string, req *request.UpdateReviewRequest) (*response.ReviewResponse, error)
	deleteReview        func(ctx context.Context, reviewID, userID string) error
	getMovieReviewStats func(ctx context.Context, movieID string) (*response.MovieReviewStats, error)
}

func (s *stubReviewService) GetReviews(ctx context.Context, movieID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.ReviewResponse], error) {
	return s.getReviews(ctx, movieID, req)
}

func (s *stubReviewService) CreateReview(ctx context.Context, userID string, req *request.CreateReviewRequest) (*response.ReviewResponse, error) {
	return s.createReview(ctx, userID, req)
}

func (s *stubReviewService) UpdateReview(ctx context.Context, reviewID, userID string, req *request.UpdateReviewRequest) (*response.ReviewResponse, error) {
	return s.updateReview(ctx, reviewID, userID, req)
}

func (s *stubReviewService) DeleteReview(ctx context.Context, reviewID, userID string) error {
	return s.deleteReview(ctx, reviewID, userID)
}

func (s *stubReviewService) GetMovieReviewStats(ctx context.Context, movieID string) (*response.MovieReviewStats, error) {
	return s.getMovieReviewStats(ctx, movieID)
}

type stubAuthService struct {
	register    func(ctx context.Context, req *request.RegisterRequest) (*response.AuthResponse, error)
	login       func(ctx context.Context, req *request.LoginRequest) (*response.AuthResponse, error)
	logout      func(ctx context.Context, token string) error
	currentUser func(ctx context.Context, userID uuid.UUID) (*response.CurrentUserResponse, error)
}

func (s *stubAuthService) Register(ctx context.Context, req *request.RegisterRequest) (*response.AuthResponse, error) {
	return s.register(ctx, req)
}

func (s *stubAuthService) Login(ctx context.Context, req *request.LoginRequest) (*response.AuthResponse, error) {
	return s.login(ctx, req)
}

func (s *stubAuthService) Logout(ctx context.Context, token string) error {
	return s.logout(ctx, token)
}

func (s *stubAuthService) CurrentUser(ctx context.Context, userID uuid.UUID) (*response.CurrentUserResponse, error) {
	return s.currentUser(ctx, userID)
}

// envelope mirrors the JSON response wrapper for assertions
type envelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Errors  json.RawMessage `json:"errors"`
}

func doJSON(t *testing.T, h http.Handler, method, target, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var env envelope
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	}
	return rec, env
}

// withUser injects an authenticated user the way the session middleware does
func withUser(next http.Handler, userID uuid.UUID, role string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := utils.SetUserContext(r.Context(), userID, role)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
