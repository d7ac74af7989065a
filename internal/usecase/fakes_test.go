package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"moviehub/internal/data/entity"
	"moviehub/internal/data/repository"
	"moviehub/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// In-memory repository fakes so services can be tested without a database.

type fakeMovieRepo struct {
	mu     sync.Mutex
	movies map[uuid.UUID]*entity.Movie

	// Delete cascades into the review store, same as the real repository
	reviews *fakeReviewRepo
}

func newFakeMovieRepo(reviews *fakeReviewRepo) *fakeMovieRepo {
	return &fakeMovieRepo{
		movies:  make(map[uuid.UUID]*entity.Movie),
		reviews: reviews,
	}
}

func (f *fakeMovieRepo) Create(ctx context.Context, movie *entity.Movie) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *movie
	f.movies[movie.ID] = &cp
	return nil
}

func (f *fakeMovieRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Movie, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	movie, ok := f.movies[id]
	if !ok || movie.DeletedAt != nil {
		return nil, nil
	}
	cp := *movie
	return &cp, nil
}

func (f *fakeMovieRepo) FindAll(ctx context.Context) ([]*entity.Movie, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var movies []*entity.Movie
	for _, movie := range f.movies {
		if movie.DeletedAt == nil {
			cp := *movie
			movies = append(movies, &cp)
		}
	}
	sort.Slice(movies, func(i, j int) bool {
		return movies[i].ReleaseDate.After(movies[j].ReleaseDate)
	})
	return movies, nil
}

func (f *fakeMovieRepo) Update(ctx context.Context, movie *entity.Movie) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	existing, ok := f.movies[movie.ID]
	if !ok || existing.DeletedAt != nil {
		return fmt.Errorf("movie not found or already deleted")
	}
	cp := *movie
	f.movies[movie.ID] = &cp
	return nil
}

func (f *fakeMovieRepo) Delete(ctx context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	movie, ok := f.movies[id]
	if !ok || movie.DeletedAt != nil {
		return fmt.Errorf("movie not found or already deleted")
	}
	f.reviews.deleteForMovie(id)
	now := time.Now()
	movie.DeletedAt = &now
	return nil
}

func (f *fakeMovieRepo) Search(ctx context.Context, query string, limit int) ([]*entity.Movie, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	needle := strings.ToLower(query)
	var movies []*entity.Movie
	for _, movie := range f.movies {
		if movie.DeletedAt != nil {
			continue
		}
		if strings.Contains(strings.ToLower(movie.Title), needle) ||
			strings.Contains(strings.ToLower(movie.Description), needle) {
			cp := *movie
			movies = append(movies, &cp)
		}
	}
	sort.Slice(movies, func(i, j int) bool {
		return movies[i].Title < movies[j].Title
	})
	if len(movies) > limit {
		movies = movies[:limit]
	}
	return movies, nil
}

type fakeReviewRepo struct {
	mu      sync.Mutex
	reviews map[uuid.UUID]*entity.Review
}

func newFakeReviewRepo() *fakeReviewRepo {
	return &fakeReviewRepo{reviews: make(map[uuid.UUID]*entity.Review)}
}

func (f *fakeReviewRepo) Create(ctx context.Context, review *entity.Review) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *review
	f.reviews[review.ID] = &cp
	return nil
}

func (f *fakeReviewRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Review, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	review, ok := f.reviews[id]
	if !ok {
		return nil, nil
	}
	cp := *review
	return &cp, nil
}

func (f *fakeReviewRepo) sorted(filter func(*entity.Review) bool) []*entity.Review {
	var reviews []*entity.Review
	for _, review := range f.reviews {
		if filter == nil || filter(review) {
			cp := *review
			reviews = append(reviews, &cp)
		}
	}
	sort.Slice(reviews, func(i, j int) bool {
		return reviews[i].CreatedAt.After(reviews[j].CreatedAt)
	})
	return reviews
}

func page(reviews []*entity.Review, limit, offset int) []*entity.Review {
	if offset >= len(reviews) {
		return nil
	}
	reviews = reviews[offset:]
	if len(reviews) > limit {
		reviews = reviews[:limit]
	}
	return reviews
}

func (f *fakeReviewRepo) FindAll(ctx context.Context, limit, offset int) ([]*entity.Review, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return page(f.sorted(nil), limit, offset), nil
}

func (f *fakeReviewRepo) FindByMovieID(ctx context.Context, movieID uuid.UUID, limit, offset int) ([]*entity.Review, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return page(f.sorted(func(r *entity.Review) bool { return r.MovieID == movieID }), limit, offset), nil
}

func (f *fakeReviewRepo) CountAll(ctx context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.reviews)), nil
}

func (f *fakeReviewRepo) CountByMovieID(ctx context.Context, movieID uuid.UUID) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var count int64
	for _, review := range f.reviews {
		if review.MovieID == movieID {
			count++
		}
	}
	return count, nil
}

func (f *fakeReviewRepo) Update(ctx context.Context, review *entity.Review) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.reviews[review.ID]; !ok {
		return fmt.Errorf("review not found")
	}
	cp := *review
	f.reviews[review.ID] = &cp
	return nil
}

func (f *fakeReviewRepo) Delete(ctx context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.reviews[id]; !ok {
		return fmt.Errorf("review not found")
	}
	delete(f.reviews, id)
	return nil
}

func (f *fakeReviewRepo) deleteForMovie(movieID uuid.UUID) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for id, review := range f.reviews {
		if review.MovieID == movieID {
			delete(f.reviews, id)
		}
	}
}

func (f *fakeReviewRepo) GetMovieReviewStats(ctx context.Context, movieID uuid.UUID) (float64, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var sum, count int64
	for _, review := range f.reviews {
		if review.MovieID == movieID {
			sum += int64(review.Rating)
			count++
		}
	}
	if count == 0 {
		return 0, 0, nil
	}
	return float64(sum) / float64(count), count, nil
}

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*entity.User)}
}

func (f *fakeUserRepo) Create(ctx context.Context, user *entity.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *user
	f.users[user.ID] = &cp
	return nil
}

func (f *fakeUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[id]
	if !ok {
		return nil, nil
	}
	cp := *user
	return &cp, nil
}

func (f *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, user := range f.users {
		if user.Email == email {
			cp := *user
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, user := range f.users {
		if user.Username == username {
			cp := *user
			return &cp, nil
		}
	}
	return nil, nil
}

type fakeSessionRepo struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]*entity.Session
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: make(map[uuid.UUID]*entity.Session)}
}

func (f *fakeSessionRepo) Create(ctx context.Context, session *entity.Session) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *session
	f.sessions[session.Token] = &cp
	return nil
}

func (f *fakeSessionRepo) FindValidSession(ctx context.Context, token string) (*entity.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	tokenUUID, err := uuid.Parse(token)
	if err != nil {
		return nil, nil
	}
	session, ok := f.sessions[tokenUUID]
	if !ok || session.RevokedAt != nil || session.ExpiresAt.Before(time.Now()) {
		return nil, nil
	}
	cp := *session
	return &cp, nil
}

func (f *fakeSessionRepo) Revoke(ctx context.Context, token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	tokenUUID, err := uuid.Parse(token)
	if err != nil {
		return fmt.Errorf("invalid token")
	}
	session, ok := f.sessions[tokenUUID]
	if !ok {
		return fmt.Errorf("session not found")
	}
	now := time.Now()
	session.RevokedAt = &now
	return nil
}

func (f *fakeSessionRepo) RevokeAllUserSessions(ctx context.Context, userID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	now := time.Now()
	for _, session := range f.sessions {
		if session.UserID == userID && session.RevokedAt == nil {
			session.RevokedAt = &now
		}
	}
	return nil
}

func (f *fakeSessionRepo) CleanExpiredSessions(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for token, session := range f.sessions {
		if session.ExpiresAt.Before(time.Now()) {
			delete(f.sessions, token)
		}
	}
	return nil
}

func newTestRepo() *repository.Repository {
	reviews := newFakeReviewRepo()
	return &repository.Repository{
		User:    newFakeUserRepo(),
		Session: newFakeSessionRepo(),
		Movie:   newFakeMovieRepo(reviews),
		Review:  reviews,
	}
}

func newTestConfig() *utils.Config {
	return &utils.Config{
		Session: utils.SessionConfig{ExpiryHours: 24},
	}
}

func seedUser(repo *repository.Repository, username string, role entity.UserRole) *entity.User {
	now := time.Now()
	user := &entity.User{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "x",
		Role:         role,
		IsActive:     true,
	}
	repo.User.Create(context.Background(), user)
	return user
}

func seedMovie(repo *repository.Repository, title string, releaseDate time.Time) *entity.Movie {
	now := time.Now()
	movie := &entity.Movie{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Title:       title,
		Description: "A description of " + title,
		ReleaseDate: releaseDate,
		Genre:       "Drama",
	}
	repo.Movie.Create(context.Background(), movie)
	return movie
}

func seedReview(repo *repository.Repository, userID, movieID uuid.UUID, rating int, createdAt time.Time) *entity.Review {
	review := &entity.Review{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: createdAt,
		},
		UserID:  userID,
		MovieID: movieID,
		Rating:  rating,
		Comment: "seeded review",
	}
	repo.Review.Create(context.Background(), review)
	return review
}

func testLogger() *zap.Logger {
	return zap.NewNop()
}
