package repository

import (
	"context"
	"fmt"

	"moviehub/internal/data/entity"
	"moviehub/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type MovieRepository interface {
	Create(ctx context.Context, movie *entity.Movie) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Movie, error)
	FindAll(ctx context.Context) ([]*entity.Movie, error)
	Update(ctx context.Context, movie *entity.Movie) error

	// Delete soft-deletes the movie and hard-deletes its reviews atomically
	Delete(ctx context.Context, id uuid.UUID) error

	// Search matches title or description case-insensitively
	Search(ctx context.Context, query string, limit int) ([]*entity.Movie, error)
}

type movieRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewMovieRepository(db database.PgxIface, log *zap.Logger) MovieRepository {
	return &movieRepository{
		db:  db,
		log: log.With(zap.String("repository", "movie")),
	}
}

func (r *movieRepository) Create(ctx context.Context, movie *entity.Movie) error {
	query := `
		INSERT INTO movies (id, title, description, release_date, genre, image_url,
		                   created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.Exec(ctx, query,
		movie.ID,
		movie.Title,
		movie.Description,
		movie.ReleaseDate,
		movie.Genre,
		movie.ImageURL,
		movie.CreatedAt,
		movie.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create movie",
			zap.Error(err),
			zap.String("title", movie.Title),
		)
		return fmt.Errorf("failed to create movie: %w", err)
	}

	return nil
}

func (r *movieRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Movie, error) {
	query := `
		SELECT id, title, description, release_date, genre, image_url,
		       created_at, updated_at, deleted_at
		FROM movies
		WHERE id = $1 AND deleted_at IS NULL
	`

	var movie entity.Movie
	err := r.db.QueryRow(ctx, query, id).Scan(
		&movie.ID,
		&movie.Title,
		&movie.Description,
		&movie.ReleaseDate,
		&movie.Genre,
		&movie.ImageURL,
		&movie.CreatedAt,
		&movie.UpdatedAt,
		&movie.DeletedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find movie by ID",
			zap.Error(err),
			zap.String("movie_id", id.String()),
		)
		return nil, fmt.Errorf("failed to find movie: %w", err)
	}

	return &movie, nil
}

func (r *movieRepository) FindAll(ctx context.Context) ([]*entity.Movie, error) {
	query := `
		SELECT id, title, description, release_date, genre, image_url,
		       created_at, updated_at
		FROM movies
		WHERE deleted_at IS NULL
		ORDER BY release_date DESC
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to find all movies", zap.Error(err))
		return nil, fmt.Errorf("failed to find movies: %w", err)
	}
	defer rows.Close()

	var movies []*entity.Movie
	for rows.Next() {
		var movie entity.Movie
		err := rows.Scan(
			&movie.ID,
			&movie.Title,
			&movie.Description,
			&movie.ReleaseDate,
			&movie.Genre,
			&movie.ImageURL,
			&movie.CreatedAt,
			&movie.UpdatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan movie row", zap.Error(err))
			return nil, fmt.Errorf("failed to scan movie: %w", err)
		}
		movies = append(movies, &movie)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("failed to iterate rows: %w", err)
	}

	r.log.Debug("Movies found", zap.Int("count", len(movies)))

	return movies, nil
}

func (r *movieRepository) Update(ctx context.Context, movie *entity.Movie) error {
	query := `
		UPDATE movies
		SET title = $2, description = $3, release_date = $4, genre = $5,
		    image_url = $6, updated_at = $7
		WHERE id = $1 AND deleted_at IS NULL
	`

	result, err := r.db.Exec(ctx, query,
		movie.ID,
		movie.Title,
		movie.Description,
		movie.ReleaseDate,
		movie.Genre,
		movie.ImageURL,
		movie.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to update movie",
			zap.Error(err),
			zap.String("movie_id", movie.ID.String()),
		)
		return fmt.Errorf("failed to update movie: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("movie not found or already deleted")
	}

	return nil
}

// Delete removes the movie and its reviews in one transaction, so a fault
// mid-way never leaves the catalogue half-cleaned
func (r *movieRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		r.log.Error("Failed to begin delete transaction",
			zap.Error(err),
			zap.String("movie_id", id.String()),
		)
		return fmt.Errorf("begin delete movie: %w", err)
	}
	defer tx.Rollback(ctx)

	reviewResult, err := tx.Exec(ctx, `DELETE FROM reviews WHERE movie_id = $1`, id)
	if err != nil {
		r.log.Error("Failed to delete reviews for movie",
			zap.Error(err),
			zap.String("movie_id", id.String()),
		)
		return fmt.Errorf("failed to delete movie reviews: %w", err)
	}

	result, err := tx.Exec(ctx,
		`UPDATE movies SET deleted_at = NOW() WHERE id = $1 AND deleted_at IS NULL`, id)
	if err != nil {
		r.log.Error("Failed to delete movie",
			zap.Error(err),
			zap.String("movie_id", id.String()),
		)
		return fmt.Errorf("failed to delete movie: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("movie not found or already deleted")
	}

	if err := tx.Commit(ctx); err != nil {
		r.log.Error("Failed to commit delete transaction",
			zap.Error(err),
			zap.String("movie_id", id.String()),
		)
		return fmt.Errorf("commit delete movie: %w", err)
	}

	r.log.Info("Movie soft deleted",
		zap.String("movie_id", id.String()),
		zap.Int64("reviews_removed", reviewResult.RowsAffected()),
	)
	return nil
}

func (r *movieRepository) Search(ctx context.Context, query string, limit int) ([]*entity.Movie, error) {
	sql := `
		SELECT id, title, description, release_date, genre, image_url,
		       created_at, updated_at
		FROM movies
		WHERE deleted_at IS NULL
		  AND (title ILIKE $1 OR description ILIKE $1)
		ORDER BY title ASC
		LIMIT $2
	`

	pattern := "%" + query + "%"

	rows, err := r.db.Query(ctx, sql, pattern, limit)
	if err != nil {
		r.log.Error("Failed to search movies",
			zap.Error(err),
			zap.String("query", query),
		)
		return nil, fmt.Errorf("failed to search movies: %w", err)
	}
	defer rows.Close()

	var movies []*entity.Movie
	for rows.Next() {
		var movie entity.Movie
		err := rows.Scan(
			&movie.ID,
			&movie.Title,
			&movie.Description,
			&movie.ReleaseDate,
			&movie.Genre,
			&movie.ImageURL,
			&movie.CreatedAt,
			&movie.UpdatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan movie row", zap.Error(err))
			return nil, fmt.Errorf("failed to scan movie: %w", err)
		}
		movies = append(movies, &movie)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("failed to iterate rows: %w", err)
	}

	r.log.Debug("Movies searched",
		zap.String("query", query),
		zap.Int("count", len(movies)),
	)

	return movies, nil
}
