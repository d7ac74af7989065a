package response

import (
	"time"

	"moviehub/internal/data/entity"
)

type MovieResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	ReleaseDate string    `json:"release_date"`
	Genre       string    `json:"genre"`
	ImageURL    *string   `json:"image_url,omitempty"`
	CreatedAt   time.Time `json:"created_at,omitempty"`
}

type MovieDetailResponse struct {
	MovieResponse
	AverageRating float64    `json:"average_rating"`
	ReviewCount   int64      `json:"review_count"`
	UpdatedAt     *time.Time `json:"updated_at,omitempty"`
}

// Helper converters
func MovieToResponse(movie *entity.Movie) MovieResponse {
	return MovieResponse{
		ID:          movie.ID.String(),
		Title:       movie.Title,
		Description: movie.Description,
		ReleaseDate: movie.ReleaseDate.Format("2006-01-02"),
		Genre:       movie.Genre,
		ImageURL:    movie.ImageURL,
		CreatedAt:   movie.CreatedAt,
	}
}

func MovieToDetailResponse(movie *entity.Movie, avgRating float64, reviewCount int64) MovieDetailResponse {
	return MovieDetailResponse{
		MovieResponse: MovieToResponse(movie),
		AverageRating: avgRating,
		ReviewCount:   reviewCount,
		UpdatedAt:     &movie.UpdatedAt,
	}
}
