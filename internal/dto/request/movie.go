package request

type MovieRequest struct {
	Title       string  `json:"title" validate:"required,min=1,max=200"`
	Description string  `json:"description" validate:"required"`
	ReleaseDate string  `json:"release_date" validate:"required,datetime=2006-01-02"`
	Genre       string  `json:"genre" validate:"required,max=100"`
	ImageURL    *string `json:"image_url,omitempty" validate:"omitempty,url"`
}

type MovieUpdateRequest struct {
	Title       *string `json:"title,omitempty" validate:"omitempty,min=1,max=200"`
	Description *string `json:"description,omitempty" validate:"omitempty,min=1"`
	ReleaseDate *string `json:"release_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Genre       *string `json:"genre,omitempty" validate:"omitempty,min=1,max=100"`
	ImageURL    *string `json:"image_url,omitempty" validate:"omitempty,url"`
}
