package entity

import (
	"time"
)

type Movie struct {
	Base
	Title       string    `db:"title"`
	Description string    `db:"description"`
	ReleaseDate time.Time `db:"release_date"`
	Genre       string    `db:"genre"`
	ImageURL    *string   `db:"image_url"`
}
