package entity

import (
	"github.com/google/uuid"
)

type Comment struct {
	BaseSimple
	StarRating      int        `db:"star_rating"` // 1-5
	Content         string     `db:"content"`
	ContainsSpoiler bool       `db:"contains_spoiler"`
	NumberOfLikes   int        `db:"number_of_likes"`
	FilmID          *int64     `db:"film_id"`
	UserID          *uuid.UUID `db:"user_id"`

	// Author username, joined from users.
	CreatedBy *string `db:"-"`
}
