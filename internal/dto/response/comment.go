package response

import (
	"time"

	"watchhub/internal/data/entity"
)

type CommentResponse struct {
	ID              int64     `json:"id"`
	Content         string    `json:"content"`
	NumberOfLikes   int       `json:"number_of_likes"`
	ContainsSpoiler bool      `json:"contains_spoiler"`
	StarRating      int       `json:"star_rating"`
	CreatedOn       time.Time `json:"created_on"`
	CreatedBy       string    `json:"created_by"`
	FilmID          *int64    `json:"film_id"`
}

func CommentToResponse(c *entity.Comment) CommentResponse {
	createdBy := "Unknown"
	if c.CreatedBy != nil && *c.CreatedBy != "" {
		createdBy = *c.CreatedBy
	}

	return CommentResponse{
		ID:              c.ID,
		Content:         c.Content,
		NumberOfLikes:   c.NumberOfLikes,
		ContainsSpoiler: c.ContainsSpoiler,
		StarRating:      c.StarRating,
		CreatedOn:       c.CreatedAt,
		CreatedBy:       createdBy,
		FilmID:          c.FilmID,
	}
}

func CommentsToResponse(comments []*entity.Comment) []CommentResponse {
	out := make([]CommentResponse, 0, len(comments))
	for _, c := range comments {
		out = append(out, CommentToResponse(c))
	}
	return out
}
