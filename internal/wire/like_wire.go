package wire

import (
	"net/http"

	"watchhub/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireLike(r chi.Router, likeHandler *adaptor.LikeHandler, auth func(http.Handler) http.Handler) {
	r.Route("/api/comment-likes", func(r chi.Router) {
		r.Use(auth)

		r.Get("/", likeHandler.GetLikedComments)
		r.Post("/{commentId}", likeHandler.LikeComment)
		r.Delete("/{commentId}", likeHandler.UnlikeComment)
	})
}
