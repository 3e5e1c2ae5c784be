package adaptor

import (
	"net/http"

	"watchhub/internal/usecase"
	"watchhub/pkg/utils"

	"go.uber.org/zap"
)

type LikeHandler struct {
	responder
	service usecase.LikeService
}

func NewLikeHandler(service usecase.LikeService, log *zap.Logger) *LikeHandler {
	return &LikeHandler{
		responder: responder{log: log.With(zap.String("handler", "comment_like"))},
		service:   service,
	}
}

// GetLikedComments handles GET /api/comment-likes (protected)
func (h *LikeHandler) GetLikedComments(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	comments, err := h.service.GetUserLikedComments(r.Context(), userID)
	if err != nil {
		h.handleServiceError(w, err, "get liked comments")
		return
	}

	utils.ResponseSuccess(w, "success", comments)
}

// LikeComment handles POST /api/comment-likes/{commentId} (protected)
func (h *LikeHandler) LikeComment(w http.ResponseWriter, r *http.Request) {
	h.toggle(w, r, true)
}

// UnlikeComment handles DELETE /api/comment-likes/{commentId} (protected)
func (h *LikeHandler) UnlikeComment(w http.ResponseWriter, r *http.Request) {
	h.toggle(w, r, false)
}

func (h *LikeHandler) toggle(w http.ResponseWriter, r *http.Request, like bool) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	commentID, ok := pathID(r, "commentId")
	if !ok {
		utils.ResponseBadRequest(w, "Invalid comment ID", nil)
		return
	}

	if like {
		comment, err := h.service.LikeComment(r.Context(), userID, commentID)
		if err != nil {
			h.handleServiceError(w, err, "like comment")
			return
		}
		utils.ResponseSuccess(w, "Comment liked", comment)
		return
	}

	comment, err := h.service.UnlikeComment(r.Context(), userID, commentID)
	if err != nil {
		h.handleServiceError(w, err, "unlike comment")
		return
	}
	utils.ResponseSuccess(w, "Comment unliked", comment)
}
