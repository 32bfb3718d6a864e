package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/pribylovaa/go-food-reviews/internal/service"
	"github.com/pribylovaa/go-food-reviews/internal/transport/http/apierrors"
)

// CommentRequest — тело POST /reviews/{id}/comments и PUT /comments/{id}.
type CommentRequest struct {
	Content  string `json:"content"`
	Nickname string `json:"nickname"`
}

// UpdateCommentResponse — подтверждение изменения.
type UpdateCommentResponse struct {
	Updated bool `json:"updated"`
}

func (h *Handlers) AddComment(w http.ResponseWriter, r *http.Request) {
	reviewID := chi.URLParam(r, "id")
	if reviewID == "" {
		apierrors.WriteError(w, r, errInvalidArgument())
		return
	}

	var in CommentRequest
	if err := decodeStrict(r, &in); err != nil {
		apierrors.WriteError(w, r, errInvalidArgument())
		return
	}

	comment, err := h.Service.AddComment(r.Context(), service.AddCommentInput{
		ReviewID: reviewID,
		Content:  in.Content,
		Nickname: in.Nickname,
	})
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, commentFromModel(*comment))
}

func (h *Handlers) UpdateComment(w http.ResponseWriter, r *http.Request) {
	commentID := chi.URLParam(r, "id")
	if commentID == "" {
		apierrors.WriteError(w, r, errInvalidArgument())
		return
	}

	var in CommentRequest
	if err := decodeStrict(r, &in); err != nil {
		apierrors.WriteError(w, r, errInvalidArgument())
		return
	}

	err := h.Service.UpdateComment(r.Context(), service.UpdateCommentInput{
		CommentID: commentID,
		Content:   in.Content,
		Nickname:  in.Nickname,
	})
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, UpdateCommentResponse{Updated: true})
}

func (h *Handlers) DeleteComment(w http.ResponseWriter, r *http.Request) {
	commentID := chi.URLParam(r, "id")
	if commentID == "" {
		apierrors.WriteError(w, r, errInvalidArgument())
		return
	}

	if err := h.Service.DeleteComment(r.Context(), commentID); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, DeleteResponse{Deleted: true})
}
