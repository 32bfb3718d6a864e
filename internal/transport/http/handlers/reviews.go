package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/pribylovaa/go-food-reviews/internal/service"
	"github.com/pribylovaa/go-food-reviews/internal/transport/http/apierrors"
)

// CreateReviewRequest — тело POST /reviews.
type CreateReviewRequest struct {
	Title   string `json:"title"`
	Food    string `json:"food"`
	Content string `json:"content"`
	Rating  int32  `json:"rating"`
}

// UpdateReviewRequest — тело PUT /reviews/{id}; все поля опциональны,
// пропущенные сохраняют прежние значения ("sparse PUT").
type UpdateReviewRequest struct {
	Title   string `json:"title,omitempty"`
	Food    string `json:"food,omitempty"`
	Content string `json:"content,omitempty"`
	Rating  int32  `json:"rating,omitempty"`
}

// ListReviewsResponse — GET /reviews: элементы без comments.
type ListReviewsResponse struct {
	Reviews []Review `json:"reviews"`
}

// DeleteResponse — подтверждение удаления.
type DeleteResponse struct {
	Deleted bool `json:"deleted"`
}

func (h *Handlers) CreateReview(w http.ResponseWriter, r *http.Request) {
	var in CreateReviewRequest
	if err := decodeStrict(r, &in); err != nil {
		apierrors.WriteError(w, r, errInvalidArgument())
		return
	}

	review, err := h.Service.CreateReview(r.Context(), service.CreateReviewInput{
		Title:   in.Title,
		Food:    in.Food,
		Content: in.Content,
		Rating:  in.Rating,
	})
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, reviewFromModel(*review))
}

func (h *Handlers) ListReviews(w http.ResponseWriter, r *http.Request) {
	var in service.ListReviewsInput
	in.Title = r.URL.Query().Get("title")

	// Нечисловой min_rating — ошибка запроса, а не молчаливый пропуск фильтра.
	if v := r.URL.Query().Get("min_rating"); v != "" {
		n, err := strconv.ParseInt(v, 10, 32)
		if err != nil {
			apierrors.WriteError(w, r, fmt.Errorf("handlers: %w", service.ErrInvalidQueryParameter))
			return
		}

		mr := int32(n)
		in.MinRating = &mr
	}

	items, err := h.Service.ListReviews(r.Context(), in)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	out := ListReviewsResponse{Reviews: []Review{}}
	for _, item := range items {
		out.Reviews = append(out.Reviews, reviewFromModel(item))
	}

	writeJSON(w, http.StatusOK, out)
}

func (h *Handlers) GetReviewByID(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		apierrors.WriteError(w, r, errInvalidArgument())
		return
	}

	review, err := h.Service.ReviewByID(r.Context(), id)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, reviewFromModel(*review))
}

func (h *Handlers) UpdateReview(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		apierrors.WriteError(w, r, errInvalidArgument())
		return
	}

	var in UpdateReviewRequest
	if err := decodeStrict(r, &in); err != nil {
		apierrors.WriteError(w, r, errInvalidArgument())
		return
	}

	review, err := h.Service.UpdateReview(r.Context(), id, service.UpdateReviewInput{
		Title:   in.Title,
		Food:    in.Food,
		Content: in.Content,
		Rating:  in.Rating,
	})
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, reviewFromModel(*review))
}

func (h *Handlers) DeleteReview(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		apierrors.WriteError(w, r, errInvalidArgument())
		return
	}

	if err := h.Service.DeleteReview(r.Context(), id); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, DeleteResponse{Deleted: true})
}
