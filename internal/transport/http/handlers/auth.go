package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/pribylovaa/go-food-reviews/internal/transport/http/apierrors"
	"github.com/pribylovaa/go-food-reviews/internal/transport/http/middleware"
)

// RegisterRequest — тело POST /users.
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterResponse — созданный пользователь; хэш пароля наружу не отдаётся.
type RegisterResponse struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
}

// LoginRequest — тело POST /login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse — выпущенный access-токен.
type LoginResponse struct {
	UserID      string `json:"user_id"`
	AccessToken string `json:"access_token"`
	ExpiresAt   int64  `json:"expires_at"` // Unix UTC
}

// ProfileResponse — профиль, производный от claims токена.
type ProfileResponse struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
}

func (h *Handlers) RegisterUser(w http.ResponseWriter, r *http.Request) {
	var in RegisterRequest
	if err := decodeStrict(r, &in); err != nil {
		apierrors.WriteError(w, r, errInvalidArgument())
		return
	}

	user, err := h.Service.RegisterUser(r.Context(), in.Email, in.Password)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, RegisterResponse{
		UserID: user.ID.String(),
		Email:  user.Email,
	})
}

func (h *Handlers) LoginUser(w http.ResponseWriter, r *http.Request) {
	var in LoginRequest
	if err := decodeStrict(r, &in); err != nil {
		apierrors.WriteError(w, r, errInvalidArgument())
		return
	}

	user, token, err := h.Service.LoginUser(r.Context(), in.Email, in.Password)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, LoginResponse{
		UserID:      user.ID.String(),
		AccessToken: token.Token,
		ExpiresAt:   token.ExpiresAt.Unix(),
	})
}

// GetProfile — защищённый маршрут: claims кладёт RequireAuth.
func (h *Handlers) GetProfile(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFrom(r.Context())
	if !ok {
		// Маршрут зарегистрирован без RequireAuth — программная ошибка.
		apierrors.WriteError(w, r, errInvalidArgument())
		return
	}

	id := chi.URLParam(r, "id")

	profile, err := h.Service.Profile(r.Context(), *claims, id)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, ProfileResponse{
		UserID: profile.UserID.String(),
		Email:  profile.Email,
	})
}
