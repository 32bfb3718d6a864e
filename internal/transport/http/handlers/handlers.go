// handlers реализует REST-поверхность reviews-service поверх сервисного слоя.
package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/pribylovaa/go-food-reviews/internal/models"
	"github.com/pribylovaa/go-food-reviews/internal/service"
)

// Handlers агрегирует зависимости (сервисный слой).
type Handlers struct {
	Service *service.Service
}

func New(s *service.Service) *Handlers {
	return &Handlers{Service: s}
}

// writeJSON — единый ответ JSON с нужным Content-Type.
// Ошибки выводим через apierrors.WriteError.
func writeJSON(w http.ResponseWriter, status int, value any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(value)
}

// decodeStrict — строгий JSON-декодер: запрещаем неизвестные поля.
func decodeStrict(r *http.Request, value any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(value)
}

// errInvalidArgument — вспомогалка: локальная ошибка парсинга -> сервисный сентинел.
func errInvalidArgument() error {
	return fmt.Errorf("handlers: %w", service.ErrInvalidArgument)
}

// DTO под REST, зеркалят доменные модели.

// Comment — элемент встроенного массива comments обзора.
type Comment struct {
	ID       string `json:"id"`
	Content  string `json:"content"`
	Nickname string `json:"nickname"`
}

// Review — обзор; comments отдаётся только в детальной выдаче.
type Review struct {
	ID        string    `json:"id"` // Mongo ObjectID
	Title     string    `json:"title"`
	Food      string    `json:"food"`
	Content   string    `json:"content"`
	Rating    int32     `json:"rating"`
	Comments  []Comment `json:"comments,omitempty"`
	CreatedAt int64     `json:"created_at"` // Unix UTC
	UpdatedAt int64     `json:"updated_at"` // Unix UTC
}

func commentFromModel(m models.Comment) Comment {
	return Comment{
		ID:       m.ID,
		Content:  m.Content,
		Nickname: m.Nickname,
	}
}

func reviewFromModel(m models.Review) Review {
	out := Review{
		ID:        m.ID,
		Title:     m.Title,
		Food:      m.Food,
		Content:   m.Content,
		Rating:    m.Rating,
		CreatedAt: m.CreatedAt.Unix(),
		UpdatedAt: m.UpdatedAt.Unix(),
	}

	for _, c := range m.Comments {
		out.Comments = append(out.Comments, commentFromModel(c))
	}

	return out
}
