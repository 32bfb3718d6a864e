package storage

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/pribylovaa/go-food-reviews/internal/models"
)

var (
	// ErrNotFound — сущность отсутствует в хранилище.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists — нарушение уникальности (email).
	ErrAlreadyExists = errors.New("already exists")
)

// ReviewStorage выполняет операции над обзорами.
type ReviewStorage interface {
	// SaveReview создаёт новый обзор с серверным идентификатором.
	SaveReview(ctx context.Context, review models.Review) (*models.Review, error)

	// ListReviews возвращает обзоры по фильтру БЕЗ поля comments
	// (массив неограничен, списочная выдача обязана его исключать).
	// Порядок детерминированный: _id по возрастанию.
	ListReviews(ctx context.Context, filter models.ReviewFilter) ([]models.Review, error)

	// ReviewByID возвращает обзор вместе с комментариями.
	// Если запись не найдена (включая некорректный формат id) — ErrNotFound.
	ReviewByID(ctx context.Context, id string) (*models.Review, error)

	// UpdateReview применяет частичное обновление одной атомарной операцией
	// и возвращает документ после изменения. Если запись не найдена — ErrNotFound.
	UpdateReview(ctx context.Context, id string, patch models.ReviewPatch) (*models.Review, error)

	// DeleteReview удаляет обзор по id. Если запись не найдена — ErrNotFound.
	DeleteReview(ctx context.Context, id string) error
}

// CommentStorage выполняет операции над встроенными комментариями.
// Поиск по id комментария — это запрос по вложенному полю через всю
// коллекцию обзоров (сознательная денормализация: отдельного индекса
// comment -> review нет, только вторичный индекс по comments.id).
type CommentStorage interface {
	// AddComment атомарно дописывает комментарий в массив родительского
	// обзора ($push). Если обзор не найден — ErrNotFound, сирот не создаём.
	AddComment(ctx context.Context, reviewID string, comment models.Comment) (*models.Comment, error)

	// UpdateComment атомарно переписывает content/nickname единственного
	// совпавшего элемента массива (позиционный оператор), id не меняется.
	// Если ни один обзор не содержит комментарий — ErrNotFound.
	UpdateComment(ctx context.Context, commentID, content, nickname string) error

	// DeleteComment атомарно выталкивает элемент из массива ($pull).
	// Если ни один обзор не содержит комментарий — ErrNotFound.
	DeleteComment(ctx context.Context, commentID string) error
}

// UserStorage выполняет операции над пользователями.
type UserStorage interface {
	// SaveUser создаёт нового пользователя. При занятом email — ErrAlreadyExists.
	SaveUser(ctx context.Context, user *models.User) error
	// UserByEmail находит пользователя по email.
	UserByEmail(ctx context.Context, email string) (*models.User, error)
	// UserByID находит пользователя по ID.
	UserByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

// Storage задаёт контракт работы с БД.
type Storage interface {
	ReviewStorage
	CommentStorage
	UserStorage
	Close(ctx context.Context) error
}
