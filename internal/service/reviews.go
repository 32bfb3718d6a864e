package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/pribylovaa/go-food-reviews/internal/models"
	"github.com/pribylovaa/go-food-reviews/internal/storage"
	"github.com/pribylovaa/go-food-reviews/pkg/log"
)

// Границы допустимой оценки при создании обзора.
const (
	minRating = 1
	maxRating = 10
)

// Входные структуры сервисного слоя.

// CreateReviewInput — создание обзора.
// Все текстовые поля обязательны (после TrimSpace), rating в [1..10].
type CreateReviewInput struct {
	Title   string
	Food    string
	Content string
	Rating  int32
}

// UpdateReviewInput — частичное обновление ("sparse PUT").
// Пустые строки и нулевой rating означают «оставить прежнее значение»;
// полный replace потерял бы поля, которые клиент не собирался трогать.
type UpdateReviewInput struct {
	Title   string
	Food    string
	Content string
	Rating  int32
}

// ListReviewsInput — критерии фильтрации списка.
type ListReviewsInput struct {
	Title     string
	MinRating *int32
}

// CreateReview — бизнес-операция создания обзора.
//
// Валидация:
//   - Title/Food/Content нормализуются (TrimSpace) и не должны быть пустыми;
//   - Rating в диапазоне [1..10].
//
// Поведение/ошибки:
//   - ErrInvalidArgument — неверные входные данные;
//   - ErrInternal — ошибки стораджа/БД.
func (s *Service) CreateReview(ctx context.Context, in CreateReviewInput) (*models.Review, error) {
	const op = "service/reviews/CreateReview"

	lg := log.From(ctx).With("op", op)

	in.Title = strings.TrimSpace(in.Title)
	if in.Title == "" {
		lg.Warn("invalid argument: empty title")
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	in.Food = strings.TrimSpace(in.Food)
	if in.Food == "" {
		lg.Warn("invalid argument: empty food")
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	in.Content = strings.TrimSpace(in.Content)
	if in.Content == "" {
		lg.Warn("invalid argument: empty content")
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	if in.Rating < minRating || in.Rating > maxRating {
		lg.Warn("invalid argument: rating out of range", "rating", in.Rating)
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	result, err := s.storage.SaveReview(ctx, models.Review{
		Title:   in.Title,
		Food:    in.Food,
		Content: in.Content,
		Rating:  in.Rating,
	})
	if err != nil {
		lg.Error("storage error on SaveReview", "err", err)
		return nil, fmt.Errorf("%s: %w", op, ErrInternal)
	}

	return result, nil
}

// ListReviews — список обзоров по независимым AND-критериям.
// Поле comments в выдачу не попадает (исключается проекцией стораджа).
//
// Валидация:
//   - MinRating, если задан, не должен быть отрицательным.
//
// Поведение/ошибки:
//   - ErrInvalidQueryParameter — некорректное значение фильтра;
//   - ErrInternal — ошибки стораджа.
func (s *Service) ListReviews(ctx context.Context, in ListReviewsInput) ([]models.Review, error) {
	const op = "service/reviews/ListReviews"

	lg := log.From(ctx).With("op", op)

	if in.MinRating != nil && *in.MinRating < 0 {
		lg.Warn("invalid query parameter: negative min_rating", "min_rating", *in.MinRating)
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidQueryParameter)
	}

	items, err := s.storage.ListReviews(ctx, models.ReviewFilter{
		Title:     strings.TrimSpace(in.Title),
		MinRating: in.MinRating,
	})
	if err != nil {
		lg.Error("storage error on ListReviews", "err", err)
		return nil, fmt.Errorf("%s: %w", op, ErrInternal)
	}

	return items, nil
}

// ReviewByID — получить обзор вместе с комментариями.
//
// Валидация:
//   - id не должен быть пустым.
//
// Поведение/ошибки:
//   - ErrNotFound — если обзор не найден (включая неверный формат идентификатора);
//   - ErrInternal — иные ошибки стораджа.
func (s *Service) ReviewByID(ctx context.Context, id string) (*models.Review, error) {
	const op = "service/reviews/ReviewByID"

	id = strings.TrimSpace(id)
	lg := log.From(ctx).With("op", op, "id", id)

	if id == "" {
		lg.Warn("invalid argument: empty id")
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	result, err := s.storage.ReviewByID(ctx, id)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrNotFound):
			lg.Warn("review not found")
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		default:
			lg.Error("storage error on ReviewByID", "err", err)
			return nil, fmt.Errorf("%s: %w", op, ErrInternal)
		}
	}

	return result, nil
}

// UpdateReview — частичное обновление обзора.
//
// Валидация:
//   - id не должен быть пустым;
//   - Rating, если передан (не 0), в диапазоне [1..10].
//
// Поведение/ошибки:
//   - ErrNotFound — если обзор не найден;
//   - ErrInternal — иные ошибки стораджа.
func (s *Service) UpdateReview(ctx context.Context, id string, in UpdateReviewInput) (*models.Review, error) {
	const op = "service/reviews/UpdateReview"

	id = strings.TrimSpace(id)
	lg := log.From(ctx).With("op", op, "id", id)

	if id == "" {
		lg.Warn("invalid argument: empty id")
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	if in.Rating != 0 && (in.Rating < minRating || in.Rating > maxRating) {
		lg.Warn("invalid argument: rating out of range", "rating", in.Rating)
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	result, err := s.storage.UpdateReview(ctx, id, models.ReviewPatch{
		Title:   strings.TrimSpace(in.Title),
		Food:    strings.TrimSpace(in.Food),
		Content: strings.TrimSpace(in.Content),
		Rating:  in.Rating,
	})
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrNotFound):
			lg.Warn("review not found")
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		default:
			lg.Error("storage error on UpdateReview", "err", err)
			return nil, fmt.Errorf("%s: %w", op, ErrInternal)
		}
	}

	return result, nil
}

// DeleteReview — удаление обзора по ID (вместе с его комментариями).
//
// Поведение/ошибки:
//   - ErrNotFound — если обзор не найден;
//   - ErrInternal — иные ошибки стораджа.
func (s *Service) DeleteReview(ctx context.Context, id string) error {
	const op = "service/reviews/DeleteReview"

	id = strings.TrimSpace(id)
	lg := log.From(ctx).With("op", op, "id", id)

	if id == "" {
		lg.Warn("invalid argument: empty id")
		return fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	if err := s.storage.DeleteReview(ctx, id); err != nil {
		switch {
		case errors.Is(err, storage.ErrNotFound):
			lg.Warn("review not found")
			return fmt.Errorf("%s: %w", op, ErrNotFound)
		default:
			lg.Error("storage error on DeleteReview", "err", err)
			return fmt.Errorf("%s: %w", op, ErrInternal)
		}
	}

	return nil
}
