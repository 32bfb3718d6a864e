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

// AddCommentInput — добавление комментария к обзору.
type AddCommentInput struct {
	ReviewID string
	Content  string
	Nickname string
}

// UpdateCommentInput — изменение комментария по его глобальному id.
// Родительский обзор не указывается: сторадж ищет его сам.
type UpdateCommentInput struct {
	CommentID string
	Content   string
	Nickname  string
}

// AddComment — добавить комментарий во встроенный массив обзора.
//
// Валидация:
//   - ReviewID, Content, Nickname нормализуются (TrimSpace) и не должны быть пустыми.
//
// Поведение/ошибки:
//   - ErrNotFound — обзор не существует (сироты не создаются);
//   - ErrInternal — иные ошибки стораджа.
func (s *Service) AddComment(ctx context.Context, in AddCommentInput) (*models.Comment, error) {
	const op = "service/comments/AddComment"

	in.ReviewID = strings.TrimSpace(in.ReviewID)
	lg := log.From(ctx).With("op", op, "review_id", in.ReviewID)

	if in.ReviewID == "" {
		lg.Warn("invalid argument: empty review_id")
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	in.Content = strings.TrimSpace(in.Content)
	if in.Content == "" {
		lg.Warn("invalid argument: empty content")
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	in.Nickname = strings.TrimSpace(in.Nickname)
	if in.Nickname == "" {
		lg.Warn("invalid argument: empty nickname")
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	result, err := s.storage.AddComment(ctx, in.ReviewID, models.Comment{
		Content:  in.Content,
		Nickname: in.Nickname,
	})
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrNotFound):
			lg.Warn("review not found")
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		default:
			lg.Error("storage error on AddComment", "err", err)
			return nil, fmt.Errorf("%s: %w", op, ErrInternal)
		}
	}

	return result, nil
}

// UpdateComment — переписать content/nickname единственного комментария
// с данным id; сам id не меняется.
//
// Валидация:
//   - CommentID, Content, Nickname нормализуются и не должны быть пустыми.
//
// Поведение/ошибки:
//   - ErrNotFound — ни один обзор не содержит комментарий с таким id;
//   - ErrInternal — иные ошибки стораджа.
func (s *Service) UpdateComment(ctx context.Context, in UpdateCommentInput) error {
	const op = "service/comments/UpdateComment"

	in.CommentID = strings.TrimSpace(in.CommentID)
	lg := log.From(ctx).With("op", op, "comment_id", in.CommentID)

	if in.CommentID == "" {
		lg.Warn("invalid argument: empty comment_id")
		return fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	in.Content = strings.TrimSpace(in.Content)
	if in.Content == "" {
		lg.Warn("invalid argument: empty content")
		return fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	in.Nickname = strings.TrimSpace(in.Nickname)
	if in.Nickname == "" {
		lg.Warn("invalid argument: empty nickname")
		return fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	if err := s.storage.UpdateComment(ctx, in.CommentID, in.Content, in.Nickname); err != nil {
		switch {
		case errors.Is(err, storage.ErrNotFound):
			lg.Warn("comment not found")
			return fmt.Errorf("%s: %w", op, ErrNotFound)
		default:
			lg.Error("storage error on UpdateComment", "err", err)
			return fmt.Errorf("%s: %w", op, ErrInternal)
		}
	}

	return nil
}

// DeleteComment — удалить комментарий по его глобальному id.
//
// Поведение/ошибки:
//   - ErrNotFound — ни один обзор не содержит комментарий с таким id;
//     состояние остальных обзоров не меняется;
//   - ErrInternal — иные ошибки стораджа.
func (s *Service) DeleteComment(ctx context.Context, commentID string) error {
	const op = "service/comments/DeleteComment"

	commentID = strings.TrimSpace(commentID)
	lg := log.From(ctx).With("op", op, "comment_id", commentID)

	if commentID == "" {
		lg.Warn("invalid argument: empty comment_id")
		return fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	if err := s.storage.DeleteComment(ctx, commentID); err != nil {
		switch {
		case errors.Is(err, storage.ErrNotFound):
			lg.Warn("comment not found")
			return fmt.Errorf("%s: %w", op, ErrNotFound)
		default:
			lg.Error("storage error on DeleteComment", "err", err)
			return fmt.Errorf("%s: %w", op, ErrInternal)
		}
	}

	return nil
}
