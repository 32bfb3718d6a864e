package service

// Тесты сервисного слоя обзоров (internal/service/reviews.go).
//
//  Проверяем:
//  - валидацию входов (Create/List/Get/Update/Delete);
//  - маппинг ошибок storage -> service (NotFound / Internal);
//  - нормализацию входных данных (TrimSpace) и аргументы вызова storage;
//  - happy-path каждого метода.
//
// Подготовка окружения:
//   # 1) Сгенерировать моки интерфейса хранилища:
//   mockgen -source=./internal/storage/storage.go -destination=./mocks/storage.go -package=mocks
//
//   # 2) Запустить тесты:
//   go test ./internal/service -v -race -count=1

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/pribylovaa/go-food-reviews/internal/models"
	"github.com/pribylovaa/go-food-reviews/internal/storage"
	"github.com/pribylovaa/go-food-reviews/mocks"
	"github.com/stretchr/testify/require"
)

// newServiceWithMocks — поднимает сервис с моками стораджа.
func newServiceWithMocks(t *testing.T) (*Service, *mocks.MockStorage, *gomock.Controller) {
	t.Helper()
	ctrl := gomock.NewController(t)
	ms := mocks.NewMockStorage(ctrl)
	s := &Service{storage: ms}
	return s, ms, ctrl
}

// mustReview — быстрый хелпер для сборки обзора.
func mustReview(id, title, food, content string, rating int32) *models.Review {
	now := time.Now().UTC()
	return &models.Review{
		ID:        id,
		Title:     title,
		Food:      food,
		Content:   content,
		Rating:    rating,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Валидация: пустые title/food/content (после TrimSpace) и rating вне [1..10].
func TestService_CreateReview_Validation(t *testing.T) {
	s, _, ctrl := newServiceWithMocks(t)
	defer ctrl.Finish()

	// title -> TrimSpace -> пусто
	_, err := s.CreateReview(context.Background(), CreateReviewInput{
		Title: "   ", Food: "ramen", Content: "ok", Rating: 5,
	})
	require.ErrorIs(t, err, ErrInvalidArgument)

	// food -> TrimSpace -> пусто
	_, err = s.CreateReview(context.Background(), CreateReviewInput{
		Title: "t", Food: "", Content: "ok", Rating: 5,
	})
	require.ErrorIs(t, err, ErrInvalidArgument)

	// content -> TrimSpace -> пусто
	_, err = s.CreateReview(context.Background(), CreateReviewInput{
		Title: "t", Food: "ramen", Content: "   ", Rating: 5,
	})
	require.ErrorIs(t, err, ErrInvalidArgument)

	// rating ниже нижней границы
	_, err = s.CreateReview(context.Background(), CreateReviewInput{
		Title: "t", Food: "ramen", Content: "ok", Rating: 0,
	})
	require.ErrorIs(t, err, ErrInvalidArgument)

	// rating выше верхней границы
	_, err = s.CreateReview(context.Background(), CreateReviewInput{
		Title: "t", Food: "ramen", Content: "ok", Rating: 11,
	})
	require.ErrorIs(t, err, ErrInvalidArgument)
}

// Маппинг: любая ошибка стораджа при создании -> ErrInternal.
func TestService_CreateReview_StorageError(t *testing.T) {
	s, ms, ctrl := newServiceWithMocks(t)
	defer ctrl.Finish()

	ms.EXPECT().
		SaveReview(gomock.Any(), gomock.Any()).
		Return(nil, errors.New("db down"))

	_, err := s.CreateReview(context.Background(), CreateReviewInput{
		Title: "t", Food: "ramen", Content: "ok", Rating: 5,
	})
	require.ErrorIs(t, err, ErrInternal)
}

// Happy-path: поля нормализуются (TrimSpace) перед записью в сторадж.
func TestService_CreateReview_OK(t *testing.T) {
	s, ms, ctrl := newServiceWithMocks(t)
	defer ctrl.Finish()

	want := mustReview("68b1a6", "Tonkotsu", "ramen", "rich broth", 9)

	ms.EXPECT().
		SaveReview(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, review models.Review) (*models.Review, error) {
			require.Equal(t, "Tonkotsu", review.Title)
			require.Equal(t, "ramen", review.Food)
			require.Equal(t, "rich broth", review.Content)
			require.Equal(t, int32(9), review.Rating)
			return want, nil
		})

	got, err := s.CreateReview(context.Background(), CreateReviewInput{
		Title: "  Tonkotsu  ", Food: " ramen ", Content: " rich broth ", Rating: 9,
	})
	require.NoError(t, err)
	require.Equal(t, want, got)
}

// Валидация: отрицательный min_rating — ErrInvalidQueryParameter, не игнорируем молча.
func TestService_ListReviews_NegativeMinRating(t *testing.T) {
	s, _, ctrl := newServiceWithMocks(t)
	defer ctrl.Finish()

	neg := int32(-1)
	_, err := s.ListReviews(context.Background(), ListReviewsInput{MinRating: &neg})
	require.ErrorIs(t, err, ErrInvalidQueryParameter)
}

// Happy-path: фильтры передаются в сторадж как есть (title после TrimSpace).
func TestService_ListReviews_OK(t *testing.T) {
	s, ms, ctrl := newServiceWithMocks(t)
	defer ctrl.Finish()

	min := int32(7)
	want := []models.Review{*mustReview("a", "A", "pho", "x", 8)}

	ms.EXPECT().
		ListReviews(gomock.Any(), models.ReviewFilter{Title: "pho", MinRating: &min}).
		Return(want, nil)

	got, err := s.ListReviews(context.Background(), ListReviewsInput{Title: " pho ", MinRating: &min})
	require.NoError(t, err)
	require.Equal(t, want, got)
}

// Маппинг: ошибка стораджа при листинге -> ErrInternal.
func TestService_ListReviews_StorageError(t *testing.T) {
	s, ms, ctrl := newServiceWithMocks(t)
	defer ctrl.Finish()

	ms.EXPECT().
		ListReviews(gomock.Any(), gomock.Any()).
		Return(nil, errors.New("db down"))

	_, err := s.ListReviews(context.Background(), ListReviewsInput{})
	require.ErrorIs(t, err, ErrInternal)
}

// Валидация + маппинг NotFound/Internal для получения по ID.
func TestService_ReviewByID(t *testing.T) {
	s, ms, ctrl := newServiceWithMocks(t)
	defer ctrl.Finish()

	// пустой id
	_, err := s.ReviewByID(context.Background(), "   ")
	require.ErrorIs(t, err, ErrInvalidArgument)

	// NotFound
	ms.EXPECT().
		ReviewByID(gomock.Any(), "missing").
		Return(nil, storage.ErrNotFound)
	_, err = s.ReviewByID(context.Background(), "missing")
	require.ErrorIs(t, err, ErrNotFound)

	// Internal
	ms.EXPECT().
		ReviewByID(gomock.Any(), "boom").
		Return(nil, errors.New("db down"))
	_, err = s.ReviewByID(context.Background(), "boom")
	require.ErrorIs(t, err, ErrInternal)

	// OK
	want := mustReview("68b1a6", "T", "ramen", "x", 9)
	ms.EXPECT().
		ReviewByID(gomock.Any(), "68b1a6").
		Return(want, nil)
	got, err := s.ReviewByID(context.Background(), "68b1a6")
	require.NoError(t, err)
	require.Equal(t, want, got)
}

// Частичное обновление: нулевой rating валиден (означает «не трогать»),
// ненулевой обязан попадать в [1..10].
func TestService_UpdateReview_Validation(t *testing.T) {
	s, _, ctrl := newServiceWithMocks(t)
	defer ctrl.Finish()

	// пустой id
	_, err := s.UpdateReview(context.Background(), "", UpdateReviewInput{Title: "x"})
	require.ErrorIs(t, err, ErrInvalidArgument)

	// rating вне диапазона
	_, err = s.UpdateReview(context.Background(), "68b1a6", UpdateReviewInput{Rating: 42})
	require.ErrorIs(t, err, ErrInvalidArgument)
}

// Happy-path: patch содержит только переданные значения, rating=0 проходит насквозь.
func TestService_UpdateReview_OK(t *testing.T) {
	s, ms, ctrl := newServiceWithMocks(t)
	defer ctrl.Finish()

	want := mustReview("68b1a6", "T", "sushi", "x", 9)

	ms.EXPECT().
		UpdateReview(gomock.Any(), "68b1a6", models.ReviewPatch{Food: "sushi"}).
		Return(want, nil)

	got, err := s.UpdateReview(context.Background(), "68b1a6", UpdateReviewInput{Food: " sushi "})
	require.NoError(t, err)
	require.Equal(t, want, got)
}

// Маппинг NotFound/Internal для обновления.
func TestService_UpdateReview_StorageErrors(t *testing.T) {
	s, ms, ctrl := newServiceWithMocks(t)
	defer ctrl.Finish()

	ms.EXPECT().
		UpdateReview(gomock.Any(), "missing", gomock.Any()).
		Return(nil, storage.ErrNotFound)
	_, err := s.UpdateReview(context.Background(), "missing", UpdateReviewInput{Title: "x"})
	require.ErrorIs(t, err, ErrNotFound)

	ms.EXPECT().
		UpdateReview(gomock.Any(), "boom", gomock.Any()).
		Return(nil, errors.New("db down"))
	_, err = s.UpdateReview(context.Background(), "boom", UpdateReviewInput{Title: "x"})
	require.ErrorIs(t, err, ErrInternal)
}

// Удаление: валидация id, маппинг NotFound/Internal, happy-path.
func TestService_DeleteReview(t *testing.T) {
	s, ms, ctrl := newServiceWithMocks(t)
	defer ctrl.Finish()

	// пустой id
	err := s.DeleteReview(context.Background(), "   ")
	require.ErrorIs(t, err, ErrInvalidArgument)

	// NotFound
	ms.EXPECT().
		DeleteReview(gomock.Any(), "missing").
		Return(storage.ErrNotFound)
	err = s.DeleteReview(context.Background(), "missing")
	require.ErrorIs(t, err, ErrNotFound)

	// Internal
	ms.EXPECT().
		DeleteReview(gomock.Any(), "boom").
		Return(errors.New("db down"))
	err = s.DeleteReview(context.Background(), "boom")
	require.ErrorIs(t, err, ErrInternal)

	// OK
	ms.EXPECT().
		DeleteReview(gomock.Any(), "68b1a6").
		Return(nil)
	require.NoError(t, s.DeleteReview(context.Background(), "68b1a6"))
}
