package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pribylovaa/go-food-reviews/internal/models"
	"github.com/pribylovaa/go-food-reviews/internal/storage"
	"github.com/pribylovaa/go-food-reviews/pkg/log"
	"golang.org/x/crypto/bcrypt"
)

// RegisterUser регистрирует нового пользователя.
// Пароль хранится только bcrypt-хэшем (соль на каждый пароль).
func (s *Service) RegisterUser(ctx context.Context, email, password string) (*models.User, error) {
	const op = "service/auth/RegisterUser"

	lg := log.From(ctx).With("op", op)

	normEmail, err := validateEmail(email)
	if err != nil {
		lg.Warn("invalid email")
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidEmail)
	}

	if err := validatePassword(password); err != nil {
		lg.Warn("password rejected by policy")
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	_, err = s.storage.UserByEmail(ctx, normEmail)
	if err == nil {
		lg.Warn("email already taken")
		return nil, fmt.Errorf("%s: %w", op, ErrEmailTaken)
	}
	if !errors.Is(err, storage.ErrNotFound) {
		lg.Error("storage error on UserByEmail", "err", err)
		return nil, fmt.Errorf("%s: %w", op, ErrInternal)
	}

	hashedPassword, err := hashPassword(password)
	if err != nil {
		lg.Error("password hash failed", "err", err)
		return nil, fmt.Errorf("%s: %w", op, ErrInternal)
	}

	now := time.Now().UTC()
	user := &models.User{
		ID:           uuid.New(),
		Email:        normEmail,
		PasswordHash: hashedPassword,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.storage.SaveUser(ctx, user); err != nil {
		if errors.Is(err, storage.ErrAlreadyExists) {
			// Гонка с конкурентной регистрацией: уникальный индекс решает.
			lg.Warn("email already taken")
			return nil, fmt.Errorf("%s: %w", op, ErrEmailTaken)
		}

		lg.Error("storage error on SaveUser", "err", err)
		return nil, fmt.Errorf("%s: %w", op, ErrInternal)
	}

	return user, nil
}

// LoginUser выполняет вход по email+пароль и выпускает access-токен.
// Несуществующий пользователь и неверный пароль неразличимы для клиента.
func (s *Service) LoginUser(ctx context.Context, email, password string) (*models.User, *models.AccessToken, error) {
	const op = "service/auth/LoginUser"

	lg := log.From(ctx).With("op", op)

	normEmail, err := validateEmail(email)
	if err != nil {
		lg.Warn("invalid credentials: bad email format")
		return nil, nil, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}

	if len(password) == 0 {
		lg.Warn("invalid credentials: empty password")
		return nil, nil, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}

	user, err := s.storage.UserByEmail(ctx, normEmail)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			lg.Warn("invalid credentials: user not found")
			return nil, nil, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
		}

		lg.Error("storage error on UserByEmail", "err", err)
		return nil, nil, fmt.Errorf("%s: %w", op, ErrInternal)
	}

	if !checkPassword(user.PasswordHash, password) {
		lg.Warn("invalid credentials: password mismatch")
		return nil, nil, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}

	now := time.Now().UTC()

	signed, err := s.issueAccessToken(ctx, user.ID, user.Email, now)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", op, ErrInternal)
	}

	return user, &models.AccessToken{
		Token:     signed,
		ExpiresAt: now.Add(s.cfg.AccessTokenTTL),
	}, nil
}

// Profile возвращает профиль, производный от проверенных claims токена.
// Путь и субъект токена обязаны совпадать: валидный токен чужого
// пользователя — ErrPermissionDenied.
func (s *Service) Profile(ctx context.Context, claims models.Claims, requestedID string) (*models.Claims, error) {
	const op = "service/auth/Profile"

	lg := log.From(ctx).With("op", op, "user_id", claims.UserID.String())

	requested, err := uuid.Parse(strings.TrimSpace(requestedID))
	if err != nil {
		lg.Warn("invalid argument: bad user id")
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	if requested != claims.UserID {
		lg.Warn("permission denied: foreign profile requested", "requested_id", requested.String())
		return nil, fmt.Errorf("%s: %w", op, ErrPermissionDenied)
	}

	return &claims, nil
}

// hashPassword хэширует пароль с помощью bcrypt.
func hashPassword(password string) (string, error) {
	const op = "service/auth/hashPassword"

	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	return string(bytes), nil
}

// checkPassword сравнивает пароль с хэшем.
func checkPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// validateEmail проверяет базовый формат email и обрезает пробелы снаружи.
func validateEmail(raw string) (string, error) {
	const op = "service/auth/validateEmail"

	email := strings.TrimSpace(raw)
	if email == "" {
		return "", fmt.Errorf("%s: %w", op, ErrInvalidEmail)
	}

	if _, err := mail.ParseAddress(email); err != nil {
		return "", fmt.Errorf("%s: %w", op, ErrInvalidEmail)
	}

	return strings.ToLower(email), nil
}

// validatePassword проверяет минимальные требования к паролю: длина >= 8 рун.
func validatePassword(pw string) error {
	const op = "service/auth/validatePassword"

	if len(pw) == 0 {
		return fmt.Errorf("%s: %w", op, ErrEmptyPassword)
	}

	if len([]rune(pw)) < 8 {
		return fmt.Errorf("%s: %w", op, ErrWeakPassword)
	}

	return nil
}
