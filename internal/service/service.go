// service содержит бизнес-логику reviews-сервиса:
// CRUD обзоров с фильтрами, мутации встроенных комментариев,
// регистрацию/аутентификацию пользователей и выпуск/проверку токенов.
//
// Основные аспекты:
//   - Пакет не хранит состояние запроса внутри Service; экземпляр Service
//     безопасен для конкурентного использования из разных горутин при условии,
//     что переданное хранилище (storage.Storage) потокобезопасно.
//   - Ошибки возвращаются сентинелами и далее маппятся HTTP-слоем
//     на статусы (см. комментарии к переменным ошибок ниже).
package service

import (
	"errors"

	"github.com/pribylovaa/go-food-reviews/internal/config"
	"github.com/pribylovaa/go-food-reviews/internal/storage"
)

var (
	// ErrNotFound — обзор/комментарий/пользователь отсутствует. HTTP 404.
	ErrNotFound = errors.New("not found")

	// ErrInvalidArgument — неверные входные параметры запроса к сервису. HTTP 400.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrInvalidQueryParameter — некорректное значение параметра фильтра
	// (нечисловой min_rating); не игнорируем молча. HTTP 400.
	ErrInvalidQueryParameter = errors.New("invalid query parameter")

	// ErrInvalidCredentials — пара логин/пароль неверна или пользователь
	// не найден. HTTP 401.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrMissingCredential — на защищённом маршруте нет Authorization: Bearer.
	// HTTP 403 — сохраняем соглашение исходной системы, см. DESIGN.md.
	ErrMissingCredential = errors.New("missing credential")

	// ErrInvalidToken — токен некорректен по формату/подписи. HTTP 403.
	ErrInvalidToken = errors.New("invalid token")

	// ErrTokenExpired — срок действия токена истёк. Наружу сворачивается
	// в тот же invalid_token-ответ, что и ErrInvalidToken. HTTP 403.
	ErrTokenExpired = errors.New("token expired")

	// ErrPermissionDenied — валидный токен чужого пользователя. HTTP 403.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrEmailTaken — e-mail уже занят другим пользователем. HTTP 409.
	ErrEmailTaken = errors.New("email already taken")

	// ErrInvalidEmail — e-mail имеет некорректный формат. HTTP 400.
	ErrInvalidEmail = errors.New("invalid email format")

	// ErrWeakPassword — пароль не удовлетворяет политике сложности. HTTP 400.
	ErrWeakPassword = errors.New("password is too weak")

	// ErrEmptyPassword — пароль пустой. HTTP 400.
	ErrEmptyPassword = errors.New("password is empty")

	// ErrInternal — внутренняя ошибка (сторадж/БД/контекст/и т.д.). HTTP 500.
	ErrInternal = errors.New("internal")
)

// Service описывает бизнес-логику reviews-сервиса.
type Service struct {
	storage storage.Storage
	cfg     config.AuthConfig
}

// New создаёт новый экземпляр Service.
func New(storage storage.Storage, cfg config.AuthConfig) *Service {
	return &Service{
		storage: storage,
		cfg:     cfg,
	}
}
