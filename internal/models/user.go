package models

import (
	"time"

	"github.com/google/uuid"
)

// User — модель пользователя в системе.
// PasswordHash — bcrypt-хэш; открытый пароль нигде не хранится.
type User struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// AccessToken — выпущенный access-токен и срок его действия.
// Токен не персистентен: без списков отзыва и без продления.
type AccessToken struct {
	Token     string
	ExpiresAt time.Time
}

// Claims — проверенная полезная нагрузка bearer-токена.
// Живёт в request-scoped контексте после Auth-мидлвара.
type Claims struct {
	UserID uuid.UUID
	Email  string
}
