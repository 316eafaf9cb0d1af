package domain

import (
	"strings"
	"time"
)

// User пользователь сервиса
type User struct {
	ID        int64
	Name      string
	Email     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsValidEmail минимальная проверка адреса
func IsValidEmail(email string) bool {
	return strings.Contains(email, "@")
}
