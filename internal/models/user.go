// Package models содержит доменные структуры приложения: пользователей,
// тарифы, подписки, платежи, вопросы и публикуемый контент,
// а также вспомогательные типы для приёма данных из JSON-запросов.
package models

import "time"

// Роли пользователей.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User представляет зарегистрированного пользователя системы.
//
// Поля AiSuggestionsUsed и AiSuggestionsResetDate ведутся движком квот:
// счётчик расхода AI-подсказок за текущий период и дата начала периода.
type User struct {
	UID                    string     // Уникальный идентификатор пользователя
	Email                  string     // Электронная почта
	Username               string     // Имя пользователя (уникальное)
	PasswordHash           string     // Хэш пароля пользователя
	Role                   string     // Роль пользователя, admin или user
	AiSuggestionsUsed      int        // Использовано AI-подсказок за период
	AiSuggestionsResetDate *time.Time // Начало текущего периода подсчёта, nil до первого сброса
	CreatedAt              time.Time  // Дата регистрации
}

// DummyRegister используется для приёма данных регистрации из JSON-запроса.
type DummyRegister struct {
	Email    string `json:"email" validate:"required,email"`
	Username string `json:"username" validate:"required,alphanum"`
	Password string `json:"password" validate:"required,min=8"`
}

// DummyLogin используется для приёма данных входа из JSON-запроса.
type DummyLogin struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}
