// Package models содержит доменные структуры кассы: операторы, смены,
// посетители и расходы. Структуры используются в бизнес‑логике и при
// работе с хранилищем.
package models

// User представляет оператора кассы.
type User struct {
	ID           int    `json:"id"`       // Уникальный идентификатор
	Username     string `json:"username"` // Имя оператора (уникальное)
	PasswordHash string `json:"-"`        // bcrypt-хэш пароля
	IsAdmin      bool   `json:"is_admin"` // Администратору доступны регистрация и статистика
}
