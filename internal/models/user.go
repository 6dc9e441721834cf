// Package models содержит доменную модель пользователя сервиса,
// включающую данные учётной записи, хэш пароля, флаг администратора
// и список избранных фильмов. Структуры используются в бизнес‑логике
// и при работе с хранилищем.
package models

import "time"

// User представляет зарегистрированного пользователя сервиса.
//
// Favorites — список идентификаторов фильмов; каждый идентификатор
// встречается в списке не более одного раза.
type User struct {
	ID           string    `bson:"_id" json:"_id"`
	Email        string    `bson:"email" json:"email"`
	PasswordHash string    `bson:"password_hash" json:"-"`
	IsAdmin      bool      `bson:"is_admin" json:"is_admin"`
	Favorites    []string  `bson:"favorites" json:"favorites"`
	CreatedAt    time.Time `bson:"created_at" json:"created_at"`
}

// UpdateUserEntry используется для приёма данных из JSON-запроса
// на обновление профиля.
//
// IsAdmin — указатель, чтобы различать отсутствие поля в запросе (nil,
// роль не меняется) и явно переданное false (роль сбрасывается).
type UpdateUserEntry struct {
	Email    string `json:"email" validate:"required,email"` // Новый email пользователя
	Password string `json:"password,omitempty"`              // Новый пароль; пустая строка — пароль не меняется
	IsAdmin  *bool  `json:"is_admin,omitempty"`              // Новое значение роли; nil — роль не меняется
}

// UserProfileUpdate описывает набор полей профиля для записи в хранилище.
// Указатели со значением nil означают, что поле не перезаписывается.
type UserProfileUpdate struct {
	Email        string
	PasswordHash *string
	IsAdmin      *bool
}
