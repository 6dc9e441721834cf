package models

import "time"

// Genre представляет жанр каталога фильмов.
type Genre struct {
	ID          string    `bson:"_id" json:"_id"`
	Name        string    `bson:"name" json:"name"`
	Slug        string    `bson:"slug" json:"slug"`
	Description string    `bson:"description" json:"description"`
	Icon        string    `bson:"icon" json:"icon"`
	CreatedAt   time.Time `bson:"created_at" json:"created_at"`
}

// UpdateGenreEntry используется для приёма данных из JSON-запроса
// на обновление жанра администратором.
type UpdateGenreEntry struct {
	Name        string `json:"name" validate:"required"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

// Collection — подборка: жанр вместе с постером одного из его фильмов.
// Используется для главной страницы каталога.
type Collection struct {
	ID    string `json:"_id"`
	Image string `json:"image"`
	Title string `json:"title"`
	Slug  string `json:"slug"`
}
