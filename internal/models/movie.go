// Package models содержит доменные структуры каталога фильмов,
// а также вспомогательные типы для работы с данными из JSON-запросов.
package models

import "time"

// Movie представляет собой карточку фильма в каталоге.
type Movie struct {
	ID          string    `bson:"_id" json:"_id"`
	Title       string    `bson:"title" json:"title"`
	Slug        string    `bson:"slug" json:"slug"`
	Description string    `bson:"description" json:"description"`
	Poster      string    `bson:"poster" json:"poster"`
	BigPoster   string    `bson:"big_poster" json:"big_poster"`
	VideoURL    string    `bson:"video_url" json:"video_url"`
	Rating      float64   `bson:"rating" json:"rating"`
	CountOpened int64     `bson:"count_opened" json:"count_opened"`
	Genres      []string  `bson:"genres" json:"genres"`
	Actors      []string  `bson:"actors" json:"actors"`
	CreatedAt   time.Time `bson:"created_at" json:"created_at"`
}

// UpdateMovieEntry используется для приёма данных из JSON-запроса
// на обновление карточки фильма администратором.
type UpdateMovieEntry struct {
	Title       string   `json:"title" validate:"required"`
	Slug        string   `json:"slug"`
	Description string   `json:"description"`
	Poster      string   `json:"poster"`
	BigPoster   string   `json:"big_poster"`
	VideoURL    string   `json:"video_url"`
	Genres      []string `json:"genres"`
	Actors      []string `json:"actors"`
}
