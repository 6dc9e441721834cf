// Package mongodb реализует хранилище данных на основе MongoDB
// для каталога фильмов. Предоставляет методы создания, чтения,
// обновления и удаления документов пользователей, фильмов и жанров.
package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrNotFound возвращается методами чтения, когда документ отсутствует.
var ErrNotFound = errors.New("document not found")

// Storage инкапсулирует соединение с MongoDB и реализует методы
// работы с коллекциями User, Movie и Genre.
type Storage struct {
	Db     *mongo.Database
	client *mongo.Client
}

// New создаёт подключение к MongoDB и проверяет его доступность.
//
// Уникальный индекс на email намеренно не создаётся: уникальность
// email проверяется на уровне сервиса перед записью.
func New(ctx context.Context, connectionString, databaseName string) (*Storage, error) {
	const op = "mongodb.New"

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(connectionString))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Storage{
		Db:     client.Database(databaseName),
		client: client,
	}, nil
}

// Close разрывает соединение с MongoDB.
func (s *Storage) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func (s *Storage) users() *mongo.Collection  { return s.Db.Collection("User") }
func (s *Storage) movies() *mongo.Collection { return s.Db.Collection("Movie") }
func (s *Storage) genres() *mongo.Collection { return s.Db.Collection("Genre") }
