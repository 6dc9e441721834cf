package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/magabrotheeeer/online-cinema/internal/models"
)

// FindGenreByID возвращает жанр по его идентификатору.
func (s *Storage) FindGenreByID(ctx context.Context, id string) (*models.Genre, error) {
	const op = "mongodb.FindGenreByID"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var g models.Genre
	if err := s.genres().FindOne(ctx, bson.M{"_id": id}).Decode(&g); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &g, nil
}

// FindGenreBySlug возвращает жанр по его слагу.
func (s *Storage) FindGenreBySlug(ctx context.Context, slug string) (*models.Genre, error) {
	const op = "mongodb.FindGenreBySlug"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var g models.Genre
	if err := s.genres().FindOne(ctx, bson.M{"slug": slug}).Decode(&g); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &g, nil
}

// ListGenres возвращает список жанров, отсортированный по дате создания
// по убыванию. При непустом searchTerm отбираются жанры, у которых
// название, слаг или описание содержит подстроку без учёта регистра.
func (s *Storage) ListGenres(ctx context.Context, searchTerm string) ([]*models.Genre, error) {
	const op = "mongodb.ListGenres"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	filter := bson.M{}
	if searchTerm != "" {
		re := primitive.Regex{Pattern: searchTerm, Options: "i"}
		filter = bson.M{"$or": bson.A{
			bson.M{"name": re},
			bson.M{"slug": re},
			bson.M{"description": re},
		}}
	}
	cur, err := s.genres().Find(ctx, filter, options.Find().SetSort(bson.M{"created_at": -1}))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = cur.Close(ctx)
	}()

	var result []*models.Genre
	for cur.Next(ctx) {
		var g models.Genre
		if err := cur.Decode(&g); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &g)
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// InsertGenre сохраняет новый жанр и возвращает его идентификатор.
func (s *Storage) InsertGenre(ctx context.Context, genre models.Genre) (string, error) {
	const op = "mongodb.InsertGenre"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	if genre.ID == "" {
		genre.ID = uuid.NewString()
	}
	if genre.CreatedAt.IsZero() {
		genre.CreatedAt = time.Now().UTC()
	}
	if _, err := s.genres().InsertOne(ctx, genre); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return genre.ID, nil
}

// UpdateGenre перезаписывает поля жанра и возвращает обновлённый документ.
func (s *Storage) UpdateGenre(ctx context.Context, id string, entry models.UpdateGenreEntry) (*models.Genre, error) {
	const op = "mongodb.UpdateGenre"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	set := bson.M{
		"name":        entry.Name,
		"slug":        entry.Slug,
		"description": entry.Description,
		"icon":        entry.Icon,
	}
	var g models.Genre
	err := s.genres().FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&g)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &g, nil
}

// DeleteGenre удаляет жанр и возвращает удалённый документ.
func (s *Storage) DeleteGenre(ctx context.Context, id string) (*models.Genre, error) {
	const op = "mongodb.DeleteGenre"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var g models.Genre
	if err := s.genres().FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&g); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &g, nil
}
