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

// FindMovieByID возвращает фильм по его идентификатору.
func (s *Storage) FindMovieByID(ctx context.Context, id string) (*models.Movie, error) {
	const op = "mongodb.FindMovieByID"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var m models.Movie
	if err := s.movies().FindOne(ctx, bson.M{"_id": id}).Decode(&m); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &m, nil
}

// FindMovieBySlug возвращает фильм по его слагу.
func (s *Storage) FindMovieBySlug(ctx context.Context, slug string) (*models.Movie, error) {
	const op = "mongodb.FindMovieBySlug"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var m models.Movie
	if err := s.movies().FindOne(ctx, bson.M{"slug": slug}).Decode(&m); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &m, nil
}

// FindMoviesByIDs возвращает фильмы с перечисленными идентификаторами.
// Используется для разворачивания списка избранного.
func (s *Storage) FindMoviesByIDs(ctx context.Context, ids []string) ([]*models.Movie, error) {
	const op = "mongodb.FindMoviesByIDs"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	if len(ids) == 0 {
		return []*models.Movie{}, nil
	}
	cur, err := s.movies().Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return decodeMovies(ctx, cur, op)
}

// ListMovies возвращает список фильмов, отсортированный по дате создания
// по убыванию. При непустом searchTerm отбираются фильмы, чьё название
// содержит подстроку без учёта регистра.
func (s *Storage) ListMovies(ctx context.Context, searchTerm string) ([]*models.Movie, error) {
	const op = "mongodb.ListMovies"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	filter := bson.M{}
	if searchTerm != "" {
		filter = bson.M{"$or": bson.A{
			bson.M{"title": primitive.Regex{Pattern: searchTerm, Options: "i"}},
		}}
	}
	cur, err := s.movies().Find(ctx, filter, options.Find().SetSort(bson.M{"created_at": -1}))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return decodeMovies(ctx, cur, op)
}

// FindMoviesByGenres возвращает фильмы, относящиеся хотя бы к одному
// из перечисленных жанров.
func (s *Storage) FindMoviesByGenres(ctx context.Context, genreIDs []string) ([]*models.Movie, error) {
	const op = "mongodb.FindMoviesByGenres"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	cur, err := s.movies().Find(ctx, bson.M{"genres": bson.M{"$in": genreIDs}})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return decodeMovies(ctx, cur, op)
}

// FindMostPopularMovies возвращает фильмы с ненулевым числом просмотров,
// отсортированные по числу просмотров по убыванию.
func (s *Storage) FindMostPopularMovies(ctx context.Context) ([]*models.Movie, error) {
	const op = "mongodb.FindMostPopularMovies"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	cur, err := s.movies().Find(ctx,
		bson.M{"count_opened": bson.M{"$gt": 0}},
		options.Find().SetSort(bson.M{"count_opened": -1}))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return decodeMovies(ctx, cur, op)
}

// IncMovieCountOpened увеличивает счётчик просмотров фильма по слагу
// и возвращает обновлённый документ.
func (s *Storage) IncMovieCountOpened(ctx context.Context, slug string) (*models.Movie, error) {
	const op = "mongodb.IncMovieCountOpened"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var m models.Movie
	err := s.movies().FindOneAndUpdate(ctx,
		bson.M{"slug": slug},
		bson.M{"$inc": bson.M{"count_opened": 1}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&m)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &m, nil
}

// InsertMovie сохраняет новую карточку фильма и возвращает её идентификатор.
func (s *Storage) InsertMovie(ctx context.Context, movie models.Movie) (string, error) {
	const op = "mongodb.InsertMovie"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	if movie.ID == "" {
		movie.ID = uuid.NewString()
	}
	if movie.Genres == nil {
		movie.Genres = []string{}
	}
	if movie.Actors == nil {
		movie.Actors = []string{}
	}
	if movie.CreatedAt.IsZero() {
		movie.CreatedAt = time.Now().UTC()
	}
	if _, err := s.movies().InsertOne(ctx, movie); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return movie.ID, nil
}

// UpdateMovie перезаписывает поля карточки фильма и возвращает
// обновлённый документ.
func (s *Storage) UpdateMovie(ctx context.Context, id string, entry models.UpdateMovieEntry) (*models.Movie, error) {
	const op = "mongodb.UpdateMovie"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	set := bson.M{
		"title":       entry.Title,
		"slug":        entry.Slug,
		"description": entry.Description,
		"poster":      entry.Poster,
		"big_poster":  entry.BigPoster,
		"video_url":   entry.VideoURL,
		"genres":      entry.Genres,
		"actors":      entry.Actors,
	}
	var m models.Movie
	err := s.movies().FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&m)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &m, nil
}

// DeleteMovie удаляет карточку фильма и возвращает удалённый документ.
func (s *Storage) DeleteMovie(ctx context.Context, id string) (*models.Movie, error) {
	const op = "mongodb.DeleteMovie"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var m models.Movie
	if err := s.movies().FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&m); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &m, nil
}

func decodeMovies(ctx context.Context, cur *mongo.Cursor, op string) ([]*models.Movie, error) {
	defer func() {
		_ = cur.Close(ctx)
	}()
	var result []*models.Movie
	for cur.Next(ctx) {
		var m models.Movie
		if err := cur.Decode(&m); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &m)
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
