// Package services содержит бизнес-логику каталога фильмов, включая
// кеширование горячих чтений и публикацию уведомлений об обновлениях.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/online-cinema/internal/lib/slug"
	"github.com/magabrotheeeer/online-cinema/internal/models"
	"github.com/magabrotheeeer/online-cinema/internal/storage/mongodb"
)

// ErrMovieNotFound возвращается, когда фильм с указанным ID или слагом отсутствует.
var ErrMovieNotFound = errors.New("movie not found")

// MovieRepository определяет методы для работы с фильмами в хранилище.
type MovieRepository interface {
	ListMovies(ctx context.Context, searchTerm string) ([]*models.Movie, error)
	FindMovieBySlug(ctx context.Context, slug string) (*models.Movie, error)
	FindMovieByID(ctx context.Context, id string) (*models.Movie, error)
	FindMoviesByGenres(ctx context.Context, genreIDs []string) ([]*models.Movie, error)
	FindMostPopularMovies(ctx context.Context) ([]*models.Movie, error)
	IncMovieCountOpened(ctx context.Context, slug string) (*models.Movie, error)
	InsertMovie(ctx context.Context, movie models.Movie) (string, error)
	UpdateMovie(ctx context.Context, id string, entry models.UpdateMovieEntry) (*models.Movie, error)
	DeleteMovie(ctx context.Context, id string) (*models.Movie, error)
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	// Get пытается получить значение из кеша по ключу.
	Get(key string, result any) (bool, error)
	// Set сохраняет значение в кеш с временем жизни.
	Set(key string, value any, expiration time.Duration) error
	// Invalidate удаляет значение из кеша по ключу.
	Invalidate(key string) error
}

// NotificationPublisher публикует сообщение в очередь уведомлений.
type NotificationPublisher interface {
	Publish(routingKey string, message any) error
}

// MovieService реализует бизнес-логику каталога фильмов.
//
// publisher может быть nil: тогда уведомления об обновлениях не отправляются.
type MovieService struct {
	repo      MovieRepository
	cache     Cache
	publisher NotificationPublisher
	log       *slog.Logger
}

// NewMovieService создает новый экземпляр MovieService.
func NewMovieService(repo MovieRepository, cache Cache, publisher NotificationPublisher, log *slog.Logger) *MovieService {
	return &MovieService{
		repo:      repo,
		cache:     cache,
		publisher: publisher,
		log:       log,
	}
}

// GetAll возвращает фильмы с опциональным поиском по подстроке названия.
func (s *MovieService) GetAll(ctx context.Context, searchTerm string) ([]*models.Movie, error) {
	const op = "movie.GetAll"
	movies, err := s.repo.ListMovies(ctx, searchTerm)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return movies, nil
}

// BySlug возвращает фильм по слагу, используя кеш или хранилище.
func (s *MovieService) BySlug(ctx context.Context, slug string) (*models.Movie, error) {
	var result *models.Movie
	cacheKey := fmt.Sprintf("movie:slug:%s", slug)
	found, err := s.cache.Get(cacheKey, &result)
	if err != nil {
		return nil, err
	}
	if found {
		return result, nil
	}

	result, err = s.repo.FindMovieBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, mongodb.ErrNotFound) {
			return nil, ErrMovieNotFound
		}
		return nil, err
	}

	if err := s.cache.Set(cacheKey, result, time.Hour); err != nil {
		s.log.Warn("failed to cache movie", slog.String("key", cacheKey), slog.Any("err", err))
	}
	return result, nil
}

// ByID возвращает фильм по идентификатору.
func (s *MovieService) ByID(ctx context.Context, id string) (*models.Movie, error) {
	const op = "movie.ByID"
	movie, err := s.repo.FindMovieByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongodb.ErrNotFound) {
			return nil, ErrMovieNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return movie, nil
}

// ByGenres возвращает фильмы, относящиеся хотя бы к одному из жанров.
func (s *MovieService) ByGenres(ctx context.Context, genreIDs []string) ([]*models.Movie, error) {
	const op = "movie.ByGenres"
	movies, err := s.repo.FindMoviesByGenres(ctx, genreIDs)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return movies, nil
}

// MostPopular возвращает фильмы с просмотрами, отсортированные по убыванию,
// используя кеш с коротким временем жизни.
func (s *MovieService) MostPopular(ctx context.Context) ([]*models.Movie, error) {
	var result []*models.Movie
	const cacheKey = "movies:popular"
	found, err := s.cache.Get(cacheKey, &result)
	if err != nil {
		return nil, err
	}
	if found {
		return result, nil
	}

	result, err = s.repo.FindMostPopularMovies(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(cacheKey, result, 10*time.Minute); err != nil {
		s.log.Warn("failed to cache popular movies", slog.Any("err", err))
	}
	return result, nil
}

// TrackViews увеличивает счётчик просмотров фильма по слагу.
func (s *MovieService) TrackViews(ctx context.Context, slug string) (*models.Movie, error) {
	const op = "movie.TrackViews"
	movie, err := s.repo.IncMovieCountOpened(ctx, slug)
	if err != nil {
		if errors.Is(err, mongodb.ErrNotFound) {
			return nil, ErrMovieNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.invalidate(slug)
	return movie, nil
}

// Create создает пустую карточку фильма и возвращает её идентификатор.
// Поля заполняются последующим обновлением из админки.
func (s *MovieService) Create(ctx context.Context) (string, error) {
	const op = "movie.Create"
	id, err := s.repo.InsertMovie(ctx, models.Movie{})
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("created new movie", slog.String("id", id))
	return id, nil
}

// Update перезаписывает карточку фильма и публикует уведомление
// об обновлении в очередь. Пустой слаг выводится из названия.
//
// Публикация не блокирует и не отменяет само обновление: ошибки
// отправки только логируются.
func (s *MovieService) Update(ctx context.Context, id string, entry models.UpdateMovieEntry) (*models.Movie, error) {
	const op = "movie.Update"

	if entry.Slug == "" {
		entry.Slug = slug.Make(entry.Title)
	}

	movie, err := s.repo.UpdateMovie(ctx, id, entry)
	if err != nil {
		if errors.Is(err, mongodb.ErrNotFound) {
			return nil, ErrMovieNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.invalidate(movie.Slug)

	if s.publisher != nil {
		info := models.MovieUpdateInfo{
			Title:       movie.Title,
			Description: movie.Description,
			Poster:      movie.Poster,
			Slug:        movie.Slug,
		}
		if err := s.publisher.Publish("movie-updated", info); err != nil {
			s.log.Warn("failed to publish movie update notification",
				slog.String("id", id), slog.Any("err", err))
		}
	}
	return movie, nil
}

// Delete удаляет карточку фильма и возвращает удалённую запись.
func (s *MovieService) Delete(ctx context.Context, id string) (*models.Movie, error) {
	const op = "movie.Delete"
	movie, err := s.repo.DeleteMovie(ctx, id)
	if err != nil {
		if errors.Is(err, mongodb.ErrNotFound) {
			return nil, ErrMovieNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.invalidate(movie.Slug)
	return movie, nil
}

func (s *MovieService) invalidate(slug string) {
	for _, key := range []string{fmt.Sprintf("movie:slug:%s", slug), "movies:popular"} {
		if err := s.cache.Invalidate(key); err != nil {
			s.log.Warn("failed to invalidate cache", slog.String("key", key), slog.Any("err", err))
		}
	}
}
