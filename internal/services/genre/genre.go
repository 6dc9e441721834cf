// Package services содержит бизнес-логику жанров каталога,
// включая сборку подборок для главной страницы.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/magabrotheeeer/online-cinema/internal/lib/slug"
	"github.com/magabrotheeeer/online-cinema/internal/models"
	"github.com/magabrotheeeer/online-cinema/internal/storage/mongodb"
)

// ErrGenreNotFound возвращается, когда жанр с указанным ID или слагом отсутствует.
var ErrGenreNotFound = errors.New("genre not found")

// GenreRepository определяет методы для работы с жанрами в хранилище.
type GenreRepository interface {
	ListGenres(ctx context.Context, searchTerm string) ([]*models.Genre, error)
	FindGenreBySlug(ctx context.Context, slug string) (*models.Genre, error)
	FindGenreByID(ctx context.Context, id string) (*models.Genre, error)
	InsertGenre(ctx context.Context, genre models.Genre) (string, error)
	UpdateGenre(ctx context.Context, id string, entry models.UpdateGenreEntry) (*models.Genre, error)
	DeleteGenre(ctx context.Context, id string) (*models.Genre, error)
}

// MovieFinder разворачивает жанр в список его фильмов.
type MovieFinder interface {
	FindMoviesByGenres(ctx context.Context, genreIDs []string) ([]*models.Movie, error)
}

// GenreService реализует операции над жанрами.
type GenreService struct {
	repo   GenreRepository
	movies MovieFinder
	log    *slog.Logger
}

// NewGenreService создает новый экземпляр GenreService.
func NewGenreService(repo GenreRepository, movies MovieFinder, log *slog.Logger) *GenreService {
	return &GenreService{
		repo:   repo,
		movies: movies,
		log:    log,
	}
}

// GetAll возвращает жанры с опциональным поиском по подстроке
// в названии, слаге или описании.
func (s *GenreService) GetAll(ctx context.Context, searchTerm string) ([]*models.Genre, error) {
	const op = "genre.GetAll"
	genres, err := s.repo.ListGenres(ctx, searchTerm)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return genres, nil
}

// BySlug возвращает жанр по слагу.
func (s *GenreService) BySlug(ctx context.Context, slug string) (*models.Genre, error) {
	const op = "genre.BySlug"
	genre, err := s.repo.FindGenreBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, mongodb.ErrNotFound) {
			return nil, ErrGenreNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return genre, nil
}

// ByID возвращает жанр по идентификатору.
func (s *GenreService) ByID(ctx context.Context, id string) (*models.Genre, error) {
	const op = "genre.ByID"
	genre, err := s.repo.FindGenreByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongodb.ErrNotFound) {
			return nil, ErrGenreNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return genre, nil
}

// Collections собирает подборки: каждый жанр с постером одного
// из его фильмов. Жанры без фильмов входят в подборку с пустым постером.
func (s *GenreService) Collections(ctx context.Context) ([]models.Collection, error) {
	const op = "genre.Collections"

	genres, err := s.repo.ListGenres(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	collections := make([]models.Collection, 0, len(genres))
	for _, genre := range genres {
		moviesByGenre, err := s.movies.FindMoviesByGenres(ctx, []string{genre.ID})
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		image := ""
		if len(moviesByGenre) > 0 {
			image = moviesByGenre[0].BigPoster
		}
		collections = append(collections, models.Collection{
			ID:    genre.ID,
			Image: image,
			Title: genre.Name,
			Slug:  genre.Slug,
		})
	}
	return collections, nil
}

// Create создает пустой жанр и возвращает его идентификатор.
func (s *GenreService) Create(ctx context.Context) (string, error) {
	const op = "genre.Create"
	id, err := s.repo.InsertGenre(ctx, models.Genre{})
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("created new genre", slog.String("id", id))
	return id, nil
}

// Update перезаписывает поля жанра и возвращает обновлённую запись.
// Пустой слаг выводится из названия.
func (s *GenreService) Update(ctx context.Context, id string, entry models.UpdateGenreEntry) (*models.Genre, error) {
	const op = "genre.Update"
	if entry.Slug == "" {
		entry.Slug = slug.Make(entry.Name)
	}
	genre, err := s.repo.UpdateGenre(ctx, id, entry)
	if err != nil {
		if errors.Is(err, mongodb.ErrNotFound) {
			return nil, ErrGenreNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return genre, nil
}

// Delete удаляет жанр и возвращает удалённую запись.
func (s *GenreService) Delete(ctx context.Context, id string) (*models.Genre, error) {
	const op = "genre.Delete"
	genre, err := s.repo.DeleteGenre(ctx, id)
	if err != nil {
		if errors.Is(err, mongodb.ErrNotFound) {
			return nil, ErrGenreNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return genre, nil
}
