package services

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/online-cinema/internal/models"
	"github.com/magabrotheeeer/online-cinema/internal/storage/mongodb"
)

type RepoMock struct{ mock.Mock }

func (m *RepoMock) ListGenres(ctx context.Context, searchTerm string) ([]*models.Genre, error) {
	args := m.Called(ctx, searchTerm)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Genre), args.Error(1)
}

func (m *RepoMock) FindGenreBySlug(ctx context.Context, slug string) (*models.Genre, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Genre), args.Error(1)
}

func (m *RepoMock) FindGenreByID(ctx context.Context, id string) (*models.Genre, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Genre), args.Error(1)
}

func (m *RepoMock) InsertGenre(ctx context.Context, genre models.Genre) (string, error) {
	args := m.Called(ctx, genre)
	return args.String(0), args.Error(1)
}

func (m *RepoMock) UpdateGenre(ctx context.Context, id string, entry models.UpdateGenreEntry) (*models.Genre, error) {
	args := m.Called(ctx, id, entry)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Genre), args.Error(1)
}

func (m *RepoMock) DeleteGenre(ctx context.Context, id string) (*models.Genre, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Genre), args.Error(1)
}

type MovieFinderMock struct{ mock.Mock }

func (m *MovieFinderMock) FindMoviesByGenres(ctx context.Context, genreIDs []string) ([]*models.Movie, error) {
	args := m.Called(ctx, genreIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Movie), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func TestGenreService_Collections(t *testing.T) {
	repo := new(RepoMock)
	movies := new(MovieFinderMock)
	repo.On("ListGenres", mock.Anything, "").Return([]*models.Genre{
		{ID: "g1", Name: "Action", Slug: "action"},
		{ID: "g2", Name: "Drama", Slug: "drama"},
	}, nil).Once()
	movies.On("FindMoviesByGenres", mock.Anything, []string{"g1"}).
		Return([]*models.Movie{{ID: "m1", BigPoster: "http://img/matrix.jpg"}}, nil).Once()
	// Жанр без фильмов попадает в подборку с пустым постером
	movies.On("FindMoviesByGenres", mock.Anything, []string{"g2"}).
		Return([]*models.Movie{}, nil).Once()

	svc := NewGenreService(repo, movies, newNoopLogger())
	got, err := svc.Collections(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "http://img/matrix.jpg", got[0].Image)
	assert.Equal(t, "Action", got[0].Title)
	assert.Equal(t, "", got[1].Image)
	assert.Equal(t, "drama", got[1].Slug)
}

func TestGenreService_BySlug(t *testing.T) {
	t.Run("успешное чтение", func(t *testing.T) {
		repo := new(RepoMock)
		repo.On("FindGenreBySlug", mock.Anything, "action").
			Return(&models.Genre{ID: "g1", Slug: "action"}, nil).Once()
		svc := NewGenreService(repo, new(MovieFinderMock), newNoopLogger())

		got, err := svc.BySlug(context.Background(), "action")
		require.NoError(t, err)
		assert.Equal(t, "g1", got.ID)
	})

	t.Run("жанр не найден", func(t *testing.T) {
		repo := new(RepoMock)
		repo.On("FindGenreBySlug", mock.Anything, "missing").
			Return(nil, mongodb.ErrNotFound).Once()
		svc := NewGenreService(repo, new(MovieFinderMock), newNoopLogger())

		_, err := svc.BySlug(context.Background(), "missing")
		assert.ErrorIs(t, err, ErrGenreNotFound)
	})
}

func TestGenreService_CreateUpdateDelete(t *testing.T) {
	repo := new(RepoMock)
	svc := NewGenreService(repo, new(MovieFinderMock), newNoopLogger())

	repo.On("InsertGenre", mock.Anything, models.Genre{}).Return("g1", nil).Once()
	id, err := svc.Create(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "g1", id)

	entry := models.UpdateGenreEntry{Name: "Action", Slug: "action"}
	repo.On("UpdateGenre", mock.Anything, "g1", entry).
		Return(&models.Genre{ID: "g1", Name: "Action", Slug: "action"}, nil).Once()
	updated, err := svc.Update(context.Background(), "g1", entry)
	require.NoError(t, err)
	assert.Equal(t, "Action", updated.Name)

	repo.On("DeleteGenre", mock.Anything, "g1").
		Return(&models.Genre{ID: "g1"}, nil).Once()
	deleted, err := svc.Delete(context.Background(), "g1")
	require.NoError(t, err)
	assert.Equal(t, "g1", deleted.ID)

	repo.AssertExpectations(t)
}

func TestGenreService_Update_DerivesSlug(t *testing.T) {
	repo := new(RepoMock)
	svc := NewGenreService(repo, new(MovieFinderMock), newNoopLogger())

	// Без слага в запросе слаг строится из названия
	repo.On("UpdateGenre", mock.Anything, "g1",
		mock.MatchedBy(func(e models.UpdateGenreEntry) bool {
			return e.Slug == "science-fiction"
		})).
		Return(&models.Genre{ID: "g1", Name: "Science Fiction", Slug: "science-fiction"}, nil).Once()

	updated, err := svc.Update(context.Background(), "g1",
		models.UpdateGenreEntry{Name: "Science Fiction"})
	require.NoError(t, err)
	assert.Equal(t, "science-fiction", updated.Slug)
	repo.AssertExpectations(t)
}
