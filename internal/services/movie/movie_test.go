package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/online-cinema/internal/models"
	"github.com/magabrotheeeer/online-cinema/internal/storage/mongodb"
)

type RepoMock struct{ mock.Mock }

func (m *RepoMock) ListMovies(ctx context.Context, searchTerm string) ([]*models.Movie, error) {
	args := m.Called(ctx, searchTerm)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Movie), args.Error(1)
}

func (m *RepoMock) FindMovieBySlug(ctx context.Context, slug string) (*models.Movie, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Movie), args.Error(1)
}

func (m *RepoMock) FindMovieByID(ctx context.Context, id string) (*models.Movie, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Movie), args.Error(1)
}

func (m *RepoMock) FindMoviesByGenres(ctx context.Context, genreIDs []string) ([]*models.Movie, error) {
	args := m.Called(ctx, genreIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Movie), args.Error(1)
}

func (m *RepoMock) FindMostPopularMovies(ctx context.Context) ([]*models.Movie, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Movie), args.Error(1)
}

func (m *RepoMock) IncMovieCountOpened(ctx context.Context, slug string) (*models.Movie, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Movie), args.Error(1)
}

func (m *RepoMock) InsertMovie(ctx context.Context, movie models.Movie) (string, error) {
	args := m.Called(ctx, movie)
	return args.String(0), args.Error(1)
}

func (m *RepoMock) UpdateMovie(ctx context.Context, id string, entry models.UpdateMovieEntry) (*models.Movie, error) {
	args := m.Called(ctx, id, entry)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Movie), args.Error(1)
}

func (m *RepoMock) DeleteMovie(ctx context.Context, id string) (*models.Movie, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Movie), args.Error(1)
}

type CacheMock struct{ mock.Mock }

func (m *CacheMock) Get(key string, result any) (bool, error) {
	args := m.Called(key, result)
	return args.Bool(0), args.Error(1)
}
func (m *CacheMock) Set(key string, value any, expiration time.Duration) error {
	return m.Called(key, value, expiration).Error(0)
}
func (m *CacheMock) Invalidate(key string) error {
	return m.Called(key).Error(0)
}

type PublisherMock struct{ mock.Mock }

func (m *PublisherMock) Publish(routingKey string, message any) error {
	return m.Called(routingKey, message).Error(0)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func TestMovieService_BySlug(t *testing.T) {
	movie := &models.Movie{ID: "m1", Slug: "the-matrix", Title: "The Matrix"}

	t.Run("промах кеша, чтение из хранилища", func(t *testing.T) {
		repo := new(RepoMock)
		cache := new(CacheMock)
		cache.On("Get", "movie:slug:the-matrix", mock.Anything).Return(false, nil).Once()
		repo.On("FindMovieBySlug", mock.Anything, "the-matrix").Return(movie, nil).Once()
		cache.On("Set", "movie:slug:the-matrix", movie, time.Hour).Return(nil).Once()

		svc := NewMovieService(repo, cache, nil, newNoopLogger())
		got, err := svc.BySlug(context.Background(), "the-matrix")
		require.NoError(t, err)
		assert.Equal(t, "m1", got.ID)
		repo.AssertExpectations(t)
		cache.AssertExpectations(t)
	})

	t.Run("попадание в кеш не трогает хранилище", func(t *testing.T) {
		repo := new(RepoMock)
		cache := new(CacheMock)
		cache.On("Get", "movie:slug:the-matrix", mock.Anything).
			Run(func(args mock.Arguments) {
				ptr := args.Get(1).(**models.Movie)
				*ptr = movie
			}).Return(true, nil).Once()

		svc := NewMovieService(repo, cache, nil, newNoopLogger())
		got, err := svc.BySlug(context.Background(), "the-matrix")
		require.NoError(t, err)
		assert.Equal(t, "m1", got.ID)
		repo.AssertNotCalled(t, "FindMovieBySlug")
	})

	t.Run("фильм не найден", func(t *testing.T) {
		repo := new(RepoMock)
		cache := new(CacheMock)
		cache.On("Get", "movie:slug:missing", mock.Anything).Return(false, nil).Once()
		repo.On("FindMovieBySlug", mock.Anything, "missing").
			Return(nil, mongodb.ErrNotFound).Once()

		svc := NewMovieService(repo, cache, nil, newNoopLogger())
		_, err := svc.BySlug(context.Background(), "missing")
		assert.ErrorIs(t, err, ErrMovieNotFound)
	})
}

func TestMovieService_TrackViews(t *testing.T) {
	repo := new(RepoMock)
	cache := new(CacheMock)
	updated := &models.Movie{ID: "m1", Slug: "the-matrix", CountOpened: 5}
	repo.On("IncMovieCountOpened", mock.Anything, "the-matrix").Return(updated, nil).Once()
	cache.On("Invalidate", "movie:slug:the-matrix").Return(nil).Once()
	cache.On("Invalidate", "movies:popular").Return(nil).Once()

	svc := NewMovieService(repo, cache, nil, newNoopLogger())
	got, err := svc.TrackViews(context.Background(), "the-matrix")
	require.NoError(t, err)
	assert.Equal(t, int64(5), got.CountOpened)
	cache.AssertExpectations(t)
}

func TestMovieService_Update(t *testing.T) {
	entry := models.UpdateMovieEntry{Title: "The Matrix", Slug: "the-matrix"}
	updated := &models.Movie{
		ID:          "m1",
		Title:       "The Matrix",
		Slug:        "the-matrix",
		Description: "Neo",
		Poster:      "http://img/poster.jpg",
	}

	setupCache := func(c *CacheMock) {
		c.On("Invalidate", "movie:slug:the-matrix").Return(nil).Once()
		c.On("Invalidate", "movies:popular").Return(nil).Once()
	}

	t.Run("обновление публикует уведомление", func(t *testing.T) {
		repo := new(RepoMock)
		cache := new(CacheMock)
		pub := new(PublisherMock)
		repo.On("UpdateMovie", mock.Anything, "m1", entry).Return(updated, nil).Once()
		setupCache(cache)
		pub.On("Publish", "movie-updated", mock.MatchedBy(func(msg any) bool {
			info, ok := msg.(models.MovieUpdateInfo)
			return ok && info.Slug == "the-matrix" && info.Title == "The Matrix"
		})).Return(nil).Once()

		svc := NewMovieService(repo, cache, pub, newNoopLogger())
		got, err := svc.Update(context.Background(), "m1", entry)
		require.NoError(t, err)
		assert.Equal(t, "m1", got.ID)
		pub.AssertExpectations(t)
	})

	t.Run("ошибка публикации не срывает обновление", func(t *testing.T) {
		repo := new(RepoMock)
		cache := new(CacheMock)
		pub := new(PublisherMock)
		repo.On("UpdateMovie", mock.Anything, "m1", entry).Return(updated, nil).Once()
		setupCache(cache)
		pub.On("Publish", "movie-updated", mock.Anything).
			Return(errors.New("broker down")).Once()

		svc := NewMovieService(repo, cache, pub, newNoopLogger())
		got, err := svc.Update(context.Background(), "m1", entry)
		require.NoError(t, err)
		assert.Equal(t, "m1", got.ID)
	})

	t.Run("без publisher уведомления не отправляются", func(t *testing.T) {
		repo := new(RepoMock)
		cache := new(CacheMock)
		repo.On("UpdateMovie", mock.Anything, "m1", entry).Return(updated, nil).Once()
		setupCache(cache)

		svc := NewMovieService(repo, cache, nil, newNoopLogger())
		_, err := svc.Update(context.Background(), "m1", entry)
		require.NoError(t, err)
	})

	t.Run("пустой слаг выводится из названия", func(t *testing.T) {
		repo := new(RepoMock)
		cache := new(CacheMock)
		repo.On("UpdateMovie", mock.Anything, "m1",
			mock.MatchedBy(func(e models.UpdateMovieEntry) bool {
				return e.Slug == "spider-man-no-way-home"
			})).
			Return(&models.Movie{ID: "m1", Slug: "spider-man-no-way-home"}, nil).Once()
		cache.On("Invalidate", "movie:slug:spider-man-no-way-home").Return(nil).Once()
		cache.On("Invalidate", "movies:popular").Return(nil).Once()

		svc := NewMovieService(repo, cache, nil, newNoopLogger())
		got, err := svc.Update(context.Background(), "m1",
			models.UpdateMovieEntry{Title: "Spider-Man: No Way Home!"})
		require.NoError(t, err)
		assert.Equal(t, "spider-man-no-way-home", got.Slug)
		repo.AssertExpectations(t)
	})

	t.Run("фильм не найден", func(t *testing.T) {
		repo := new(RepoMock)
		cache := new(CacheMock)
		repo.On("UpdateMovie", mock.Anything, "missing", entry).
			Return(nil, mongodb.ErrNotFound).Once()

		svc := NewMovieService(repo, cache, nil, newNoopLogger())
		_, err := svc.Update(context.Background(), "missing", entry)
		assert.ErrorIs(t, err, ErrMovieNotFound)
	})
}

func TestMovieService_Create(t *testing.T) {
	repo := new(RepoMock)
	repo.On("InsertMovie", mock.Anything, models.Movie{}).Return("m1", nil).Once()

	svc := NewMovieService(repo, new(CacheMock), nil, newNoopLogger())
	id, err := svc.Create(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "m1", id)
}
