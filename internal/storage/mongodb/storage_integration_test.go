package mongodb

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tcmongo "github.com/testcontainers/testcontainers-go/modules/mongodb"

	"github.com/magabrotheeeer/online-cinema/internal/models"
)

// setupTestStorage поднимает контейнер MongoDB и возвращает подключенное хранилище
func setupTestStorage(t *testing.T) (*Storage, func()) {
	ctx := context.Background()

	container, err := tcmongo.Run(ctx, "mongo:6")
	require.NoError(t, err, "failed to start container")

	connStr, err := container.ConnectionString(ctx)
	require.NoError(t, err, "failed to get connection string")

	storage, err := New(ctx, connStr, "online-cinema-test")
	require.NoError(t, err, "failed to create storage")

	cleanup := func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = storage.Close(closeCtx)
		_ = container.Terminate(ctx)
	}

	return storage, cleanup
}

func TestStorage_Users(t *testing.T) {
	storage, cleanup := setupTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	id, err := storage.InsertUser(ctx, models.User{
		Email:        "user@example.com",
		PasswordHash: "hashed",
	})
	require.NoError(t, err)
	require.NotEmpty(t, id)

	t.Run("поиск по id и email", func(t *testing.T) {
		byID, err := storage.FindUserByID(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, "user@example.com", byID.Email)
		assert.False(t, byID.IsAdmin)
		assert.NotNil(t, byID.Favorites)

		byEmail, err := storage.FindUserByEmail(ctx, "user@example.com")
		require.NoError(t, err)
		assert.Equal(t, id, byEmail.ID)

		_, err = storage.FindUserByID(ctx, "missing")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("обновление профиля с указателями", func(t *testing.T) {
		isAdmin := true
		newHash := "new-hash"
		err := storage.UpdateUserProfile(ctx, id, models.UserProfileUpdate{
			Email:        "renamed@example.com",
			PasswordHash: &newHash,
			IsAdmin:      &isAdmin,
		})
		require.NoError(t, err)

		got, err := storage.FindUserByID(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, "renamed@example.com", got.Email)
		assert.Equal(t, "new-hash", got.PasswordHash)
		assert.True(t, got.IsAdmin)

		// nil-указатели не перезаписывают пароль и роль
		err = storage.UpdateUserProfile(ctx, id, models.UserProfileUpdate{
			Email: "renamed@example.com",
		})
		require.NoError(t, err)

		got, err = storage.FindUserByID(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, "new-hash", got.PasswordHash)
		assert.True(t, got.IsAdmin)

		err = storage.UpdateUserProfile(ctx, "missing", models.UserProfileUpdate{Email: "x@example.com"})
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("избранное перезаписывается целиком", func(t *testing.T) {
		require.NoError(t, storage.UpdateUserFavorites(ctx, id, []string{"m1", "m2"}))
		got, err := storage.FindUserByID(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, []string{"m1", "m2"}, got.Favorites)

		require.NoError(t, storage.UpdateUserFavorites(ctx, id, []string{"m3"}))
		got, err = storage.FindUserByID(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, []string{"m3"}, got.Favorites)
	})

	t.Run("список и количество", func(t *testing.T) {
		_, err := storage.InsertUser(ctx, models.User{Email: "second@example.com", PasswordHash: "h"})
		require.NoError(t, err)

		count, err := storage.CountUsers(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(2), count)

		all, err := storage.ListUsers(ctx, "")
		require.NoError(t, err)
		assert.Len(t, all, 2)
		for _, u := range all {
			assert.Empty(t, u.PasswordHash, "hash must not leak into listing")
		}

		// Поиск по подстроке без учёта регистра
		filtered, err := storage.ListUsers(ctx, "SECOND")
		require.NoError(t, err)
		require.Len(t, filtered, 1)
		assert.Equal(t, "second@example.com", filtered[0].Email)
	})

	t.Run("удаление возвращает документ", func(t *testing.T) {
		deleted, err := storage.DeleteUser(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, id, deleted.ID)

		_, err = storage.FindUserByID(ctx, id)
		assert.ErrorIs(t, err, ErrNotFound)

		_, err = storage.DeleteUser(ctx, id)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestStorage_Movies(t *testing.T) {
	storage, cleanup := setupTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	id, err := storage.InsertMovie(ctx, models.Movie{})
	require.NoError(t, err)

	entry := models.UpdateMovieEntry{
		Title:       "The Matrix",
		Slug:        "the-matrix",
		Description: "Neo discovers the truth",
		Poster:      "http://img/poster.jpg",
		BigPoster:   "http://img/big.jpg",
		Genres:      []string{"g1"},
	}

	t.Run("обновление карточки", func(t *testing.T) {
		updated, err := storage.UpdateMovie(ctx, id, entry)
		require.NoError(t, err)
		assert.Equal(t, "The Matrix", updated.Title)
		assert.Equal(t, "the-matrix", updated.Slug)

		_, err = storage.UpdateMovie(ctx, "missing", entry)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("поиск по слагу, id и жанрам", func(t *testing.T) {
		bySlug, err := storage.FindMovieBySlug(ctx, "the-matrix")
		require.NoError(t, err)
		assert.Equal(t, id, bySlug.ID)

		byID, err := storage.FindMovieByID(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, "the-matrix", byID.Slug)

		byGenres, err := storage.FindMoviesByGenres(ctx, []string{"g1", "g2"})
		require.NoError(t, err)
		assert.Len(t, byGenres, 1)

		byIDs, err := storage.FindMoviesByIDs(ctx, []string{id})
		require.NoError(t, err)
		assert.Len(t, byIDs, 1)

		empty, err := storage.FindMoviesByIDs(ctx, nil)
		require.NoError(t, err)
		assert.Empty(t, empty)
	})

	t.Run("поиск по подстроке названия", func(t *testing.T) {
		found, err := storage.ListMovies(ctx, "matrix")
		require.NoError(t, err)
		assert.Len(t, found, 1)

		none, err := storage.ListMovies(ctx, "nothing-here")
		require.NoError(t, err)
		assert.Empty(t, none)
	})

	t.Run("счётчик просмотров и популярное", func(t *testing.T) {
		popular, err := storage.FindMostPopularMovies(ctx)
		require.NoError(t, err)
		assert.Empty(t, popular, "movies without views are not popular")

		updated, err := storage.IncMovieCountOpened(ctx, "the-matrix")
		require.NoError(t, err)
		assert.Equal(t, int64(1), updated.CountOpened)

		popular, err = storage.FindMostPopularMovies(ctx)
		require.NoError(t, err)
		require.Len(t, popular, 1)
		assert.Equal(t, id, popular[0].ID)

		_, err = storage.IncMovieCountOpened(ctx, "missing")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("удаление", func(t *testing.T) {
		deleted, err := storage.DeleteMovie(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, id, deleted.ID)

		_, err = storage.FindMovieByID(ctx, id)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestStorage_Genres(t *testing.T) {
	storage, cleanup := setupTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	id, err := storage.InsertGenre(ctx, models.Genre{})
	require.NoError(t, err)

	updated, err := storage.UpdateGenre(ctx, id, models.UpdateGenreEntry{
		Name:        "Action",
		Slug:        "action",
		Description: "Explosions",
		Icon:        "flame",
	})
	require.NoError(t, err)
	assert.Equal(t, "Action", updated.Name)

	bySlug, err := storage.FindGenreBySlug(ctx, "action")
	require.NoError(t, err)
	assert.Equal(t, id, bySlug.ID)

	all, err := storage.ListGenres(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 1)

	filtered, err := storage.ListGenres(ctx, "explo")
	require.NoError(t, err)
	assert.Len(t, filtered, 1)

	deleted, err := storage.DeleteGenre(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, id, deleted.ID)

	_, err = storage.FindGenreBySlug(ctx, "action")
	assert.ErrorIs(t, err, ErrNotFound)
}
