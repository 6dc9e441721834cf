// Package services содержит бизнес-логику операций над профилем
// пользователя, избранным и административными действиями.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/magabrotheeeer/online-cinema/internal/lib/password"
	"github.com/magabrotheeeer/online-cinema/internal/models"
	"github.com/magabrotheeeer/online-cinema/internal/storage/mongodb"
)

var (
	// ErrUserNotFound возвращается, когда пользователь с указанным ID отсутствует.
	ErrUserNotFound = errors.New("user not found")
	// ErrEmailBusy возвращается, когда новый email уже принадлежит другому пользователю.
	ErrEmailBusy = errors.New("email busy")
)

// UserRepository определяет методы для работы с пользователями в хранилище.
type UserRepository interface {
	// FindUserByID возвращает пользователя по идентификатору.
	FindUserByID(ctx context.Context, id string) (*models.User, error)
	// FindUserByEmail возвращает пользователя по email.
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
	// UpdateUserProfile перезаписывает поля профиля.
	UpdateUserProfile(ctx context.Context, id string, upd models.UserProfileUpdate) error
	// UpdateUserFavorites перезаписывает список избранного целиком.
	UpdateUserFavorites(ctx context.Context, id string, favorites []string) error
	// DeleteUser удаляет пользователя и возвращает удалённый документ.
	DeleteUser(ctx context.Context, id string) (*models.User, error)
	// CountUsers возвращает количество пользователей.
	CountUsers(ctx context.Context) (int64, error)
	// ListUsers возвращает список пользователей с опциональным поиском по email.
	ListUsers(ctx context.Context, searchTerm string) ([]*models.User, error)
}

// MovieRepository определяет методы для разворачивания избранного в фильмы.
type MovieRepository interface {
	FindMoviesByIDs(ctx context.Context, ids []string) ([]*models.Movie, error)
}

// UserService реализует операции над пользователями.
type UserService struct {
	users  UserRepository
	movies MovieRepository
	log    *slog.Logger
}

// NewUserService создает новый экземпляр UserService.
func NewUserService(users UserRepository, movies MovieRepository, log *slog.Logger) *UserService {
	return &UserService{
		users:  users,
		movies: movies,
		log:    log,
	}
}

// ByID возвращает пользователя по идентификатору.
func (s *UserService) ByID(ctx context.Context, id string) (*models.User, error) {
	const op = "user.ByID"
	user, err := s.users.FindUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongodb.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return user, nil
}

// UpdateProfile обновляет email, пароль и роль пользователя.
//
// Проверка занятости email и последующая запись не атомарны: два
// конкурентных запроса с одним email могут оба пройти проверку.
// Пустой пароль оставляет текущий хэш; непустой хэшируется заново
// со свежей солью. Роль меняется только при явно переданном значении,
// включая явное false.
func (s *UserService) UpdateProfile(ctx context.Context, id string, entry models.UpdateUserEntry) error {
	const op = "user.UpdateProfile"

	if _, err := s.users.FindUserByID(ctx, id); err != nil {
		if errors.Is(err, mongodb.ErrNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("%s: %w", op, err)
	}

	sameUser, err := s.users.FindUserByEmail(ctx, entry.Email)
	if err == nil && sameUser.ID != id {
		return ErrEmailBusy
	}
	if err != nil && !errors.Is(err, mongodb.ErrNotFound) {
		return fmt.Errorf("%s: %w", op, err)
	}

	upd := models.UserProfileUpdate{
		Email:   entry.Email,
		IsAdmin: entry.IsAdmin,
	}
	if entry.Password != "" {
		hashed, err := password.GetHash(entry.Password)
		if err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		upd.PasswordHash = &hashed
	}

	if err := s.users.UpdateUserProfile(ctx, id, upd); err != nil {
		if errors.Is(err, mongodb.ErrNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// ToggleFavorite переключает фильм в списке избранного пользователя:
// удаляет, если он там есть, иначе добавляет в конец.
//
// Список пишется снимком целиком: при двух конкурентных переключениях
// у одного пользователя сохранится результат последней записи.
func (s *UserService) ToggleFavorite(ctx context.Context, movieID string, user *models.User) error {
	const op = "user.ToggleFavorite"

	favorites := user.Favorites
	found := false
	next := make([]string, 0, len(favorites)+1)
	for _, id := range favorites {
		if id == movieID {
			found = true
			continue
		}
		next = append(next, id)
	}
	if !found {
		next = append(next, movieID)
	}

	if err := s.users.UpdateUserFavorites(ctx, user.ID, next); err != nil {
		if errors.Is(err, mongodb.ErrNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// FavoriteMovies возвращает фильмы из списка избранного пользователя.
func (s *UserService) FavoriteMovies(ctx context.Context, id string) ([]*models.Movie, error) {
	const op = "user.FavoriteMovies"

	user, err := s.ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	movies, err := s.movies.FindMoviesByIDs(ctx, user.Favorites)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return movies, nil
}

// ListAll возвращает список пользователей без хэшей паролей,
// с опциональным поиском по подстроке email без учёта регистра.
func (s *UserService) ListAll(ctx context.Context, searchTerm string) ([]*models.User, error) {
	const op = "user.ListAll"
	users, err := s.users.ListUsers(ctx, searchTerm)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return users, nil
}

// Count возвращает количество зарегистрированных пользователей.
func (s *UserService) Count(ctx context.Context) (int64, error) {
	const op = "user.Count"
	count, err := s.users.CountUsers(ctx)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return count, nil
}

// Delete удаляет пользователя и возвращает удалённую запись.
func (s *UserService) Delete(ctx context.Context, id string) (*models.User, error) {
	const op = "user.Delete"
	user, err := s.users.DeleteUser(ctx, id)
	if err != nil {
		if errors.Is(err, mongodb.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("user deleted", slog.String("id", id))
	return user, nil
}
