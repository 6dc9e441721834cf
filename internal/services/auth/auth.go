// Package services содержит логику бизнес-уровня для регистрации,
// входа и аутентификации пользователей по JWT.
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/online-cinema/internal/lib/jwt"
	"github.com/magabrotheeeer/online-cinema/internal/lib/password"
	"github.com/magabrotheeeer/online-cinema/internal/models"
	"github.com/magabrotheeeer/online-cinema/internal/storage/mongodb"
)

var (
	// ErrInvalidCredentials возвращается при неверной паре email/пароль.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrEmailTaken возвращается при попытке зарегистрировать занятый email.
	ErrEmailTaken = errors.New("email already taken")
	// ErrInvalidToken возвращается, когда токен не проходит проверку подписи
	// или ссылается на несуществующего пользователя.
	ErrInvalidToken = errors.New("invalid token")
)

// UserRepository описывает контракт для работы с пользователями в хранилище.
type UserRepository interface {
	// FindUserByID возвращает пользователя по идентификатору
	// или ошибку, оборачивающую mongodb.ErrNotFound.
	FindUserByID(ctx context.Context, id string) (*models.User, error)

	// FindUserByEmail возвращает пользователя по email
	// или ошибку, оборачивающую mongodb.ErrNotFound.
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)

	// InsertUser сохраняет нового пользователя и возвращает его ID.
	InsertUser(ctx context.Context, user models.User) (string, error)
}

// AuthService отвечает за регистрацию, авторизацию и аутентификацию по JWT.
type AuthService struct {
	users    UserRepository
	jwtMaker jwt.Maker
}

// NewAuthService создает новый экземпляр AuthService.
func NewAuthService(users UserRepository, jwtMaker jwt.Maker) *AuthService {
	return &AuthService{
		users:    users,
		jwtMaker: jwtMaker,
	}
}

// Register создает нового пользователя с хэшированием пароля и выдает токен.
//
// Email должен быть свободен; проверка выполняется перед записью
// и не атомарна с ней.
func (s *AuthService) Register(ctx context.Context, email, rawPassword string) (*models.User, string, error) {
	const op = "auth.Register"

	if _, err := s.users.FindUserByEmail(ctx, email); err == nil {
		return nil, "", ErrEmailTaken
	} else if !errors.Is(err, mongodb.ErrNotFound) {
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}

	hashed, err := password.GetHash(rawPassword)
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}

	user := models.User{
		Email:        email,
		PasswordHash: hashed,
	}
	id, err := s.users.InsertUser(ctx, user)
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}

	token, err := s.jwtMaker.GenerateToken(id)
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}

	created, err := s.users.FindUserByID(ctx, id)
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}
	return created, token, nil
}

// Login проверяет пароль пользователя и выдает JWT.
func (s *AuthService) Login(ctx context.Context, email, rawPassword string) (*models.User, string, error) {
	const op = "auth.Login"

	user, err := s.users.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, mongodb.ErrNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}
	if err := password.CompareHash(user.PasswordHash, rawPassword); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.jwtMaker.GenerateToken(user.ID)
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}
	return user, token, nil
}

// Authenticate проверяет подпись токена и возвращает живую запись
// пользователя из хранилища.
//
// Токен, ссылающийся на удалённого пользователя, считается недействительным.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*models.User, error) {
	const op = "auth.Authenticate"

	claims, err := s.jwtMaker.ParseToken(token)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidToken)
	}

	user, err := s.users.FindUserByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, mongodb.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrInvalidToken)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return user, nil
}
