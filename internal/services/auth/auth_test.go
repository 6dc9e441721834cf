package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/online-cinema/internal/lib/jwt"
	"github.com/magabrotheeeer/online-cinema/internal/lib/password"
	"github.com/magabrotheeeer/online-cinema/internal/models"
	"github.com/magabrotheeeer/online-cinema/internal/storage/mongodb"
)

type RepoMock struct{ mock.Mock }

func (m *RepoMock) FindUserByID(ctx context.Context, id string) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *RepoMock) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *RepoMock) InsertUser(ctx context.Context, user models.User) (string, error) {
	args := m.Called(ctx, user)
	return args.String(0), args.Error(1)
}

func newMaker() jwt.Maker {
	return jwt.NewJWTMaker("test-secret", time.Hour)
}

func TestAuthService_Register(t *testing.T) {
	tests := []struct {
		name       string
		setupMocks func(r *RepoMock)
		wantErr    error
	}{
		{
			name: "успешная регистрация",
			setupMocks: func(r *RepoMock) {
				r.On("FindUserByEmail", mock.Anything, "new@example.com").
					Return(nil, mongodb.ErrNotFound).Once()
				r.On("InsertUser", mock.Anything, mock.MatchedBy(func(u models.User) bool {
					return u.Email == "new@example.com" && u.PasswordHash != "secret123"
				})).Return("id-1", nil).Once()
				r.On("FindUserByID", mock.Anything, "id-1").
					Return(&models.User{ID: "id-1", Email: "new@example.com"}, nil).Once()
			},
		},
		{
			name: "email уже занят",
			setupMocks: func(r *RepoMock) {
				r.On("FindUserByEmail", mock.Anything, "new@example.com").
					Return(&models.User{ID: "other", Email: "new@example.com"}, nil).Once()
			},
			wantErr: ErrEmailTaken,
		},
		{
			name: "ошибка хранилища при проверке email",
			setupMocks: func(r *RepoMock) {
				r.On("FindUserByEmail", mock.Anything, "new@example.com").
					Return(nil, errors.New("db down")).Once()
			},
			wantErr: errors.New("db down"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(RepoMock)
			tt.setupMocks(repo)
			svc := NewAuthService(repo, newMaker())

			user, token, err := svc.Register(context.Background(), "new@example.com", "secret123")
			if tt.wantErr != nil {
				require.Error(t, err)
				if errors.Is(tt.wantErr, ErrEmailTaken) {
					assert.ErrorIs(t, err, ErrEmailTaken)
				}
			} else {
				require.NoError(t, err)
				assert.Equal(t, "id-1", user.ID)
				assert.NotEmpty(t, token)
			}
			repo.AssertExpectations(t)
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	hash, err := password.GetHash("secret123")
	require.NoError(t, err)
	stored := &models.User{ID: "id-1", Email: "user@example.com", PasswordHash: hash}

	tests := []struct {
		name       string
		password   string
		setupMocks func(r *RepoMock)
		wantErr    error
	}{
		{
			name:     "успешный вход",
			password: "secret123",
			setupMocks: func(r *RepoMock) {
				r.On("FindUserByEmail", mock.Anything, "user@example.com").Return(stored, nil).Once()
			},
		},
		{
			name:     "неверный пароль",
			password: "wrong-password",
			setupMocks: func(r *RepoMock) {
				r.On("FindUserByEmail", mock.Anything, "user@example.com").Return(stored, nil).Once()
			},
			wantErr: ErrInvalidCredentials,
		},
		{
			name:     "пользователь не найден",
			password: "secret123",
			setupMocks: func(r *RepoMock) {
				r.On("FindUserByEmail", mock.Anything, "user@example.com").
					Return(nil, mongodb.ErrNotFound).Once()
			},
			wantErr: ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(RepoMock)
			tt.setupMocks(repo)
			svc := NewAuthService(repo, newMaker())

			user, token, err := svc.Login(context.Background(), "user@example.com", tt.password)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				assert.Equal(t, "id-1", user.ID)
				assert.NotEmpty(t, token)
			}
			repo.AssertExpectations(t)
		})
	}
}

func TestAuthService_Authenticate(t *testing.T) {
	maker := newMaker()
	token, err := maker.GenerateToken("id-1")
	require.NoError(t, err)

	t.Run("действительный токен", func(t *testing.T) {
		repo := new(RepoMock)
		repo.On("FindUserByID", mock.Anything, "id-1").
			Return(&models.User{ID: "id-1", Email: "user@example.com"}, nil).Once()
		svc := NewAuthService(repo, maker)

		user, err := svc.Authenticate(context.Background(), token)
		require.NoError(t, err)
		assert.Equal(t, "id-1", user.ID)
		repo.AssertExpectations(t)
	})

	t.Run("токен удалённого пользователя недействителен", func(t *testing.T) {
		repo := new(RepoMock)
		repo.On("FindUserByID", mock.Anything, "id-1").
			Return(nil, mongodb.ErrNotFound).Once()
		svc := NewAuthService(repo, maker)

		_, err := svc.Authenticate(context.Background(), token)
		assert.ErrorIs(t, err, ErrInvalidToken)
		repo.AssertExpectations(t)
	})

	t.Run("мусор вместо токена", func(t *testing.T) {
		repo := new(RepoMock)
		svc := NewAuthService(repo, maker)

		_, err := svc.Authenticate(context.Background(), "garbage")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}
