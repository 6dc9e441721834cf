package togglefavorite

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/online-cinema/internal/http/middlewarectx"
	"github.com/magabrotheeeer/online-cinema/internal/models"
)

// MockService реализует интерфейс togglefavorite.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) ToggleFavorite(ctx context.Context, movieID string, user *models.User) error {
	return m.Called(ctx, movieID, user).Error(0)
}

func TestToggleFavoriteHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	user := &models.User{ID: "id-1", Favorites: []string{"m1"}}

	tests := []struct {
		name           string
		body           string
		ctxUser        *models.User
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:    "успешное переключение",
			body:    `{"movieId":"m2"}`,
			ctxUser: user,
			setupMock: func(m *MockService) {
				m.On("ToggleFavorite", mock.Anything, "m2", user).Return(nil).Once()
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"movie_id":"m2"`,
		},
		{
			name:           "пустой movieId",
			body:           `{}`,
			ctxUser:        user,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `"status":"Error"`,
		},
		{
			name:           "нет пользователя в контексте",
			body:           `{"movieId":"m2"}`,
			ctxUser:        nil,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `"error":"unauthorized"`,
		},
		{
			name:    "ошибка сервиса",
			body:    `{"movieId":"m2"}`,
			ctxUser: user,
			setupMock: func(m *MockService) {
				m.On("ToggleFavorite", mock.Anything, "m2", user).
					Return(errors.New("db error")).Once()
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `"error":"could not toggle favorite"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodPut, "/users/profile/favorites", strings.NewReader(tt.body))
			if tt.ctxUser != nil {
				req = req.WithContext(context.WithValue(req.Context(), middlewarectx.User, tt.ctxUser))
			}

			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.True(t, strings.Contains(w.Body.String(), tt.expectedBody),
				"response body should contain %s, got %s", tt.expectedBody, w.Body.String())

			mockService.AssertExpectations(t)
		})
	}
}
