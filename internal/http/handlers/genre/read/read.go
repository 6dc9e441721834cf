// Package read реализует HTTP-обработчик получения жанра по ID.
// Доступен только администратору.
package read

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/online-cinema/internal/http/response"
	"github.com/magabrotheeeer/online-cinema/internal/lib/sl"
	"github.com/magabrotheeeer/online-cinema/internal/models"
	genreservice "github.com/magabrotheeeer/online-cinema/internal/services/genre"
)

type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики чтения жанра.
type Service interface {
	ByID(ctx context.Context, id string) (*models.Genre, error)
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Получить жанр по ID
// @Tags Genres
// @Produce  json
// @Security BearerAuth
// @Param id path string true "ID жанра"
// @Success 200 {object} map[string]any "Жанр"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 403 {object} response.ErrorResponse "Недостаточно прав"
// @Failure 404 {object} response.ErrorResponse "Жанр не найден"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /genres/{id} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.genre.read"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id := chi.URLParam(r, "id")

	genre, err := h.service.ByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, genreservice.ErrGenreNotFound) {
			log.Warn("genre not found", slog.String("id", id))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("genre not found"))
			return
		}
		log.Error("failed to read genre", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not read genre"))
		return
	}

	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"genre": genre,
	}))
}
