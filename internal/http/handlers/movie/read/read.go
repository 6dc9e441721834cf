// Package read реализует HTTP-обработчик получения фильма по ID.
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
	movieservice "github.com/magabrotheeeer/online-cinema/internal/services/movie"
)

type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики чтения фильма.
type Service interface {
	ByID(ctx context.Context, id string) (*models.Movie, error)
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Получить фильм по ID
// @Tags Movies
// @Produce  json
// @Security BearerAuth
// @Param id path string true "ID фильма"
// @Success 200 {object} map[string]any "Фильм"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 403 {object} response.ErrorResponse "Недостаточно прав"
// @Failure 404 {object} response.ErrorResponse "Фильм не найден"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /movies/{id} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.movie.read"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id := chi.URLParam(r, "id")

	movie, err := h.service.ByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, movieservice.ErrMovieNotFound) {
			log.Warn("movie not found", slog.String("id", id))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("movie not found"))
			return
		}
		log.Error("failed to read movie", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not read movie"))
		return
	}

	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"movie": movie,
	}))
}
