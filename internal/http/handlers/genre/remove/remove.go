// Package remove реализует HTTP-обработчик удаления жанра по ID.
// Доступен только администратору.
package remove

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

// Service описывает интерфейс бизнес-логики удаления жанра.
type Service interface {
	Delete(ctx context.Context, id string) (*models.Genre, error)
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Удалить жанр
// @Tags Genres
// @Produce  json
// @Security BearerAuth
// @Param id path string true "ID жанра"
// @Success 200 {object} map[string]any "Удалённый жанр"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 403 {object} response.ErrorResponse "Недостаточно прав"
// @Failure 404 {object} response.ErrorResponse "Жанр не найден"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /genres/{id} [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.genre.remove"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id := chi.URLParam(r, "id")

	genre, err := h.service.Delete(r.Context(), id)
	if err != nil {
		if errors.Is(err, genreservice.ErrGenreNotFound) {
			log.Warn("genre not found", slog.String("id", id))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("genre not found"))
			return
		}
		log.Error("failed to delete genre", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not delete genre"))
		return
	}

	log.Info("success to delete genre", slog.String("id", id))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"genre": genre,
	}))
}
