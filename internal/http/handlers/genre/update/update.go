// Package update реализует HTTP-обработчик обновления жанра.
// Доступен только администратору.
package update

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/online-cinema/internal/http/response"
	"github.com/magabrotheeeer/online-cinema/internal/lib/sl"
	"github.com/magabrotheeeer/online-cinema/internal/models"
	genreservice "github.com/magabrotheeeer/online-cinema/internal/services/genre"
)

type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики обновления жанра.
type Service interface {
	Update(ctx context.Context, id string, entry models.UpdateGenreEntry) (*models.Genre, error)
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Обновить жанр
// @Description Перезаписывает поля жанра по ID.
// @Tags Genres
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param id path string true "ID жанра"
// @Param request body models.UpdateGenreEntry true "Новые данные жанра"
// @Success 200 {object} map[string]any "Обновлённый жанр"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 403 {object} response.ErrorResponse "Недостаточно прав"
// @Failure 404 {object} response.ErrorResponse "Жанр не найден"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /genres/{id} [put]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.genre.update"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.UpdateGenreEntry
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("failed to decode request"))
		return
	}
	log.Info("request body decoded")

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}
	log.Info("all fields are validated")

	id := chi.URLParam(r, "id")

	genre, err := h.service.Update(r.Context(), id, req)
	if err != nil {
		if errors.Is(err, genreservice.ErrGenreNotFound) {
			log.Warn("genre not found", slog.String("id", id))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("genre not found"))
			return
		}
		log.Error("failed to update genre", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not update genre"))
		return
	}

	log.Info("success to update genre", slog.String("id", id))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"genre": genre,
	}))
}
