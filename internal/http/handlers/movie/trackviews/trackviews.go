// Package trackviews реализует HTTP-обработчик учёта просмотра фильма:
// каждый вызов увеличивает счётчик открытий по слагу.
package trackviews

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/online-cinema/internal/http/response"
	"github.com/magabrotheeeer/online-cinema/internal/lib/sl"
	"github.com/magabrotheeeer/online-cinema/internal/models"
	movieservice "github.com/magabrotheeeer/online-cinema/internal/services/movie"
)

// Request — слаг фильма, просмотр которого учитывается
type Request struct {
	Slug string `json:"slug" validate:"required"`
}

type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики учёта просмотров.
type Service interface {
	TrackViews(ctx context.Context, slug string) (*models.Movie, error)
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Учесть просмотр фильма
// @Description Увеличивает счётчик открытий фильма по слагу.
// @Tags Movies
// @Accept  json
// @Produce  json
// @Param request body Request true "Слаг фильма"
// @Success 200 {object} map[string]any "Обновлённый фильм"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 404 {object} response.ErrorResponse "Фильм не найден"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /movies/track-views [put]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.movie.trackviews"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req Request
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("failed to decode request"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	movie, err := h.service.TrackViews(r.Context(), req.Slug)
	if err != nil {
		if errors.Is(err, movieservice.ErrMovieNotFound) {
			log.Warn("movie not found", slog.String("slug", req.Slug))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("movie not found"))
			return
		}
		log.Error("failed to track views", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not track views"))
		return
	}

	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"movie": movie,
	}))
}
