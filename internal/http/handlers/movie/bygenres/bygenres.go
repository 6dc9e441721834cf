// Package bygenres реализует HTTP-обработчик подбора фильмов по списку жанров.
package bygenres

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/online-cinema/internal/http/response"
	"github.com/magabrotheeeer/online-cinema/internal/lib/sl"
	"github.com/magabrotheeeer/online-cinema/internal/models"
)

// Request — список идентификаторов жанров для подбора
type Request struct {
	GenreIDs []string `json:"genreIds" validate:"required,min=1"`
}

type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики подбора фильмов по жанрам.
type Service interface {
	ByGenres(ctx context.Context, genreIDs []string) ([]*models.Movie, error)
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Фильмы по жанрам
// @Description Возвращает фильмы, относящиеся хотя бы к одному из переданных жанров.
// @Tags Movies
// @Accept  json
// @Produce  json
// @Param request body Request true "Список ID жанров"
// @Success 200 {object} map[string]any "Список фильмов"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /movies/by-genres [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.movie.bygenres"

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
	log.Info("request body decoded", slog.Any("request", req))

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	movies, err := h.service.ByGenres(r.Context(), req.GenreIDs)
	if err != nil {
		log.Error("failed to read movies by genres", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not read movies"))
		return
	}

	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"movies": movies,
	}))
}
