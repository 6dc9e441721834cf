// Package popular реализует HTTP-обработчик получения самых просматриваемых фильмов.
package popular

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/online-cinema/internal/http/response"
	"github.com/magabrotheeeer/online-cinema/internal/lib/sl"
	"github.com/magabrotheeeer/online-cinema/internal/models"
)

type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики популярных фильмов.
type Service interface {
	MostPopular(ctx context.Context) ([]*models.Movie, error)
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Самые просматриваемые фильмы
// @Description Возвращает фильмы с просмотрами, отсортированные по убыванию счётчика.
// @Tags Movies
// @Produce  json
// @Success 200 {object} map[string]any "Список фильмов"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /movies/most-popular [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.movie.popular"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	movies, err := h.service.MostPopular(r.Context())
	if err != nil {
		log.Error("failed to read popular movies", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not read popular movies"))
		return
	}

	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"movies": movies,
	}))
}
