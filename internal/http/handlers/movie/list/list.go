// Package list реализует HTTP-обработчик получения списка фильмов
// с опциональным поиском по названию.
package list

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

// Service описывает интерфейс бизнес-логики списка фильмов.
type Service interface {
	GetAll(ctx context.Context, searchTerm string) ([]*models.Movie, error)
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Список фильмов
// @Description Возвращает фильмы с поиском по подстроке названия без учёта регистра.
// @Tags Movies
// @Produce  json
// @Param searchTerm query string false "Подстрока поиска по названию"
// @Success 200 {object} map[string]any "Список фильмов"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /movies [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.movie.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	searchTerm := r.URL.Query().Get("searchTerm")

	movies, err := h.service.GetAll(r.Context(), searchTerm)
	if err != nil {
		log.Error("failed to list movies", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list movies"))
		return
	}

	log.Info("success to list movies", slog.Int("count", len(movies)))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"movies": movies,
	}))
}
