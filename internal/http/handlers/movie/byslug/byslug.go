// Package byslug реализует HTTP-обработчик получения фильма по слагу.
package byslug

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

// Service описывает интерфейс бизнес-логики чтения фильма по слагу.
type Service interface {
	BySlug(ctx context.Context, slug string) (*models.Movie, error)
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Получить фильм по слагу
// @Tags Movies
// @Produce  json
// @Param slug path string true "Слаг фильма"
// @Success 200 {object} map[string]any "Фильм"
// @Failure 404 {object} response.ErrorResponse "Фильм не найден"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /movies/by-slug/{slug} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.movie.byslug"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	slug := chi.URLParam(r, "slug")

	movie, err := h.service.BySlug(r.Context(), slug)
	if err != nil {
		if errors.Is(err, movieservice.ErrMovieNotFound) {
			log.Warn("movie not found", slog.String("slug", slug))
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
