// Package byslug реализует HTTP-обработчик получения жанра по слагу.
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
	genreservice "github.com/magabrotheeeer/online-cinema/internal/services/genre"
)

type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики чтения жанра по слагу.
type Service interface {
	BySlug(ctx context.Context, slug string) (*models.Genre, error)
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Получить жанр по слагу
// @Tags Genres
// @Produce  json
// @Param slug path string true "Слаг жанра"
// @Success 200 {object} map[string]any "Жанр"
// @Failure 404 {object} response.ErrorResponse "Жанр не найден"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /genres/by-slug/{slug} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.genre.byslug"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	slug := chi.URLParam(r, "slug")

	genre, err := h.service.BySlug(r.Context(), slug)
	if err != nil {
		if errors.Is(err, genreservice.ErrGenreNotFound) {
			log.Warn("genre not found", slog.String("slug", slug))
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
