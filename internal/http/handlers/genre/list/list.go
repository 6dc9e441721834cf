// Package list реализует HTTP-обработчик получения списка жанров
// с опциональным поиском.
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

// Service описывает интерфейс бизнес-логики списка жанров.
type Service interface {
	GetAll(ctx context.Context, searchTerm string) ([]*models.Genre, error)
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Список жанров
// @Description Возвращает жанры с поиском по подстроке в названии, слаге или описании.
// @Tags Genres
// @Produce  json
// @Param searchTerm query string false "Подстрока поиска"
// @Success 200 {object} map[string]any "Список жанров"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /genres [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.genre.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	searchTerm := r.URL.Query().Get("searchTerm")

	genres, err := h.service.GetAll(r.Context(), searchTerm)
	if err != nil {
		log.Error("failed to list genres", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list genres"))
		return
	}

	log.Info("success to list genres", slog.Int("count", len(genres)))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"genres": genres,
	}))
}
