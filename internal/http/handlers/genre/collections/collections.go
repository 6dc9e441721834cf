// Package collections реализует HTTP-обработчик получения подборок жанров
// для главной страницы: каждый жанр с постером одного из его фильмов.
package collections

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

// Service описывает интерфейс бизнес-логики подборок.
type Service interface {
	Collections(ctx context.Context) ([]models.Collection, error)
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Подборки жанров
// @Description Возвращает все жанры с обложкой из одного из фильмов жанра.
// @Tags Genres
// @Produce  json
// @Success 200 {object} map[string]any "Список подборок"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /genres/collections [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.genre.collections"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	collections, err := h.service.Collections(r.Context())
	if err != nil {
		log.Error("failed to build collections", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not build collections"))
		return
	}

	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"collections": collections,
	}))
}
