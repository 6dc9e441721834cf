// Package create реализует HTTP-обработчик создания пустого жанра.
// Жанр заполняется последующим обновлением. Доступен только администратору.
package create

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/online-cinema/internal/http/response"
	"github.com/magabrotheeeer/online-cinema/internal/lib/sl"
)

type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики создания жанра.
type Service interface {
	Create(ctx context.Context) (string, error)
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Создать жанр
// @Description Создает пустой жанр и возвращает его ID.
// @Tags Genres
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} map[string]any "ID созданного жанра"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 403 {object} response.ErrorResponse "Недостаточно прав"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /genres [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.genre.create"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id, err := h.service.Create(r.Context())
	if err != nil {
		log.Error("failed to create genre", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not create genre"))
		return
	}

	log.Info("success to create genre", slog.String("id", id))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"id": id,
	}))
}
