// Package update реализует HTTP-обработчик обновления профиля пользователя.
//
// Обработчик обслуживает два маршрута: обновление собственного профиля
// (ID берётся из контекста) и административное обновление по ID из URL.
// Занятый другим пользователем email возвращается как 404 "email busy".
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

	"github.com/magabrotheeeer/online-cinema/internal/http/middlewarectx"
	"github.com/magabrotheeeer/online-cinema/internal/http/response"
	"github.com/magabrotheeeer/online-cinema/internal/lib/sl"
	"github.com/magabrotheeeer/online-cinema/internal/models"
	userservice "github.com/magabrotheeeer/online-cinema/internal/services/user"
)

type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики обновления профиля.
type Service interface {
	UpdateProfile(ctx context.Context, id string, entry models.UpdateUserEntry) error
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Обновить профиль пользователя
// @Description Перезаписывает email, пароль и роль. Без параметра id обновляет текущего пользователя.
// @Tags Users
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param id path string false "ID пользователя (только для администратора)"
// @Param request body models.UpdateUserEntry true "Новые данные профиля"
// @Success 200 {object} response.Response "Профиль обновлён"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 404 {object} response.ErrorResponse "Пользователь не найден или email занят"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /users/profile [put]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.user.update"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.UpdateUserEntry
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
	if id == "" {
		user, ok := middlewarectx.UserFromContext(r.Context())
		if !ok {
			log.Error("user not found in context")
			w.WriteHeader(http.StatusUnauthorized)
			render.JSON(w, r, response.Error("unauthorized"))
			return
		}
		id = user.ID
	}

	if err := h.service.UpdateProfile(r.Context(), id, req); err != nil {
		switch {
		case errors.Is(err, userservice.ErrEmailBusy):
			log.Warn("email busy", slog.String("email", req.Email))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("email busy"))
		case errors.Is(err, userservice.ErrUserNotFound):
			log.Warn("user not found", slog.String("id", id))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("user not found"))
		default:
			log.Error("failed to update profile", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("could not update profile"))
		}
		return
	}

	log.Info("success to update profile", slog.String("id", id))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"id": id,
	}))
}
