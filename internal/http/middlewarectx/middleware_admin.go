package middlewarectx

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/render"
	"github.com/magabrotheeeer/online-cinema/internal/http/response"
)

// AdminOnlyMiddleware пропускает дальше только пользователей с ролью администратора.
// Должен стоять после JWTMiddleware.
func AdminOnlyMiddleware(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := UserFromContext(r.Context())
			if !ok {
				http.Error(w, "User identification missing", http.StatusUnauthorized)
				return
			}

			if !user.IsAdmin {
				log.Warn("forbidden: admin role required", slog.String("user_id", user.ID))
				render.Status(r, http.StatusForbidden)
				render.JSON(w, r, response.Error("you have no rights"))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
