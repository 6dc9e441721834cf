// Package onlinecinema предоставляет маршруты для основного приложения.
package onlinecinema

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/magabrotheeeer/online-cinema/internal/http/handlers/auth/login"
	"github.com/magabrotheeeer/online-cinema/internal/http/handlers/auth/register"
	genrebyslug "github.com/magabrotheeeer/online-cinema/internal/http/handlers/genre/byslug"
	"github.com/magabrotheeeer/online-cinema/internal/http/handlers/genre/collections"
	genrecreate "github.com/magabrotheeeer/online-cinema/internal/http/handlers/genre/create"
	genrelist "github.com/magabrotheeeer/online-cinema/internal/http/handlers/genre/list"
	genreread "github.com/magabrotheeeer/online-cinema/internal/http/handlers/genre/read"
	genreremove "github.com/magabrotheeeer/online-cinema/internal/http/handlers/genre/remove"
	genreupdate "github.com/magabrotheeeer/online-cinema/internal/http/handlers/genre/update"
	"github.com/magabrotheeeer/online-cinema/internal/http/handlers/movie/bygenres"
	moviebyslug "github.com/magabrotheeeer/online-cinema/internal/http/handlers/movie/byslug"
	moviecreate "github.com/magabrotheeeer/online-cinema/internal/http/handlers/movie/create"
	movielist "github.com/magabrotheeeer/online-cinema/internal/http/handlers/movie/list"
	"github.com/magabrotheeeer/online-cinema/internal/http/handlers/movie/popular"
	movieread "github.com/magabrotheeeer/online-cinema/internal/http/handlers/movie/read"
	movieremove "github.com/magabrotheeeer/online-cinema/internal/http/handlers/movie/remove"
	"github.com/magabrotheeeer/online-cinema/internal/http/handlers/movie/trackviews"
	movieupdate "github.com/magabrotheeeer/online-cinema/internal/http/handlers/movie/update"
	"github.com/magabrotheeeer/online-cinema/internal/http/handlers/user/count"
	"github.com/magabrotheeeer/online-cinema/internal/http/handlers/user/favorites"
	userlist "github.com/magabrotheeeer/online-cinema/internal/http/handlers/user/list"
	"github.com/magabrotheeeer/online-cinema/internal/http/handlers/user/profile"
	userread "github.com/magabrotheeeer/online-cinema/internal/http/handlers/user/read"
	userremove "github.com/magabrotheeeer/online-cinema/internal/http/handlers/user/remove"
	"github.com/magabrotheeeer/online-cinema/internal/http/handlers/user/togglefavorite"
	userupdate "github.com/magabrotheeeer/online-cinema/internal/http/handlers/user/update"
	"github.com/magabrotheeeer/online-cinema/internal/http/middlewarectx"
	authservice "github.com/magabrotheeeer/online-cinema/internal/services/auth"
	genreservice "github.com/magabrotheeeer/online-cinema/internal/services/genre"
	movieservice "github.com/magabrotheeeer/online-cinema/internal/services/movie"
	userservice "github.com/magabrotheeeer/online-cinema/internal/services/user"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger,
	authService *authservice.AuthService,
	userService *userservice.UserService,
	movieService *movieservice.MovieService,
	genreService *genreservice.GenreService,
) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	r.Route("/api/v1", func(r chi.Router) {
		// Открытые конечные точки
		r.Post("/auth/register", register.New(logger, authService).ServeHTTP)
		r.Post("/auth/login", login.New(logger, authService).ServeHTTP)

		r.Get("/movies", movielist.New(logger, movieService).ServeHTTP)
		r.Get("/movies/by-slug/{slug}", moviebyslug.New(logger, movieService).ServeHTTP)
		r.Get("/movies/most-popular", popular.New(logger, movieService).ServeHTTP)
		r.Post("/movies/by-genres", bygenres.New(logger, movieService).ServeHTTP)
		r.Put("/movies/track-views", trackviews.New(logger, movieService).ServeHTTP)

		r.Get("/genres", genrelist.New(logger, genreService).ServeHTTP)
		r.Get("/genres/by-slug/{slug}", genrebyslug.New(logger, genreService).ServeHTTP)
		r.Get("/genres/collections", collections.New(logger, genreService).ServeHTTP)

		// Группа с JWT аутентификацией
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(authService, logger))
			r.Use(middlewarectx.RateLimitMiddleware(logger))

			r.Get("/users/profile", profile.New(logger).ServeHTTP)
			r.Put("/users/profile", userupdate.New(logger, userService).ServeHTTP)
			r.Get("/users/profile/favorites", favorites.New(logger, userService).ServeHTTP)
			r.Put("/users/profile/favorites", togglefavorite.New(logger, userService).ServeHTTP)

			// Административные конечные точки
			r.Group(func(r chi.Router) {
				r.Use(middlewarectx.AdminOnlyMiddleware(logger))

				r.Get("/users", userlist.New(logger, userService).ServeHTTP)
				r.Get("/users/count", count.New(logger, userService).ServeHTTP)
				r.Get("/users/{id}", userread.New(logger, userService).ServeHTTP)
				r.Put("/users/{id}", userupdate.New(logger, userService).ServeHTTP)
				r.Delete("/users/{id}", userremove.New(logger, userService).ServeHTTP)

				r.Post("/movies", moviecreate.New(logger, movieService).ServeHTTP)
				r.Get("/movies/{id}", movieread.New(logger, movieService).ServeHTTP)
				r.Put("/movies/{id}", movieupdate.New(logger, movieService).ServeHTTP)
				r.Delete("/movies/{id}", movieremove.New(logger, movieService).ServeHTTP)

				r.Post("/genres", genrecreate.New(logger, genreService).ServeHTTP)
				r.Get("/genres/{id}", genreread.New(logger, genreService).ServeHTTP)
				r.Put("/genres/{id}", genreupdate.New(logger, genreService).ServeHTTP)
				r.Delete("/genres/{id}", genreremove.New(logger, genreService).ServeHTTP)
			})
		})
	})

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
