// Package onlinecinema собирает HTTP-приложение каталога: хранилище,
// кеш, сервисы, опциональный канал уведомлений и маршруты.
package onlinecinema

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"

	"github.com/magabrotheeeer/online-cinema/internal/cache"
	"github.com/magabrotheeeer/online-cinema/internal/config"
	"github.com/magabrotheeeer/online-cinema/internal/lib/jwt"
	"github.com/magabrotheeeer/online-cinema/internal/rabbitmq"
	authservice "github.com/magabrotheeeer/online-cinema/internal/services/auth"
	genreservice "github.com/magabrotheeeer/online-cinema/internal/services/genre"
	movieservice "github.com/magabrotheeeer/online-cinema/internal/services/movie"
	userservice "github.com/magabrotheeeer/online-cinema/internal/services/user"
	"github.com/magabrotheeeer/online-cinema/internal/storage/mongodb"
)

type App struct {
	server *http.Server
	logger *slog.Logger
	db     *mongodb.Storage
	cache  *cache.Cache
}

func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := mongodb.New(ctx, cfg.StorageConnectionString, cfg.DatabaseName)
	if err != nil {
		return nil, err
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, err
	}

	jwtMaker := jwt.NewJWTMaker(cfg.JWTSecretKey, cfg.TokenTTL)

	// Публикация уведомлений включается флагом конфигурации.
	// Без флага publisher остается nil и обновления фильмов никуда не отправляются.
	var publisher *rabbitmq.Publisher
	if cfg.NotifyMovieUpdates {
		conn, err := rabbitmq.Connect(cfg.RabbitMQURL, cfg.RabbitMQMaxRetries, cfg.RabbitMQRetryDelay)
		if err != nil {
			return nil, err
		}
		ch, err := rabbitmq.SetupChannel(conn, rabbitmq.GetNotificationQueues())
		if err != nil {
			conn.Close()
			return nil, err
		}
		publisher = rabbitmq.NewPublisher(ch)
		logger.Info("movie update notifications enabled")
	}

	authService := authservice.NewAuthService(db, jwtMaker)
	userService := userservice.NewUserService(db, db, logger)
	genreService := genreservice.NewGenreService(db, db, logger)

	var notifier movieservice.NotificationPublisher
	if publisher != nil {
		notifier = publisher
	}
	movieService := movieservice.NewMovieService(db, cacheRedis, notifier, logger)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, authService, userService, movieService, genreService)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
		db:     db,
		cache:  cacheRedis,
	}, nil
}

func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		if dbErr := a.db.Close(timeoutCtx); dbErr != nil {
			a.logger.Error("failed to close storage", slog.Any("err", dbErr))
		}
		return err
	}
}
