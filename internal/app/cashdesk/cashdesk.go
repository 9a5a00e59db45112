// Package cashdesk собирает приложение кассы: хранилище, кеш,
// сервисы и HTTP-сервер с graceful shutdown.
package cashdesk

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"

	"github.com/magabrotheeeer/venue-cashdesk/internal/cache"
	"github.com/magabrotheeeer/venue-cashdesk/internal/config"
	"github.com/magabrotheeeer/venue-cashdesk/internal/lib/jwt"
	"github.com/magabrotheeeer/venue-cashdesk/internal/migrations"
	authservice "github.com/magabrotheeeer/venue-cashdesk/internal/services/auth"
	shiftservice "github.com/magabrotheeeer/venue-cashdesk/internal/services/shift"
	statsservice "github.com/magabrotheeeer/venue-cashdesk/internal/services/stats"
	"github.com/magabrotheeeer/venue-cashdesk/internal/storage/repository"
)

// App хранит собранные зависимости приложения.
type App struct {
	server *http.Server
	logger *slog.Logger
	db     *repository.Storage
}

// New инициализирует приложение: подключается к базе и redis, накатывает
// миграции, восстанавливает остаток наличных из последней закрытой смены
// и регистрирует маршруты.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, "./migrations"); err != nil {
		return nil, err
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, err
	}

	jwtMaker := jwt.NewMaker(cfg.JWTSecretKey, cfg.TokenTTL)
	authService := authservice.NewService(db, jwtMaker)

	// Остаток кассы переживает перезапуск: новая смена открывается
	// с наличными последней закрытой.
	openingCash, err := db.LastRealCash(ctx)
	if err != nil {
		return nil, err
	}
	sessions := shiftservice.NewManager(openingCash)
	shiftService := shiftservice.NewService(db, sessions, cfg.HourPrice, logger)

	statsService := statsservice.NewService(db, cacheRedis, cfg.DetailCacheTTL, logger)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, authService, shiftService, statsService)

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
	}, nil
}

// Run запускает HTTP-сервер и останавливает его при отмене контекста.
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
		a.db.DB.Close()
		return err
	}
}
