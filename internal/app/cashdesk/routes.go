// Package cashdesk предоставляет маршруты для приложения кассы.
package cashdesk

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/magabrotheeeer/venue-cashdesk/internal/http/handlers/auth/login"
	"github.com/magabrotheeeer/venue-cashdesk/internal/http/handlers/auth/register"
	"github.com/magabrotheeeer/venue-cashdesk/internal/http/handlers/shift/closeshift"
	"github.com/magabrotheeeer/venue-cashdesk/internal/http/handlers/shift/current"
	"github.com/magabrotheeeer/venue-cashdesk/internal/http/handlers/shift/discharge"
	"github.com/magabrotheeeer/venue-cashdesk/internal/http/handlers/stats/detail"
	"github.com/magabrotheeeer/venue-cashdesk/internal/http/handlers/stats/list"
	"github.com/magabrotheeeer/venue-cashdesk/internal/http/handlers/visitor/checkin"
	"github.com/magabrotheeeer/venue-cashdesk/internal/http/handlers/visitor/checkout"
	"github.com/magabrotheeeer/venue-cashdesk/internal/http/handlers/visitor/preview"
	"github.com/magabrotheeeer/venue-cashdesk/internal/http/middlewarectx"
	authservice "github.com/magabrotheeeer/venue-cashdesk/internal/services/auth"
	shiftservice "github.com/magabrotheeeer/venue-cashdesk/internal/services/shift"
	statsservice "github.com/magabrotheeeer/venue-cashdesk/internal/services/stats"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, authService *authservice.Service, shiftService *shiftservice.Service, statsService *statsservice.Service) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	r.Route("/api/v1", func(r chi.Router) {
		// Открытые конечные точки
		r.Post("/login", login.New(logger, authService, shiftService).ServeHTTP)

		// Группа с JWT аутентификацией
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(authService, logger))
			r.Use(middlewarectx.RateLimitMiddleware(logger))

			// Регистрация операторов и статистика доступны только администратору
			r.Group(func(r chi.Router) {
				r.Use(middlewarectx.AdminOnlyMiddleware(logger))
				r.Post("/register", register.New(logger, authService).ServeHTTP)
				r.Get("/shifts", list.New(logger, statsService).ServeHTTP)
				r.Get("/shifts/{id}", detail.New(logger, statsService).ServeHTTP)
			})

			// Кассовые операции требуют открытой смены
			r.Group(func(r chi.Router) {
				r.Use(middlewarectx.ActiveShiftMiddleware(shiftService, logger))
				r.Post("/visitors", checkin.New(logger, shiftService).ServeHTTP)
				r.Get("/visitors/{id}", preview.New(logger, shiftService).ServeHTTP)
				r.Post("/visitors/{id}/checkout", checkout.New(logger, shiftService).ServeHTTP)
				r.Get("/shift", current.New(logger, shiftService).ServeHTTP)
				r.Post("/shift/discharges", discharge.New(logger, shiftService).ServeHTTP)
				r.Post("/shift/close", closeshift.New(logger, shiftService).ServeHTTP)
			})
		})
	})

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
