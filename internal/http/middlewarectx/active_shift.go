package middlewarectx

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/venue-cashdesk/internal/http/response"
)

// SessionChecker сообщает, есть ли у оператора открытая смена.
type SessionChecker interface {
	HasSession(username string) bool
}

// ActiveShiftMiddleware возвращает HTTP middleware, который пропускает запрос
// только если у оператора из контекста есть открытая смена.
// Иначе возвращает HTTP статус 409 Conflict.
func ActiveShiftMiddleware(shifts SessionChecker, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.ActiveShiftMiddleware"

			log = log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			username, ok := r.Context().Value(User).(string)
			if !ok || username == "" {
				log.Error("username is missing in context")
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("unauthorized"))
				return
			}

			if !shifts.HasSession(username) {
				log.Warn("no open shift for operator", slog.String("username", username))
				render.Status(r, http.StatusConflict)
				render.JSON(w, r, response.Error("no open shift for operator"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
