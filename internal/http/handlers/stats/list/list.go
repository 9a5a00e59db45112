// Package list реализует HTTP-обработчик списка закрытых смен.
//
// Возвращает записи смен от новых к старым без списков посетителей.
package list

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/venue-cashdesk/internal/http/response"
	"github.com/magabrotheeeer/venue-cashdesk/internal/lib/sl"
	"github.com/magabrotheeeer/venue-cashdesk/internal/models"
)

// Handler обрабатывает запросы на список закрытых смен.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики статистики смен.
type Service interface {
	List(ctx context.Context) ([]models.Shift, error)
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Список закрытых смен
// @Description Возвращает историю закрытых смен от новых к старым.
// @Tags Stats
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} map[string]any "Список смен"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /shifts [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.stats.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	shifts, err := h.service.List(r.Context())
	if err != nil {
		log.Error("failed to list shifts", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list shifts"))
		return
	}

	log.Info("shifts listed", slog.Int("count", len(shifts)))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"shifts": shifts,
	}))
}
