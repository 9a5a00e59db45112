// Package detail реализует HTTP-обработчик детализации закрытой смены.
//
// Handler извлекает ID смены из URL-параметров и возвращает запись смены
// вместе со списком посетителей. Закрытые смены неизменяемы, поэтому
// ответ отдается из кеша, когда он там есть.
package detail

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/venue-cashdesk/internal/http/response"
	"github.com/magabrotheeeer/venue-cashdesk/internal/lib/sl"
	"github.com/magabrotheeeer/venue-cashdesk/internal/models"
	"github.com/magabrotheeeer/venue-cashdesk/internal/services/stats"
)

// Handler обрабатывает запросы на детализацию закрытой смены.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики детализации смены.
type Service interface {
	Detail(ctx context.Context, id int) (*models.Shift, error)
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Детализация смены
// @Description Возвращает запись закрытой смены вместе со списком выписанных посетителей.
// @Tags Stats
// @Produce  json
// @Security BearerAuth
// @Param id path int true "ID смены"
// @Success 200 {object} map[string]any "Запись смены"
// @Failure 400 {object} response.ErrorResponse "Некорректный ID"
// @Failure 404 {object} response.ErrorResponse "Смена не найдена"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /shifts/{id} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.stats.detail"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		log.Error("failed to decode id from url", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("failed to decode id from url"))
		return
	}

	record, err := h.service.Detail(r.Context(), id)
	if err != nil {
		if errors.Is(err, stats.ErrShiftNotFound) {
			log.Warn("shift not found", slog.Int("shift_id", id))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error(stats.ErrShiftNotFound.Error()))
			return
		}
		log.Error("failed to read shift", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not read shift"))
		return
	}

	log.Info("shift detail returned", slog.Int("shift_id", id))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"shift": record,
	}))
}
