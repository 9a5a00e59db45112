// Package closeshift реализует HTTP-обработчик закрытия смены.
//
// Обработчик принимает пересчитанные кассиром наличные, делегирует
// закрытие бизнес-логике и возвращает итоговую запись смены. Ошибка
// сохранения оставляет смену открытой, о чём сообщается статусом 500.
package closeshift

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/venue-cashdesk/internal/http/metrics"
	"github.com/magabrotheeeer/venue-cashdesk/internal/http/middlewarectx"
	"github.com/magabrotheeeer/venue-cashdesk/internal/http/response"
	"github.com/magabrotheeeer/venue-cashdesk/internal/lib/sl"
	"github.com/magabrotheeeer/venue-cashdesk/internal/models"
	"github.com/magabrotheeeer/venue-cashdesk/internal/services/shift"
)

// Request — структура входных данных для закрытия смены.
// RealCash передаётся строкой, как введено кассиром при пересчёте.
type Request struct {
	RealCash string `json:"real_cash"`
}

// Handler обрабатывает HTTP-запросы на закрытие смены.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики закрытия смены.
type Service interface {
	Close(ctx context.Context, username, rawRealCash string) (models.Shift, error)
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Закрытие смены
// @Description Закрывает смену: сохраняет итоговую запись в базу и завершает сессию оператора.
// @Tags Shift
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param request body Request true "Фактические наличные в кассе"
// @Success 200 {object} map[string]any "Смена закрыта"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 422 {object} response.ErrorResponse "Некорректные наличные"
// @Failure 409 {object} response.ErrorResponse "Нет открытой смены"
// @Failure 500 {object} response.ErrorResponse "Сохранение не удалось, смена осталась открытой"
// @Router /shift/close [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.shift.closeshift"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)
	username, _ := r.Context().Value(middlewarectx.User).(string)

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	record, err := h.service.Close(r.Context(), username, req.RealCash)
	if err != nil {
		var invalidInput *shift.InvalidInputError
		switch {
		case errors.As(err, &invalidInput):
			log.Warn("invalid real_cash value", slog.String("field", invalidInput.Field))
			w.WriteHeader(http.StatusUnprocessableEntity)
			render.JSON(w, r, response.InvalidInput(invalidInput.Field, invalidInput.Message))
		case errors.Is(err, shift.ErrNoActiveShift):
			log.Warn("no open shift for operator", slog.String("username", username))
			w.WriteHeader(http.StatusConflict)
			render.JSON(w, r, response.Error(shift.ErrNoActiveShift.Error()))
		default:
			log.Error("failed to close shift", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to close shift"))
		}
		return
	}
	metrics.ShiftsClosed.Inc()

	log.Info("shift closed", slog.Int("shift_id", record.ID))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"shift": record,
	}))
}
