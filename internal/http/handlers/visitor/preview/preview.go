// Package preview реализует HTTP-обработчик предварительного расчёта выхода.
//
// Handler извлекает ID посетителя из URL-параметров и возвращает справочную
// стоимость визита на текущий момент, не меняя состояние смены.
package preview

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/venue-cashdesk/internal/http/middlewarectx"
	"github.com/magabrotheeeer/venue-cashdesk/internal/http/response"
	"github.com/magabrotheeeer/venue-cashdesk/internal/lib/sl"
	"github.com/magabrotheeeer/venue-cashdesk/internal/services/shift"
)

// Handler обрабатывает запросы на предварительный расчёт стоимости визита.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики предварительного расчёта.
type Service interface {
	PreviewCheckout(username, visitorID string) (*shift.CheckoutPreview, error)
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Предварительный расчёт выхода
// @Description Возвращает длительность визита и стоимость на текущий момент, не выписывая посетителя.
// @Tags Visitors
// @Produce  json
// @Security BearerAuth
// @Param id path string true "ID посетителя"
// @Success 200 {object} map[string]any "Расчёт визита"
// @Failure 404 {object} response.ErrorResponse "Посетитель не найден"
// @Failure 409 {object} response.ErrorResponse "Нет открытой смены"
// @Router /visitors/{id} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.visitor.preview"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)
	username, _ := r.Context().Value(middlewarectx.User).(string)
	visitorID := chi.URLParam(r, "id")

	res, err := h.service.PreviewCheckout(username, visitorID)
	if err != nil {
		if errors.Is(err, shift.ErrVisitorNotFound) {
			log.Warn("visitor not found", slog.String("visitor_id", visitorID))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error(shift.ErrVisitorNotFound.Error()))
			return
		}
		log.Error("failed to preview checkout", sl.Err(err))
		w.WriteHeader(http.StatusConflict)
		render.JSON(w, r, response.Error(err.Error()))
		return
	}

	log.Info("checkout preview calculated", slog.String("visitor_id", visitorID))
	render.JSON(w, r, response.StatusOKWithData(res))
}
