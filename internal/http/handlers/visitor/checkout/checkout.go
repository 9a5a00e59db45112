// Package checkout реализует HTTP-обработчик выхода посетителя.
//
// Поле paid принимается строкой как ввод кассира; разбор и проверка
// значения выполняются бизнес-логикой, чтобы текст ошибки совпадал
// с сообщением на форме кассы.
package checkout

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/venue-cashdesk/internal/http/metrics"
	"github.com/magabrotheeeer/venue-cashdesk/internal/http/middlewarectx"
	"github.com/magabrotheeeer/venue-cashdesk/internal/http/response"
	"github.com/magabrotheeeer/venue-cashdesk/internal/lib/sl"
	"github.com/magabrotheeeer/venue-cashdesk/internal/models"
	"github.com/magabrotheeeer/venue-cashdesk/internal/services/shift"
)

// Request — структура входных данных для выхода посетителя.
// Paid передаётся строкой, как введено кассиром.
type Request struct {
	Paid string `json:"paid"`
}

// Handler обрабатывает HTTP-запросы на выход посетителей.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики выхода посетителя.
type Service interface {
	CheckOut(username, visitorID, rawPaid string) (models.Visitor, error)
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Выход посетителя
// @Description Выписывает посетителя: фиксирует время выхода, стоимость и оплату, обновляет итоги смены.
// @Tags Visitors
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param id path string true "ID посетителя"
// @Param request body Request true "Принятая оплата"
// @Success 200 {object} map[string]any "Посетитель выписан"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 404 {object} response.ErrorResponse "Посетитель не найден"
// @Failure 422 {object} response.ErrorResponse "Некорректная оплата"
// @Failure 409 {object} response.ErrorResponse "Нет открытой смены"
// @Router /visitors/{id}/checkout [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.visitor.checkout"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)
	username, _ := r.Context().Value(middlewarectx.User).(string)
	visitorID := chi.URLParam(r, "id")

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	visitor, err := h.service.CheckOut(username, visitorID, req.Paid)
	if err != nil {
		var invalidInput *shift.InvalidInputError
		switch {
		case errors.As(err, &invalidInput):
			log.Warn("invalid paid value", slog.String("field", invalidInput.Field))
			w.WriteHeader(http.StatusUnprocessableEntity)
			render.JSON(w, r, response.InvalidInput(invalidInput.Field, invalidInput.Message))
		case errors.Is(err, shift.ErrVisitorNotFound):
			log.Warn("visitor not found", slog.String("visitor_id", visitorID))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error(shift.ErrVisitorNotFound.Error()))
		default:
			log.Error("failed to check out visitor", sl.Err(err))
			w.WriteHeader(http.StatusConflict)
			render.JSON(w, r, response.Error(err.Error()))
		}
		return
	}
	metrics.VisitorsCheckedOut.Inc()
	metrics.VisitDurationSeconds.Observe(visitor.DurationSeconds)

	log.Info("visitor checked out",
		slog.String("name", visitor.Name),
		slog.Float64("paid", visitor.Paid))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"visitor": visitor,
	}))
}
