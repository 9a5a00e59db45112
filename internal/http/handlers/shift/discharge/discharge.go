// Package discharge реализует HTTP-обработчик изъятия наличных из кассы.
//
// Поле amount принимается строкой как ввод кассира; разбор и проверка
// выполняются бизнес-логикой.
package discharge

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/venue-cashdesk/internal/http/metrics"
	"github.com/magabrotheeeer/venue-cashdesk/internal/http/middlewarectx"
	"github.com/magabrotheeeer/venue-cashdesk/internal/http/response"
	"github.com/magabrotheeeer/venue-cashdesk/internal/lib/sl"
	"github.com/magabrotheeeer/venue-cashdesk/internal/services/shift"
)

// Request — структура входных данных для изъятия наличных.
// Amount передаётся строкой, как введено кассиром.
type Request struct {
	Amount string `json:"amount"`
	Reason string `json:"reason" validate:"required,min=1,max=200"`
}

// Handler обрабатывает HTTP-запросы на изъятие наличных.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики изъятия наличных.
type Service interface {
	Discharge(username, rawAmount, reason string) error
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Изъятие наличных
// @Description Фиксирует расход наличных из кассы с указанием причины.
// @Tags Shift
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param request body Request true "Сумма и причина расхода"
// @Success 200 {object} response.Response "Расход зафиксирован"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 422 {object} response.ErrorResponse "Некорректная сумма"
// @Failure 409 {object} response.ErrorResponse "Нет открытой смены"
// @Router /shift/discharges [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.shift.discharge"

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

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	if err := h.service.Discharge(username, req.Amount, req.Reason); err != nil {
		var invalidInput *shift.InvalidInputError
		if errors.As(err, &invalidInput) {
			log.Warn("invalid amount value", slog.String("field", invalidInput.Field))
			w.WriteHeader(http.StatusUnprocessableEntity)
			render.JSON(w, r, response.InvalidInput(invalidInput.Field, invalidInput.Message))
			return
		}
		log.Error("failed to record discharge", sl.Err(err))
		w.WriteHeader(http.StatusConflict)
		render.JSON(w, r, response.Error(err.Error()))
		return
	}
	metrics.DischargesRecorded.Inc()

	log.Info("discharge recorded", slog.String("reason", req.Reason))
	render.JSON(w, r, response.StatusOKWithData(nil))
}
