// Package checkin реализует HTTP-обработчик регистрации посетителя.
//
// Обработчик декодирует имя посетителя, валидирует его и добавляет
// посетителя в реестр активной смены оператора из контекста запроса.
package checkin

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/venue-cashdesk/internal/http/metrics"
	"github.com/magabrotheeeer/venue-cashdesk/internal/http/middlewarectx"
	"github.com/magabrotheeeer/venue-cashdesk/internal/http/response"
	"github.com/magabrotheeeer/venue-cashdesk/internal/lib/sl"
	"github.com/magabrotheeeer/venue-cashdesk/internal/models"
)

// Request — структура входных данных для регистрации посетителя.
type Request struct {
	Name string `json:"name" validate:"required,min=1,max=100"`
}

// Handler обрабатывает HTTP-запросы на регистрацию посетителей.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики регистрации посетителя.
type Service interface {
	CheckIn(username, name string) (models.Visitor, error)
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
// @Summary Регистрация посетителя
// @Description Добавляет посетителя в реестр активной смены с текущим временем входа.
// @Tags Visitors
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param request body Request true "Имя посетителя"
// @Success 200 {object} map[string]any "Посетитель зарегистрирован"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 409 {object} response.ErrorResponse "Нет открытой смены"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /visitors [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.visitor.checkin"

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
	log.Info("request body decoded", slog.String("name", req.Name))

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	visitor, err := h.service.CheckIn(username, req.Name)
	if err != nil {
		log.Error("failed to check in visitor", sl.Err(err))
		w.WriteHeader(http.StatusConflict)
		render.JSON(w, r, response.Error(err.Error()))
		return
	}
	metrics.VisitorsCheckedIn.Inc()

	log.Info("visitor checked in", slog.String("visitor_id", visitor.ID))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"visitor": visitor,
	}))
}
