// Package current реализует HTTP-обработчик просмотра активной смены.
//
// Возвращает снимок журнала смены и список посетителей в зале
// в порядке времени входа.
package current

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/venue-cashdesk/internal/http/middlewarectx"
	"github.com/magabrotheeeer/venue-cashdesk/internal/http/response"
	"github.com/magabrotheeeer/venue-cashdesk/internal/lib/sl"
	"github.com/magabrotheeeer/venue-cashdesk/internal/lib/timefmt"
	"github.com/magabrotheeeer/venue-cashdesk/internal/models"
)

// Handler обрабатывает запросы на просмотр активной смены.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики просмотра смены.
type Service interface {
	CurrentView(username string) (models.Shift, []models.Visitor, error)
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Активная смена
// @Description Возвращает текущие итоги смены, расходы и посетителей в зале.
// @Tags Shift
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} map[string]any "Снимок смены"
// @Failure 409 {object} response.ErrorResponse "Нет открытой смены"
// @Router /shift [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.shift.current"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)
	username, _ := r.Context().Value(middlewarectx.User).(string)

	snapshot, visitors, err := h.service.CurrentView(username)
	if err != nil {
		log.Error("failed to get current shift", sl.Err(err))
		w.WriteHeader(http.StatusConflict)
		render.JSON(w, r, response.Error(err.Error()))
		return
	}

	log.Info("current shift returned", slog.Int("visitors", len(visitors)))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"shift":     snapshot,
		"visitors":  visitors,
		"timestamp": timefmt.Display(time.Now()),
	}))
}
