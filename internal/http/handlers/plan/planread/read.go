// Package planread реализует HTTP-обработчик для чтения тарифного плана по ID.
package planread

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/gym-backoffice/internal/http/response"
	"github.com/magabrotheeeer/gym-backoffice/internal/lib/sl"
	"github.com/magabrotheeeer/gym-backoffice/internal/models"
)

// Handler управляет HTTP-запросами на чтение тарифного плана.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики чтения плана.
type Service interface {
	Read(ctx context.Context, id int) (*models.Plan, error)
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Получить тарифный план
// @Description Возвращает тарифный план по идентификатору.
// @Tags Plans
// @Produce  json
// @Param id path int true "Идентификатор плана"
// @Success 200 {object} map[string]any "Тарифный план"
// @Failure 404 {object} response.ErrorResponse "План не найден"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /plans/{id} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.plan.read"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		log.Error("failed to decode id from url", sl.Err(err))
		render.JSON(w, r, response.Error("failed to decode id from url"))
		return
	}

	res, err := h.service.Read(r.Context(), id)
	if err != nil {
		log.Error("failed to read plan", sl.Err(err))
		status, resp := response.FromError(err, "could not read plan")
		w.WriteHeader(status)
		render.JSON(w, r, resp)
		return
	}

	log.Info("success to read plan", slog.Any("plan", res))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"plan": res,
	}))
}
