// Package planlist реализует HTTP-обработчик для списка тарифных планов.
package planlist

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/gym-backoffice/internal/http/response"
	"github.com/magabrotheeeer/gym-backoffice/internal/lib/sl"
	"github.com/magabrotheeeer/gym-backoffice/internal/models"
)

// Handler управляет HTTP-запросами на получение списка тарифных планов.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики списка планов.
type Service interface {
	List(ctx context.Context) ([]*models.Plan, error)
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Список тарифных планов
// @Description Возвращает все тарифные планы зала.
// @Tags Plans
// @Produce  json
// @Success 200 {object} map[string]any "Список планов"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /plans [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.plan.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	res, err := h.service.List(r.Context())
	if err != nil {
		log.Error("failed to list plans", sl.Err(err))
		status, resp := response.FromError(err, "could not list plans")
		w.WriteHeader(status)
		render.JSON(w, r, resp)
		return
	}

	log.Info("list plans", "count", len(res))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"list_count": len(res),
		"plans":      res,
	}))
}
