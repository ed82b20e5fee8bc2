// Package planremove реализует HTTP-обработчик для удаления тарифного плана.
// План, на который ссылаются ученики, удалить нельзя: база вернёт конфликт.
package planremove

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
)

// Handler управляет HTTP-запросами на удаление тарифного плана.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики удаления плана.
type Service interface {
	Remove(ctx context.Context, id int) (int, error)
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Удалить тарифный план
// @Description Удаляет тарифный план по идентификатору. План с привязанными учениками удалить нельзя.
// @Tags Plans
// @Produce  json
// @Param id path int true "Идентификатор плана"
// @Success 200 {object} map[string]any "Количество удалённых записей"
// @Failure 404 {object} response.ErrorResponse "План не найден"
// @Failure 409 {object} response.ErrorResponse "На план ссылаются ученики"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /plans/{id} [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.plan.remove"

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

	res, err := h.service.Remove(r.Context(), id)
	if err != nil {
		log.Error("failed to delete plan", sl.Err(err))
		status, resp := response.FromError(err, "could not delete plan")
		w.WriteHeader(status)
		render.JSON(w, r, resp)
		return
	}

	log.Info("success to delete plan", slog.Any("deleted entrys:", res))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"deleted_count": res,
	}))
}
