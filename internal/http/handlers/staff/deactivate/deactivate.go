// Package deactivate реализует HTTP-обработчик мягкого удаления
// сотрудника. Учётные записи администраторов через него не проходят.
package deactivate

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/gym-backoffice/internal/http/response"
	"github.com/magabrotheeeer/gym-backoffice/internal/lib/sl"
)

// Handler управляет HTTP-запросами на деактивацию сотрудника.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики деактивации сотрудника.
type Service interface {
	Deactivate(ctx context.Context, nationalID string) error
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Деактивировать сотрудника
// @Description Помечает учётную запись сотрудника удалённой. Администраторов удаляет только защищённая транзакция.
// @Tags Staff
// @Produce  json
// @Param national_id path string true "Номер документа сотрудника"
// @Success 200 {object} map[string]any "Учётная запись деактивирована"
// @Failure 403 {object} response.ErrorResponse "Учётная запись администратора"
// @Failure 404 {object} response.ErrorResponse "Сотрудник не найден"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /staff/{national_id} [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.staff.deactivate"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	nationalID := chi.URLParam(r, "national_id")
	if nationalID == "" {
		log.Error("missing national_id")
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("missing national_id"))
		return
	}

	if err := h.service.Deactivate(r.Context(), nationalID); err != nil {
		log.Error("failed to deactivate staff account", sl.Err(err))
		status, resp := response.FromError(err, "could not deactivate staff account")
		w.WriteHeader(status)
		render.JSON(w, r, resp)
		return
	}

	log.Info("deactivated staff account", slog.String("national_id", nationalID))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"deactivated": true,
	}))
}
