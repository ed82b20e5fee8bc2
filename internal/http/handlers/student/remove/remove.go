// Package remove реализует HTTP-обработчик для удаления записи ученика
// по номеру зачисления.
package remove

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

// Handler управляет HTTP-запросами на удаление ученика.
type Handler struct {
	log     *slog.Logger // Логгер для записи информации и ошибок
	service Service      // Сервис бизнес-логики учеников
}

// Service описывает интерфейс бизнес-логики удаления ученика.
type Service interface {
	Remove(ctx context.Context, matricula string) (int, error)
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Удалить ученика
// @Description Удаляет запись ученика по номеру зачисления.
// @Tags Students
// @Produce  json
// @Param matricula path string true "Номер зачисления"
// @Success 200 {object} map[string]any "Количество удалённых записей"
// @Failure 404 {object} response.ErrorResponse "Ученик не найден"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /students/{matricula} [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.student.remove"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	matricula := chi.URLParam(r, "matricula")
	if matricula == "" {
		log.Error("matricula missing in url")
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("matricula missing in url"))
		return
	}

	res, err := h.service.Remove(r.Context(), matricula)
	if err != nil {
		log.Error("failed to delete student", sl.Err(err))
		status, resp := response.FromError(err, "could not delete student")
		w.WriteHeader(status)
		render.JSON(w, r, resp)
		return
	}

	log.Info("success to delete student", slog.Any("deleted entrys:", res))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"deleted_count": res,
	}))
}
