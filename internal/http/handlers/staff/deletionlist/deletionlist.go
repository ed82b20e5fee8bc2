// Package deletionlist реализует HTTP-обработчик журнала удалений
// администраторов.
package deletionlist

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/gym-backoffice/internal/http/response"
	"github.com/magabrotheeeer/gym-backoffice/internal/lib/sl"
	"github.com/magabrotheeeer/gym-backoffice/internal/models"
)

// Handler управляет HTTP-запросами на чтение журнала удалений.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики журнала удалений.
type Service interface {
	ListDeletions(ctx context.Context, limit, offset int) ([]*models.AdminDeletionRecord, error)
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Журнал удалений администраторов
// @Description Возвращает записи журнала удалений, новые сверху.
// @Tags Staff
// @Produce  json
// @Param limit query int false "Размер страницы (по умолчанию 10)"
// @Param offset query int false "Смещение (по умолчанию 0)"
// @Success 200 {object} map[string]any "Записи журнала"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /staff/deletions [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.staff.deletionlist"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit <= 0 {
		limit = 10
	}

	offset, err := strconv.Atoi(r.URL.Query().Get("offset"))
	if err != nil || offset < 0 {
		offset = 0
	}

	res, err := h.service.ListDeletions(r.Context(), limit, offset)
	if err != nil {
		log.Error("failed to list admin deletions", sl.Err(err))
		status, resp := response.FromError(err, "could not list admin deletions")
		w.WriteHeader(status)
		render.JSON(w, r, resp)
		return
	}

	log.Info("list admin deletions", "count", len(res))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"list_count": len(res),
		"deletions":  res,
	}))
}
