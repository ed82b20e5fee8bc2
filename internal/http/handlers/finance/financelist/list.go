// Package financelist реализует HTTP-обработчик для постраничного списка
// записей финансового журнала.
package financelist

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

// Handler управляет HTTP-запросами на получение списка финансовых записей.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики списка финансовых записей.
type Service interface {
	List(ctx context.Context, limit, offset int) ([]*models.FinancialEntry, error)
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Список финансовых записей
// @Description Возвращает страницу финансового журнала, отсортированную по дате по убыванию.
// @Tags Finance
// @Produce  json
// @Param limit query int false "Размер страницы (по умолчанию 10)"
// @Param offset query int false "Смещение (по умолчанию 0)"
// @Success 200 {object} map[string]any "Список записей"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /finance [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.finance.list"

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

	res, err := h.service.List(r.Context(), limit, offset)
	if err != nil {
		log.Error("failed to list financial entries", sl.Err(err))
		status, resp := response.FromError(err, "could not list financial entries")
		w.WriteHeader(status)
		render.JSON(w, r, resp)
		return
	}

	log.Info("list financial entries", "count", len(res))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"list_count": len(res),
		"entries":    res,
	}))
}
