// Package financesummary реализует HTTP-обработчик для агрегата финансового
// журнала за период. Границы периода приходят в формате 02-01-2006,
// обе даты включительно.
package financesummary

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

// Handler управляет HTTP-запросами на получение финансового агрегата.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики финансового агрегата.
type Service interface {
	Summary(ctx context.Context, from, to string) (*models.FinanceSummary, error)
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Финансовый агрегат за период
// @Description Возвращает суммы доходов, расходов и баланс за период. Даты в формате 02-01-2006, обе включительно.
// @Tags Finance
// @Produce  json
// @Param from query string true "Начало периода (02-01-2006)"
// @Param to query string true "Конец периода (02-01-2006)"
// @Success 200 {object} map[string]any "Агрегат за период"
// @Failure 400 {object} response.ErrorResponse "Некорректные даты периода"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /finance/summary [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.finance.summary"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	from := r.URL.Query().Get("from")
	to := r.URL.Query().Get("to")
	if from == "" || to == "" {
		log.Error("period boundaries missing in query")
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("query parameters from and to are required"))
		return
	}

	res, err := h.service.Summary(r.Context(), from, to)
	if err != nil {
		log.Error("failed to count finance summary", sl.Err(err))
		status, resp := response.FromError(err, "could not count finance summary")
		w.WriteHeader(status)
		render.JSON(w, r, resp)
		return
	}

	log.Info("success to count finance summary", slog.Any("summary", res))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"revenue": res.Revenue,
		"expense": res.Expense,
		"balance": res.Balance,
	}))
}
