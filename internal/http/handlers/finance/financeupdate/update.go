// Package financeupdate реализует HTTP-обработчик для изменения записи
// финансового журнала. Повторная активация ученика при изменении записи
// не выполняется.
package financeupdate

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/gym-backoffice/internal/http/response"
	"github.com/magabrotheeeer/gym-backoffice/internal/lib/sl"
	"github.com/magabrotheeeer/gym-backoffice/internal/models"
)

// Handler управляет HTTP-запросами на изменение финансовой записи.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики изменения финансовой записи.
type Service interface {
	Update(ctx context.Context, req models.DummyFinancialEntry, id int) (int, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Изменить финансовую запись
// @Description Обновляет запись финансового журнала по идентификатору.
// @Tags Finance
// @Accept  json
// @Produce  json
// @Param id path int true "Идентификатор записи"
// @Param request body models.DummyFinancialEntry true "Новые данные записи"
// @Success 200 {object} map[string]any "Количество обновлённых записей"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON или дата"
// @Failure 404 {object} response.ErrorResponse "Запись не найдена"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /finance/{id} [put]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.finance.update"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.DummyFinancialEntry
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}
	log.Info("request body decoded", slog.Any("request", req))

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}
	log.Info("all fields are validated")

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		log.Error("failed to decode id from url", sl.Err(err))
		render.JSON(w, r, response.Error("failed to decode id from url"))
		return
	}

	counter, err := h.service.Update(r.Context(), req, id)
	if err != nil {
		log.Error("failed to update financial entry", sl.Err(err))
		status, resp := response.FromError(err, "could not update financial entry")
		w.WriteHeader(status)
		render.JSON(w, r, resp)
		return
	}

	log.Info("success to update financial entry", slog.Any("updated count:", counter))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"updated_count": counter,
	}))
}
