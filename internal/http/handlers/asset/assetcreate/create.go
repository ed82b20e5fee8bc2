// Package assetcreate реализует HTTP-обработчик для постановки имущества
// на учёт.
package assetcreate

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/gym-backoffice/internal/http/response"
	"github.com/magabrotheeeer/gym-backoffice/internal/lib/sl"
	"github.com/magabrotheeeer/gym-backoffice/internal/models"
)

// Handler управляет HTTP-запросами на постановку имущества на учёт.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики создания единицы имущества.
type Service interface {
	Create(ctx context.Context, req models.DummyAsset) (int, error)
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
// @Summary Поставить имущество на учёт
// @Description Создает запись о единице имущества зала. Возвращает ID созданной записи.
// @Tags Assets
// @Accept  json
// @Produce  json
// @Param request body models.DummyAsset true "Данные единицы имущества"
// @Success 200 {object} map[string]any "Успешное создание записи"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON или дата"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /assets [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.asset.create"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.DummyAsset
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

	id, err := h.service.Create(r.Context(), req)
	if err != nil {
		log.Error("failed to create asset", sl.Err(err))
		status, resp := response.FromError(err, "could not create asset")
		w.WriteHeader(status)
		render.JSON(w, r, resp)
		return
	}

	log.Info("success to create asset", slog.Any("id", id))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"id": id,
	}))
}
