// Package assetread реализует HTTP-обработчик для чтения единицы имущества по ID.
package assetread

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

// Handler управляет HTTP-запросами на чтение единицы имущества.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики чтения имущества.
type Service interface {
	Read(ctx context.Context, id int) (*models.Asset, error)
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Получить единицу имущества
// @Description Возвращает запись об имуществе по идентификатору.
// @Tags Assets
// @Produce  json
// @Param id path int true "Идентификатор записи"
// @Success 200 {object} map[string]any "Единица имущества"
// @Failure 404 {object} response.ErrorResponse "Запись не найдена"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /assets/{id} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.asset.read"

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
		log.Error("failed to read asset", sl.Err(err))
		status, resp := response.FromError(err, "could not read asset")
		w.WriteHeader(status)
		render.JSON(w, r, resp)
		return
	}

	log.Info("success to read asset", slog.Any("asset", res))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"asset": res,
	}))
}
