// Package assetremove реализует HTTP-обработчик для снятия имущества с учёта.
package assetremove

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

// Handler управляет HTTP-запросами на снятие имущества с учёта.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики удаления имущества.
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
// @Summary Снять имущество с учёта
// @Description Удаляет запись об имуществе по идентификатору.
// @Tags Assets
// @Produce  json
// @Param id path int true "Идентификатор записи"
// @Success 200 {object} map[string]any "Количество удалённых записей"
// @Failure 404 {object} response.ErrorResponse "Запись не найдена"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /assets/{id} [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.asset.remove"

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
		log.Error("failed to delete asset", sl.Err(err))
		status, resp := response.FromError(err, "could not delete asset")
		w.WriteHeader(status)
		render.JSON(w, r, resp)
		return
	}

	log.Info("success to delete asset", slog.Any("deleted entrys:", res))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"deleted_count": res,
	}))
}
