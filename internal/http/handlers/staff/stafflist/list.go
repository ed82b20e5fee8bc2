// Package stafflist реализует HTTP-обработчик для постраничного списка
// сотрудников. Мягко удалённые учётные записи в список не попадают.
package stafflist

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

// Handler управляет HTTP-запросами на получение списка сотрудников.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики списка сотрудников.
type Service interface {
	List(ctx context.Context, limit, offset int) ([]*models.StaffAccount, error)
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// listItem — сотрудник без чувствительных полей для выдачи наружу.
type listItem struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	NationalID  string `json:"national_id"`
	AccessLevel string `json:"access_level"`
	IsEnabled   bool   `json:"is_enabled"`
}

// ServeHTTP godoc
// @Summary Список сотрудников
// @Description Возвращает страницу списка сотрудников без хэшей паролей и кодов подтверждения.
// @Tags Staff
// @Produce  json
// @Param limit query int false "Размер страницы (по умолчанию 10)"
// @Param offset query int false "Смещение (по умолчанию 0)"
// @Success 200 {object} map[string]any "Список сотрудников"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /staff [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.staff.list"

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
		log.Error("failed to list staff accounts", sl.Err(err))
		status, resp := response.FromError(err, "could not list staff accounts")
		w.WriteHeader(status)
		render.JSON(w, r, resp)
		return
	}

	items := make([]listItem, 0, len(res))
	for _, acc := range res {
		items = append(items, listItem{
			ID:          acc.ID,
			Name:        acc.Name,
			Email:       acc.Email,
			NationalID:  acc.NationalID,
			AccessLevel: acc.AccessLevel,
			IsEnabled:   acc.IsEnabled,
		})
	}

	log.Info("list staff accounts", "count", len(items))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"list_count": len(items),
		"staff":      items,
	}))
}
