// Package read реализует HTTP-обработчик для чтения карточки ученика
// по номеру зачисления. Возвращает данные ученика вместе с вычисленным
// статусом абонемента.
package read

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/gym-backoffice/internal/http/response"
	"github.com/magabrotheeeer/gym-backoffice/internal/lib/sl"
	"github.com/magabrotheeeer/gym-backoffice/internal/models"
)

// Handler управляет HTTP-запросами на чтение карточки ученика.
type Handler struct {
	log     *slog.Logger // Логгер для записи информации и ошибок
	service Service      // Сервис бизнес-логики учеников
}

// Service описывает интерфейс бизнес-логики чтения ученика.
type Service interface {
	Read(ctx context.Context, matricula string) (*models.StudentView, error)
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Получить карточку ученика
// @Description Возвращает данные ученика по номеру зачисления вместе с вычисленным статусом абонемента.
// @Tags Students
// @Produce  json
// @Param matricula path string true "Номер зачисления"
// @Success 200 {object} map[string]any "Карточка ученика"
// @Failure 404 {object} response.ErrorResponse "Ученик не найден"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /students/{matricula} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.student.read"

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

	res, err := h.service.Read(r.Context(), matricula)
	if err != nil {
		log.Error("failed to read student", sl.Err(err))
		status, resp := response.FromError(err, "could not read student")
		w.WriteHeader(status)
		render.JSON(w, r, resp)
		return
	}

	log.Info("success to read student", slog.String("matricula", matricula))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"student": res,
	}))
}
