// Package update реализует HTTP-обработчик для изменения профильных данных
// ученика. Изменение тарифного плана и срока абонемента выполняется отдельной
// операцией продления.
package update

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/gym-backoffice/internal/http/response"
	"github.com/magabrotheeeer/gym-backoffice/internal/lib/sl"
	"github.com/magabrotheeeer/gym-backoffice/internal/models"
)

// Handler управляет HTTP-запросами на изменение данных ученика.
type Handler struct {
	log      *slog.Logger        // Логгер для записи информации и ошибок
	service  Service             // Сервис бизнес-логики учеников
	validate *validator.Validate // Валидатор структуры входящих данных
}

// Service описывает интерфейс бизнес-логики изменения ученика.
type Service interface {
	Update(ctx context.Context, req models.DummyStudent, matricula string) (int, error)
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
// @Summary Изменить данные ученика
// @Description Обновляет профильные данные ученика по номеру зачисления.
// @Tags Students
// @Accept  json
// @Produce  json
// @Param matricula path string true "Номер зачисления"
// @Param request body models.DummyStudent true "Новые данные ученика"
// @Success 200 {object} map[string]any "Количество обновлённых записей"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 404 {object} response.ErrorResponse "Ученик не найден"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /students/{matricula} [put]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.student.update"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.DummyStudent
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

	matricula := chi.URLParam(r, "matricula")
	if matricula == "" {
		log.Error("matricula missing in url")
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("matricula missing in url"))
		return
	}

	counter, err := h.service.Update(r.Context(), req, matricula)
	if err != nil {
		log.Error("failed to update student", sl.Err(err))
		status, resp := response.FromError(err, "could not update student")
		w.WriteHeader(status)
		render.JSON(w, r, resp)
		return
	}

	log.Info("success to update student", slog.Any("updated count:", counter))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"updated_count": counter,
	}))
}
