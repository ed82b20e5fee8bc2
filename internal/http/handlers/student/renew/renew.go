// Package renew реализует HTTP-обработчик пакетного продления абонементов.
//
// Handler принимает тарифный план и список номеров зачисления, делегирует
// продление сервису и возвращает номера продлённых и пропущенных учеников.
// Неизвестные номера не прерывают пакет: они попадают в список пропущенных.
package renew

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
	services "github.com/magabrotheeeer/gym-backoffice/internal/services/membership"
)

// Request — структура входных данных для пакетного продления.
type Request struct {
	PlanID     int      `json:"plan_id" validate:"required,gt=0"`              // Тарифный план для продления
	Matriculas []string `json:"matriculas" validate:"required,min=1,dive,required"` // Номера зачисления
}

// Handler управляет HTTP-запросами на пакетное продление абонементов.
type Handler struct {
	log      *slog.Logger        // Логгер для записи информации и ошибок
	service  Service             // Сервис бизнес-логики абонементов
	validate *validator.Validate // Валидатор структуры входящих данных
}

// Service описывает интерфейс бизнес-логики продления абонементов.
type Service interface {
	Renew(ctx context.Context, planID int, matriculas []string) (*services.RenewResult, error)
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
// @Summary Продлить абонементы пакетно
// @Description Продлевает абонементы перечисленных учеников по указанному тарифному плану. Неизвестные номера зачисления пропускаются и возвращаются отдельным списком.
// @Tags Students
// @Accept  json
// @Produce  json
// @Param request body Request true "План и номера зачисления"
// @Success 200 {object} map[string]any "Результат продления"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 404 {object} response.ErrorResponse "Тарифный план не найден"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /students/renew [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.student.renew"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req Request
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

	res, err := h.service.Renew(r.Context(), req.PlanID, req.Matriculas)
	if err != nil {
		log.Error("failed to renew memberships", sl.Err(err))
		status, resp := response.FromError(err, "could not renew memberships")
		w.WriteHeader(status)
		render.JSON(w, r, resp)
		return
	}

	log.Info("success to renew memberships",
		slog.Int("renewed", len(res.Renewed)),
		slog.Int("skipped", len(res.Skipped)))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"renewed": res.Renewed,
		"skipped": res.Skipped,
	}))
}
