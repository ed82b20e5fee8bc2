// Package deleteadmin реализует HTTP-обработчик защищённого удаления
// учётной записи сотрудника.
//
// Запрос подтверждается паролем самого инициатора и проходит через
// одну транзакцию базы: проверка ролей, пароля и числа администраторов,
// удаление строки и запись в журнал аудита либо выполняются целиком,
// либо не выполняются вовсе. Идентификатор инициатора берётся из контекста,
// заполненного JWT middleware.
package deleteadmin

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/gym-backoffice/internal/http/middlewarectx"
	"github.com/magabrotheeeer/gym-backoffice/internal/http/response"
	"github.com/magabrotheeeer/gym-backoffice/internal/lib/sl"
	"github.com/magabrotheeeer/gym-backoffice/internal/models"
)

// Request — структура входных данных для защищённого удаления.
type Request struct {
	TargetNationalID  string `json:"target_national_id" validate:"required"` // Номер документа удаляемого
	RequesterPassword string `json:"requester_password" validate:"required"` // Пароль инициатора для подтверждения
	Reason            string `json:"reason"`                                 // Причина удаления (опционально)
}

// Handler управляет HTTP-запросами на защищённое удаление сотрудника.
type Handler struct {
	log      *slog.Logger        // Логгер для записи информации и ошибок
	service  Service             // Сервис бизнес-логики сотрудников
	validate *validator.Validate // Валидатор структуры входящих данных
}

// Service описывает интерфейс бизнес-логики защищённого удаления.
type Service interface {
	DeleteAdmin(ctx context.Context, requesterID, targetNationalID, requesterPassword, reason string) (*models.AdminDeletionRecord, error)
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
// @Summary Удалить сотрудника через защищённую транзакцию
// @Description Удаляет учётную запись сотрудника после проверки роли инициатора, его пароля и числа оставшихся администраторов. Операция атомарна и оставляет запись в журнале аудита.
// @Tags Staff
// @Accept  json
// @Produce  json
// @Param request body Request true "Номер документа удаляемого, пароль инициатора и причина"
// @Success 200 {object} map[string]any "Запись журнала аудита"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON или нарушение правил удаления"
// @Failure 401 {object} response.ErrorResponse "Пароль не подошёл"
// @Failure 403 {object} response.ErrorResponse "Недостаточный уровень доступа"
// @Failure 404 {object} response.ErrorResponse "Сотрудник не найден"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /staff/delete-admin [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.staff.deleteadmin"

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

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}
	log.Info("all fields are validated")

	requesterID, ok := r.Context().Value(middlewarectx.StaffID).(string)
	if !ok || requesterID == "" {
		log.Error("staff id not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	record, err := h.service.DeleteAdmin(r.Context(), requesterID, req.TargetNationalID, req.RequesterPassword, req.Reason)
	if err != nil {
		log.Error("failed to delete staff account", sl.Err(err))
		status, resp := response.FromError(err, "could not delete staff account")
		w.WriteHeader(status)
		render.JSON(w, r, resp)
		return
	}

	log.Info("success to delete staff account",
		slog.String("target_id", record.TargetID),
		slog.String("performed_by", record.PerformedBy))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"record": record,
	}))
}
