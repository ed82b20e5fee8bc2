// Package changepassword реализует HTTP-обработчик смены пароля сотрудника
// по коду сброса из письма.
package changepassword

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
)

// Request — структура входных данных для смены пароля.
type Request struct {
	Email       string `json:"email" validate:"required,email"`
	Code        string `json:"code" validate:"required,numeric"`
	NewPassword string `json:"new_password" validate:"required,min=6"`
}

// Handler управляет HTTP-запросами на смену пароля.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики смены пароля.
type Service interface {
	ChangePassword(ctx context.Context, email, code, newPassword string) error
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
// @Summary Сменить пароль
// @Description Меняет пароль сотрудника по коду сброса, полученному на почту.
// @Tags Staff
// @Accept  json
// @Produce  json
// @Param request body Request true "Почта, код сброса и новый пароль"
// @Success 200 {object} map[string]any "Пароль изменён"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 401 {object} response.ErrorResponse "Код неверен или просрочен"
// @Failure 404 {object} response.ErrorResponse "Сотрудник не найден"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /staff/change-password [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.staff.changepassword"

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

	if err := h.service.ChangePassword(r.Context(), req.Email, req.Code, req.NewPassword); err != nil {
		log.Error("failed to change password", sl.Err(err))
		status, resp := response.FromError(err, "could not change password")
		w.WriteHeader(status)
		render.JSON(w, r, resp)
		return
	}

	log.Info("success to change password", slog.String("email", req.Email))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"changed": true,
	}))
}
