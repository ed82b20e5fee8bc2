// Package resetpassword реализует HTTP-обработчик запроса сброса пароля.
// Ответ одинаков для известной и неизвестной почты, чтобы не раскрывать
// список учётных записей.
package resetpassword

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

// Request — структура входных данных для запроса сброса пароля.
type Request struct {
	Email string `json:"email" validate:"required,email"`
}

// Handler управляет HTTP-запросами на сброс пароля.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики запроса сброса пароля.
type Service interface {
	RequestPasswordReset(ctx context.Context, email string) error
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
// @Summary Запросить сброс пароля
// @Description Отправляет код сброса пароля на почту сотрудника. Ответ не раскрывает, существует ли учётная запись.
// @Tags Staff
// @Accept  json
// @Produce  json
// @Param request body Request true "Почта сотрудника"
// @Success 200 {object} map[string]any "Запрос принят"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /staff/reset-password [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.staff.resetpassword"

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

	if err := h.service.RequestPasswordReset(r.Context(), req.Email); err != nil {
		log.Error("failed to request password reset", sl.Err(err))
		status, resp := response.FromError(err, "could not request password reset")
		w.WriteHeader(status)
		render.JSON(w, r, resp)
		return
	}

	log.Info("password reset requested", slog.String("email", req.Email))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"requested": true,
	}))
}
