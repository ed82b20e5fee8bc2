// Package verify реализует HTTP-обработчик подтверждения учётной записи
// сотрудника по коду из письма.
package verify

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

// Request — структура входных данных для подтверждения учётной записи.
type Request struct {
	Email string `json:"email" validate:"required,email"`
	Code  string `json:"code" validate:"required,numeric"`
}

// Handler управляет HTTP-запросами на подтверждение учётной записи.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики подтверждения учётной записи.
type Service interface {
	VerifyAccount(ctx context.Context, email, code string) error
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
// @Summary Подтвердить учётную запись
// @Description Активирует учётную запись сотрудника по коду подтверждения из письма.
// @Tags Staff
// @Accept  json
// @Produce  json
// @Param request body Request true "Почта и код подтверждения"
// @Success 200 {object} map[string]any "Учётная запись активирована"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 401 {object} response.ErrorResponse "Код неверен или просрочен"
// @Failure 404 {object} response.ErrorResponse "Сотрудник не найден"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /staff/verify [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.staff.verify"

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
	log.Info("request body decoded", slog.String("email", req.Email))

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}
	log.Info("all fields are validated")

	if err := h.service.VerifyAccount(r.Context(), req.Email, req.Code); err != nil {
		log.Error("failed to verify staff account", sl.Err(err))
		status, resp := response.FromError(err, "could not verify staff account")
		w.WriteHeader(status)
		render.JSON(w, r, resp)
		return
	}

	log.Info("success to verify staff account", slog.String("email", req.Email))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"verified": true,
	}))
}
