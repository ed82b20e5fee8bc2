// Package create реализует HTTP-обработчик для зачисления новых учеников.
//
// Handler принимает JSON-запрос с данными ученика, валидирует их,
// вызывает бизнес-логику создания через сервис и возвращает номер зачисления
// созданной записи в JSON-формате.
//
// В случае ошибок формируются соответствующие HTTP-ответы с описанием проблемы.
package create

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
	"github.com/magabrotheeeer/gym-backoffice/internal/models"
)

// Handler управляет HTTP-запросами на зачисление учеников.
//
// Использует логгер для записи операций и ошибок,
// сервис бизнес-логики для создания записи,
// а также валидатор для проверки структуры входных данных.
type Handler struct {
	log      *slog.Logger        // Логгер для записи информации и ошибок
	service  Service             // Сервис бизнес-логики учеников
	validate *validator.Validate // Валидатор структуры входящих данных
}

// Service описывает интерфейс бизнес-логики создания ученика.
type Service interface {
	Create(ctx context.Context, req models.DummyStudent) (string, error)
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
// @Summary Зачислить нового ученика
// @Description Создает запись ученика. Если указан тарифный план, абонемент активируется с сегодняшнего дня.
// @Tags Students
// @Accept  json
// @Produce  json
// @Param request body models.DummyStudent true "Данные нового ученика"
// @Success 200 {object} map[string]any "Успешное зачисление"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 409 {object} response.ErrorResponse "Номер зачисления уже занят"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера при создании записи"
// @Router /students [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.student.create"
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

	matricula, err := h.service.Create(r.Context(), req)
	if err != nil {
		log.Error("failed to create student", sl.Err(err))
		status, resp := response.FromError(err, "could not create student")
		w.WriteHeader(status)
		render.JSON(w, r, resp)
		return
	}

	log.Info("success to create student", slog.String("matricula", matricula))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"matricula": matricula,
	}))
}
