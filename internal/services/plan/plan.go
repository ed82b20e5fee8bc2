// Package services содержит бизнес-логику тарифных планов.
package services

import (
	"context"
	"log/slog"

	"github.com/magabrotheeeer/gym-backoffice/internal/lib/domerr"
	"github.com/magabrotheeeer/gym-backoffice/internal/models"
)

// PlanRepository определяет методы для работы с тарифными планами.
type PlanRepository interface {
	// CreatePlan добавляет план и возвращает его ID.
	CreatePlan(ctx context.Context, p models.Plan) (int, error)
	// GetPlan возвращает план по ID.
	GetPlan(ctx context.Context, id int) (*models.Plan, error)
	// ListPlans возвращает все планы.
	ListPlans(ctx context.Context) ([]*models.Plan, error)
	// UpdatePlan обновляет план по ID.
	UpdatePlan(ctx context.Context, p models.Plan, id int) (int, error)
	// RemovePlan удаляет план по ID.
	RemovePlan(ctx context.Context, id int) (int, error)
}

// PlanService реализует бизнес-логику тарифных планов.
type PlanService struct {
	repo PlanRepository
	log  *slog.Logger
}

// NewPlanService создает новый экземпляр PlanService.
func NewPlanService(repo PlanRepository, log *slog.Logger) *PlanService {
	return &PlanService{repo: repo, log: log}
}

// Create добавляет тарифный план. Единица длительности обязана быть
// распознаваемой, чтобы продления не падали на кривых данных.
func (s *PlanService) Create(ctx context.Context, req models.DummyPlan) (int, error) {
	unit, ok := models.ParseDurationUnit(req.DurationUnit)
	if !ok {
		return 0, domerr.New(domerr.CodeBadRequest, "unknown duration unit")
	}

	plan := models.Plan{
		Name:         req.Name,
		Price:        req.Price,
		Status:       models.PlanStatusActive,
		DurationUnit: unit,
	}
	id, err := s.repo.CreatePlan(ctx, plan)
	if err != nil {
		return 0, err
	}
	s.log.Info("created plan", slog.Int("id", id), slog.String("name", plan.Name))
	return id, nil
}

// Read возвращает план по ID.
func (s *PlanService) Read(ctx context.Context, id int) (*models.Plan, error) {
	return s.repo.GetPlan(ctx, id)
}

// List возвращает все тарифные планы.
func (s *PlanService) List(ctx context.Context) ([]*models.Plan, error) {
	return s.repo.ListPlans(ctx)
}

// Update обновляет тарифный план по ID.
func (s *PlanService) Update(ctx context.Context, req models.DummyPlan, id int) (int, error) {
	unit, ok := models.ParseDurationUnit(req.DurationUnit)
	if !ok {
		return 0, domerr.New(domerr.CodeBadRequest, "unknown duration unit")
	}

	status := req.Status
	if status == "" {
		status = models.PlanStatusActive
	}
	plan := models.Plan{
		Name:         req.Name,
		Price:        req.Price,
		Status:       status,
		DurationUnit: unit,
	}
	return s.repo.UpdatePlan(ctx, plan, id)
}

// Remove удаляет тарифный план. План с записанными учениками удалить
// нельзя, хранилище вернёт конфликт.
func (s *PlanService) Remove(ctx context.Context, id int) (int, error) {
	return s.repo.RemovePlan(ctx, id)
}
