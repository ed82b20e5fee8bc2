package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/gym-backoffice/internal/lib/domerr"
	"github.com/magabrotheeeer/gym-backoffice/internal/models"
)

// CreatePlan вставляет новый тарифный план и возвращает его ID.
func (s *Storage) CreatePlan(ctx context.Context, p models.Plan) (int, error) {
	const op = "storage.CreatePlan"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO plans (name, price, status, duration_unit)
			  VALUES ($1, $2, $3, $4)
			  RETURNING id`
	var newID int
	err := s.DB.QueryRowContext(ctx, query,
		p.Name, p.Price, p.Status, string(p.DurationUnit)).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, mapConstraintError(err))
	}
	return newID, nil
}

// GetPlan возвращает тарифный план по ID.
func (s *Storage) GetPlan(ctx context.Context, id int) (*models.Plan, error) {
	const op = "storage.GetPlan"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, name, price, status, duration_unit FROM plans WHERE id = $1`
	var p models.Plan
	var unit string
	err := s.DB.QueryRowContext(ctx, query, id).Scan(&p.ID, &p.Name, &p.Price, &p.Status, &unit)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, domerr.Wrap(err, domerr.CodeNotFound, "plan not found"))
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	p.DurationUnit = models.DurationUnit(unit)
	return &p, nil
}

// ListPlans возвращает список тарифных планов.
func (s *Storage) ListPlans(ctx context.Context) ([]*models.Plan, error) {
	const op = "storage.ListPlans"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, name, price, status, duration_unit FROM plans ORDER BY id`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Plan
	for rows.Next() {
		var p models.Plan
		var unit string
		if err = rows.Scan(&p.ID, &p.Name, &p.Price, &p.Status, &unit); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		p.DurationUnit = models.DurationUnit(unit)
		result = append(result, &p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// UpdatePlan обновляет тарифный план по ID и возвращает количество изменённых строк.
func (s *Storage) UpdatePlan(ctx context.Context, p models.Plan, id int) (int, error) {
	const op = "storage.UpdatePlan"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE plans
			  SET name = $1, price = $2, status = $3, duration_unit = $4
			  WHERE id = $5`
	result, err := s.DB.ExecContext(ctx, query,
		p.Name, p.Price, p.Status, string(p.DurationUnit), id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, mapConstraintError(err))
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// RemovePlan удаляет тарифный план по ID и возвращает количество удалённых строк.
func (s *Storage) RemovePlan(ctx context.Context, id int) (int, error) {
	const op = "storage.RemovePlan"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM plans WHERE id = $1`
	result, err := s.DB.ExecContext(ctx, query, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, mapConstraintError(err))
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}
