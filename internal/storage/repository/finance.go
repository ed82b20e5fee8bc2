package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/magabrotheeeer/gym-backoffice/internal/lib/domerr"
	"github.com/magabrotheeeer/gym-backoffice/internal/models"
)

const financeColumns = `id, type, name, category, date, amount, description, linked_student_id`

func scanFinancialEntry(row interface{ Scan(...any) error }) (*models.FinancialEntry, error) {
	var e models.FinancialEntry
	var description, linked sql.NullString
	if err := row.Scan(&e.ID, &e.Type, &e.Name, &e.Category, &e.Date,
		&e.Amount, &description, &linked); err != nil {
		return nil, err
	}
	e.Description = description.String
	e.LinkedStudentID = linked.String
	return &e, nil
}

// CreateFinancialEntry вставляет запись в финансовый журнал и возвращает её ID.
func (s *Storage) CreateFinancialEntry(ctx context.Context, e models.FinancialEntry) (int, error) {
	const op = "storage.CreateFinancialEntry"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO financial_entries (type, name, category, date, amount,
			      description, linked_student_id)
			  VALUES ($1, $2, $3, $4, $5, $6, NULLIF($7, ''))
			  RETURNING id`
	var newID int
	err := s.DB.QueryRowContext(ctx, query,
		e.Type, e.Name, e.Category, e.Date, e.Amount, e.Description, e.LinkedStudentID).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, mapConstraintError(err))
	}
	return newID, nil
}

// GetFinancialEntry возвращает запись журнала по ID.
func (s *Storage) GetFinancialEntry(ctx context.Context, id int) (*models.FinancialEntry, error) {
	const op = "storage.GetFinancialEntry"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + financeColumns + ` FROM financial_entries WHERE id = $1`
	e, err := scanFinancialEntry(s.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, domerr.Wrap(err, domerr.CodeNotFound, "financial entry not found"))
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return e, nil
}

// ListFinancialEntries возвращает записи журнала с пагинацией, новые сверху.
func (s *Storage) ListFinancialEntries(ctx context.Context, limit, offset int) ([]*models.FinancialEntry, error) {
	const op = "storage.ListFinancialEntries"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + financeColumns + `
			  FROM financial_entries
			  ORDER BY date DESC, id DESC
			  LIMIT $1 OFFSET $2`
	rows, err := s.DB.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.FinancialEntry
	for rows.Next() {
		e, err := scanFinancialEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, e)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// UpdateFinancialEntry обновляет запись журнала по ID и возвращает количество
// изменённых строк.
func (s *Storage) UpdateFinancialEntry(ctx context.Context, e models.FinancialEntry, id int) (int, error) {
	const op = "storage.UpdateFinancialEntry"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE financial_entries
			  SET type = $1, name = $2, category = $3, date = $4, amount = $5,
			      description = $6, linked_student_id = NULLIF($7, '')
			  WHERE id = $8`
	result, err := s.DB.ExecContext(ctx, query,
		e.Type, e.Name, e.Category, e.Date, e.Amount, e.Description, e.LinkedStudentID, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, mapConstraintError(err))
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// RemoveFinancialEntry удаляет запись журнала по ID и возвращает количество
// удалённых строк. Удаление безусловное, связи не вычищаются.
func (s *Storage) RemoveFinancialEntry(ctx context.Context, id int) (int, error) {
	const op = "storage.RemoveFinancialEntry"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM financial_entries WHERE id = $1`
	result, err := s.DB.ExecContext(ctx, query, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// CountFinanceSummary считает суммы доходов и расходов за период.
func (s *Storage) CountFinanceSummary(ctx context.Context, from, to time.Time) (*models.FinanceSummary, error) {
	const op = "storage.CountFinanceSummary"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT
			      COALESCE(SUM(amount) FILTER (WHERE type = $1), 0),
			      COALESCE(SUM(amount) FILTER (WHERE type = $2), 0)
			  FROM financial_entries
			  WHERE date >= $3 AND date < $4`
	var summary models.FinanceSummary
	err := s.DB.QueryRowContext(ctx, query,
		models.FinanceTypeRevenue, models.FinanceTypeExpense, from, to).
		Scan(&summary.Revenue, &summary.Expense)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	summary.Balance = summary.Revenue - summary.Expense
	return &summary, nil
}
