package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/gym-backoffice/internal/lib/domerr"
	"github.com/magabrotheeeer/gym-backoffice/internal/models"
)

const assetColumns = `id, name, acquisition_date, value, status, location, description`

func scanAsset(row interface{ Scan(...any) error }) (*models.Asset, error) {
	var a models.Asset
	var location, description sql.NullString
	if err := row.Scan(&a.ID, &a.Name, &a.AcquisitionDate, &a.Value,
		&a.Status, &location, &description); err != nil {
		return nil, err
	}
	a.Location = location.String
	a.Description = description.String
	return &a, nil
}

// CreateAsset вставляет единицу инвентаря и возвращает её ID.
func (s *Storage) CreateAsset(ctx context.Context, a models.Asset) (int, error) {
	const op = "storage.CreateAsset"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO assets (name, acquisition_date, value, status, location, description)
			  VALUES ($1, $2, $3, $4, $5, $6)
			  RETURNING id`
	var newID int
	err := s.DB.QueryRowContext(ctx, query,
		a.Name, a.AcquisitionDate, a.Value, a.Status, a.Location, a.Description).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, mapConstraintError(err))
	}
	return newID, nil
}

// GetAsset возвращает единицу инвентаря по ID.
func (s *Storage) GetAsset(ctx context.Context, id int) (*models.Asset, error) {
	const op = "storage.GetAsset"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + assetColumns + ` FROM assets WHERE id = $1`
	a, err := scanAsset(s.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, domerr.Wrap(err, domerr.CodeNotFound, "asset not found"))
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return a, nil
}

// ListAssets возвращает инвентарь с пагинацией.
func (s *Storage) ListAssets(ctx context.Context, limit, offset int) ([]*models.Asset, error) {
	const op = "storage.ListAssets"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + assetColumns + `
			  FROM assets
			  ORDER BY id
			  LIMIT $1 OFFSET $2`
	rows, err := s.DB.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Asset
	for rows.Next() {
		a, err := scanAsset(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, a)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// UpdateAsset обновляет единицу инвентаря по ID и возвращает количество
// изменённых строк.
func (s *Storage) UpdateAsset(ctx context.Context, a models.Asset, id int) (int, error) {
	const op = "storage.UpdateAsset"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE assets
			  SET name = $1, acquisition_date = $2, value = $3, status = $4,
			      location = $5, description = $6
			  WHERE id = $7`
	result, err := s.DB.ExecContext(ctx, query,
		a.Name, a.AcquisitionDate, a.Value, a.Status, a.Location, a.Description, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// RemoveAsset удаляет единицу инвентаря по ID и возвращает количество
// удалённых строк.
func (s *Storage) RemoveAsset(ctx context.Context, id int) (int, error) {
	const op = "storage.RemoveAsset"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM assets WHERE id = $1`
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
