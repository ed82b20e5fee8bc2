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

const staffColumns = `id, name, email, national_id, password_hash, access_level,
			  verification_code, verification_expiry, password_reset_code,
			  password_reset_expiry, is_enabled, deleted_at`

func scanStaff(row interface{ Scan(...any) error }) (*models.StaffAccount, error) {
	var a models.StaffAccount
	var verificationCode sql.NullString
	var verificationExpiry sql.NullTime
	var resetCode sql.NullString
	var resetExpiry, deletedAt sql.NullTime
	if err := row.Scan(&a.ID, &a.Name, &a.Email, &a.NationalID, &a.PasswordHash,
		&a.AccessLevel, &verificationCode, &verificationExpiry,
		&resetCode, &resetExpiry, &a.IsEnabled, &deletedAt); err != nil {
		return nil, err
	}
	if verificationCode.Valid {
		a.VerificationCode = &verificationCode.String
	}
	if verificationExpiry.Valid {
		a.VerificationExpiry = &verificationExpiry.Time
	}
	if resetCode.Valid {
		a.PasswordResetCode = &resetCode.String
	}
	if resetExpiry.Valid {
		a.PasswordResetExpiry = &resetExpiry.Time
	}
	if deletedAt.Valid {
		a.DeletedAt = &deletedAt.Time
	}
	return &a, nil
}

// CreateStaff вставляет учётную запись сотрудника и возвращает её UUID.
// Учётная запись создаётся выключенной, до подтверждения кода.
func (s *Storage) CreateStaff(ctx context.Context, a models.StaffAccount) (string, error) {
	const op = "storage.CreateStaff"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO staff (name, email, national_id, password_hash, access_level,
			      verification_code, verification_expiry, is_enabled)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, FALSE)
			  RETURNING id`
	var newID string
	err := s.DB.QueryRowContext(ctx, query,
		a.Name, a.Email, a.NationalID, a.PasswordHash, a.AccessLevel,
		a.VerificationCode, a.VerificationExpiry).Scan(&newID)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, mapConstraintError(err))
	}
	return newID, nil
}

// GetStaffByID возвращает учётную запись по UUID, включая софт-удалённые.
func (s *Storage) GetStaffByID(ctx context.Context, id string) (*models.StaffAccount, error) {
	const op = "storage.GetStaffByID"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + staffColumns + ` FROM staff WHERE id = $1`
	a, err := scanStaff(s.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, domerr.Wrap(err, domerr.CodeNotFound, "staff account not found"))
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return a, nil
}

// GetStaffByEmail возвращает действующую учётную запись по email.
func (s *Storage) GetStaffByEmail(ctx context.Context, email string) (*models.StaffAccount, error) {
	const op = "storage.GetStaffByEmail"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + staffColumns + ` FROM staff WHERE email = $1 AND deleted_at IS NULL`
	a, err := scanStaff(s.DB.QueryRowContext(ctx, query, email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, domerr.Wrap(err, domerr.CodeNotFound, "staff account not found"))
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return a, nil
}

// GetStaffByNationalID возвращает действующую учётную запись по номеру документа.
func (s *Storage) GetStaffByNationalID(ctx context.Context, nationalID string) (*models.StaffAccount, error) {
	const op = "storage.GetStaffByNationalID"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + staffColumns + ` FROM staff WHERE national_id = $1 AND deleted_at IS NULL`
	a, err := scanStaff(s.DB.QueryRowContext(ctx, query, nationalID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, domerr.Wrap(err, domerr.CodeNotFound, "staff account not found"))
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return a, nil
}

// ListStaff возвращает действующие учётные записи с пагинацией.
func (s *Storage) ListStaff(ctx context.Context, limit, offset int) ([]*models.StaffAccount, error) {
	const op = "storage.ListStaff"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + staffColumns + `
			  FROM staff
			  WHERE deleted_at IS NULL
			  ORDER BY name
			  LIMIT $1 OFFSET $2`
	rows, err := s.DB.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.StaffAccount
	for rows.Next() {
		a, err := scanStaff(rows)
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

// ActivateStaff включает учётную запись после подтверждения кода и стирает код.
func (s *Storage) ActivateStaff(ctx context.Context, id string) error {
	const op = "storage.ActivateStaff"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE staff
			  SET is_enabled = TRUE, verification_code = NULL, verification_expiry = NULL
			  WHERE id = $1 AND deleted_at IS NULL`
	result, err := s.DB.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%s: %w", op, domerr.New(domerr.CodeNotFound, "staff account not found"))
	}
	return nil
}

// UpdateStaffPassword меняет хэш пароля и стирает код восстановления.
func (s *Storage) UpdateStaffPassword(ctx context.Context, id, passwordHash string) error {
	const op = "storage.UpdateStaffPassword"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE staff
			  SET password_hash = $1, password_reset_code = NULL, password_reset_expiry = NULL
			  WHERE id = $2 AND deleted_at IS NULL`
	result, err := s.DB.ExecContext(ctx, query, passwordHash, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%s: %w", op, domerr.New(domerr.CodeNotFound, "staff account not found"))
	}
	return nil
}

// SetPasswordResetCode записывает код восстановления пароля и срок его действия.
func (s *Storage) SetPasswordResetCode(ctx context.Context, id, code string, expiry time.Time) error {
	const op = "storage.SetPasswordResetCode"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE staff
			  SET password_reset_code = $1, password_reset_expiry = $2
			  WHERE id = $3 AND deleted_at IS NULL`
	result, err := s.DB.ExecContext(ctx, query, code, expiry, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%s: %w", op, domerr.New(domerr.CodeNotFound, "staff account not found"))
	}
	return nil
}

// SoftDeleteStaff помечает учётную запись удалённой, не трогая строку.
// Жёсткое удаление администраторов делает только DeleteAdminTx.
func (s *Storage) SoftDeleteStaff(ctx context.Context, id string) error {
	const op = "storage.SoftDeleteStaff"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE staff SET deleted_at = NOW(), is_enabled = FALSE
			  WHERE id = $1 AND deleted_at IS NULL`
	result, err := s.DB.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%s: %w", op, domerr.New(domerr.CodeNotFound, "staff account not found"))
	}
	return nil
}
