package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/magabrotheeeer/gym-backoffice/internal/lib/domerr"
	"github.com/magabrotheeeer/gym-backoffice/internal/models"
)

// DefaultDeletionReason записывается в журнал, если причину не указали.
const DefaultDeletionReason = "No reason provided"

// VerifyPasswordFunc сравнивает сохранённый хэш пароля инициатора с паролем,
// который тот ввёл для подтверждения операции. Хэширование живёт в
// сервисном слое.
type VerifyPasswordFunc func(storedHash string) (bool, error)

// checkDeletionRules проверяет правила жёсткого удаления администратора.
// Чистая функция, вся работа с базой остаётся в DeleteAdminTx.
func checkDeletionRules(requesterLevel, targetLevel models.AccessLevel, sameAccount bool, adminCount int) error {
	if requesterLevel != models.AccessAdministrator && requesterLevel != models.AccessSuperAdmin {
		return domerr.New(domerr.CodeForbidden, "only administrators can delete administrator accounts")
	}
	if targetLevel == models.AccessSuperAdmin {
		return domerr.New(domerr.CodeForbidden, "super admin accounts cannot be deleted")
	}
	if sameAccount {
		if requesterLevel != models.AccessAdministrator {
			return domerr.New(domerr.CodeBadRequest, "this account cannot delete itself")
		}
		if adminCount <= 1 {
			return domerr.New(domerr.CodeBadRequest, "cannot delete the last administrator account")
		}
		return nil
	}
	if targetLevel == models.AccessAdministrator && adminCount <= 1 {
		return domerr.New(domerr.CodeBadRequest, "cannot delete the last administrator account")
	}
	return nil
}

// DeleteAdminTx жёстко удаляет учётную запись сотрудника в одной транзакции:
// блокирует строки инициатора и цели, проверяет права и пароль инициатора,
// следит, чтобы не исчез последний администратор, удаляет строку и пишет
// запись в журнал удалений. Любая ошибка откатывает всё целиком.
func (s *Storage) DeleteAdminTx(ctx context.Context, requesterID, targetNationalID, reason string,
	verify VerifyPasswordFunc) (*models.AdminDeletionRecord, error) {
	const op = "storage.DeleteAdminTx"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	requester, err := scanStaff(tx.QueryRowContext(ctx,
		`SELECT `+staffColumns+` FROM staff WHERE id = $1 AND deleted_at IS NULL FOR UPDATE`,
		requesterID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, domerr.Wrap(err, domerr.CodeNotFound, "requester account not found"))
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	requesterLevel, ok := models.NormalizeAccessLevel(requester.AccessLevel)
	if !ok || (requesterLevel != models.AccessAdministrator && requesterLevel != models.AccessSuperAdmin) {
		return nil, fmt.Errorf("%s: %w", op, domerr.New(domerr.CodeForbidden, "only administrators can delete administrator accounts"))
	}

	// Инициатор подтверждает операцию собственным паролем.
	match, err := verify(requester.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if !match {
		return nil, fmt.Errorf("%s: %w", op, domerr.New(domerr.CodeUnauthorized, "password does not match requester account"))
	}

	target, err := scanStaff(tx.QueryRowContext(ctx,
		`SELECT `+staffColumns+` FROM staff WHERE national_id = $1 AND deleted_at IS NULL FOR UPDATE`,
		targetNationalID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, domerr.Wrap(err, domerr.CodeNotFound, "target account not found"))
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	// Нераспознанный уровень доступа цели считается обычным сотрудником,
	// как и при входе в систему: защищены только распознанные super_admin.
	targetLevel, ok := models.NormalizeAccessLevel(target.AccessLevel)
	if !ok {
		targetLevel = models.AccessEmployee
	}

	var adminCount int
	err = tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM staff
		 WHERE LOWER(access_level) = $1 AND deleted_at IS NULL AND is_enabled`,
		string(models.AccessAdministrator)).Scan(&adminCount)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err = checkDeletionRules(requesterLevel, targetLevel, requester.ID == target.ID, adminCount); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var deletedID string
	err = tx.QueryRowContext(ctx, `DELETE FROM staff WHERE id = $1 RETURNING id`, target.ID).Scan(&deletedID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.ForeignKeyViolation {
			return nil, fmt.Errorf("%s: %w", op, domerr.Wrap(err, domerr.CodeConflict, "account has linked rows"))
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if reason == "" {
		reason = DefaultDeletionReason
	}
	record := models.AdminDeletionRecord{
		TargetID:          deletedID,
		TargetName:        target.Name,
		TargetNationalID:  target.NationalID,
		TargetAccessLevel: string(targetLevel),
		PerformedBy:       requester.ID,
		Reason:            reason,
	}
	err = tx.QueryRowContext(ctx,
		`INSERT INTO admin_deletions (target_id, target_name, target_national_id,
			 target_access_level, performed_by, reason)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at`,
		record.TargetID, record.TargetName, record.TargetNationalID,
		record.TargetAccessLevel, record.PerformedBy, record.Reason).
		Scan(&record.ID, &record.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &record, nil
}

// ListAdminDeletions возвращает журнал удалений, новые сверху.
func (s *Storage) ListAdminDeletions(ctx context.Context, limit, offset int) ([]*models.AdminDeletionRecord, error) {
	const op = "storage.ListAdminDeletions"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, target_id, target_name, target_national_id,
			      target_access_level, performed_by, reason, created_at
			  FROM admin_deletions
			  ORDER BY created_at DESC, id DESC
			  LIMIT $1 OFFSET $2`
	rows, err := s.DB.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.AdminDeletionRecord
	for rows.Next() {
		var r models.AdminDeletionRecord
		if err := rows.Scan(&r.ID, &r.TargetID, &r.TargetName, &r.TargetNationalID,
			&r.TargetAccessLevel, &r.PerformedBy, &r.Reason, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &r)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
