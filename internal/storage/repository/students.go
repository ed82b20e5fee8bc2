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

const studentColumns = `matricula, name, email, phone, birth_date, plan_id, status, expiration_date`

func scanStudent(row interface{ Scan(...any) error }) (*models.Student, error) {
	var st models.Student
	var planID sql.NullInt64
	var expiration sql.NullTime
	if err := row.Scan(&st.Matricula, &st.Name, &st.Email, &st.Phone, &st.BirthDate,
		&planID, &st.Status, &expiration); err != nil {
		return nil, err
	}
	if planID.Valid {
		v := int(planID.Int64)
		st.PlanID = &v
	}
	if expiration.Valid {
		st.ExpirationDate = &expiration.Time
	}
	return &st, nil
}

// CreateStudent вставляет нового ученика и возвращает его номер зачисления.
func (s *Storage) CreateStudent(ctx context.Context, st models.Student) (string, error) {
	const op = "storage.CreateStudent"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO students (matricula, name, email, phone, birth_date,
			      plan_id, status, expiration_date)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			  RETURNING matricula`
	var matricula string
	err := s.DB.QueryRowContext(ctx, query,
		st.Matricula, st.Name, st.Email, st.Phone, st.BirthDate,
		st.PlanID, st.Status, st.ExpirationDate).Scan(&matricula)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, mapConstraintError(err))
	}
	return matricula, nil
}

// GetStudent возвращает ученика по номеру зачисления.
func (s *Storage) GetStudent(ctx context.Context, matricula string) (*models.Student, error) {
	const op = "storage.GetStudent"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + studentColumns + ` FROM students WHERE matricula = $1`
	st, err := scanStudent(s.DB.QueryRowContext(ctx, query, matricula))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, domerr.Wrap(err, domerr.CodeNotFound, "student not found"))
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return st, nil
}

// ListStudents возвращает список учеников с пагинацией.
func (s *Storage) ListStudents(ctx context.Context, limit, offset int) ([]*models.Student, error) {
	const op = "storage.ListStudents"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + studentColumns + `
			  FROM students
			  ORDER BY matricula
			  LIMIT $1 OFFSET $2`
	rows, err := s.DB.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Student
	for rows.Next() {
		st, err := scanStudent(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, st)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// UpdateStudent обновляет анкетные данные ученика и возвращает количество
// изменённых строк. План, статус и дата окончания меняются только через
// продление и финансовый мост.
func (s *Storage) UpdateStudent(ctx context.Context, st models.Student) (int, error) {
	const op = "storage.UpdateStudent"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE students
			  SET name = $1, email = $2, phone = $3, birth_date = $4
			  WHERE matricula = $5`
	result, err := s.DB.ExecContext(ctx, query,
		st.Name, st.Email, st.Phone, st.BirthDate, st.Matricula)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, mapConstraintError(err))
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// RemoveStudent удаляет ученика и возвращает количество удалённых строк.
func (s *Storage) RemoveStudent(ctx context.Context, matricula string) (int, error) {
	const op = "storage.RemoveStudent"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM students WHERE matricula = $1`
	result, err := s.DB.ExecContext(ctx, query, matricula)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, mapConstraintError(err))
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// UpdateRenewal записывает результат продления: новый план, новую дату
// окончания и статус Active одной командой.
func (s *Storage) UpdateRenewal(ctx context.Context, matricula string, planID int, expiration time.Time) error {
	const op = "storage.UpdateRenewal"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE students
			  SET plan_id = $1, expiration_date = $2, status = $3
			  WHERE matricula = $4`
	_, err := s.DB.ExecContext(ctx, query, planID, expiration, models.StudentStatusActive, matricula)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// UpdateStudentStatus записывает статус ученика. Используется финансовым
// мостом; дата окончания и план не трогаются.
func (s *Storage) UpdateStudentStatus(ctx context.Context, matricula, status string) error {
	const op = "storage.UpdateStudentStatus"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE students SET status = $1 WHERE matricula = $2`
	result, err := s.DB.ExecContext(ctx, query, status, matricula)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%s: %w", op, domerr.New(domerr.CodeNotFound, "student not found"))
	}
	return nil
}

// FindMembershipsExpiringTomorrow находит учеников, чей абонемент истекает завтра.
func (s *Storage) FindMembershipsExpiringTomorrow(ctx context.Context) ([]*models.ExpiringMembership, error) {
	const op = "storage.FindMembershipsExpiringTomorrow"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT s.matricula, s.name, s.email, p.name, s.expiration_date
			  FROM students s
			  JOIN plans p ON p.id = s.plan_id
			  WHERE s.expiration_date::DATE = CURRENT_DATE + INTERVAL '1 day';`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.ExpiringMembership
	for rows.Next() {
		var m models.ExpiringMembership
		if err = rows.Scan(&m.Matricula, &m.Name, &m.Email, &m.PlanName, &m.ExpirationDate); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &m)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
