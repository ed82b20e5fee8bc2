// Package services содержит бизнес-логику абонементов: запись учеников,
// расчёт дат продления и вычисление актуального статуса.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/magabrotheeeer/gym-backoffice/internal/lib/domerr"
	"github.com/magabrotheeeer/gym-backoffice/internal/models"
)

// renewWorkers ограничивает параллелизм пакетного продления.
const renewWorkers = 8

// MembershipRepository определяет методы для работы с учениками в хранилище.
type MembershipRepository interface {
	// CreateStudent добавляет ученика и возвращает его номер зачисления.
	CreateStudent(ctx context.Context, st models.Student) (string, error)
	// GetStudent возвращает ученика по номеру зачисления.
	GetStudent(ctx context.Context, matricula string) (*models.Student, error)
	// ListStudents возвращает список учеников с пагинацией.
	ListStudents(ctx context.Context, limit, offset int) ([]*models.Student, error)
	// UpdateStudent обновляет анкетные данные ученика.
	UpdateStudent(ctx context.Context, st models.Student) (int, error)
	// RemoveStudent удаляет ученика и возвращает количество удалённых записей.
	RemoveStudent(ctx context.Context, matricula string) (int, error)
	// UpdateRenewal записывает план, дату окончания и статус Active.
	UpdateRenewal(ctx context.Context, matricula string, planID int, expiration time.Time) error
	// GetPlan возвращает тарифный план по ID.
	GetPlan(ctx context.Context, id int) (*models.Plan, error)
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	// Get пытается получить значение из кеша по ключу.
	Get(key string, result any) (bool, error)
	// Set сохраняет значение в кеш с временем жизни.
	Set(key string, value any, expiration time.Duration) error
	// Invalidate удаляет значение из кеша по ключу.
	Invalidate(key string) error
}

// MembershipService реализует бизнес-логику работы с абонементами.
type MembershipService struct {
	repo  MembershipRepository
	cache Cache
	log   *slog.Logger

	// now подменяется в тестах, чтобы зафиксировать "сегодня".
	now func() time.Time
}

// NewMembershipService создает новый экземпляр MembershipService.
func NewMembershipService(repo MembershipRepository, cache Cache, log *slog.Logger) *MembershipService {
	return &MembershipService{
		repo:  repo,
		cache: cache,
		log:   log,
		now:   time.Now,
	}
}

// ComputeRenewalDate возвращает новую дату окончания абонемента: от полуночи
// базовой даты откладывается один период плана. Неизвестная единица
// длительности считается месяцем, чтобы продление не падало на старых данных.
// Календарная арифметика переносит несуществующие даты вперёд, поэтому
// 31 января плюс месяц даёт 2 или 3 марта.
func ComputeRenewalDate(base time.Time, unit models.DurationUnit) time.Time {
	day := time.Date(base.Year(), base.Month(), base.Day(), 0, 0, 0, 0, base.Location())
	switch unit {
	case models.DurationDaily:
		return day.AddDate(0, 0, 1)
	case models.DurationYearly:
		return day.AddDate(1, 0, 0)
	case models.DurationMonthly:
		return day.AddDate(0, 1, 0)
	default:
		return day.AddDate(0, 1, 0)
	}
}

// DeriveDisplayStatus вычисляет статус ученика на момент now, не трогая
// записанное в базе значение. Дата окончания, равная сегодняшнему дню,
// ещё действует.
func DeriveDisplayStatus(st *models.Student, now time.Time) (status, label string) {
	if st.PlanID == nil || st.ExpirationDate == nil {
		return models.StudentStatusInactive, models.DisplayNoPlan
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	expiration := *st.ExpirationDate
	expirationDay := time.Date(expiration.Year(), expiration.Month(), expiration.Day(),
		0, 0, 0, 0, expiration.Location())
	if expirationDay.Before(today) {
		return models.StudentStatusInactive, models.DisplayExpired
	}
	return models.StudentStatusActive, expirationDay.Format("02-01-2006")
}

func (s *MembershipService) view(st *models.Student) *models.StudentView {
	status, label := DeriveDisplayStatus(st, s.now())
	return &models.StudentView{
		Student:         *st,
		DisplayStatus:   status,
		ExpirationLabel: label,
	}
}

// Create записывает нового ученика. Если указан план, абонемент сразу
// оплачивается от сегодняшнего дня; иначе ученик остаётся без плана.
func (s *MembershipService) Create(ctx context.Context, req models.DummyStudent) (string, error) {
	birthDate, err := time.Parse("02-01-2006", req.BirthDate)
	if err != nil {
		return "", domerr.Wrap(err, domerr.CodeBadRequest, "invalid birth date")
	}

	student := models.Student{
		Matricula: req.Matricula,
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		BirthDate: birthDate,
		Status:    models.StudentStatusInactive,
	}
	if req.PlanID != nil {
		plan, err := s.repo.GetPlan(ctx, *req.PlanID)
		if err != nil {
			return "", err
		}
		expiration := ComputeRenewalDate(s.now(), plan.DurationUnit)
		student.PlanID = req.PlanID
		student.Status = models.StudentStatusActive
		student.ExpirationDate = &expiration
	}

	matricula, err := s.repo.CreateStudent(ctx, student)
	if err != nil {
		return "", err
	}
	s.log.Info("enrolled new student", slog.String("matricula", matricula))

	cacheKey := fmt.Sprintf("student:%s", matricula)
	if err := s.cache.Set(cacheKey, student, time.Hour); err != nil {
		s.log.Warn("failed to cache student", slog.String("key", cacheKey), slog.Any("err", err))
	}
	return matricula, nil
}

// Read возвращает ученика с вычисленным статусом, используя кеш или репозиторий.
func (s *MembershipService) Read(ctx context.Context, matricula string) (*models.StudentView, error) {
	var student *models.Student
	cacheKey := fmt.Sprintf("student:%s", matricula)
	found, err := s.cache.Get(cacheKey, &student)
	if err != nil {
		return nil, err
	}
	if found {
		return s.view(student), nil
	}

	student, err = s.repo.GetStudent(ctx, matricula)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(cacheKey, student, time.Hour); err != nil {
		s.log.Warn("failed to add to cache", slog.String("key", cacheKey), slog.Any("err", err))
	}
	return s.view(student), nil
}

// List возвращает учеников с вычисленными статусами.
func (s *MembershipService) List(ctx context.Context, limit, offset int) ([]*models.StudentView, error) {
	students, err := s.repo.ListStudents(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	views := make([]*models.StudentView, 0, len(students))
	for _, st := range students {
		views = append(views, s.view(st))
	}
	return views, nil
}

// Update обновляет анкетные данные ученика. План и дата окончания этим путём
// не меняются, их ведёт продление.
func (s *MembershipService) Update(ctx context.Context, req models.DummyStudent, matricula string) (int, error) {
	birthDate, err := time.Parse("02-01-2006", req.BirthDate)
	if err != nil {
		return 0, domerr.Wrap(err, domerr.CodeBadRequest, "invalid birth date")
	}

	student := models.Student{
		Matricula: matricula,
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		BirthDate: birthDate,
	}
	res, err := s.repo.UpdateStudent(ctx, student)
	if err != nil {
		return 0, err
	}

	cacheKey := fmt.Sprintf("student:%s", matricula)
	if err := s.cache.Invalidate(cacheKey); err != nil {
		s.log.Warn("failed to remove from cache", slog.String("key", cacheKey), slog.Any("err", err))
	}
	return res, nil
}

// Remove удаляет ученика и инвалидирует кеш.
func (s *MembershipService) Remove(ctx context.Context, matricula string) (int, error) {
	cacheKey := fmt.Sprintf("student:%s", matricula)
	if err := s.cache.Invalidate(cacheKey); err != nil {
		s.log.Warn("failed to remove from cache", slog.String("key", cacheKey), slog.Any("err", err))
	}
	return s.repo.RemoveStudent(ctx, matricula)
}

// RenewResult — итог пакетного продления.
type RenewResult struct {
	Renewed []string `json:"renewed"` // Номера зачисления продлённых учеников
	Skipped []string `json:"skipped"` // Номера, которых нет в базе
}

// Renew продлевает абонементы группы учеников на один тарифный план.
// План читается один раз; его отсутствие отменяет всю операцию. Ученики
// обрабатываются параллельно, незнакомые номера пропускаются. Действующий
// абонемент продлевается от своей даты окончания, истёкший — от сегодня.
func (s *MembershipService) Renew(ctx context.Context, planID int, matriculas []string) (*RenewResult, error) {
	plan, err := s.repo.GetPlan(ctx, planID)
	if err != nil {
		return nil, err
	}

	today := s.now()
	renewed := make([]string, len(matriculas))
	skipped := make([]string, len(matriculas))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(renewWorkers)
	for i, matricula := range matriculas {
		g.Go(func() error {
			student, err := s.repo.GetStudent(gctx, matricula)
			if err != nil {
				if domerr.CodeOf(err) == domerr.CodeNotFound {
					s.log.Warn("skipping unknown student", slog.String("matricula", matricula))
					skipped[i] = matricula
					return nil
				}
				return err
			}

			base := today
			if student.ExpirationDate != nil && student.ExpirationDate.After(base) {
				base = *student.ExpirationDate
			}
			expiration := ComputeRenewalDate(base, plan.DurationUnit)
			if err := s.repo.UpdateRenewal(gctx, matricula, planID, expiration); err != nil {
				return err
			}

			cacheKey := fmt.Sprintf("student:%s", matricula)
			if err := s.cache.Invalidate(cacheKey); err != nil {
				s.log.Warn("failed to remove from cache", slog.String("key", cacheKey), slog.Any("err", err))
			}
			renewed[i] = matricula
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := &RenewResult{}
	for _, m := range renewed {
		if m != "" {
			result.Renewed = append(result.Renewed, m)
		}
	}
	for _, m := range skipped {
		if m != "" {
			result.Skipped = append(result.Skipped, m)
		}
	}
	s.log.Info("renewed memberships",
		slog.Int("renewed", len(result.Renewed)),
		slog.Int("skipped", len(result.Skipped)))
	return result, nil
}
