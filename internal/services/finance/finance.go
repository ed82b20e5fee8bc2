// Package services содержит бизнес-логику финансового журнала и моста
// между оплатой и статусом ученика.
package services

import (
	"context"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/magabrotheeeer/gym-backoffice/internal/lib/domerr"
	"github.com/magabrotheeeer/gym-backoffice/internal/models"
)

// matriculaSuffix вытаскивает номер зачисления из хвоста описания записи,
// например "Mensalidade Joao Silva (A1001)".
var matriculaSuffix = regexp.MustCompile(`\(([^)]+)\)\s*$`)

// FinanceRepository определяет методы для работы с финансовым журналом.
type FinanceRepository interface {
	// CreateFinancialEntry добавляет запись и возвращает её ID.
	CreateFinancialEntry(ctx context.Context, e models.FinancialEntry) (int, error)
	// GetFinancialEntry возвращает запись по ID.
	GetFinancialEntry(ctx context.Context, id int) (*models.FinancialEntry, error)
	// ListFinancialEntries возвращает записи с пагинацией.
	ListFinancialEntries(ctx context.Context, limit, offset int) ([]*models.FinancialEntry, error)
	// UpdateFinancialEntry обновляет запись по ID.
	UpdateFinancialEntry(ctx context.Context, e models.FinancialEntry, id int) (int, error)
	// RemoveFinancialEntry удаляет запись по ID.
	RemoveFinancialEntry(ctx context.Context, id int) (int, error)
	// CountFinanceSummary считает суммы доходов и расходов за период.
	CountFinanceSummary(ctx context.Context, from, to time.Time) (*models.FinanceSummary, error)
	// UpdateStudentStatus записывает статус ученика.
	UpdateStudentStatus(ctx context.Context, matricula, status string) error
}

// FinanceService реализует бизнес-логику финансового журнала.
type FinanceService struct {
	repo FinanceRepository
	log  *slog.Logger
}

// NewFinanceService создает новый экземпляр FinanceService.
func NewFinanceService(repo FinanceRepository, log *slog.Logger) *FinanceService {
	return &FinanceService{repo: repo, log: log}
}

// resolveMatricula находит ученика, к которому относится оплата: явная
// ссылка важнее разбора названия. Пустая строка — ученик не указан.
func resolveMatricula(e models.FinancialEntry) string {
	if e.LinkedStudentID != "" {
		return e.LinkedStudentID
	}
	match := matriculaSuffix.FindStringSubmatch(strings.TrimSpace(e.Name))
	if match == nil {
		return ""
	}
	return strings.TrimSpace(match[1])
}

// activateLinkedStudent включает ученика после оплаты абонемента.
// Неизвестный номер не считается ошибкой: запись в журнале остаётся,
// оплату не теряем из-за опечатки.
func (s *FinanceService) activateLinkedStudent(ctx context.Context, e models.FinancialEntry) {
	if e.Type != models.FinanceTypeRevenue || e.Category != models.FinanceCategoryStudents {
		return
	}
	matricula := resolveMatricula(e)
	if matricula == "" {
		return
	}
	err := s.repo.UpdateStudentStatus(ctx, matricula, models.StudentStatusActive)
	if err != nil {
		if domerr.CodeOf(err) == domerr.CodeNotFound {
			s.log.Warn("payment references unknown student",
				slog.String("matricula", matricula), slog.String("entry", e.Name))
			return
		}
		s.log.Error("failed to activate student after payment",
			slog.String("matricula", matricula), slog.Any("err", err))
		return
	}
	s.log.Info("activated student after payment", slog.String("matricula", matricula))
}

// Create добавляет запись в журнал. Оплата абонемента дополнительно
// активирует связанного ученика.
func (s *FinanceService) Create(ctx context.Context, req models.DummyFinancialEntry) (int, error) {
	date, err := time.Parse("02-01-2006", req.Date)
	if err != nil {
		return 0, domerr.Wrap(err, domerr.CodeBadRequest, "invalid entry date")
	}

	entry := models.FinancialEntry{
		Type:            req.Type,
		Name:            req.Name,
		Category:        req.Category,
		Date:            date,
		Amount:          req.Amount,
		Description:     req.Description,
		LinkedStudentID: req.LinkedStudentID,
	}
	id, err := s.repo.CreateFinancialEntry(ctx, entry)
	if err != nil {
		return 0, err
	}
	s.log.Info("created financial entry", slog.Int("id", id))

	s.activateLinkedStudent(ctx, entry)
	return id, nil
}

// Read возвращает запись журнала по ID.
func (s *FinanceService) Read(ctx context.Context, id int) (*models.FinancialEntry, error) {
	return s.repo.GetFinancialEntry(ctx, id)
}

// List возвращает записи журнала с пагинацией.
func (s *FinanceService) List(ctx context.Context, limit, offset int) ([]*models.FinancialEntry, error) {
	return s.repo.ListFinancialEntries(ctx, limit, offset)
}

// Update обновляет запись журнала. Превращение записи в оплату абонемента
// тоже активирует ученика.
func (s *FinanceService) Update(ctx context.Context, req models.DummyFinancialEntry, id int) (int, error) {
	date, err := time.Parse("02-01-2006", req.Date)
	if err != nil {
		return 0, domerr.Wrap(err, domerr.CodeBadRequest, "invalid entry date")
	}

	entry := models.FinancialEntry{
		Type:            req.Type,
		Name:            req.Name,
		Category:        req.Category,
		Date:            date,
		Amount:          req.Amount,
		Description:     req.Description,
		LinkedStudentID: req.LinkedStudentID,
	}
	res, err := s.repo.UpdateFinancialEntry(ctx, entry, id)
	if err != nil {
		return 0, err
	}

	s.activateLinkedStudent(ctx, entry)
	return res, nil
}

// Remove удаляет запись журнала по ID.
func (s *FinanceService) Remove(ctx context.Context, id int) (int, error) {
	return s.repo.RemoveFinancialEntry(ctx, id)
}

// Summary считает доходы, расходы и баланс за период. Период задаётся
// включительно по датам, правая граница расширяется до следующего дня.
func (s *FinanceService) Summary(ctx context.Context, from, to string) (*models.FinanceSummary, error) {
	fromDate, err := time.Parse("02-01-2006", from)
	if err != nil {
		return nil, domerr.Wrap(err, domerr.CodeBadRequest, "invalid period start")
	}
	toDate, err := time.Parse("02-01-2006", to)
	if err != nil {
		return nil, domerr.Wrap(err, domerr.CodeBadRequest, "invalid period end")
	}
	if toDate.Before(fromDate) {
		return nil, domerr.New(domerr.CodeBadRequest, "period end is before period start")
	}
	return s.repo.CountFinanceSummary(ctx, fromDate, toDate.AddDate(0, 0, 1))
}
