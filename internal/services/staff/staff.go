// Package services содержит бизнес-логику учётных записей сотрудников:
// регистрацию с подтверждением по почте, смену пароля и защищённое
// удаление администраторов.
package services

import (
	"context"
	"crypto/rand"
	"fmt"
	"log/slog"
	"math/big"
	"strings"
	"time"

	"github.com/magabrotheeeer/gym-backoffice/internal/lib/domerr"
	"github.com/magabrotheeeer/gym-backoffice/internal/lib/password"
	"github.com/magabrotheeeer/gym-backoffice/internal/lib/sl"
	"github.com/magabrotheeeer/gym-backoffice/internal/lib/smtp"
	"github.com/magabrotheeeer/gym-backoffice/internal/models"
	"github.com/magabrotheeeer/gym-backoffice/internal/storage/repository"
)

// verificationTTL — срок действия кода подтверждения и кода сброса пароля.
const verificationTTL = 24 * time.Hour

// StaffRepository определяет методы для работы с сотрудниками в хранилище.
type StaffRepository interface {
	// CreateStaff сохраняет новую учётную запись и возвращает её UUID.
	CreateStaff(ctx context.Context, a models.StaffAccount) (string, error)
	// GetStaffByID возвращает учётную запись по UUID.
	GetStaffByID(ctx context.Context, id string) (*models.StaffAccount, error)
	// GetStaffByEmail возвращает действующую учётную запись по email.
	GetStaffByEmail(ctx context.Context, email string) (*models.StaffAccount, error)
	// GetStaffByNationalID возвращает действующую учётную запись по номеру документа.
	GetStaffByNationalID(ctx context.Context, nationalID string) (*models.StaffAccount, error)
	// ListStaff возвращает действующие учётные записи с пагинацией.
	ListStaff(ctx context.Context, limit, offset int) ([]*models.StaffAccount, error)
	// ActivateStaff включает учётную запись после подтверждения кода.
	ActivateStaff(ctx context.Context, id string) error
	// UpdateStaffPassword меняет хэш пароля.
	UpdateStaffPassword(ctx context.Context, id, passwordHash string) error
	// SetPasswordResetCode записывает код восстановления пароля.
	SetPasswordResetCode(ctx context.Context, id, code string, expiry time.Time) error
	// SoftDeleteStaff помечает учётную запись удалённой, не трогая строку.
	SoftDeleteStaff(ctx context.Context, id string) error
	// DeleteAdminTx жёстко удаляет учётную запись в защищённой транзакции.
	DeleteAdminTx(ctx context.Context, requesterID, targetNationalID, reason string,
		verify repository.VerifyPasswordFunc) (*models.AdminDeletionRecord, error)
	// ListAdminDeletions возвращает журнал удалённых администраторов.
	ListAdminDeletions(ctx context.Context, limit, offset int) ([]*models.AdminDeletionRecord, error)
}

// StaffService реализует бизнес-логику учётных записей сотрудников.
type StaffService struct {
	repo      StaffRepository
	transport smtp.TransportInterface
	log       *slog.Logger

	// now и newCode подменяются в тестах.
	now     func() time.Time
	newCode func() (string, error)
}

// NewStaffService создает новый экземпляр StaffService.
func NewStaffService(repo StaffRepository, transport smtp.TransportInterface, log *slog.Logger) *StaffService {
	return &StaffService{
		repo:      repo,
		transport: transport,
		log:       log,
		now:       time.Now,
		newCode:   generateCode,
	}
}

// generateCode возвращает шестизначный цифровой код подтверждения.
func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", fmt.Errorf("failed to generate code: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

// Register создает учётную запись сотрудника и отправляет код подтверждения
// на почту. Запись остаётся выключенной до подтверждения.
func (s *StaffService) Register(ctx context.Context, req models.DummyStaffAccount) (string, error) {
	if _, ok := models.NormalizeAccessLevel(req.AccessLevel); !ok {
		return "", domerr.New(domerr.CodeBadRequest, "unknown access level")
	}

	hash, err := password.GetHash(req.Password)
	if err != nil {
		return "", err
	}
	code, err := s.newCode()
	if err != nil {
		return "", err
	}
	expiry := s.now().Add(verificationTTL)

	account := models.StaffAccount{
		Name:               req.Name,
		Email:              req.Email,
		NationalID:         req.NationalID,
		PasswordHash:       hash,
		AccessLevel:        req.AccessLevel,
		VerificationCode:   &code,
		VerificationExpiry: &expiry,
	}
	id, err := s.repo.CreateStaff(ctx, account)
	if err != nil {
		return "", err
	}
	s.log.Info("registered staff account", slog.String("id", id))

	subject := "Confirme sua conta"
	body := fmt.Sprintf("Ola, %s!\n\nSeu codigo de confirmacao: %s\n\nO codigo expira em 24 horas.",
		req.Name, code)
	if err := s.sendEmail([]string{req.Email}, subject, body); err != nil {
		s.log.Error("failed to send verification email", sl.Err(err))
	}
	return id, nil
}

// VerifyAccount сверяет код подтверждения и включает учётную запись.
func (s *StaffService) VerifyAccount(ctx context.Context, email, code string) error {
	account, err := s.repo.GetStaffByEmail(ctx, email)
	if err != nil {
		return err
	}
	if account.IsEnabled {
		return nil
	}
	if account.VerificationCode == nil || *account.VerificationCode != code {
		return domerr.New(domerr.CodeUnauthorized, "verification code does not match")
	}
	if account.VerificationExpiry == nil || account.VerificationExpiry.Before(s.now()) {
		return domerr.New(domerr.CodeUnauthorized, "verification code has expired")
	}
	return s.repo.ActivateStaff(ctx, account.ID)
}

// RequestPasswordReset отправляет код восстановления пароля на почту.
// Неизвестный адрес не выдаёт себя наружу.
func (s *StaffService) RequestPasswordReset(ctx context.Context, email string) error {
	account, err := s.repo.GetStaffByEmail(ctx, email)
	if err != nil {
		if domerr.CodeOf(err) == domerr.CodeNotFound {
			s.log.Warn("password reset for unknown email")
			return nil
		}
		return err
	}

	code, err := s.newCode()
	if err != nil {
		return err
	}
	if err := s.repo.SetPasswordResetCode(ctx, account.ID, code, s.now().Add(verificationTTL)); err != nil {
		return err
	}

	subject := "Recuperacao de senha"
	body := fmt.Sprintf("Ola, %s!\n\nSeu codigo de recuperacao: %s\n\nO codigo expira em 24 horas.",
		account.Name, code)
	return s.sendEmail([]string{account.Email}, subject, body)
}

// ChangePassword сверяет код восстановления и записывает новый пароль.
func (s *StaffService) ChangePassword(ctx context.Context, email, code, newPassword string) error {
	account, err := s.repo.GetStaffByEmail(ctx, email)
	if err != nil {
		return err
	}
	if account.PasswordResetCode == nil || *account.PasswordResetCode != code {
		return domerr.New(domerr.CodeUnauthorized, "reset code does not match")
	}
	if account.PasswordResetExpiry == nil || account.PasswordResetExpiry.Before(s.now()) {
		return domerr.New(domerr.CodeUnauthorized, "reset code has expired")
	}

	hash, err := password.GetHash(newPassword)
	if err != nil {
		return err
	}
	return s.repo.UpdateStaffPassword(ctx, account.ID, hash)
}

// List возвращает действующие учётные записи с пагинацией.
func (s *StaffService) List(ctx context.Context, limit, offset int) ([]*models.StaffAccount, error) {
	return s.repo.ListStaff(ctx, limit, offset)
}

// DeleteAdmin удаляет учётную запись сотрудника через защищённую транзакцию.
// Инициатор подтверждает операцию своим паролем; сверка идёт внутри
// транзакции, когда его строка уже заблокирована.
func (s *StaffService) DeleteAdmin(ctx context.Context, requesterID, targetNationalID, requesterPassword, reason string) (*models.AdminDeletionRecord, error) {
	verify := func(storedHash string) (bool, error) {
		if err := password.CompareHash(storedHash, requesterPassword); err != nil {
			return false, nil
		}
		return true, nil
	}
	record, err := s.repo.DeleteAdminTx(ctx, requesterID, targetNationalID, reason, verify)
	if err != nil {
		return nil, err
	}
	s.log.Info("deleted staff account",
		slog.String("target", record.TargetNationalID),
		slog.String("performed_by", record.PerformedBy))
	return record, nil
}

// Deactivate помечает учётную запись сотрудника удалённой. Администраторы
// так не удаляются: для них есть DeleteAdmin с защищённой транзакцией.
func (s *StaffService) Deactivate(ctx context.Context, nationalID string) error {
	a, err := s.repo.GetStaffByNationalID(ctx, nationalID)
	if err != nil {
		return err
	}
	level, ok := models.NormalizeAccessLevel(a.AccessLevel)
	if ok && level != models.AccessEmployee {
		return domerr.New(domerr.CodeForbidden,
			"administrator accounts require the guarded deletion flow")
	}
	if err := s.repo.SoftDeleteStaff(ctx, a.ID); err != nil {
		return err
	}
	s.log.Info("deactivated staff account", slog.String("national_id", nationalID))
	return nil
}

// ListDeletions возвращает журнал удалений администраторов, новые сверху.
func (s *StaffService) ListDeletions(ctx context.Context, limit, offset int) ([]*models.AdminDeletionRecord, error) {
	return s.repo.ListAdminDeletions(ctx, limit, offset)
}

func (s *StaffService) sendEmail(to []string, subject, bodyText string) error {
	msg := strings.Join([]string{
		"From: " + s.transport.GetSMTPUser(),
		"To: " + strings.Join(to, ";"),
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=\"UTF-8\"",
		"",
		bodyText,
	}, "\r\n")

	client, err := s.transport.Connect()
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	if err := client.Mail(s.transport.GetSMTPUser()); err != nil {
		return err
	}
	for _, addr := range to {
		if err := client.Rcpt(addr); err != nil {
			return err
		}
	}
	wc, err := client.Data()
	if err != nil {
		return err
	}
	if _, err = wc.Write([]byte(msg)); err != nil {
		return err
	}
	if err = wc.Close(); err != nil {
		return err
	}
	return client.Quit()
}
