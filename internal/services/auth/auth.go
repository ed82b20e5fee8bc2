// Package services содержит логику бизнес-уровня для аутентификации сотрудников.
package services

import (
	"context"

	"github.com/magabrotheeeer/gym-backoffice/internal/lib/domerr"
	"github.com/magabrotheeeer/gym-backoffice/internal/lib/jwt"
	"github.com/magabrotheeeer/gym-backoffice/internal/lib/password"
	"github.com/magabrotheeeer/gym-backoffice/internal/models"
)

// StaffReader описывает контракт для чтения учётных записей из базы данных.
type StaffReader interface {
	// GetStaffByEmail возвращает действующую учётную запись по email.
	GetStaffByEmail(ctx context.Context, email string) (*models.StaffAccount, error)
}

// AuthService отвечает за вход сотрудников и валидацию JWT.
type AuthService struct {
	staff    StaffReader
	jwtMaker jwt.Maker
}

// NewAuthService создает новый экземпляр AuthService.
func NewAuthService(staff StaffReader, jwtMaker jwt.Maker) *AuthService {
	return &AuthService{
		staff:    staff,
		jwtMaker: jwtMaker,
	}
}

// Login проверяет пароль сотрудника и генерирует JWT. Непроверенные и
// неизвестные учётные записи дают одинаковый ответ, чтобы не раскрывать,
// какие адреса зарегистрированы.
func (s *AuthService) Login(ctx context.Context, email, rawPassword string) (token string, accessLevel models.AccessLevel, err error) {
	account, err := s.staff.GetStaffByEmail(ctx, email)
	if err != nil {
		if domerr.CodeOf(err) == domerr.CodeNotFound {
			return "", "", domerr.New(domerr.CodeUnauthorized, "invalid credentials")
		}
		return "", "", err
	}
	if !account.IsEnabled {
		return "", "", domerr.New(domerr.CodeUnauthorized, "invalid credentials")
	}
	if err := password.CompareHash(account.PasswordHash, rawPassword); err != nil {
		return "", "", domerr.New(domerr.CodeUnauthorized, "invalid credentials")
	}

	level, ok := models.NormalizeAccessLevel(account.AccessLevel)
	if !ok {
		level = models.AccessEmployee
	}
	token, err = s.jwtMaker.GenerateToken(account.ID, account.Name, string(level))
	if err != nil {
		return "", "", err
	}
	return token, level, nil
}

// ValidateToken проверяет JWT и возвращает данные сотрудника из claims.
func (s *AuthService) ValidateToken(_ context.Context, token string) (*jwt.CustomClaims, error) {
	claims, err := s.jwtMaker.ParseToken(token)
	if err != nil {
		return nil, domerr.Wrap(err, domerr.CodeUnauthorized, "invalid token")
	}
	return claims, nil
}
