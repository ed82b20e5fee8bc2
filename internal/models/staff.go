package models

import (
	"strings"
	"time"
)

// AccessLevel — нормализованный уровень доступа сотрудника.
type AccessLevel string

// Три уровня доступа, к которым сводятся все варианты написания.
const (
	AccessAdministrator AccessLevel = "administrator"
	AccessEmployee      AccessLevel = "employee"
	AccessSuperAdmin    AccessLevel = "super_admin"
)

// StaffAccount представляет учётную запись сотрудника.
// AccessLevel хранится в сыром виде, как пришёл при создании; все проверки
// ролей проходят через NormalizeAccessLevel.
type StaffAccount struct {
	ID                   string     // UUID сотрудника
	Name                 string     // Полное имя
	Email                string     // Электронная почта, уникальная
	NationalID           string     // Номер документа, уникальный
	PasswordHash         string     // bcrypt-хэш пароля
	AccessLevel          string     // Сырой уровень доступа
	VerificationCode     *string    // Код подтверждения учётной записи
	VerificationExpiry   *time.Time // Срок действия кода подтверждения
	PasswordResetCode    *string    // Код сброса пароля
	PasswordResetExpiry  *time.Time // Срок действия кода сброса
	IsEnabled            bool       // Подтверждена ли учётная запись
	DeletedAt            *time.Time // Отметка мягкого удаления
}

// DummyStaffAccount используется для приёма данных из JSON-запроса,
// прежде чем конвертировать их в StaffAccount.
type DummyStaffAccount struct {
	Name        string `json:"name" validate:"required"`                // Имя сотрудника
	Email       string `json:"email" validate:"required,email"`         // Электронная почта
	NationalID  string `json:"national_id" validate:"required"`         // Номер документа
	Password    string `json:"password" validate:"required,min=6"`      // Пароль
	AccessLevel string `json:"access_level" validate:"required"`        // Уровень доступа в любом принятом написании
}

// AdminDeletionRecord — запись аудита об удалении сотрудника через
// защищённую транзакцию. Создаётся ровно один раз и никогда не меняется.
type AdminDeletionRecord struct {
	ID                int       // Идентификатор записи
	TargetID          string    // UUID удалённого сотрудника
	TargetName        string    // Имя удалённого на момент удаления
	TargetNationalID  string    // Номер документа удалённого
	TargetAccessLevel string    // Нормализованный уровень доступа удалённого
	PerformedBy       string    // UUID сотрудника, выполнившего удаление
	Reason            string    // Причина удаления
	CreatedAt         time.Time // Момент удаления
}

// accessAliases сводит исторические написания уровня доступа к трём корзинам.
// Ключи уже нормализованы: нижний регистр, не‑буквенно‑цифровые участки
// заменены на "_".
var accessAliases = map[string]AccessLevel{
	"administrator": AccessAdministrator,
	"administrador": AccessAdministrator,
	"admin":         AccessAdministrator,
	"employee":      AccessEmployee,
	"funcionario":   AccessEmployee,
	"staff":         AccessEmployee,
	"super_admin":   AccessSuperAdmin,
	"superadmin":    AccessSuperAdmin,
}

// NormalizeAccessLevel приводит сырое значение уровня доступа к одной из
// трёх корзин. Второе значение false означает неизвестное написание.
func NormalizeAccessLevel(raw string) (AccessLevel, bool) {
	var b strings.Builder
	lastUnderscore := false
	for _, r := range strings.ToLower(strings.TrimSpace(raw)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastUnderscore = false
		default:
			if !lastUnderscore && b.Len() > 0 {
				b.WriteByte('_')
				lastUnderscore = true
			}
		}
	}
	key := strings.TrimSuffix(b.String(), "_")
	level, ok := accessAliases[key]
	return level, ok
}
