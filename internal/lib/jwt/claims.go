// Package jwt реализует генерацию и парсинг JWT токенов для сотрудников зала.
//
// Maker определяет интерфейс для создания и проверки токенов с идентификатором
// сотрудника, его именем и уровнем доступа. MakerImpl — конкретная реализация
// с использованием секретного ключа и срока жизни токена.
package jwt

import (
	"time"
)

// Maker описывает интерфейс для генерации и парсинга JWT токенов.
type Maker interface {
	// GenerateToken создаёт токен с идентификатором, именем и уровнем доступа сотрудника.
	GenerateToken(staffID, name, accessLevel string) (string, error)
	// ParseToken возвращает *CustomClaims с данными сотрудника.
	ParseToken(tokenStr string) (*CustomClaims, error)
}

// MakerImpl реализует интерфейс Maker с использованием секретного ключа
// и времени жизни токена (TTL).
type MakerImpl struct {
	secretKey string        // Секретный ключ для подписи токенов.
	tokenTTL  time.Duration // Время жизни токена.
}

// NewJWTMaker создаёт новый экземпляр MakerImpl на основе секретного ключа и TTL.
func NewJWTMaker(secretKey string, ttl time.Duration) *MakerImpl {
	return &MakerImpl{
		secretKey: secretKey,
		tokenTTL:  ttl,
	}
}
