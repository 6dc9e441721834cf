// Package jwt реализует генерацию и парсинг JWT токенов с идентификатором пользователя в claims.
//
// Maker определяет интерфейс для создания и проверки токенов.
// MakerImpl — конкретная реализация с использованием секретного ключа.
package jwt

import (
	"time"
)

// Maker описывает интерфейс для генерации и парсинга JWT токенов.
type Maker interface {
	// GenerateToken создает токен с идентификатором пользователя в payload
	GenerateToken(userID string) (string, error)
	// ParseToken возвращает *CustomClaims с идентификатором пользователя
	ParseToken(tokenStr string) (*CustomClaims, error)
}

// MakerImpl реализует интерфейс Maker с использованием секретного ключа
// и времени жизни токена (TTL).
type MakerImpl struct {
	secretKey string        // Секретный ключ для подписи токенов.
	tokenTTL  time.Duration // Время жизни токена, проставляется в claims при выпуске.
}

// NewJWTMaker создаёт новый экземпляр MakerImpl на основе секретного ключа и TTL.
func NewJWTMaker(secretKey string, ttl time.Duration) *MakerImpl {
	return &MakerImpl{
		secretKey: secretKey,
		tokenTTL:  ttl,
	}
}
