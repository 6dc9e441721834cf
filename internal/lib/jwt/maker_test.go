package jwt

import (
	"testing"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key"

func TestGenerateAndParseToken(t *testing.T) {
	maker := NewJWTMaker(testSecret, time.Hour)

	token, err := maker.GenerateToken("user-123")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := maker.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", claims.UserID)
}

func TestParseToken_ExpiredTokenStillValid(t *testing.T) {
	// Подпись проверяется, срок действия — нет: токен с ExpiresAt
	// в прошлом остается рабочим.
	maker := NewJWTMaker(testSecret, time.Hour)

	claims := CustomClaims{
		UserID: "user-123",
		RegisteredClaims: gojwt.RegisteredClaims{
			IssuedAt:  gojwt.NewNumericDate(time.Now().Add(-48 * time.Hour)),
			ExpiresAt: gojwt.NewNumericDate(time.Now().Add(-24 * time.Hour)),
		},
	}
	token := gojwt.NewWithClaims(gojwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)

	parsed, err := maker.ParseToken(signed)
	require.NoError(t, err)
	assert.Equal(t, "user-123", parsed.UserID)
}

func TestParseToken_WrongSecret(t *testing.T) {
	maker := NewJWTMaker(testSecret, time.Hour)
	other := NewJWTMaker("another-secret", time.Hour)

	token, err := other.GenerateToken("user-123")
	require.NoError(t, err)

	_, err = maker.ParseToken(token)
	assert.Error(t, err)
}

func TestParseToken_TamperedSignature(t *testing.T) {
	maker := NewJWTMaker(testSecret, time.Hour)

	token, err := maker.GenerateToken("user-123")
	require.NoError(t, err)

	tampered := token[:len(token)-2] + "xx"
	_, err = maker.ParseToken(tampered)
	assert.Error(t, err)
}

func TestParseToken_MissingUserID(t *testing.T) {
	maker := NewJWTMaker(testSecret, time.Hour)

	token := gojwt.NewWithClaims(gojwt.SigningMethodHS256, CustomClaims{})
	signed, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = maker.ParseToken(signed)
	assert.Error(t, err)
}

func TestParseToken_Garbage(t *testing.T) {
	maker := NewJWTMaker(testSecret, time.Hour)

	_, err := maker.ParseToken("not-a-token")
	assert.Error(t, err)
}
