package helpers

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTManager_GenerateAndParse(t *testing.T) {
	m := NewJWTManager("secret", 24*time.Hour)

	token, exp, err := m.GenerateToken("u-1")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), exp, 5*time.Second)

	claims, err := m.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "u-1", claims.UserID)
	assert.Equal(t, "u-1", claims.Subject)
}

func TestJWTManager_ParseToken_Expired(t *testing.T) {
	m := NewJWTManager("secret", -time.Minute)

	token, _, err := m.GenerateToken("u-1")
	require.NoError(t, err)

	_, err = m.ParseToken(token)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestJWTManager_ParseToken_WrongSecret(t *testing.T) {
	token, _, err := NewJWTManager("secret1", time.Hour).GenerateToken("u-1")
	require.NoError(t, err)

	_, err = NewJWTManager("secret2", time.Hour).ParseToken(token)
	assert.Error(t, err)
}

func TestJWTManager_ParseToken_HMACFamily(t *testing.T) {
	m := NewJWTManager("secret", time.Hour)
	claims := &Claims{
		UserID:           "u-1",
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
	}
	tokenString, err := jwt.NewWithClaims(jwt.SigningMethodHS384, claims).SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = m.ParseToken(tokenString)
	assert.NoError(t, err, "HS384 is still an HMAC method")

	_, err = m.ParseToken("invalid.token.string")
	assert.Error(t, err)
}
