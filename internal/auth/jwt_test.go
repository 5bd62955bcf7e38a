package auth

import (
	"testing"

	"stocktrack-backend/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func TestGenerateTokenRoundTrip(t *testing.T) {
	secret := "0123456789abcdef0123456789abcdef"
	storeID := uint(2)
	user := &models.User{
		ID:       7,
		Username: "bob",
		Role:     models.RoleManager,
		StoreID:  &storeID,
	}

	tokenStr, err := GenerateToken(secret, user)
	require.NoError(t, err)

	token, err := jwt.ParseWithClaims(tokenStr, &JWTCustomClaims{}, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	require.NoError(t, err)
	require.True(t, token.Valid)

	claims, ok := token.Claims.(*JWTCustomClaims)
	require.True(t, ok)
	require.Equal(t, uint(7), claims.UserID)
	require.Equal(t, "bob", claims.Username)
	require.Equal(t, models.RoleManager, claims.Role)
	require.NotNil(t, claims.StoreID)
	require.Equal(t, storeID, *claims.StoreID)
}

func TestTokenRejectsWrongSecret(t *testing.T) {
	tokenStr, err := GenerateToken("0123456789abcdef0123456789abcdef", &models.User{ID: 1, Role: models.RoleStaff})
	require.NoError(t, err)

	_, err = jwt.ParseWithClaims(tokenStr, &JWTCustomClaims{}, func(t *jwt.Token) (interface{}, error) {
		return []byte("another-secret-another-secret-00"), nil
	})
	require.Error(t, err)
}
