package auth_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jdhadshhd/med-point/internal/auth"
	"github.com/jdhadshhd/med-point/internal/core/domain"
)

func testUser() *domain.User {
	return &domain.User{
		ID:       uuid.New(),
		FullName: "Dr. Amina Hassan",
		Email:    "amina@clinic.example",
		Role:     domain.RoleDoctor,
	}
}

func TestTokenManager_RoundTrip(t *testing.T) {
	tm := auth.NewTokenManager("test-secret-key-for-unit-tests", time.Hour)
	user := testUser()

	token, err := tm.GenerateToken(user)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := tm.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, domain.RoleDoctor, claims.Role)
	assert.Equal(t, user.FullName, claims.Name)
	assert.Equal(t, user.Email, claims.Email)
}

func TestTokenManager_WrongSecret(t *testing.T) {
	tm := auth.NewTokenManager("secret-one-secret-one-secret-one", time.Hour)
	other := auth.NewTokenManager("secret-two-secret-two-secret-two", time.Hour)

	token, err := tm.GenerateToken(testUser())
	require.NoError(t, err)

	claims, err := other.ValidateToken(token)
	assert.Error(t, err)
	assert.Nil(t, claims)
}

func TestTokenManager_ExpiredToken(t *testing.T) {
	tm := auth.NewTokenManager("test-secret-key-for-unit-tests", -time.Minute)

	token, err := tm.GenerateToken(testUser())
	require.NoError(t, err)

	claims, err := tm.ValidateToken(token)
	assert.Error(t, err)
	assert.Nil(t, claims)
}

func TestTokenManager_GarbageToken(t *testing.T) {
	tm := auth.NewTokenManager("test-secret-key-for-unit-tests", time.Hour)

	claims, err := tm.ValidateToken("not-a-jwt")
	assert.Error(t, err)
	assert.Nil(t, claims)
}
