package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DuongTranDang1004/SEPM/internal/apperrors"
	"github.com/DuongTranDang1004/SEPM/internal/models"
)

func TestGenerateAndVerifyToken(t *testing.T) {
	m := NewManager("test-secret", time.Hour)
	tok, err := m.GenerateToken("u-1", "ann@example.com", models.RoleTenant)
	require.NoError(t, err)

	claims, err := m.VerifyToken(tok)
	require.NoError(t, err)
	assert.Equal(t, "u-1", claims.UserID)
	assert.Equal(t, "ann@example.com", claims.Email)
	assert.Equal(t, models.RoleTenant, claims.Role)
}

func TestVerifyTokenRejectsWrongSecret(t *testing.T) {
	tok, err := NewManager("secret-a", time.Hour).GenerateToken("u-1", "a@b.c", models.RoleLandlord)
	require.NoError(t, err)

	_, err = NewManager("secret-b", time.Hour).VerifyToken(tok)
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindUnauthorized))
}

func TestVerifyTokenRejectsExpired(t *testing.T) {
	m := NewManager("test-secret", time.Minute)
	tok, err := m.GenerateToken("u-1", "a@b.c", models.RoleTenant)
	require.NoError(t, err)

	m.now = func() time.Time { return time.Now().Add(2 * time.Minute) }
	_, err = m.VerifyToken(tok)
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindUnauthorized))
}

func TestVerifyTokenRejectsGarbage(t *testing.T) {
	_, err := NewManager("test-secret", time.Hour).VerifyToken("not-a-token")
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindUnauthorized))
}

func TestPasswordRoundTrip(t *testing.T) {
	h, err := HashPassword("s3cret!")
	require.NoError(t, err)
	assert.True(t, CheckPassword(h, "s3cret!"))
	assert.False(t, CheckPassword(h, "wrong"))
}
