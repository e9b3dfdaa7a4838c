package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"farm_market/internal/models"
)

func testUser() *models.User {
	return &models.User{
		Model: gorm.Model{ID: 42},
		Email: "asha@example.com",
		Role:  models.RoleShopper,
	}
}

func TestNewIssuer_NoSecret(t *testing.T) {
	_, err := NewIssuer("", time.Hour)
	assert.ErrorIs(t, err, ErrMissingSecret)
}

func TestIssuer_RoundTrip(t *testing.T) {
	issuer, err := NewIssuer("testsecret", time.Hour)
	require.NoError(t, err)

	token, err := issuer.Issue(testUser())
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	actor, err := issuer.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), actor.UserID)
	assert.Equal(t, "asha@example.com", actor.Email)
	assert.Equal(t, models.RoleShopper, actor.Role)
}

func TestIssuer_Parse(t *testing.T) {
	issuer, _ := NewIssuer("secret1", time.Hour)
	token, _ := issuer.Issue(testUser())

	t.Run("InvalidToken", func(t *testing.T) {
		_, err := issuer.Parse("invalid-token-string")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("WrongSecret", func(t *testing.T) {
		other, _ := NewIssuer("secret2", time.Hour)
		_, err := other.Parse(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("Expired", func(t *testing.T) {
		issued := time.Now().Add(-2 * time.Hour)
		old := &Issuer{secret: []byte("secret1"), ttl: time.Hour, now: func() time.Time { return issued }}
		expired, err := old.Issue(testUser())
		require.NoError(t, err)

		_, err = issuer.Parse(expired)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("UnexpectedSigningMethod", func(t *testing.T) {
		unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{UserID: 1})
		str, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, err = issuer.Parse(str)
		assert.True(t, errors.Is(err, ErrInvalidToken))
	})
}
