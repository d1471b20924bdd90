package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/M0steK/taxifleet-manager/internal/model"
)

const testSecret = "test-secret"

func signToken(t *testing.T, claims Claims, secret string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestParseValidToken(t *testing.T) {
	claims := Claims{
		UserID:    uuid.New(),
		CompanyID: uuid.New(),
		Role:      model.UserRoleDriver,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}

	parsed, err := NewParser(testSecret).Parse(signToken(t, claims, testSecret))
	require.NoError(t, err)
	assert.Equal(t, claims.UserID, parsed.UserID)
	assert.Equal(t, claims.CompanyID, parsed.CompanyID)
	assert.Equal(t, model.UserRoleDriver, parsed.Role)
}

func TestParseRejectsWrongSecret(t *testing.T) {
	claims := Claims{
		UserID:    uuid.New(),
		CompanyID: uuid.New(),
		Role:      model.UserRoleAdmin,
	}

	_, err := NewParser(testSecret).Parse(signToken(t, claims, "other-secret"))
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseRejectsExpiredToken(t *testing.T) {
	claims := Claims{
		UserID:    uuid.New(),
		CompanyID: uuid.New(),
		Role:      model.UserRoleDriver,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	}

	_, err := NewParser(testSecret).Parse(signToken(t, claims, testSecret))
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseRejectsMissingIdentity(t *testing.T) {
	claims := Claims{Role: model.UserRoleDriver}
	_, err := NewParser(testSecret).Parse(signToken(t, claims, testSecret))
	assert.ErrorIs(t, err, ErrInvalidToken)
}
