package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventgather/internal/domain"
)

func TestJWTCodec_IssueAndVerify(t *testing.T) {
	codec := NewJWTCodec("test-secret")

	token, err := codec.Issue("user-123", domain.RoleParticipant, 24*time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	subjectID, role, err := codec.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", subjectID)
	assert.Equal(t, domain.RoleParticipant, role)
}

func TestJWTCodec_Verify_Expired(t *testing.T) {
	codec := NewJWTCodec("test-secret")

	token, err := codec.Issue("user-123", domain.RoleManager, -time.Minute)
	require.NoError(t, err)

	_, _, err = codec.Verify(token)
	require.Error(t, err)
}

func TestJWTCodec_Verify_WrongSecret(t *testing.T) {
	token, err := NewJWTCodec("secret-a").Issue("user-123", domain.RoleSupervisor, time.Hour)
	require.NoError(t, err)

	_, _, err = NewJWTCodec("secret-b").Verify(token)
	require.Error(t, err)
}

func TestJWTCodec_Verify_UnknownRole(t *testing.T) {
	secret := "test-secret"
	claims := jwtClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-123",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		Role: "superuser",
	}
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)

	_, _, err = NewJWTCodec(secret).Verify(raw)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid role claim")
}
