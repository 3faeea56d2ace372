package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/repair-tracker/internal/config"
	"github.com/spec-kit/repair-tracker/internal/domain"
)

func newAuthService(t *testing.T) (*AuthService, *fakeUserRepo) {
	t.Helper()
	users := newFakeUserRepo()
	svc := NewAuthService(config.AuthConfig{
		JWTSecret:             "test-secret",
		AccessTokenTTLMinutes: 60,
		BcryptCost:            4,
	}, users)
	return svc, users
}

func TestSignupServiceAgentGetsDerivedAgentID(t *testing.T) {
	svc, _ := newAuthService(t)

	user, token, _, err := svc.Signup(context.Background(), "kale", "kale@example.com", "hunter22", "serviceAgent")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	require.NotNil(t, user.AgentID)
	assert.Equal(t, "AGENT_kale", *user.AgentID)
	assert.NotEqual(t, "hunter22", user.PasswordHash)
}

func TestSignupNonAgentHasNoAgentID(t *testing.T) {
	svc, _ := newAuthService(t)

	user, _, _, err := svc.Signup(context.Background(), "rane", "rane@example.com", "hunter22", "opsManager")
	require.NoError(t, err)
	assert.Nil(t, user.AgentID)
	assert.Equal(t, domain.RoleOpsManager, user.Role)
}

func TestSignupRejectsMissingFieldsAndBadRole(t *testing.T) {
	svc, _ := newAuthService(t)

	_, _, _, err := svc.Signup(context.Background(), "kale", "", "hunter22", "client")
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_FAILED", domainCode(t, err))

	_, _, _, err = svc.Signup(context.Background(), "kale", "kale@example.com", "hunter22", "superuser")
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_FAILED", domainCode(t, err))
}

func TestSignupDuplicateEmailConflicts(t *testing.T) {
	svc, _ := newAuthService(t)

	_, _, _, err := svc.Signup(context.Background(), "kale", "kale@example.com", "hunter22", "client")
	require.NoError(t, err)

	_, _, _, err = svc.Signup(context.Background(), "other", "kale@example.com", "hunter22", "client")
	require.Error(t, err)
	assert.Equal(t, "CONFLICT", domainCode(t, err))
}

func TestLoginRoundTrip(t *testing.T) {
	svc, _ := newAuthService(t)

	_, _, _, err := svc.Signup(context.Background(), "kale", "kale@example.com", "hunter22", "client")
	require.NoError(t, err)

	user, token, _, err := svc.Login(context.Background(), "kale@example.com", "hunter22")
	require.NoError(t, err)
	assert.Equal(t, "kale", user.Username)
	assert.NotEmpty(t, token)
}

func TestLoginWrongPasswordOrUnknownEmailIsUnauthorized(t *testing.T) {
	svc, _ := newAuthService(t)

	_, _, _, err := svc.Signup(context.Background(), "kale", "kale@example.com", "hunter22", "client")
	require.NoError(t, err)

	_, _, _, err = svc.Login(context.Background(), "kale@example.com", "wrong")
	require.Error(t, err)
	assert.Equal(t, "UNAUTHORIZED", domainCode(t, err))

	_, _, _, err = svc.Login(context.Background(), "nobody@example.com", "hunter22")
	require.Error(t, err)
	assert.Equal(t, "UNAUTHORIZED", domainCode(t, err))
}

func TestProfile(t *testing.T) {
	svc, _ := newAuthService(t)

	created, _, _, err := svc.Signup(context.Background(), "kale", "kale@example.com", "hunter22", "client")
	require.NoError(t, err)

	profile, err := svc.Profile(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Email, profile.Email)

	_, err = svc.Profile(context.Background(), "missing-id")
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", domainCode(t, err))
}
