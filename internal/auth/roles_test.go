package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/repair-tracker/internal/domain"
	apperrors "github.com/spec-kit/repair-tracker/pkg/util/errorutil"
)

func roleGuardApp(t *testing.T, principal *Principal, guard fiber.Handler) *fiber.App {
	t.Helper()
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.SendStatus(apperrors.ToDomainError(err).HTTPStatus)
		},
	})
	app.Get("/guarded", func(c *fiber.Ctx) error {
		if principal != nil {
			c.Locals(principalKey, principal)
		}
		return c.Next()
	}, guard, func(c *fiber.Ctx) error {
		return c.SendStatus(http.StatusOK)
	})
	return app
}

func guardStatus(t *testing.T, app *fiber.App) int {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/guarded", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	return resp.StatusCode
}

func TestRequireRoleAllowsListedRole(t *testing.T) {
	principal := &Principal{User: &domain.User{Username: "rane", Role: domain.RoleOpsManager}}
	app := roleGuardApp(t, principal, RequireRole(domain.RoleAdmin, domain.RoleOpsManager))
	assert.Equal(t, http.StatusOK, guardStatus(t, app))
}

func TestRequireRoleRejectsOtherRoles(t *testing.T) {
	principal := &Principal{User: &domain.User{Username: "priya", Role: domain.RoleClient}}
	app := roleGuardApp(t, principal, RequireRole(domain.RoleAdmin))
	assert.Equal(t, http.StatusForbidden, guardStatus(t, app))
}

func TestRequireRoleRejectsMissingPrincipal(t *testing.T) {
	app := roleGuardApp(t, nil, RequireRole(domain.RoleAdmin))
	assert.Equal(t, http.StatusUnauthorized, guardStatus(t, app))
}
