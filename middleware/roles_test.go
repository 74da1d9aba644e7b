package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"local-services-server/models"
)

func runGuard(t *testing.T, guard gin.HandlerFunc, user *models.User) int {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	if user != nil {
		c.Set("user", *user)
		c.Set("user_id", user.ID)
	}

	guard(c)
	if !c.IsAborted() {
		c.Status(http.StatusOK)
	}
	return w.Code
}

func TestRequireRoleAllowsMatchingRole(t *testing.T) {
	worker := &models.User{ID: 1, Role: models.RoleWorker}
	if code := runGuard(t, RequireRole(models.RoleWorker), worker); code != http.StatusOK {
		t.Fatalf("worker rejected from worker-only route: %d", code)
	}
}

func TestRequireRoleRejectsOtherRole(t *testing.T) {
	customer := &models.User{ID: 2, Role: models.RoleCustomer}
	if code := runGuard(t, RequireRole(models.RoleWorker), customer); code != http.StatusForbidden {
		t.Fatalf("customer allowed on worker-only route: %d", code)
	}
}

func TestRequireRoleRejectsAnonymous(t *testing.T) {
	if code := runGuard(t, RequireRole(models.RoleWorker), nil); code != http.StatusUnauthorized {
		t.Fatalf("anonymous request not rejected: %d", code)
	}
}

func TestRequireSuperuser(t *testing.T) {
	super := &models.User{ID: 1, Role: models.RoleAdmin, IsSuperuser: true}
	if code := runGuard(t, RequireSuperuser(), super); code != http.StatusOK {
		t.Fatalf("superuser rejected: %d", code)
	}

	admin := &models.User{ID: 2, Role: models.RoleAdmin}
	if code := runGuard(t, RequireSuperuser(), admin); code != http.StatusForbidden {
		t.Fatalf("plain admin allowed on superuser route: %d", code)
	}
}

func TestRequireAdminOrSuperuser(t *testing.T) {
	admin := &models.User{ID: 1, Role: models.RoleAdmin}
	if code := runGuard(t, RequireAdminOrSuperuser(), admin); code != http.StatusOK {
		t.Fatalf("admin rejected: %d", code)
	}

	super := &models.User{ID: 2, Role: models.RoleCustomer, IsSuperuser: true}
	if code := runGuard(t, RequireAdminOrSuperuser(), super); code != http.StatusOK {
		t.Fatalf("superuser rejected: %d", code)
	}

	customer := &models.User{ID: 3, Role: models.RoleCustomer}
	if code := runGuard(t, RequireAdminOrSuperuser(), customer); code != http.StatusForbidden {
		t.Fatalf("customer allowed on admin route: %d", code)
	}
}
