package middleware

import (
	"go-payroll/internal/shared/apperror"
	"go-payroll/internal/shared/contextutil"

	"github.com/gin-gonic/gin"
)

// CurrentIdentity returns the identity placed on the request by
// AuthMiddleware.
func CurrentIdentity(c *gin.Context) (contextutil.Identity, error) {
	id, ok := contextutil.GetIdentity(c.Request.Context())
	if !ok || id.TenantID == "" || id.EmployeeID == "" {
		return contextutil.Identity{}, apperror.ErrUnauthorized
	}
	return id, nil
}
