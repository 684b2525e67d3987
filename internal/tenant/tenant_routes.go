package tenant

import (
	"go-payroll/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, roles middleware.RoleGrants, mw ...gin.HandlerFunc) {
	settings := r.Group("/tenant")
	settings.Use(mw...)
	{
		settings.GET("/settings", handler.GetSettings)
		settings.PUT("/payroll-freeze",
			middleware.RoleMiddleware(roles),
			middleware.RateLimitByUser(0.5, 2),
			handler.SetPayrollFreeze,
		)
	}
}
