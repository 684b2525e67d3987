package compensation

import (
	"go-payroll/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, roles middleware.RoleGrants, mw ...gin.HandlerFunc) {
	profiles := r.Group("/compensation-profiles")
	profiles.Use(mw...)
	profiles.Use(middleware.RoleMiddleware(roles))
	{
		profiles.GET("",
			middleware.RateLimitByUser(1, 5),
			handler.List,
		)
		profiles.GET("/:employee_id",
			middleware.RateLimitByUser(2, 5),
			handler.History,
		)
		profiles.POST("",
			middleware.RateLimitByUser(0.1, 1),
			handler.Create,
		)
		profiles.DELETE("/:id",
			middleware.RateLimitByUser(0.05, 1),
			handler.Delete,
		)
	}
}
