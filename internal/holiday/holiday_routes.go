package holiday

import (
	"go-payroll/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, roles middleware.RoleGrants, mw ...gin.HandlerFunc) {
	holidays := r.Group("/holidays")
	holidays.Use(mw...)
	{
		holidays.GET("", middleware.RateLimitByUser(3, 10), handler.List)
		holidays.POST("",
			middleware.RoleMiddleware(roles),
			middleware.RateLimitByUser(0.5, 2),
			handler.Create,
		)
	}
}
