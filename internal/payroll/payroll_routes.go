package payroll

import (
	"go-payroll/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// RegisterRoutes mounts the cycle and payslip endpoints. When rdb is given,
// mutating calls honour the Idempotency-Key header.
func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	roles middleware.RoleGrants,
	rdb redis.UniversalClient,
	mw ...gin.HandlerFunc,
) {
	idempotent := func(c *gin.Context) { c.Next() }
	if rdb != nil {
		idempotent = middleware.Idempotency(rdb)
	}

	cycles := r.Group("/payroll-cycles")
	cycles.Use(mw...)
	cycles.Use(middleware.RoleMiddleware(roles))
	{
		cycles.GET("/:period", middleware.RateLimitByUser(2, 5), handler.GetCycle)
		cycles.GET("/:period/payslips", middleware.RateLimitByUser(1, 5), handler.ListPayslips)
		cycles.POST("/:period/calculate",
			middleware.RateLimitByUser(0.1, 1),
			idempotent,
			handler.Calculate,
		)
		cycles.POST("/:period/transition",
			middleware.RateLimitByUser(0.1, 1),
			idempotent,
			handler.Transition,
		)
	}

	payslips := r.Group("/payslips")
	payslips.Use(mw...)
	payslips.Use(middleware.RoleMiddleware(roles))
	{
		payslips.GET("/:id", middleware.RateLimitByUser(2, 5), handler.GetPayslip)
		payslips.GET("/:id/download", middleware.RateLimitByUser(1, 3), handler.Download)
		payslips.POST("/:id/mark-paid",
			middleware.RateLimitByUser(0.1, 1),
			idempotent,
			handler.MarkPaid,
		)
	}
}
