package attendance

import (
	"go-payroll/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, mw ...gin.HandlerFunc) {
	attendances := r.Group("/attendances")
	attendances.Use(mw...)
	{
		attendances.GET("/status", middleware.RateLimitByUser(5, 10), h.GetStatus)
		attendances.POST("/events", middleware.RateLimitByUser(1, 5), h.RecordEvent)
	}
}
