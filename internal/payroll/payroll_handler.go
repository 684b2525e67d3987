package payroll

import (
	"fmt"
	"net/http"

	"go-payroll/internal/middleware"
	"go-payroll/internal/shared/apperror"
	"go-payroll/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("payroll.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("payroll.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("payroll request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.String("period", c.Param("period")),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) Calculate(c *gin.Context) {
	id, err := middleware.CurrentIdentity(c)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	resp, err := h.service.Calculate(c.Request.Context(), id.TenantID, id.EmployeeID, c.Param("period"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Transition(c *gin.Context) {
	id, err := middleware.CurrentIdentity(c)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	var req TransitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.TransitionCycle(c.Request.Context(), id.TenantID, id.EmployeeID, c.Param("period"), req.TargetState)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetCycle(c *gin.Context) {
	id, err := middleware.CurrentIdentity(c)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	resp, err := h.service.GetCycleState(c.Request.Context(), id.TenantID, c.Param("period"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) ListPayslips(c *gin.Context) {
	id, err := middleware.CurrentIdentity(c)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	var filter ListPayslipsRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.ListPayslips(c.Request.Context(), id.TenantID, c.Param("period"), filter.Status)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	page, meta := response.Paginate(c, resp)
	response.Success(c, http.StatusOK, page, &meta)
}

func (h *Handler) GetPayslip(c *gin.Context) {
	id, err := middleware.CurrentIdentity(c)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	resp, err := h.service.GetPayslip(c.Request.Context(), id.TenantID, c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) MarkPaid(c *gin.Context) {
	id, err := middleware.CurrentIdentity(c)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	resp, err := h.service.MarkPayslipPaid(c.Request.Context(), id.TenantID, id.EmployeeID, c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Download(c *gin.Context) {
	id, err := middleware.CurrentIdentity(c)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	doc, err := h.service.DownloadPayslip(c.Request.Context(), id.TenantID, c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", doc.FileName))
	c.Data(http.StatusOK, "application/pdf", doc.Content)
}
