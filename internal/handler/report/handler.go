package report

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/hospital-api/internal/handler"
	"github.com/jwalitptl/hospital-api/internal/service/report"
)

type Handler struct {
	service *report.Service
}

func NewHandler(service *report.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	reports := r.Group("/reports")
	{
		reports.GET("/billing/total", h.TotalBilled)
		reports.GET("/inventory/value", h.TotalInventoryValue)
		reports.GET("/departments/:id/staff-count", h.DepartmentStaffCount)
	}
}

func (h *Handler) TotalBilled(c *gin.Context) {
	total, err := h.service.TotalBilled(c.Request.Context())
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(total))
}

func (h *Handler) TotalInventoryValue(c *gin.Context) {
	value, err := h.service.TotalInventoryValue(c.Request.Context())
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(value))
}

func (h *Handler) DepartmentStaffCount(c *gin.Context) {
	count, err := h.service.DepartmentStaffCount(c.Request.Context(), c.Param("id"))
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(count))
}
