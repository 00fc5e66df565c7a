package department

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/hospital-api/internal/handler"
	"github.com/jwalitptl/hospital-api/internal/model"
	"github.com/jwalitptl/hospital-api/internal/service/department"
)

type Handler struct {
	service *department.Service
}

func NewHandler(service *department.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	departments := r.Group("/departments")
	{
		departments.POST("", h.CreateDepartment)
		departments.GET("", h.ListDepartments)
		departments.GET("/:id", h.GetDepartment)
		departments.GET("/:id/staff", h.DepartmentStaff)
	}
}

func (h *Handler) CreateDepartment(c *gin.Context) {
	var req model.CreateDepartmentRequest
	if !handler.BindJSON(c, &req) {
		return
	}

	created, err := h.service.CreateDepartment(c.Request.Context(), &req)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, handler.NewSuccessResponse(created))
}

func (h *Handler) GetDepartment(c *gin.Context) {
	found, err := h.service.GetDepartment(c.Request.Context(), c.Param("id"))
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(found))
}

func (h *Handler) ListDepartments(c *gin.Context) {
	departments, err := h.service.ListDepartments(c.Request.Context())
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(gin.H{"departments": departments}))
}

func (h *Handler) DepartmentStaff(c *gin.Context) {
	members, err := h.service.DepartmentStaff(c.Request.Context(), c.Param("id"))
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(gin.H{"staff": members}))
}
