package staff

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/hospital-api/internal/handler"
	"github.com/jwalitptl/hospital-api/internal/model"
	"github.com/jwalitptl/hospital-api/internal/service/staff"
)

type Handler struct {
	service *staff.Service
}

func NewHandler(service *staff.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	staff := r.Group("/staff")
	{
		staff.POST("", h.CreateStaff)
		staff.GET("", h.ListStaff)
		staff.GET("/:id", h.GetStaff)
		staff.PUT("/:id", h.UpdateStaff)
	}
}

func (h *Handler) CreateStaff(c *gin.Context) {
	var req model.CreateStaffRequest
	if !handler.BindJSON(c, &req) {
		return
	}

	created, err := h.service.CreateStaff(c.Request.Context(), &req)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, handler.NewSuccessResponse(created))
}

func (h *Handler) GetStaff(c *gin.Context) {
	found, err := h.service.GetStaff(c.Request.Context(), c.Param("id"))
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(found))
}

func (h *Handler) ListStaff(c *gin.Context) {
	members, err := h.service.ListStaff(c.Request.Context())
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(gin.H{"staff": members}))
}

func (h *Handler) UpdateStaff(c *gin.Context) {
	var req model.UpdateStaffRequest
	if !handler.BindJSON(c, &req) {
		return
	}

	updated, err := h.service.UpdateStaff(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(updated))
}
