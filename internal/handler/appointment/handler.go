package appointment

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/hospital-api/internal/handler"
	"github.com/jwalitptl/hospital-api/internal/model"
	"github.com/jwalitptl/hospital-api/internal/service/appointment"
)

type Handler struct {
	service *appointment.Service
}

func NewHandler(service *appointment.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	appointments := r.Group("/appointments")
	{
		appointments.POST("", h.CreateAppointment)
		appointments.GET("", h.ListAppointments)
		appointments.GET("/:id", h.GetAppointment)
		appointments.POST("/:id/cancel", h.CancelAppointment)
	}

	r.GET("/doctors/:id/slots", h.BookedSlots)
}

func (h *Handler) CreateAppointment(c *gin.Context) {
	var req model.CreateAppointmentRequest
	if !handler.BindJSON(c, &req) {
		return
	}

	created, err := h.service.CreateAppointment(c.Request.Context(), &req)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, handler.NewSuccessResponse(created))
}

func (h *Handler) GetAppointment(c *gin.Context) {
	found, err := h.service.GetAppointment(c.Request.Context(), c.Param("id"))
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(found))
}

func (h *Handler) ListAppointments(c *gin.Context) {
	appointments, err := h.service.ListAppointments(c.Request.Context())
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(gin.H{"appointments": appointments}))
}

func (h *Handler) CancelAppointment(c *gin.Context) {
	cancelled, err := h.service.CancelAppointment(c.Request.Context(), c.Param("id"))
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(cancelled))
}

func (h *Handler) BookedSlots(c *gin.Context) {
	slots, err := h.service.BookedSlots(c.Request.Context(), c.Param("id"))
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(slots))
}
