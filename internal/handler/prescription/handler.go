package prescription

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/hospital-api/internal/handler"
	"github.com/jwalitptl/hospital-api/internal/model"
	"github.com/jwalitptl/hospital-api/internal/service/prescription"
)

type Handler struct {
	service *prescription.Service
}

func NewHandler(service *prescription.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	prescriptions := r.Group("/prescriptions")
	{
		prescriptions.POST("", h.CreatePrescription)
		prescriptions.GET("/:id", h.GetPrescription)
		prescriptions.PATCH("/:id/status", h.UpdateStatus)
	}

	r.GET("/patients/:id/prescriptions", h.ListByPatient)
}

func (h *Handler) CreatePrescription(c *gin.Context) {
	var req model.CreatePrescriptionRequest
	if !handler.BindJSON(c, &req) {
		return
	}

	created, err := h.service.CreatePrescription(c.Request.Context(), &req)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, handler.NewSuccessResponse(created))
}

func (h *Handler) GetPrescription(c *gin.Context) {
	found, err := h.service.GetPrescription(c.Request.Context(), c.Param("id"))
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(found))
}

func (h *Handler) UpdateStatus(c *gin.Context) {
	var req model.UpdatePrescriptionStatusRequest
	if !handler.BindJSON(c, &req) {
		return
	}

	updated, err := h.service.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(updated))
}

func (h *Handler) ListByPatient(c *gin.Context) {
	prescriptions, err := h.service.ListByPatient(c.Request.Context(), c.Param("id"))
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(gin.H{"prescriptions": prescriptions}))
}
