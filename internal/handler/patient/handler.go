package patient

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/hospital-api/internal/handler"
	"github.com/jwalitptl/hospital-api/internal/model"
	"github.com/jwalitptl/hospital-api/internal/service/patient"
)

type Handler struct {
	service *patient.Service
}

func NewHandler(service *patient.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	patients := r.Group("/patients")
	{
		patients.POST("", h.CreatePatient)
		patients.GET("", h.ListPatients)
		patients.GET("/:id", h.GetPatient)
	}
}

func (h *Handler) CreatePatient(c *gin.Context) {
	var req model.CreatePatientRequest
	if !handler.BindJSON(c, &req) {
		return
	}

	created, err := h.service.CreatePatient(c.Request.Context(), &req)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, handler.NewSuccessResponse(created))
}

func (h *Handler) GetPatient(c *gin.Context) {
	found, err := h.service.GetPatient(c.Request.Context(), c.Param("id"))
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(found))
}

func (h *Handler) ListPatients(c *gin.Context) {
	patients, err := h.service.ListPatients(c.Request.Context())
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(gin.H{"patients": patients}))
}
