package medicalrecord

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/hospital-api/internal/handler"
	"github.com/jwalitptl/hospital-api/internal/model"
	"github.com/jwalitptl/hospital-api/internal/service/medicalrecord"
)

type Handler struct {
	service *medicalrecord.Service
}

func NewHandler(service *medicalrecord.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	records := r.Group("/medical-records")
	{
		records.POST("", h.CreateRecord)
		records.GET("/:id", h.GetRecord)
	}

	r.GET("/patients/:id/medical-records", h.PatientHistory)
}

func (h *Handler) CreateRecord(c *gin.Context) {
	var req model.CreateMedicalRecordRequest
	if !handler.BindJSON(c, &req) {
		return
	}

	created, err := h.service.CreateRecord(c.Request.Context(), &req)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, handler.NewSuccessResponse(created))
}

func (h *Handler) GetRecord(c *gin.Context) {
	found, err := h.service.GetRecord(c.Request.Context(), c.Param("id"))
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(found))
}

func (h *Handler) PatientHistory(c *gin.Context) {
	records, err := h.service.PatientHistory(c.Request.Context(), c.Param("id"))
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(gin.H{"medical_records": records}))
}
