package billing

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/hospital-api/internal/handler"
	"github.com/jwalitptl/hospital-api/internal/model"
	"github.com/jwalitptl/hospital-api/internal/service/billing"
)

type Handler struct {
	service *billing.Service
}

func NewHandler(service *billing.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	bills := r.Group("/bills")
	{
		bills.POST("", h.CreateBill)
		bills.GET("", h.ListBills)
		bills.GET("/:id", h.GetBill)
		bills.POST("/:id/pay", h.PayBill)
	}

	r.GET("/patients/:id/billing", h.PatientBilling)
	r.GET("/patients/:id/balance", h.PatientBalance)
}

func (h *Handler) CreateBill(c *gin.Context) {
	var req model.CreateBillRequest
	if !handler.BindJSON(c, &req) {
		return
	}

	created, err := h.service.CreateBill(c.Request.Context(), &req)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, handler.NewSuccessResponse(created))
}

func (h *Handler) GetBill(c *gin.Context) {
	found, err := h.service.GetBill(c.Request.Context(), c.Param("id"))
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(found))
}

func (h *Handler) ListBills(c *gin.Context) {
	bills, err := h.service.ListBills(c.Request.Context())
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(gin.H{"bills": bills}))
}

func (h *Handler) PayBill(c *gin.Context) {
	paid, err := h.service.PayBill(c.Request.Context(), c.Param("id"))
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(paid))
}

func (h *Handler) PatientBilling(c *gin.Context) {
	summary, err := h.service.PatientBilling(c.Request.Context(), c.Param("id"))
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(summary))
}

func (h *Handler) PatientBalance(c *gin.Context) {
	balance, err := h.service.PatientBalance(c.Request.Context(), c.Param("id"))
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(balance))
}
