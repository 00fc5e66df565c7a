package inventory

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/hospital-api/internal/handler"
	"github.com/jwalitptl/hospital-api/internal/model"
	"github.com/jwalitptl/hospital-api/internal/service/inventory"
	apperrors "github.com/jwalitptl/hospital-api/pkg/errors"
)

type Handler struct {
	service *inventory.Service
}

func NewHandler(service *inventory.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	items := r.Group("/inventory")
	{
		items.POST("", h.CreateItem)
		items.GET("", h.ListItems)
		items.GET("/low-stock", h.LowStock)
		items.GET("/expired", h.Expired)
		items.GET("/:id", h.GetItem)
		items.POST("/:id/consume", h.ConsumeItem)
	}
}

func (h *Handler) CreateItem(c *gin.Context) {
	var req model.CreateInventoryItemRequest
	if !handler.BindJSON(c, &req) {
		return
	}

	created, err := h.service.CreateItem(c.Request.Context(), &req)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, handler.NewSuccessResponse(created))
}

func (h *Handler) GetItem(c *gin.Context) {
	found, err := h.service.GetItem(c.Request.Context(), c.Param("id"))
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(found))
}

func (h *Handler) ListItems(c *gin.Context) {
	items, err := h.service.ListItems(c.Request.Context())
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(gin.H{"items": items}))
}

func (h *Handler) ConsumeItem(c *gin.Context) {
	var req model.ConsumeInventoryRequest
	if !handler.BindJSON(c, &req) {
		return
	}

	item, err := h.service.ConsumeItem(c.Request.Context(), c.Param("id"), req.Quantity)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(item))
}

func (h *Handler) LowStock(c *gin.Context) {
	threshold := inventory.DefaultLowStockThreshold
	if raw := c.Query("threshold"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			handler.Error(c, apperrors.Validation("threshold", "threshold must be an integer"))
			return
		}
		threshold = parsed
	}

	items, err := h.service.LowStock(c.Request.Context(), threshold)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(gin.H{"items": items, "threshold": threshold}))
}

func (h *Handler) Expired(c *gin.Context) {
	items, err := h.service.Expired(c.Request.Context(), time.Now())
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(gin.H{"items": items}))
}
