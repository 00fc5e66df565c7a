package health

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Pinger reports whether the backing store is reachable. The memory
// store always is; the postgres store pings the database.
type Pinger interface {
	Ping() error
}

type Handler struct {
	store Pinger
}

func NewHandler(store Pinger) *Handler {
	return &Handler{store: store}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	health := r.Group("/health")
	{
		health.GET("/live", h.LivenessCheck)
		health.GET("/ready", h.ReadinessCheck)
	}

	r.GET("/metrics", h.Metrics)
}

func (h *Handler) LivenessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "UP"})
}

func (h *Handler) ReadinessCheck(c *gin.Context) {
	if h.store != nil {
		if err := h.store.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status": "DOWN",
				"reason": "store connection failed",
			})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "UP"})
}

func (h *Handler) Metrics(c *gin.Context) {
	promhttp.Handler().ServeHTTP(c.Writer, c.Request)
}
