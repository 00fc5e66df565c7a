package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	HeaderXRequestID = "X-Request-ID"
	ContextRequestID = "request_id"
)

// RequestID tags every request with an identifier so log lines and error
// reports can be correlated. An inbound X-Request-ID is kept and echoed
// back; otherwise one is minted here.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(HeaderXRequestID)
		if id == "" {
			id = uuid.NewString()
		}

		c.Set(ContextRequestID, id)
		c.Header(HeaderXRequestID, id)
		c.Next()
	}
}
