package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// ErrorHandler logs errors attached to the context by handlers. The
// handlers have already written the client-facing response; this only
// records the server-side detail.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		requestID := c.GetString(ContextRequestID)
		for _, e := range c.Errors {
			log.Error().
				Err(e.Err).
				Str("request_id", requestID).
				Str("path", c.Request.URL.Path).
				Str("method", c.Request.Method).
				Str("client_ip", c.ClientIP()).
				Msg("Request error")
		}
	}
}
