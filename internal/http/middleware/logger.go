package middleware

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Logger prints one line per request, keyed by request_id so handler and
// service log lines correlate.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		log.Printf("[HTTP] request_id=%s method=%s path=%s status=%d(%s) duration=%s ip=%s",
			GetRequestID(c),
			c.Request.Method,
			c.Request.URL.Path,
			status,
			http.StatusText(status),
			time.Since(start).Round(time.Microsecond),
			c.ClientIP(),
		)
	}
}
