package middlewares

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// PrepareNDJSON configures the HTTP response for newline delimited JSON
// streaming responses.
func PrepareNDJSON(c *gin.Context) (http.Flusher, bool) {
	c.Writer.Header().Set("Content-Type", "application/x-ndjson")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")
	c.Writer.Header().Set("Transfer-Encoding", "chunked")
	flusher, ok := c.Writer.(http.Flusher)
	return flusher, ok
}
