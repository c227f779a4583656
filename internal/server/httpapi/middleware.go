package httpapi

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

// ClientIDHeader carries the anonymous install id on HTTP requests.
const ClientIDHeader = "X-Client-Id"

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		elapsed := time.Since(start)

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		code := c.Writer.Status()
		s.metrics.ObserveRequest("http", c.Request.Method+" "+route, strconv.Itoa(code), elapsed)

		args := []any{"method", c.Request.Method, "route", route, "status", code, "duration", elapsed}
		if id := c.GetHeader(ClientIDHeader); id != "" {
			args = append(args, "client_id", id)
		}
		if code >= 500 {
			s.logger.Warn(c.Request.Context(), "request failed", args...)
		} else {
			s.logger.Debug(c.Request.Context(), "request served", args...)
		}
	}
}
