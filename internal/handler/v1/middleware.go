package v1

import (
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/saludmental/mindtrack/pkg/auth"
	"github.com/saludmental/mindtrack/pkg/metrics"
)

const requestIDKey = "request_id"

// RequestID attaches an id to every request so log lines and audit entries
// can be correlated. An inbound X-Request-ID is trusted if present.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header("X-Request-ID", id)
		c.Next()
	}
}

// Metrics records request counts, latency and in-flight gauge per route.
func Metrics(m *metrics.Collector) gin.HandlerFunc {
	return func(c *gin.Context) {
		m.InFlightGauge.Inc()
		start := time.Now()

		c.Next()

		m.InFlightGauge.Dec()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())
		m.RequestsTotal.WithLabelValues(c.Request.Method, path, status).Inc()
		m.RequestDuration.WithLabelValues(c.Request.Method, path, status).Observe(time.Since(start).Seconds())
	}
}

// operatorFromBearer resolves the acting operator from an optional bearer
// token. Absent or invalid tokens yield uuid.Nil; the services substitute
// the configured system operator so trusted batch jobs still work.
func operatorFromBearer(c *gin.Context, v *auth.Verifier) uuid.UUID {
	header := c.GetHeader("Authorization")
	if header == "" {
		return uuid.Nil
	}

	token := strings.TrimPrefix(header, "Bearer ")
	if token == header {
		return uuid.Nil
	}

	claims, err := v.Verify(token)
	if err != nil {
		return uuid.Nil
	}
	return claims.UserID
}
