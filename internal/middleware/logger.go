package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// QuietPaths are logged at debug level only.
var QuietPaths = map[string]bool{
	"/health": true,
}

// RequestLogger writes one entry per request. Console actions end in a
// redirect back to the page, so the redirect target and the page section it
// lands on are logged with them.
func RequestLogger(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		startTime := time.Now()

		c.Next()

		statusCode := c.Writer.Status()
		fields := logrus.Fields{
			"status_code": statusCode,
			"method":      c.Request.Method,
			"path":        c.Request.URL.Path,
			"remote_ip":   c.ClientIP(),
			"latency_ms":  time.Since(startTime).Milliseconds(),
		}
		if reqID := GetRequestID(c); reqID != "" {
			fields["request_id"] = reqID
		}
		if action := c.Query("action"); action != "" {
			fields["action"] = action
		}
		if location := c.Writer.Header().Get("Location"); location != "" {
			fields["redirect"] = location
			if _, section, ok := strings.Cut(location, "#"); ok {
				fields["section"] = section
			}
		}
		entry := logger.WithFields(fields)

		switch {
		case len(c.Errors) > 0:
			entry.Error(c.Errors.ByType(gin.ErrorTypePrivate).String())
		case statusCode >= http.StatusInternalServerError:
			entry.Error("Request completed with server error")
		case statusCode >= http.StatusBadRequest:
			entry.Warn("Request completed with client error")
		case statusCode >= http.StatusMultipleChoices && statusCode < http.StatusBadRequest:
			entry.Info("Console action completed")
		case QuietPaths[c.Request.URL.Path]:
			entry.Debug("Request completed successfully")
		default:
			entry.Info("Request completed successfully")
		}
	}
}
