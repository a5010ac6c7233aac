package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/turtacn/InfringeScope/internal/infrastructure/monitoring/logging"
)

// LoggingConfig holds configuration for the request logging middleware.
type LoggingConfig struct {
	// SkipPaths are never logged (probes, scrapes).
	SkipPaths []string

	// SlowThreshold is the duration above which a request is logged at warn.
	SlowThreshold time.Duration
}

// DefaultLoggingConfig skips the probe and metrics paths and flags requests
// slower than three seconds.  An infringement check waits on the model, so
// slow checks are expected to show up here.
func DefaultLoggingConfig(metricsPath string) LoggingConfig {
	skip := []string{"/healthz", "/readyz"}
	if metricsPath != "" {
		skip = append(skip, metricsPath)
	}
	return LoggingConfig{
		SkipPaths:     skip,
		SlowThreshold: 3 * time.Second,
	}
}

// RequestLogging logs one line per request.  5xx responses are logged at
// error, 4xx and slow requests at warn, everything else at info.
func RequestLogging(logger logging.Logger, config LoggingConfig) gin.HandlerFunc {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	skipSet := make(map[string]bool, len(config.SkipPaths))
	for _, p := range config.SkipPaths {
		skipSet[p] = true
	}

	return func(c *gin.Context) {
		if skipSet[c.Request.URL.Path] {
			c.Next()
			return
		}

		start := time.Now()
		path := c.Request.URL.Path
		if raw := c.Request.URL.RawQuery; raw != "" {
			path = path + "?" + raw
		}

		c.Next()

		duration := time.Since(start)
		status := c.Writer.Status()

		fields := []logging.Field{
			logging.String("method", c.Request.Method),
			logging.String("path", path),
			logging.Int("status", status),
			logging.Float64("duration_ms", float64(duration.Microseconds())/1000),
			logging.Int("bytes", c.Writer.Size()),
			logging.String("remote_addr", c.ClientIP()),
			logging.String("request_id", GetRequestID(c)),
		}
		if ua := c.Request.UserAgent(); ua != "" {
			fields = append(fields, logging.String("user_agent", ua))
		}
		if len(c.Errors) > 0 {
			fields = append(fields, logging.String("errors", c.Errors.String()))
		}

		switch {
		case status >= 500:
			logger.Error("HTTP request completed with server error", fields...)
		case status >= 400:
			logger.Warn("HTTP request completed with client error", fields...)
		case config.SlowThreshold > 0 && duration >= config.SlowThreshold:
			logger.Warn("HTTP request completed (slow)", fields...)
		default:
			logger.Info("HTTP request completed", fields...)
		}
	}
}

//Personal.AI order the ending
