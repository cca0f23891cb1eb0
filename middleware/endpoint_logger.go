package middleware

import (
	"fmt"
	"strconv"
	"time"

	"github.com/ariebrainware/basis-data-dental/util"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// EndpointCallLogger records each HTTP request as an endpoint security event.
// Events are persisted once util.SetSecurityLoggerDB has been called.
func EndpointCallLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		duration := time.Since(start)
		status := c.Writer.Status()

		userID, _ := GetUserID(c)
		roleID, _ := GetRoleID(c)
		scope, _ := GetScope(c)

		details := map[string]interface{}{
			"method":      c.Request.Method,
			"path":        c.FullPath(),
			"raw_path":    c.Request.URL.Path,
			"status":      status,
			"duration_ms": duration.Milliseconds(),
			"query":       c.Request.URL.RawQuery,
		}
		if roleID != 0 {
			details["role_id"] = roleID
		}

		event := util.SecurityEvent{
			EventType: util.EventEndpointCall,
			ClinicID:  scope.ClinicID(),
			IP:        c.ClientIP(),
			UserAgent: c.Request.UserAgent(),
			Message:   fmt.Sprintf("%s %s -> %d", c.Request.Method, c.Request.URL.Path, status),
			Details:   details,
		}
		if userID != 0 {
			event.UserID = strconv.FormatUint(uint64(userID), 10)
		}
		util.LogSecurityEvent(event)
	}
}

// RequestLogger writes one access line per request.
func RequestLogger(logger zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		var ev *zerolog.Event
		switch {
		case status >= 500:
			ev = logger.Error()
		case status >= 400:
			ev = logger.Warn()
		default:
			ev = logger.Info()
		}
		if len(c.Errors) > 0 {
			ev = ev.Str("errors", c.Errors.String())
		}
		ev.Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Str("route", c.FullPath()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("ip", c.ClientIP()).
			Msg("request")
	}
}
