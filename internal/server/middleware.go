package server

import (
	"crypto/subtle"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// RequestLogger writes one slog record per request. Query strings are left
// out so admin credentials never reach the log.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		attrs := []any{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", status,
			"latency", time.Since(start),
			"ip", c.ClientIP(),
		}
		switch {
		case status >= http.StatusInternalServerError:
			slog.Error("Request failed", attrs...)
		case c.Request.URL.Path == "/healthz":
			slog.Debug("Request", attrs...)
		default:
			slog.Info("Request", attrs...)
		}
	}
}

// SecurityHeaders adds the response headers every page carries.
func SecurityHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("X-Frame-Options", "SAMEORIGIN")
		c.Header("Referrer-Policy", "strict-origin-when-cross-origin")
		c.Next()
	}
}

// Credentials is the admin username and password pair.
type Credentials struct {
	Username string
	Password string
}

// Match compares a candidate pair in constant time. An unset pair never
// matches.
func (cr Credentials) Match(username, password string) bool {
	if cr.Username == "" || cr.Password == "" {
		return false
	}
	userOK := subtle.ConstantTimeCompare([]byte(cr.Username), []byte(username)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(cr.Password), []byte(password)) == 1
	return userOK && passOK
}

// fromRequest accepts query parameters or HTTP Basic auth.
func (cr Credentials) fromRequest(c *gin.Context) bool {
	if cr.Match(c.Query("username"), c.Query("password")) {
		return true
	}
	if user, pass, ok := c.Request.BasicAuth(); ok {
		return cr.Match(user, pass)
	}
	return false
}

// AdminAuth guards the settings API.
func AdminAuth(creds Credentials) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !creds.fromRequest(c) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Yetkisiz erişim"})
			return
		}
		c.Next()
	}
}
