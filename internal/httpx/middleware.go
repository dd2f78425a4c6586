package httpx

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gookit/slog"
	"golang.org/x/crypto/bcrypt"
)

const (
	AdminKeyHeader  = "X-Admin-Key"
	RequestIDHeader = "X-Request-ID"

	ridKey      = "rid"
	maxRIDBytes = 64
)

// validRID accepts caller ids that are safe to echo into log lines.
func validRID(rid string) bool {
	if rid == "" || len(rid) > maxRIDBytes {
		return false
	}
	for _, r := range rid {
		if r <= ' ' || r > '~' {
			return false
		}
	}
	return true
}

// RequestID keeps a caller supplied X-Request-ID when it is printable and
// short, and mints a uuid otherwise.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetHeader(RequestIDHeader)
		if !validRID(rid) {
			rid = uuid.NewString()
		}
		c.Set(ridKey, rid)
		c.Writer.Header().Set(RequestIDHeader, rid)
		c.Next()
	}
}

func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		slog.Infof("[http] rid=%s %s %s status=%d dur=%s",
			RequestIDFrom(c), c.Request.Method, c.Request.URL.Path, c.Writer.Status(), time.Since(start))
	}
}

// AdminKey guards back office routes with a key checked against a bcrypt
// hash. An empty hash locks the routes.
func AdminKey(hash string) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader(AdminKeyHeader)
		if hash == "" || key == "" || bcrypt.CompareHashAndPassword([]byte(hash), []byte(key)) != nil {
			Fail(c, http.StatusUnauthorized, "unauthorized")
			c.Abort()
			return
		}
		c.Next()
	}
}
