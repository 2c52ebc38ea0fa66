package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// HeaderRequestID carries the request id in both directions
	HeaderRequestID = "X-Request-ID"
	// ContextKeyRequestID is the key for the request id in gin context
	ContextKeyRequestID = "request_id"
)

// RequestIDMiddleware reuses a client supplied X-Request-ID or assigns a new one
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetHeader(HeaderRequestID)
		if rid == "" || len(rid) > 64 {
			rid = uuid.NewString()
		}
		c.Set(ContextKeyRequestID, rid)
		c.Header(HeaderRequestID, rid)
		c.Next()
	}
}

// GetRequestID gets the request id from the gin context
func GetRequestID(c *gin.Context) string {
	return c.GetString(ContextKeyRequestID)
}
