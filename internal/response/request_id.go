package response

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ContextKeyRequestID is the Gin context key under which the request ID is
// stored for the lifetime of a request.
const ContextKeyRequestID = "request_id"

// RequestIDMiddleware tags each request with an ID that ends up in the
// response metadata and the X-Request-ID header. An ID supplied by the
// caller is kept, so a request keeps one ID across service hops; otherwise
// a fresh UUID is minted.
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}

		c.Set(ContextKeyRequestID, id)
		c.Header("X-Request-ID", id)
		c.Next()
	}
}
