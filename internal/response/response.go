package response

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Response is the standardized API envelope: data plus a human-readable
// message, always both present. Error responses additionally carry a typed
// code and optional field details.
type Response struct {
	Data     interface{} `json:"data"`
	Message  string      `json:"message"`
	Error    *ErrorBody  `json:"error,omitempty"`
	Metadata Metadata    `json:"metadata"`
}

// ErrorBody identifies an error response beyond its message.
type ErrorBody struct {
	Code   ErrCode           `json:"code"`
	Fields map[string]string `json:"fields,omitempty"`
}

// Metadata includes request tracing and timing.
type Metadata struct {
	RequestID string `json:"request_id"`
	Timestamp string `json:"timestamp"`
}

// Success sends a successful JSON response with the given status, data and
// message.
func Success(c *gin.Context, statusCode int, data interface{}, message string) {
	if data == nil {
		data = gin.H{}
	}
	c.JSON(statusCode, Response{
		Data:     data,
		Message:  message,
		Metadata: buildMetadata(c),
	})
}

// Fail sends an error response; the message is derived from the code.
func Fail(c *gin.Context, statusCode int, code ErrCode) {
	c.JSON(statusCode, Response{
		Data:     gin.H{},
		Message:  GetMessage(code),
		Error:    &ErrorBody{Code: code},
		Metadata: buildMetadata(c),
	})
}

// FailWithFields sends an error response with field-level validation
// details.
func FailWithFields(c *gin.Context, statusCode int, code ErrCode, fields map[string]string) {
	c.JSON(statusCode, Response{
		Data:     gin.H{},
		Message:  GetMessage(code),
		Error:    &ErrorBody{Code: code, Fields: fields},
		Metadata: buildMetadata(c),
	})
}

// AbortFail aborts the middleware chain and sends an error response.
func AbortFail(c *gin.Context, statusCode int, code ErrCode) {
	c.AbortWithStatusJSON(statusCode, Response{
		Data:     gin.H{},
		Message:  GetMessage(code),
		Error:    &ErrorBody{Code: code},
		Metadata: buildMetadata(c),
	})
}

func buildMetadata(c *gin.Context) Metadata {
	reqID, _ := c.Get(ContextKeyRequestID)
	id, ok := reqID.(string)
	if !ok || id == "" {
		id = uuid.New().String() // Fallback if middleware not applied
	}
	return Metadata{
		RequestID: id,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
}
