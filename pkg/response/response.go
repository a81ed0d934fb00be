// Package response renders the JSON envelope shared by every endpoint.
package response

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// requestIDKey matches the context key set by the request id middleware.
const requestIDKey = "request_id"

type APIResponse[T any] struct {
	Status    int       `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	RequestID string    `json:"request_id"`
	Success   bool      `json:"success"`
	Message   string    `json:"message"`
	Data      T         `json:"data,omitempty"`
	Meta      any       `json:"meta,omitempty"`
	Error     any       `json:"error,omitempty"`
}

func envelope[T any](c *gin.Context, status int, ok bool, message string) APIResponse[T] {
	return APIResponse[T]{
		Status:    status,
		Timestamp: time.Now().UTC(),
		RequestID: c.GetString(requestIDKey),
		Success:   ok,
		Message:   message,
	}
}

// Success writes a success envelope (200 when status is zero) and returns it.
func Success[T any](c *gin.Context, status int, data T, message string, meta any) APIResponse[T] {
	if status == 0 {
		status = http.StatusOK
	}
	res := envelope[T](c, status, true, message)
	res.Data, res.Meta = data, meta
	c.JSON(status, res)
	return res
}

// Error aborts the handler chain with a failure envelope (400 when status is
// zero). details lands in the "error" field.
func Error[T any](c *gin.Context, status int, message string, details any) APIResponse[T] {
	if status == 0 {
		status = http.StatusBadRequest
	}
	res := envelope[T](c, status, false, message)
	res.Error = details
	c.AbortWithStatusJSON(status, res)
	return res
}
