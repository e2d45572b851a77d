// Package response writes the JSON envelope every API endpoint shares:
// {success, message, data?, timestamp, requestId?}.
package response

import (
	"time"

	"github.com/gin-gonic/gin"
)

// RequestIDKey is the gin context key the request-ID middleware stores under
const RequestIDKey = "requestID"

// Envelope is the standard API response shape
type Envelope struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	Data      any    `json:"data,omitempty"`
	Timestamp string `json:"timestamp"`
	RequestID string `json:"requestId,omitempty"`
}

func build(c *gin.Context, success bool, message string, data any) Envelope {
	env := Envelope{
		Success:   success,
		Message:   message,
		Data:      data,
		Timestamp: time.Now().UTC().Format(time.RFC3339Nano),
	}
	if id, ok := c.Get(RequestIDKey); ok {
		env.RequestID, _ = id.(string)
	}
	return env
}

// Send writes an envelope with the given status
func Send(c *gin.Context, status int, success bool, message string, data any) {
	c.JSON(status, build(c, success, message, data))
}

// OK writes a 200 success envelope
func OK(c *gin.Context, message string, data any) {
	Send(c, 200, true, message, data)
}

// Created writes a 201 success envelope
func Created(c *gin.Context, message string, data any) {
	Send(c, 201, true, message, data)
}

// Error writes a failure envelope without data
func Error(c *gin.Context, status int, message string) {
	Send(c, status, false, message, nil)
}

// Abort writes a failure envelope and stops the handler chain
func Abort(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, build(c, false, message, nil))
}
