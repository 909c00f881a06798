// internal/common/errors/handler.go
package errors

import (
	"github.com/gin-gonic/gin"
)

// ErrorHandler writes errors to HTTP callers with standardized handling.
type ErrorHandler struct {
	logger Logger
}

type Logger interface {
	Error(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
}

func NewErrorHandler(logger Logger) *ErrorHandler {
	return &ErrorHandler{logger: logger}
}

// ErrorBody is the JSON error envelope. Causes never leave the process.
type ErrorBody struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

// HandleRequestError normalizes err, logs it with details and aborts the request.
func (h *ErrorHandler) HandleRequestError(c *gin.Context, err error) {
	stdErr := h.normalizeError(err)
	status := HTTPStatus(stdErr.Code)

	h.logError(c, stdErr, status)

	c.AbortWithStatusJSON(status, ErrorBody{
		Code:    stdErr.Code,
		Message: stdErr.Message,
	})
}

// normalizeError ensures we always have a StandardError.
func (h *ErrorHandler) normalizeError(err error) *StandardError {
	if stdErr, ok := AsStandardError(err); ok {
		return stdErr
	}
	return NewInternalError(err)
}

func (h *ErrorHandler) logError(c *gin.Context, stdErr *StandardError, status int) {
	fields := map[string]interface{}{
		"method":        c.Request.Method,
		"path":          c.FullPath(),
		"status":        status,
		"errorCode":     string(stdErr.Code),
		"message":       stdErr.Message,
		"details":       stdErr.Details,
		"errorCategory": GetErrorCategory(stdErr.Code),
	}
	if requestID, ok := c.Get("requestId"); ok {
		fields["requestId"] = requestID
	}
	for k, v := range stdErr.Metadata {
		fields[k] = v
	}

	if status >= 500 {
		h.logger.Error("Request failed", fields)
		return
	}
	h.logger.Warn("Request rejected", fields)
}
