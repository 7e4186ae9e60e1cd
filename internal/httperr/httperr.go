package httperr

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type HTTPError struct {
	Code    string            `json:"error_code"`
	Message string            `json:"message"`
	Kind    Kind              `json:"kind,omitempty"`
	Details map[string]string `json:"details,omitempty"`
}

func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, HTTPError{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

// InvalidPayload answers a binding failure with per-field details.
func InvalidPayload(c *gin.Context, details map[string]string) {
	c.JSON(http.StatusBadRequest, HTTPError{
		Code:    "invalid_payload",
		Message: "Invalid request body.",
		Kind:    KindValidation,
		Details: details,
	})
}

func NotFound(c *gin.Context, code, message string) {
	Write(c, http.StatusNotFound, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message)
}

// StatusFor maps a business error kind to its HTTP status.
func StatusFor(kind Kind) int {
	switch kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Respond writes err as JSON. Business errors keep their code and message;
// anything else is logged and hidden behind internal_error.
func Respond(c *gin.Context, log *zap.Logger, err error) {
	var be BusinessError
	if errors.As(err, &be) {
		msg := be.Message
		if msg == "" {
			msg = be.Code
		}
		c.AbortWithStatusJSON(StatusFor(be.Kind), HTTPError{
			Code:    be.Code,
			Message: msg,
			Kind:    be.Kind,
		})
		return
	}

	_ = c.Error(err)
	if log != nil {
		log.Error("request failed",
			zap.String("path", c.FullPath()),
			zap.String("request_id", c.GetString("X-Request-ID")),
			zap.Error(err),
		)
	}
	c.AbortWithStatusJSON(http.StatusInternalServerError, HTTPError{
		Code:    "internal_error",
		Message: "Something went wrong.",
	})
}
