package errors

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorResponse is the standard failure body
type ErrorResponse struct {
	Error   string `json:"error"`   // machine-readable code (codes.go)
	Message string `json:"message"` // human-readable message
}

// RespondWithError writes a failure response with the given status, code and message
func RespondWithError(c *gin.Context, statusCode int, errorCode string, message string) {
	c.JSON(statusCode, ErrorResponse{
		Error:   errorCode,
		Message: message,
	})
}

// Shortcuts for the common cases

func Unauthorized(c *gin.Context, message string) {
	if message == "" {
		message = "Authentication required"
	}
	RespondWithError(c, http.StatusUnauthorized, AuthUnauthorized, message)
}

func Forbidden(c *gin.Context, message string) {
	if message == "" {
		message = "You do not have permission to perform this action"
	}
	RespondWithError(c, http.StatusForbidden, AuthzForbidden, message)
}

func BadRequest(c *gin.Context, errorCode string, message string) {
	RespondWithError(c, http.StatusBadRequest, errorCode, message)
}

func NotFound(c *gin.Context, errorCode string, message string) {
	RespondWithError(c, http.StatusNotFound, errorCode, message)
}

func Conflict(c *gin.Context, errorCode string, message string) {
	RespondWithError(c, http.StatusConflict, errorCode, message)
}

func InternalError(c *gin.Context, message string) {
	if message == "" {
		message = "An internal error occurred. Please try again later"
	}
	RespondWithError(c, http.StatusInternalServerError, InternalServerError, message)
}

// RespondWithDBError parses a persistence error and writes the failure
// response it implies. Controllers use it as the fallback after mapping
// their service sentinels, so driver errors like unique violations reach
// the client as 409s instead of generic 500s.
func RespondWithDBError(c *gin.Context, err error, context string) {
	info := ParseError(err, context)
	switch info.HTTPStatus() {
	case http.StatusConflict:
		Conflict(c, info.Code, info.Message)
	case http.StatusBadRequest:
		BadRequest(c, info.Code, info.Message)
	case http.StatusNotFound:
		NotFound(c, info.Code, info.Message)
	default:
		RespondWithError(c, http.StatusInternalServerError, info.Code, info.Message)
	}
}
