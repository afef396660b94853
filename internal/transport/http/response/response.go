package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"gopherblog/internal/app"
)

const (
	MsgInternal       = "Internal server error"
	MsgInvalidPayload = "Invalid request payload"
	MsgInvalidID      = "Invalid ID format"
	MsgRouteNotFound  = "Route not found"
)

// ErrorBody is the shape of every error response.
type ErrorBody struct {
	Error string `json:"error"`
}

func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, data)
}

// Error writes an error body and aborts the handler chain.
func Error(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, ErrorBody{Error: message})
}

// FromError maps a service error to its status code. Unclassified errors are
// attached to the gin context for the request logger and answered with a
// fixed message.
func FromError(c *gin.Context, err error) {
	var appErr *app.Error
	if !errors.As(err, &appErr) {
		_ = c.Error(err)
		Error(c, http.StatusInternalServerError, MsgInternal)
		return
	}

	status := StatusOf(appErr.Kind)
	if status >= http.StatusInternalServerError {
		_ = c.Error(err)
	}
	if appErr.Kind == app.KindInternal {
		Error(c, status, MsgInternal)
		return
	}
	Error(c, status, appErr.Message)
}

func StatusOf(kind app.ErrorKind) int {
	switch kind {
	case app.KindValidation:
		return http.StatusBadRequest
	case app.KindAuthRequired, app.KindInvalidToken, app.KindTokenExpired, app.KindInvalidCredentials:
		return http.StatusUnauthorized
	case app.KindForbidden:
		return http.StatusForbidden
	case app.KindNotFound:
		return http.StatusNotFound
	case app.KindConflict:
		return http.StatusConflict
	case app.KindConfiguration, app.KindInternal:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
