// Package handlers adapts the application services to gin.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/turtacn/InfringeScope/pkg/errors"
	"github.com/turtacn/InfringeScope/pkg/types/common"
)

// internalErrorMessage replaces the message of every 5xx response.
const internalErrorMessage = "internal server error"

// ErrorResponse is the standard error response body.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// parsePagination reads ?skip= and ?limit=.  Bad values fall back to the
// defaults rather than failing the request.
func parsePagination(c *gin.Context) common.PageRequest {
	return common.ParsePageRequest(c.Query("skip"), c.Query("limit"))
}

func writeJSON(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, data)
}

func writeError(c *gin.Context, statusCode int, code errors.ErrorCode, message string) {
	c.AbortWithStatusJSON(statusCode, ErrorResponse{Code: string(code), Message: message})
}

// writeAppError maps err to a status through its code.  The error is kept
// on the gin context for the request logger; server errors reach the client
// only as "internal server error".
func writeAppError(c *gin.Context, err error) {
	_ = c.Error(err)

	code := errors.GetCode(err)
	status := errors.HTTPStatusForCode(code)
	if status >= http.StatusInternalServerError {
		writeError(c, status, errors.ErrCodeInternal, internalErrorMessage)
		return
	}

	var appErr *errors.AppError
	message := err.Error()
	if errors.As(err, &appErr) {
		message = appErr.Message
	}
	writeError(c, status, code, message)
}

//Personal.AI order the ending
