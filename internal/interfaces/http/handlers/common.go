// Package handlers implements the HTTP API endpoints: compound matching,
// batch matching and health probes.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/openmetab/keggmatch/pkg/errors"
)

// ErrorResponse is the standard error response body.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Detail  string `json:"detail,omitempty"`
}

// respondError maps an application error onto an HTTP status and writes the
// standard error body. Internal details never leak: unknown errors become a
// generic 500.
func respondError(c *gin.Context, err error) {
	code := errors.GetCode(err)

	var status int
	switch code {
	case errors.ErrCodeBadRequest, errors.ErrCodeValidation,
		errors.ErrCodeMissingColumn, errors.ErrCodeThresholdInvalid, errors.ErrCodeEmptyQuery:
		status = http.StatusBadRequest
	case errors.ErrCodeNotFound, errors.ErrCodeKEGGNotFound:
		status = http.StatusNotFound
	case errors.ErrCodeTimeout:
		status = http.StatusGatewayTimeout
	case errors.ErrCodeTooManyRequests:
		status = http.StatusTooManyRequests
	case errors.ErrCodeKEGGUnavailable, errors.ErrCodeKEGGBadStatus:
		status = http.StatusBadGateway
	default:
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Code:    errors.ErrCodeInternal.String(),
			Message: "internal server error",
		})
		return
	}

	resp := ErrorResponse{
		Code:    code.String(),
		Message: err.Error(),
	}
	if appErr, ok := err.(*errors.AppError); ok {
		resp.Message = appErr.Message
		resp.Detail = appErr.Detail
	}
	c.JSON(status, resp)
}

// respondBadRequest writes a 400 for malformed request bodies.
func respondBadRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, ErrorResponse{
		Code:    errors.ErrCodeBadRequest.String(),
		Message: err.Error(),
	})
}
