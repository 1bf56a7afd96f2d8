package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/example/searchops/internal/errs"
)

// ErrorResponse is the body of every non-2xx reply.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// statusFor maps an error kind to its HTTP status.
func statusFor(err error) (int, string) {
	switch errs.Kind(err) {
	case errs.ErrNotFound:
		return http.StatusNotFound, "NOT_FOUND"
	case errs.ErrValidation:
		return http.StatusUnprocessableEntity, "VALIDATION"
	case errs.ErrConflict:
		return http.StatusConflict, "CONFLICT"
	case errs.ErrTransient:
		return http.StatusServiceUnavailable, "TRANSIENT"
	}
	return http.StatusInternalServerError, "INTERNAL"
}

func (h *Handlers) writeError(c *gin.Context, err error) {
	status, code := statusFor(err)
	if status >= http.StatusInternalServerError {
		h.logger.Error("request failed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Error(err))
	}
	c.JSON(status, ErrorResponse{Error: err.Error(), Code: code})
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error(), Code: "BAD_REQUEST"})
}
