package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/AbrarBb/findie/internal/dto"
	"github.com/AbrarBb/findie/internal/middleware"
)

const (
	MsgInvalidBody      = "Invalid request body"
	MsgMissingFields    = "Missing required fields"
	MsgImageURLRequired = "Image URL is required"
	MsgInvalidUserID    = "Invalid user ID"
)

func respondError(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, dto.NewErrorResponse(message))
}

// respondInternal logs the full error chain and returns the underlying error's message to
// the caller with a 500.
func respondInternal(c *gin.Context, function string, err error) {
	_ = c.Error(err)
	middleware.GetLogger(c).Error("Error in "+function, zap.Error(err))
	respondError(c, http.StatusInternalServerError, rootCause(err).Error())
}

// rootCause returns the innermost error of a %w chain.
func rootCause(err error) error {
	for {
		inner := errors.Unwrap(err)
		if inner == nil {
			return err
		}
		err = inner
	}
}

// bindJSON decodes the body into req. An empty body leaves req zero-valued so the caller's
// required-field checks decide the response.
func bindJSON(c *gin.Context, req any) error {
	if err := c.ShouldBindJSON(req); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}
