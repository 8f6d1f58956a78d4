package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AbrarBb/findie/internal/config"
	"github.com/AbrarBb/findie/internal/dto"
	"github.com/AbrarBb/findie/internal/service"
)

type PostSweeper interface {
	Sweep(ctx context.Context) (*service.SweepResult, error)
}

type ExpiryHandler struct {
	sweeper PostSweeper
}

func NewExpiryHandler(sweeper PostSweeper) *ExpiryHandler {
	return &ExpiryHandler{sweeper: sweeper}
}

// ExpirePosts deletes every post past its expiry. It takes no body.
func (h *ExpiryHandler) ExpirePosts(c *gin.Context) {
	result, err := h.sweeper.Sweep(c.Request.Context())
	if err != nil {
		respondInternal(c, config.FunctionAutoExpirePosts, err)
		return
	}

	c.JSON(http.StatusOK, dto.ExpirePostsResponse{
		Success:      true,
		DeletedCount: result.Count(),
		Message:      result.Message(),
	})
}
