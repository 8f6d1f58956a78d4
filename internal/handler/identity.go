package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/AbrarBb/findie/internal/config"
	"github.com/AbrarBb/findie/internal/dto"
	"github.com/AbrarBb/findie/internal/service"
	"github.com/AbrarBb/findie/pkg/validator"
)

type IdentityVerifier interface {
	Verify(ctx context.Context, in service.VerifyInput) (*service.VerifyResult, error)
}

type IdentityHandler struct {
	verifier IdentityVerifier
}

func NewIdentityHandler(verifier IdentityVerifier) *IdentityHandler {
	return &IdentityHandler{verifier: verifier}
}

func (h *IdentityHandler) VerifyIdentity(c *gin.Context) {
	var req dto.VerifyIdentityRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, http.StatusBadRequest, MsgInvalidBody)
		return
	}

	errs := validator.ValidateVerifyIdentityRequest(req.Name, req.DOB, req.ExtractedText, req.UserID)
	if errs.Missing() {
		respondError(c, http.StatusBadRequest, MsgMissingFields)
		return
	}
	if errs.HasErrors() {
		respondError(c, http.StatusBadRequest, MsgInvalidUserID)
		return
	}

	userID, err := uuid.Parse(req.UserID)
	if err != nil || userID == uuid.Nil {
		respondError(c, http.StatusBadRequest, MsgInvalidUserID)
		return
	}

	result, err := h.verifier.Verify(c.Request.Context(), service.VerifyInput{
		Name:          req.Name,
		DOB:           req.DOB,
		ExtractedText: req.ExtractedText,
		UserID:        userID,
	})
	if err != nil {
		respondInternal(c, config.FunctionVerifyIdentity, err)
		return
	}

	c.JSON(http.StatusOK, dto.VerifyIdentityResponse{
		Success:    true,
		IsVerified: result.IsVerified,
		Message:    result.Message(),
	})
}
