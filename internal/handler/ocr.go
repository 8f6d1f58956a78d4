package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AbrarBb/findie/internal/config"
	"github.com/AbrarBb/findie/internal/dto"
	"github.com/AbrarBb/findie/internal/service"
	"github.com/AbrarBb/findie/pkg/validator"
)

type TextExtractor interface {
	Extract(ctx context.Context, imageURL string) (*service.OCRResult, error)
}

type OCRHandler struct {
	extractor TextExtractor
}

func NewOCRHandler(extractor TextExtractor) *OCRHandler {
	return &OCRHandler{extractor: extractor}
}

func (h *OCRHandler) ExtractText(c *gin.Context) {
	var req dto.ExtractTextRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, http.StatusBadRequest, MsgInvalidBody)
		return
	}

	if errs := validator.ValidateExtractTextRequest(req.ImageURL); errs.HasErrors() {
		respondError(c, http.StatusBadRequest, MsgImageURLRequired)
		return
	}

	result, err := h.extractor.Extract(c.Request.Context(), req.ImageURL)
	if err != nil {
		respondInternal(c, config.FunctionExtractOCRText, err)
		return
	}

	c.JSON(http.StatusOK, dto.ExtractTextResponse{
		Success:          true,
		ExtractedText:    result.Text,
		Confidence:       result.Confidence,
		DetectedLanguage: result.Language,
	})
}
