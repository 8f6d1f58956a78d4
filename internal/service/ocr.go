package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/AbrarBb/findie/internal/config"
	"github.com/AbrarBb/findie/internal/metrics"
	"github.com/AbrarBb/findie/pkg/logger"
)

var ErrImageURLRequired = errors.New("image URL is required")

const (
	MockConfidence = 0.95
	MockLanguage   = "en"
)

var mockOCRResults = []string{
	"iPhone 13 Pro Max",
	"Apple Inc.",
	"Model: A2484",
	"Serial: F2LLMQJ0Q6L3",
	"Blue Titanium",
	"128GB Storage",
	"Property of John Doe",
	"Contact: +1-555-0123",
}

// MockText is the text every mocked extraction returns.
var MockText = strings.Join(mockOCRResults, " ")

type OCRResult struct {
	Text       string
	Confidence float64
	Language   string
}

// Extractor turns an image reference into text.
type Extractor interface {
	Extract(ctx context.Context, imageURL string) (*OCRResult, error)
}

// MockExtractor stands in for a vision API. It never fetches the image; it waits Delay and
// returns MockText.
type MockExtractor struct {
	Delay time.Duration
}

func NewMockExtractor(delay time.Duration) *MockExtractor {
	return &MockExtractor{Delay: delay}
}

func (m *MockExtractor) Extract(ctx context.Context, imageURL string) (*OCRResult, error) {
	if m.Delay > 0 {
		timer := time.NewTimer(m.Delay)
		defer timer.Stop()

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	return &OCRResult{
		Text:       MockText,
		Confidence: MockConfidence,
		Language:   MockLanguage,
	}, nil
}

type OCRService struct {
	extractor Extractor
}

func NewOCRService(extractor Extractor) *OCRService {
	return &OCRService{extractor: extractor}
}

func (s *OCRService) Extract(ctx context.Context, imageURL string) (*OCRResult, error) {
	if imageURL == "" {
		return nil, ErrImageURLRequired
	}

	start := time.Now()
	result, err := s.extractor.Extract(ctx, imageURL)
	metrics.RecordExtraction(err)
	if err != nil {
		return nil, err
	}

	logger.WithFunction(config.FunctionExtractOCRText).Debug("text_extracted",
		zap.Duration("duration", time.Since(start)),
		zap.Int("length", len(result.Text)),
		zap.Float64("confidence", result.Confidence),
	)

	return result, nil
}
