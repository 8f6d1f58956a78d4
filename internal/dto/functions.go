package dto

type ErrorResponse struct {
	Error string `json:"error"`
}

func NewErrorResponse(message string) ErrorResponse {
	return ErrorResponse{Error: message}
}

type ExpirePostsResponse struct {
	Success      bool   `json:"success"`
	DeletedCount int    `json:"deletedCount"`
	Message      string `json:"message"`
}

// ExpirePostsPreviewResponse is printed by a dry-run sweep.
type ExpirePostsPreviewResponse struct {
	Success      bool   `json:"success"`
	DryRun       bool   `json:"dryRun"`
	ExpiredCount int    `json:"expiredCount"`
	Message      string `json:"message"`
}

type ExtractTextRequest struct {
	ImageURL string `json:"imageUrl"`
}

type ExtractTextResponse struct {
	Success          bool    `json:"success"`
	ExtractedText    string  `json:"extractedText"`
	Confidence       float64 `json:"confidence"`
	DetectedLanguage string  `json:"detectedLanguage"`
}

type VerifyIdentityRequest struct {
	Name          string `json:"name"`
	DOB           string `json:"dob"`
	ExtractedText string `json:"extractedText"`
	UserID        string `json:"userId"`
}

type VerifyIdentityResponse struct {
	Success    bool   `json:"success"`
	IsVerified bool   `json:"isVerified"`
	Message    string `json:"message"`
}
