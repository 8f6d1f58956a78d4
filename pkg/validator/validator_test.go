package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateExtractTextRequest(t *testing.T) {
	assert.False(t, ValidateExtractTextRequest("https://cdn.example.com/a.png").HasErrors())

	errs := ValidateExtractTextRequest("")
	assert.True(t, errs.HasErrors())
	assert.True(t, errs.Has("imageUrl"))
	assert.True(t, errs.Missing())
}

func TestValidateVerifyIdentityRequest(t *testing.T) {
	const userID = "3f1c2b1e-8d4a-4c5e-9a61-0b2f9d7e6c10"

	t.Run("complete", func(t *testing.T) {
		errs := ValidateVerifyIdentityRequest("Jane Doe", "1990-01-01", "JANE DOE 1990/01/01", userID)
		assert.False(t, errs.HasErrors())
	})

	t.Run("missing_fields", func(t *testing.T) {
		errs := ValidateVerifyIdentityRequest("", "1990-01-01", "", userID)
		assert.True(t, errs.Missing())
		assert.True(t, errs.Has("name"))
		assert.True(t, errs.Has("extractedText"))
		assert.False(t, errs.Has("dob"))
	})

	t.Run("bad_user_id", func(t *testing.T) {
		errs := ValidateVerifyIdentityRequest("Jane", "1990-01-01", "text", "user-42")
		assert.True(t, errs.HasErrors())
		assert.False(t, errs.Missing())
		assert.Equal(t, "userId: must be a valid UUID", errs.Error())
	})

	t.Run("whitespace_is_a_value", func(t *testing.T) {
		errs := ValidateVerifyIdentityRequest(" ", " ", " ", userID)
		assert.False(t, errs.HasErrors())
	})
}
