package utils

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"learnhub/backend/apperr"
)

type sampleForm struct {
	Title string `json:"title" validate:"required,max=10"`
	URL   string `json:"youtube_url" validate:"required,youtube"`
	Level string `json:"level" validate:"oneof=beginner intermediate advanced"`
}

func TestValidateStruct(t *testing.T) {
	require.NoError(t, ValidateStruct(sampleForm{Title: "Go", URL: "https://youtu.be/abc", Level: "beginner"}))

	err := ValidateStruct(sampleForm{Title: "", URL: "https://example.com/x", Level: "expert"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperr.ErrValidation))

	var appErr *apperr.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "title is required", appErr.Fields["title"])
	assert.Equal(t, "youtube_url is not a recognised YouTube URL", appErr.Fields["youtube_url"])
	assert.Contains(t, appErr.Fields["level"], "one of")
}
