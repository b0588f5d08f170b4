package valueobjects

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"writecoach-backend/domain/config"
	pkgerrors "writecoach-backend/pkg/errors"
)

func TestNewTextContent(t *testing.T) {
	tests := []struct {
		name    string
		title   string
		body    string
		wantErr bool
		errMsg  string
	}{
		{
			name:  "valid content",
			title: "My weekend",
			body:  "I went to the beach and swam.",
		},
		{
			name:  "untitled content",
			title: "",
			body:  "Short entry.",
		},
		{
			name:  "empty body allowed by default",
			title: "Draft",
			body:  "   ",
		},
		{
			name:    "title too long",
			title:   strings.Repeat("a", 201),
			body:    "Body",
			wantErr: true,
			errMsg:  "title exceeds maximum length",
		},
		{
			name:  "body at max length",
			title: "Title",
			body:  strings.Repeat("a", 50000),
		},
		{
			name:    "body too long",
			title:   "Title",
			body:    strings.Repeat("a", 50001),
			wantErr: true,
			errMsg:  "content exceeds maximum length",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			content, err := NewTextContent(tt.title, tt.body)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
				assert.True(t, pkgerrors.IsValidation(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, strings.TrimSpace(tt.title), content.Title())
			assert.Equal(t, strings.TrimSpace(tt.body), content.Body())
		})
	}
}

func TestNewTextContentWithConfig(t *testing.T) {
	strict := config.DefaultDomainConfig()
	strict.AllowEmptyContent = false

	_, err := NewTextContentWithConfig("Title", " ", strict)
	require.Error(t, err)
	assert.True(t, pkgerrors.IsValidation(err))

	_, err = NewTextContentWithConfig(strings.Repeat("t", 151), "body", config.ProductionDomainConfig())
	assert.True(t, pkgerrors.IsValidation(err))

	content, err := NewTextContentWithConfig("", " ", config.ProductionDomainConfig())
	require.NoError(t, err)
	assert.True(t, content.IsEmpty())
}

func TestTextContentWordCount(t *testing.T) {
	tests := []struct {
		body string
		want int
	}{
		{"", 0},
		{"one", 1},
		{"  two   words ", 2},
		{"line\nbreaks\tand tabs", 4},
		{"I wrote 42 words", 4},
	}

	for _, tt := range tests {
		content, err := NewTextContent("", tt.body)
		require.NoError(t, err)
		assert.Equal(t, tt.want, content.WordCount(), tt.body)
	}
}

func TestTextContentSummary(t *testing.T) {
	content, err := NewTextContent("", "The quick brown fox")
	require.NoError(t, err)

	assert.Equal(t, "The quick brown fox", content.Summary(50))
	assert.Equal(t, "The qui...", content.Summary(10))
	assert.Equal(t, "", content.Summary(0))
	assert.False(t, content.IsEmpty())
}
