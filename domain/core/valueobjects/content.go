package valueobjects

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"writecoach-backend/domain/config"
	pkgerrors "writecoach-backend/pkg/errors"
)

// TextContent is a submitted writing entry
type TextContent struct {
	title string
	body  string
}

// NewTextContent creates content with validation using default configuration
func NewTextContent(title, body string) (TextContent, error) {
	return NewTextContentWithConfig(title, body, config.DefaultDomainConfig())
}

// NewTextContentWithConfig creates content with validation and configuration
func NewTextContentWithConfig(title, body string, cfg *config.DomainConfig) (TextContent, error) {
	if cfg == nil {
		cfg = config.DefaultDomainConfig()
	}

	title = strings.TrimSpace(title)
	body = strings.TrimSpace(body)

	if body == "" && !cfg.AllowEmptyContent {
		return TextContent{}, pkgerrors.NewValidationError("content cannot be empty")
	}

	if utf8.RuneCountInString(title) > cfg.MaxTitleLength {
		return TextContent{}, pkgerrors.NewValidationError(
			fmt.Sprintf("title exceeds maximum length of %d characters", cfg.MaxTitleLength))
	}

	if utf8.RuneCountInString(body) > cfg.MaxContentLength {
		return TextContent{}, pkgerrors.NewValidationError(
			fmt.Sprintf("content exceeds maximum length of %d characters", cfg.MaxContentLength))
	}

	return TextContent{
		title: title,
		body:  body,
	}, nil
}

// Title returns the entry title
func (c TextContent) Title() string {
	return c.title
}

// Body returns the entry text
func (c TextContent) Body() string {
	return c.body
}

// IsEmpty checks if there is no text to analyse
func (c TextContent) IsEmpty() bool {
	return c.body == ""
}

// WordCount returns the number of whitespace-separated words in the body
func (c TextContent) WordCount() int {
	return len(strings.Fields(c.body))
}

// Summary returns a truncated preview of the body
func (c TextContent) Summary(maxLength int) string {
	if maxLength <= 0 {
		return ""
	}
	if utf8.RuneCountInString(c.body) <= maxLength {
		return c.body
	}
	if maxLength <= 3 {
		return string([]rune(c.body)[:maxLength])
	}

	runes := []rune(c.body)
	return string(runes[:maxLength-3]) + "..."
}
