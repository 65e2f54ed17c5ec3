package normalization

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var strictPolicy = bluemonday.StrictPolicy()

// StripMarkup removes all HTML markup from free-text input (comments,
// notes, custom labels) and trims surrounding whitespace. Stored text
// is plain text; escaping for display is the renderer's job, so
// entities introduced by the sanitizer are unescaped again.
func StripMarkup(input string) string {
	cleaned := strictPolicy.Sanitize(input)
	return strings.TrimSpace(html.UnescapeString(cleaned))
}

// StripMarkupPtr sanitizes optional free-text fields. A nil input or
// one that is empty after sanitization stays nil.
func StripMarkupPtr(input *string) *string {
	if input == nil {
		return nil
	}
	cleaned := StripMarkup(*input)
	if cleaned == "" {
		return nil
	}
	return &cleaned
}
