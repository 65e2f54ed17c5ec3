package services

import (
	"unicode/utf8"

	"github.com/yungbote/resilience-backend/internal/apperr"
)

const maxFreeTextLen = 255

// checkFreeText validates sanitized free text (comments, notes,
// custom labels) against the column limit. Nil is always fine.
func checkFreeText(field string, v *string) error {
	if v == nil {
		return nil
	}
	if utf8.RuneCountInString(*v) > maxFreeTextLen {
		return apperr.Validation(field, "%s must be at most %d characters", field, maxFreeTextLen)
	}
	return nil
}
