package services

import (
	"github.com/yungbote/resilience-backend/internal/apperr"
)

const (
	DefaultPageSize = 25
	MaxPageSize     = 100
)

// NormalizePage validates limit/offset and applies the defaults and
// the hard cap. Zero limit means "use the default".
func NormalizePage(limit, offset int) (int, int, error) {
	if limit < 0 {
		return 0, 0, apperr.Validation("limit", "limit must be non-negative")
	}
	if offset < 0 {
		return 0, 0, apperr.Validation("offset", "offset must be non-negative")
	}
	if limit == 0 {
		limit = DefaultPageSize
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}
	return limit, offset, nil
}
