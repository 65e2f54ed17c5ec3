package services

import (
	"testing"

	"github.com/yungbote/resilience-backend/internal/apperr"
)

func TestNormalizePage(t *testing.T) {
	cases := []struct {
		name       string
		limit      int
		offset     int
		wantLimit  int
		wantOffset int
		wantErr    bool
	}{
		{name: "defaults", limit: 0, offset: 0, wantLimit: DefaultPageSize, wantOffset: 0},
		{name: "explicit", limit: 10, offset: 20, wantLimit: 10, wantOffset: 20},
		{name: "capped", limit: 5000, offset: 0, wantLimit: MaxPageSize, wantOffset: 0},
		{name: "negative limit", limit: -1, offset: 0, wantErr: true},
		{name: "negative offset", limit: 10, offset: -5, wantErr: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			limit, offset, err := NormalizePage(tc.limit, tc.offset)
			if tc.wantErr {
				if apperr.KindOf(err) != apperr.KindValidation {
					t.Fatalf("expected VALIDATION_ERROR, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if limit != tc.wantLimit || offset != tc.wantOffset {
				t.Fatalf("got (%d, %d), want (%d, %d)", limit, offset, tc.wantLimit, tc.wantOffset)
			}
		})
	}
}
