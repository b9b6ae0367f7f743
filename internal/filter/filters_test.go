package filter

import (
	"testing"

	"conduit-tui/internal/entity"
)

func TestForPage(t *testing.T) {
	tests := []struct {
		page       int64
		pageSize   int64
		wantLimit  int64
		wantOffset int64
	}{
		{1, 10, 10, 0},
		{2, 10, 10, 10},
		{3, 10, 10, 20},
		{0, 10, 10, 0},
		{-5, 10, 10, 0},
		{2, 25, 25, 25},
	}

	for _, tt := range tests {
		f := ForPage(entity.PageNumber(tt.page), tt.pageSize)
		if f.Limit != tt.wantLimit || f.Offset != tt.wantOffset {
			t.Errorf("ForPage(%d, %d) = %+v, want limit %d offset %d",
				tt.page, tt.pageSize, f, tt.wantLimit, tt.wantOffset)
		}
	}
}

func TestQuery(t *testing.T) {
	got := NewFilter(10, 20).Query().Encode()
	if got != "limit=10&offset=20" {
		t.Errorf("Query() = %q", got)
	}
}

func TestValidate(t *testing.T) {
	if v := Validate(NewFilter(10, 0)); !v.IsValid() {
		t.Errorf("valid filter rejected: %v", v.Problems())
	}
	if v := Validate(NewFilter(0, 0)); v.IsValid() {
		t.Error("zero limit passed validation")
	}
	if v := Validate(NewFilter(101, 0)); v.IsValid() {
		t.Error("oversized limit passed validation")
	}
	if v := Validate(NewFilter(10, -1)); v.IsValid() {
		t.Error("negative offset passed validation")
	}
}
