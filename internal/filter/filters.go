// Package filter translates 1-based page numbers into the limit/offset
// pairs the article-list endpoints take.
package filter

import (
	"net/url"
	"strconv"

	"conduit-tui/internal/entity"
	"conduit-tui/internal/validator"
)

type Filter struct {
	Limit  int64
	Offset int64
}

func NewFilter(limit, offset int64) Filter {
	return Filter{
		Limit:  limit,
		Offset: offset,
	}
}

// ForPage builds the filter selecting the given page.
func ForPage(page entity.PageNumber, pageSize int64) Filter {
	if page < 1 {
		page = 1
	}
	return Filter{
		Limit:  pageSize,
		Offset: (int64(page) - 1) * pageSize,
	}
}

func Validate(f Filter) *validator.Validator {
	v := validator.New()
	v.Check(f.Limit > 0, "limit", "must be greater than 0")
	v.Check(f.Limit <= 100, "limit", "must be a maximum of 100")
	v.Check(f.Offset >= 0, "offset", "must be greater than or equal to 0")
	v.Check(f.Offset <= 10_000_000, "offset", "must be a maximum of 10_000_000")

	return v
}

// Query renders the filter as URL query parameters.
func (f Filter) Query() url.Values {
	values := url.Values{}
	values.Set("limit", strconv.FormatInt(f.Limit, 10))
	values.Set("offset", strconv.FormatInt(f.Offset, 10))
	return values
}
