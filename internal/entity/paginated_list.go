package entity

// PageNumber is a 1-based page index.
type PageNumber int64

// PaginatedList is one page's worth of items plus the total item count
// across all pages. Values never exceeds PageSize; replacing the active
// page replaces Values and Total together.
type PaginatedList[T any] struct {
	Values   []T
	Total    int64
	PageSize int64
}

// TotalPages is ceil(Total / PageSize). An empty collection has zero
// pages, not one.
func (l PaginatedList[T]) TotalPages() int64 {
	if l.PageSize <= 0 || l.Total <= 0 {
		return 0
	}
	return (l.Total + l.PageSize - 1) / l.PageSize
}
