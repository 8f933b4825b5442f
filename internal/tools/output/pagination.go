package output

// Page is one page of a paginated collection.
type Page[T any] struct {
	Items      []T  `json:"items"`
	PageNum    int  `json:"pageNum"`
	PageSize   int  `json:"pageSize"`
	TotalPages int  `json:"totalPages"`
	TotalCount int  `json:"totalCount"`
	HasMore    bool `json:"hasMore"`
}

// Paginate slices one page out of items.
//
// The page number is at least 1 and the page size is clamped to [1, maxPerPage];
// larger requests are capped, never rejected. A page beyond the last one is
// empty with HasMore false. The returned slice never aliases items.
func Paginate[T any](items []T, page, limit, maxPerPage int) Page[T] {
	pageNum := max(1, page)
	pageSize := ClampPageSize(limit, maxPerPage)

	total := len(items)
	totalPages := (total + pageSize - 1) / pageSize

	pageItems := []T{}
	// Compare page indexes rather than offsets so huge page numbers cannot overflow.
	if pageNum <= totalPages {
		start := (pageNum - 1) * pageSize
		end := min(start+pageSize, total)
		pageItems = make([]T, 0, end-start)
		pageItems = append(pageItems, items[start:end]...)
	}

	return Page[T]{
		Items:      pageItems,
		PageNum:    pageNum,
		PageSize:   pageSize,
		TotalPages: totalPages,
		TotalCount: total,
		HasMore:    pageNum < totalPages,
	}
}

// ClampPageSize bounds a requested page size to [1, maxPerPage].
// A non-positive maxPerPage falls back to DefaultMaxDevicesPerPage.
func ClampPageSize(limit, maxPerPage int) int {
	if maxPerPage <= 0 {
		maxPerPage = DefaultMaxDevicesPerPage
	}
	return min(max(limit, 1), maxPerPage)
}
