package domain

// Pagination describes one page window over a filtered list.
type Pagination struct {
	Page       int
	PageSize   int
	TotalPages int
	TotalCount int
}

// NewPagination computes the window for the given page over totalCount items.
// Page is clamped into [1, TotalPages]; an empty list still reports one page
// so the view always has a valid window.
func NewPagination(page, pageSize, totalCount int) Pagination {
	if pageSize < 1 {
		pageSize = 1
	}
	totalPages := (totalCount + pageSize - 1) / pageSize
	if totalPages < 1 {
		totalPages = 1
	}
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}
	return Pagination{
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
		TotalCount: totalCount,
	}
}

// Bounds returns the half-open [from, to) index range of the current page.
func (p Pagination) Bounds() (from, to int) {
	from = (p.Page - 1) * p.PageSize
	to = from + p.PageSize
	if to > p.TotalCount {
		to = p.TotalCount
	}
	if from > p.TotalCount {
		from = p.TotalCount
	}
	return from, to
}

// HasNext reports whether a later page exists.
func (p Pagination) HasNext() bool { return p.Page < p.TotalPages }

// HasPrev reports whether an earlier page exists.
func (p Pagination) HasPrev() bool { return p.Page > 1 }
