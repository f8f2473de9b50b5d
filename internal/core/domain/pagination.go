package domain

const (
	DefaultPage    uint32 = 1
	DefaultPerPage uint32 = 100
)

// Pagination is a 1-based page cursor.
type Pagination struct {
	Page    uint32
	PerPage uint32
}

// DefaultPagination returns the cursor used when the client sends none.
func DefaultPagination() Pagination {
	return Pagination{Page: DefaultPage, PerPage: DefaultPerPage}
}

// Normalized lifts zero fields to their defaults.
func (p Pagination) Normalized() Pagination {
	if p.Page < 1 {
		p.Page = DefaultPage
	}
	if p.PerPage < 1 {
		p.PerPage = DefaultPerPage
	}
	return p
}

// TotalPages derives how many pages a collection of count items spans.
// A collection is never zero pages; an empty one still has page 1.
func (p Pagination) TotalPages(count uint32) uint32 {
	p = p.Normalized()
	pages := (count + p.PerPage - 1) / p.PerPage
	if pages < 1 {
		pages = 1
	}
	return pages
}

// PageInfo is the navigation block attached to every paged response.
type PageInfo struct {
	Current uint32 `json:"current"`
	First   uint32 `json:"first"`
	Prev    uint32 `json:"prev"`
	Next    uint32 `json:"next"`
	Last    uint32 `json:"last"`
}

// NewPageInfo builds navigation for the requested page of totalPages.
// Current echoes the request even when it lies outside [1, totalPages].
func NewPageInfo(current, totalPages uint32) PageInfo {
	if totalPages < 1 {
		totalPages = 1
	}
	prev := current - 1
	if current <= 1 {
		prev = 1
	}
	if prev > totalPages {
		prev = totalPages
	}
	next := current + 1
	if next > totalPages {
		next = totalPages
	}
	return PageInfo{
		Current: current,
		First:   1,
		Prev:    prev,
		Next:    next,
		Last:    totalPages,
	}
}
