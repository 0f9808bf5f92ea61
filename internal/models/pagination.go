package models

// Pagination describes one page of a list. TotalPages is always
// ceil(Total/Limit); it is recomputed locally whenever an item is removed
// from a paginated list.
type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// RemoveOne returns the pagination after one item was removed from the
// list. Total never goes below zero.
func (p Pagination) RemoveOne() Pagination {
	if p.Total > 0 {
		p.Total--
	}
	p.TotalPages = TotalPages(p.Total, p.Limit)
	return p
}

// TotalPages computes ceil(total/limit), with 0 for an empty list or an
// unset limit.
func TotalPages(total, limit int) int {
	if total <= 0 || limit <= 0 {
		return 0
	}
	return (total + limit - 1) / limit
}
