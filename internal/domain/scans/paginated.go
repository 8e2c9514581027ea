package scans

import "math"

// PaginatedResult represents a paginated response with data and metadata
type PaginatedResult struct {
	Data       []*Scan `json:"data"`
	Page       int     `json:"page"`
	PageSize   int     `json:"pageSize"`
	Total      int64   `json:"totalItems"`
	TotalPages int     `json:"totalPages"`
}

// NewPaginatedResult fills in TotalPages from total and pageSize.
func NewPaginatedResult(data []*Scan, page, pageSize int, total int64) PaginatedResult {
	if data == nil {
		data = []*Scan{}
	}
	pages := 0
	if pageSize > 0 {
		pages = int((total + int64(pageSize) - 1) / int64(pageSize))
	}
	return PaginatedResult{
		Data:       data,
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: pages,
	}
}

// MaxOffset bounds row offsets so (page-1)*pageSize cannot overflow.
const MaxOffset = math.MaxInt32

// MaxPage is the largest page whose offset stays within MaxOffset.
func MaxPage(pageSize int) int {
	if pageSize <= 0 {
		return 1
	}
	return MaxOffset/pageSize + 1
}

// Offset returns the zero-based row offset of page, capped at MaxOffset.
func Offset(page, pageSize int) int {
	if page <= 1 || pageSize <= 0 {
		return 0
	}
	if page > MaxPage(pageSize) {
		return MaxOffset
	}
	return (page - 1) * pageSize
}
