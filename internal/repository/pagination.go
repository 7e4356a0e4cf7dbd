package repository

import "math"

const (
	DefaultPage     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

type PageRequest struct {
	Page     int
	PageSize int
}

type PageResult[T any] struct {
	Items      []T
	Page       int
	PageSize   int
	Total      int64
	TotalPages int
}

// PageSlice cuts one page out of an already ordered result set.
func PageSlice[T any](items []T, req PageRequest) PageResult[T] {
	normalized := normalizePageRequest(req)
	total := int64(len(items))
	result := PageResult[T]{
		Items:      []T{},
		Page:       normalized.Page,
		PageSize:   normalized.PageSize,
		Total:      total,
		TotalPages: calcTotalPages(total, normalized.PageSize),
	}
	offset := (normalized.Page - 1) * normalized.PageSize
	if offset >= len(items) {
		return result
	}
	end := offset + normalized.PageSize
	if end > len(items) {
		end = len(items)
	}
	result.Items = items[offset:end]
	return result
}

func normalizePageRequest(in PageRequest) PageRequest {
	page := in.Page
	if page < 1 {
		page = DefaultPage
	}
	pageSize := in.PageSize
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	return PageRequest{Page: page, PageSize: pageSize}
}

func calcTotalPages(total int64, pageSize int) int {
	if total <= 0 || pageSize <= 0 {
		return 0
	}
	return int(math.Ceil(float64(total) / float64(pageSize)))
}
