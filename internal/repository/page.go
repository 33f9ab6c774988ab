package repository

import (
	"math"

	"github.com/jon4hz/quotevault/internal/domain"
)

// Page is one page of a paginated read.
type Page[T any] struct {
	Items    []T  `json:"items"`
	Page     int  `json:"page"`
	PageSize int  `json:"pageSize"`
	HasMore  bool `json:"hasMore"`
}

// HasMore is true whenever the page is full, so a final page holding exactly
// PageSize items still reports more.
func newPage[T any](items []T, page, pageSize int) Page[T] {
	if items == nil {
		items = []T{}
	}
	return Page[T]{
		Items:    items,
		Page:     page,
		PageSize: pageSize,
		HasMore:  len(items) == pageSize,
	}
}

// normalize clamps page to zero and pageSize to MaxPageSize, and falls back to the default page size.
func normalize(page, pageSize int) (int, int) {
	if page < 0 {
		page = 0
	}
	switch {
	case pageSize <= 0:
		pageSize = domain.DefaultPageSize
	case pageSize > domain.MaxPageSize:
		pageSize = domain.MaxPageSize
	}
	return page, pageSize
}

// offset returns page*pageSize. It reports false when the product does not fit in an int,
// in which case the page lies past any stored row.
func offset(page, pageSize int) (int, bool) {
	if page > math.MaxInt/pageSize {
		return 0, false
	}
	return page * pageSize, true
}
