package domain

import (
	"strconv"
	"strings"
)

// Pagination defaults applied when limit/offset are absent or invalid.
const (
	DefaultLimit  = 10
	MaxLimit      = 100
	DefaultOffset = 0
)

// Page is a resolved limit/offset pair.
type Page struct {
	Limit  int
	Offset int
}

// NewPage resolves raw query values. A limit that is absent, not an
// integer, or not positive becomes DefaultLimit; limits above MaxLimit are
// clamped. An offset that is absent, not an integer, or negative becomes
// DefaultOffset.
func NewPage(limitRaw, offsetRaw string) Page {
	p := Page{Limit: DefaultLimit, Offset: DefaultOffset}

	if limit, err := strconv.Atoi(strings.TrimSpace(limitRaw)); err == nil && limit > 0 {
		p.Limit = min(limit, MaxLimit)
	}
	if offset, err := strconv.Atoi(strings.TrimSpace(offsetRaw)); err == nil && offset >= 0 {
		p.Offset = offset
	}
	return p
}

// NextOffset is the offset of the page that follows p.
func (p Page) NextOffset() int {
	return p.Limit + p.Offset
}

// PageResult is one page of books plus the total number of matches.
type PageResult struct {
	Books []Book
	Total int64
	Page  Page
}
