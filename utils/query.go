package utils

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

const (
	DefaultPage  = 1
	DefaultLimit = 20
	MaxLimit     = 100
	// MaxPage keeps (page-1)*limit far from int overflow
	MaxPage = 100000
)

// Pagination is a page/limit pair that is always in range
type Pagination struct {
	Page  int
	Limit int
}

// Offset is the number of rows to skip
func (p Pagination) Offset() int {
	return (p.Page - 1) * p.Limit
}

// ParsePagination reads page and limit, falling back to defaults on anything unusable
func ParsePagination(page, limit string) Pagination {
	p := Pagination{Page: DefaultPage, Limit: DefaultLimit}
	if n, ok := ParsePositiveInt(page); ok {
		p.Page = n
	}
	if n, ok := ParsePositiveInt(limit); ok {
		p.Limit = n
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
	if p.Page > MaxPage {
		p.Page = MaxPage
	}
	return p
}

// ParsePositiveInt parses s as an integer greater than zero
func ParsePositiveInt(s string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

// OptionalInt is ParsePositiveInt returning nil instead of false
func OptionalInt(s string) *int {
	n, ok := ParsePositiveInt(s)
	if !ok {
		return nil
	}
	return &n
}

// OptionalDecimal parses a non-negative amount; malformed input yields nil
func OptionalDecimal(s string) *decimal.Decimal {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil || d.IsNegative() {
		return nil
	}
	return &d
}

// ParseID parses a path id
func ParseID(s string) (uint, bool) {
	n, err := strconv.ParseUint(strings.TrimSpace(s), 10, 64)
	if err != nil || n == 0 {
		return 0, false
	}
	return uint(n), true
}
