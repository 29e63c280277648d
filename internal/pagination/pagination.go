// Package pagination implements the page/limit query contract shared by
// every list endpoint.
package pagination

import "strconv"

const (
	DefaultPage  = 1
	DefaultLimit = 10
)

type Params struct {
	Page  int
	Limit int
}

// Parse reads page/limit query strings, falling back to defaults for
// missing, malformed or non-positive values.
func Parse(page, limit string) Params {
	p := Params{Page: DefaultPage, Limit: DefaultLimit}
	if n, err := strconv.Atoi(page); err == nil && n >= 1 {
		p.Page = n
	}
	if n, err := strconv.Atoi(limit); err == nil && n >= 1 {
		p.Limit = n
	}
	return p
}

func (p Params) Offset() int {
	return (p.Page - 1) * p.Limit
}

// Block is the pagination object returned alongside every list payload.
type Block struct {
	TotalItems   int `json:"totalItems"`
	TotalPages   int `json:"totalPages"`
	CurrentPage  int `json:"currentPage"`
	ItemsPerPage int `json:"itemsPerPage"`
}

func NewBlock(totalItems int, p Params) Block {
	totalPages := totalItems / p.Limit
	if totalItems%p.Limit != 0 {
		totalPages++
	}
	return Block{
		TotalItems:   totalItems,
		TotalPages:   totalPages,
		CurrentPage:  p.Page,
		ItemsPerPage: p.Limit,
	}
}
