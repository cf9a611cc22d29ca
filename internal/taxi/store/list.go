package store

import "strings"

// ListOptions narrows a collection read. The zero value lists everything.
type ListOptions struct {
	// Search is a case-insensitive substring matched against the
	// collection's search field.
	Search string

	// Page is 1-based. Values below 1 mean the first page.
	Page int

	// PageSize 0 disables pagination.
	PageSize int
}

// Normalize trims the search term and clamps Page to at least 1.
func (o ListOptions) Normalize() ListOptions {
	o.Search = strings.TrimSpace(o.Search)
	o.Page = max(o.Page, 1)
	o.PageSize = max(o.PageSize, 0)
	return o
}

// Offset is the number of rows to skip for the requested page.
func (o ListOptions) Offset() int {
	if o.PageSize == 0 {
		return 0
	}
	return (max(o.Page, 1) - 1) * o.PageSize
}

// Page is one slice of a filtered, ordered collection.
type Page[T any] struct {
	Items    []T `json:"items"`
	Total    int `json:"total"`
	Page     int `json:"page"`
	PageSize int `json:"page_size"`
}

// NewPage builds a page for opts, which must already be normalized.
func NewPage[T any](items []T, total int, opts ListOptions) Page[T] {
	if items == nil {
		items = []T{}
	}
	return Page[T]{Items: items, Total: total, Page: opts.Page, PageSize: opts.PageSize}
}

// NumPages is at least 1, even for an empty collection.
func (p Page[T]) NumPages() int {
	if p.PageSize == 0 || p.Total == 0 {
		return 1
	}
	return (p.Total + p.PageSize - 1) / p.PageSize
}

func (p Page[T]) HasNext() bool { return p.Page < p.NumPages() }
func (p Page[T]) HasPrev() bool { return p.Page > 1 }

func (p Page[T]) NextPage() int { return p.Page + 1 }
func (p Page[T]) PrevPage() int { return p.Page - 1 }

// EscapeLike escapes LIKE metacharacters with a backslash, so a pattern
// built from the result must use ESCAPE '\'.
func EscapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
