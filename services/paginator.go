package services

// DefaultPageSize is the number of cards per catalog page on the site.
const DefaultPageSize = 6

// PageCount is the number of pages needed for n items; 0 when there are none.
func PageCount(n, pageSize int) int {
	if n <= 0 || pageSize <= 0 {
		return 0
	}
	return (n + pageSize - 1) / pageSize
}

// Paginate returns page pageNumber (1-based) of items. Pages outside the
// valid range come back empty.
func Paginate[T any](items []T, pageSize, pageNumber int) []T {
	if pageSize <= 0 || pageNumber <= 0 {
		return []T{}
	}
	start := (pageNumber - 1) * pageSize
	if start >= len(items) {
		return []T{}
	}
	end := start + pageSize
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

// Page is one rendered slice of the candidate list.
type Page[T any] struct {
	Items  []T
	Number int
	Count  int
	Total  int
}

// HasNext reports whether a following page exists.
func (p Page[T]) HasNext() bool { return p.Number < p.Count }

// HasPrev reports whether a preceding page exists.
func (p Page[T]) HasPrev() bool { return p.Number > 1 }
