package transaction

import "sort"

// Page is one slice of a filtered result set. TotalCount is the size of
// the filtered set before slicing, so callers can render "showing X of Y".
type Page struct {
	Items       []*Transaction `json:"items"`
	CurrentPage int            `json:"currentPage"`
	TotalPages  int            `json:"totalPages"`
	TotalCount  int            `json:"totalCount"`
}

const (
	// DefaultPageSize is the render window the list endpoint falls back to.
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// SortByDateDesc returns a copy ordered most recent first. The sort is
// stable with ties broken by ID so identical queries paginate reproducibly.
func SortByDateDesc(transactions []*Transaction) []*Transaction {
	sorted := make([]*Transaction, len(transactions))
	copy(sorted, transactions)
	sort.SliceStable(sorted, func(i, j int) bool {
		if !sorted[i].Date.Equal(sorted[j].Date) {
			return sorted[i].Date.After(sorted[j].Date)
		}
		return sorted[i].ID < sorted[j].ID
	})
	return sorted
}

// Paginate sorts the filtered set by date descending and slices out the
// requested 1-indexed page. A page beyond the last returns empty items
// with the page metadata intact, not an error.
func Paginate(filtered []*Transaction, page, pageSize int) Page {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}

	totalCount := len(filtered)
	totalPages := (totalCount + pageSize - 1) / pageSize

	sorted := SortByDateDesc(filtered)

	start := (page - 1) * pageSize
	if start >= totalCount {
		return Page{
			Items:       []*Transaction{},
			CurrentPage: page,
			TotalPages:  totalPages,
			TotalCount:  totalCount,
		}
	}
	end := start + pageSize
	if end > totalCount {
		end = totalCount
	}

	return Page{
		Items:       sorted[start:end],
		CurrentPage: page,
		TotalPages:  totalPages,
		TotalCount:  totalCount,
	}
}

// PageFor computes page metadata for a set already sliced by the store.
func PageFor(items []*Transaction, totalCount, page, pageSize int) Page {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if items == nil {
		items = []*Transaction{}
	}
	return Page{
		Items:       items,
		CurrentPage: page,
		TotalPages:  (totalCount + pageSize - 1) / pageSize,
		TotalCount:  totalCount,
	}
}
