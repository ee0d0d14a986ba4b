package domain

import (
	"math"
	"sync"
)

const (
	noSelection   = -1
	lastSelection = math.MaxInt
)

// ResultSet is one completed page of a search: the merged records in
// source priority order plus pagination and selection state.
//
// A ResultSet is created by the search orchestrator and never replaced
// in place by a later search. Hydration, selection changes and environment
// refreshes mutate it concurrently, so all record and selection access
// goes through its methods.
type ResultSet struct {
	// SearchID identifies the search that produced this set.
	SearchID string

	// Request is the request that produced this set.
	Request SearchRequest

	// TotalCount is the sum of every queried source's match count,
	// not just the records materialized on this page.
	TotalCount int

	mu          sync.RWMutex
	records     []Crate
	currentPage int
	selection   int
}

// NewResultSet creates a result set for req. The records are owned by the set afterwards.
func NewResultSet(searchID string, req SearchRequest, records []Crate, totalCount int) *ResultSet {
	if totalCount < 0 {
		totalCount = 0
	}
	if req.PageSize <= 0 {
		req.PageSize = DefaultPageSize
	}
	return &ResultSet{
		SearchID:    searchID,
		Request:     req,
		TotalCount:  totalCount,
		records:     records,
		currentPage: req.Page,
		selection:   noSelection,
	}
}

// PageSize returns the number of records per page.
func (r *ResultSet) PageSize() int {
	return r.Request.PageSize
}

// PageCount returns ceil(TotalCount / PageSize).
func (r *ResultSet) PageCount() int {
	size := r.PageSize()
	return (r.TotalCount + size - 1) / size
}

// CurrentPage returns the page this set holds, clamped to [1, max(PageCount, 1)].
func (r *ResultSet) CurrentPage() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return clampPage(r.currentPage, r.PageCount())
}

// HasNextPage returns true if records exist beyond the current page.
func (r *ResultSet) HasNextPage() bool {
	return r.CurrentPage()*r.PageSize() < r.TotalCount
}

// HasPrevPage returns true if the current page is not the first.
func (r *ResultSet) HasPrevPage() bool {
	return r.CurrentPage() > 1
}

// Len returns the number of records on this page.
func (r *ResultSet) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.records)
}

// Records returns a copy of the records in display order.
func (r *ResultSet) Records() []Crate {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Crate, len(r.records))
	for i := range r.records {
		out[i] = r.records[i].Clone()
	}
	return out
}

// Record returns a copy of the record at index i.
func (r *ResultSet) Record(i int) (Crate, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if i < 0 || i >= len(r.records) {
		return Crate{}, false
	}
	return r.records[i].Clone(), true
}

// Find returns a copy of the record with the given ID.
func (r *ResultSet) Find(id string) (Crate, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if i := r.indexOf(id); i >= 0 {
		return r.records[i].Clone(), true
	}
	return Crate{}, false
}

// ExactMatchIndex returns the index of the first record whose name equals the search term.
func (r *ResultSet) ExactMatchIndex() (int, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for i := range r.records {
		if r.records[i].ExactMatch {
			return i, true
		}
	}
	return 0, false
}

// Hydrate merges detail into the record with the given ID.
// It returns false if no such record exists.
func (r *ResultSet) Hydrate(id string, detail *CrateDetail) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.indexOf(id)
	if i < 0 {
		return false
	}
	r.records[i].Hydrate(detail)
	return true
}

// Annotate re-stamps every record's project and installed versions from env.
func (r *ResultSet) Annotate(env *Environment) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.records {
		env.Annotate(&r.records[i])
	}
}

// Select sets the selection to index i. A negative index clears it and an
// index past the end selects the last record.
func (r *ResultSet) Select(i int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	switch {
	case i < 0:
		r.selection = noSelection
	case i >= len(r.records):
		r.selection = lastSelection
	default:
		r.selection = i
	}
}

// ClearSelection removes the selection.
func (r *ResultSet) ClearSelection() {
	r.Select(noSelection)
}

// SelectNext moves the selection down one record, stopping at the last.
// With no selection the first record is selected.
func (r *ResultSet) SelectNext() {
	r.mu.Lock()
	defer r.mu.Unlock()
	i, ok := r.resolvedSelection()
	if !ok {
		r.selection = 0
		return
	}
	if i+1 < len(r.records) {
		r.selection = i + 1
	} else {
		r.selection = i
	}
}

// SelectPrevious moves the selection up one record, stopping at the first.
// With no selection the last record is selected.
func (r *ResultSet) SelectPrevious() {
	r.mu.Lock()
	defer r.mu.Unlock()
	i, ok := r.resolvedSelection()
	if !ok {
		r.selection = lastSelection
		return
	}
	if i > 0 {
		r.selection = i - 1
	} else {
		r.selection = 0
	}
}

// SelectFirst selects the first record.
func (r *ResultSet) SelectFirst() {
	r.Select(0)
}

// SelectLast selects the last record.
func (r *ResultSet) SelectLast() {
	r.Select(lastSelection)
}

// SelectedIndex returns the resolved selection index.
func (r *ResultSet) SelectedIndex() (int, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.resolvedSelection()
}

// Selected returns a copy of the selected record.
func (r *ResultSet) Selected() (Crate, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	i, ok := r.resolvedSelection()
	if !ok {
		return Crate{}, false
	}
	return r.records[i].Clone(), true
}

// GoToPage returns the request for page n clamped to [1, max(PageCount, 1)].
// It returns false when the target is the current page, in which case no
// request should be issued.
func (r *ResultSet) GoToPage(n int) (SearchRequest, bool) {
	target := clampPage(n, r.PageCount())
	if target == r.CurrentPage() {
		return SearchRequest{}, false
	}
	return r.Request.WithPage(target), true
}

// GoForwardPages returns the request n pages ahead.
func (r *ResultSet) GoForwardPages(n int) (SearchRequest, bool) {
	return r.GoToPage(r.CurrentPage() + n)
}

// GoBackPages returns the request n pages back.
func (r *ResultSet) GoBackPages(n int) (SearchRequest, bool) {
	return r.GoToPage(r.CurrentPage() - n)
}

// GoToFirstPage returns the request for the first page.
func (r *ResultSet) GoToFirstPage() (SearchRequest, bool) {
	return r.GoToPage(1)
}

// GoToLastPage returns the request for the last page.
func (r *ResultSet) GoToLastPage() (SearchRequest, bool) {
	return r.GoToPage(r.PageCount())
}

// resolvedSelection must be called with r.mu held.
func (r *ResultSet) resolvedSelection() (int, bool) {
	if r.selection == noSelection || len(r.records) == 0 {
		return 0, false
	}
	if r.selection >= len(r.records) {
		return len(r.records) - 1, true
	}
	return r.selection, true
}

// indexOf must be called with r.mu held.
func (r *ResultSet) indexOf(id string) int {
	for i := range r.records {
		if r.records[i].ID == id {
			return i
		}
	}
	return -1
}

func clampPage(page, pageCount int) int {
	upper := max(pageCount, 1)
	return min(max(page, 1), upper)
}
