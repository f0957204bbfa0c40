package services

import (
	"hotel-catalog/models"
)

// Session is the per-page state of one catalog listing: the fetched items and
// availability, the current criteria and the page being shown. Rooms, spa,
// events and meeting halls all browse through a Session.
type Session struct {
	engine       *FilterEngine
	items        []*models.CatalogItem
	availability []*models.AvailabilityRecord
	criteria     models.SearchCriteria
	candidates   []*models.CatalogItem
	pageSize     int
	page         int
}

// NewSession starts a session showing every item on page 1.
func NewSession(items []*models.CatalogItem, availability []*models.AvailabilityRecord, pageSize int) *Session {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	s := &Session{
		engine:       NewFilterEngine(),
		items:        items,
		availability: availability,
		criteria:     models.SearchCriteria{}.Normalize(),
		pageSize:     pageSize,
	}
	s.refresh()
	return s
}

// Apply validates and installs new criteria. The candidate list is rebuilt
// and the page goes back to 1. Invalid criteria leave the session unchanged.
func (s *Session) Apply(c models.SearchCriteria) error {
	c = c.Normalize()
	if err := c.Validate(); err != nil {
		return err
	}
	s.criteria = c
	s.refresh()
	return nil
}

// ClearDates drops the date window and shows every item again, subject to
// the remaining text/category/specialist filters.
func (s *Session) ClearDates() {
	s.criteria.ClearDates()
	s.refresh()
}

// Reload swaps in freshly fetched data, keeping the criteria.
func (s *Session) Reload(items []*models.CatalogItem, availability []*models.AvailabilityRecord) {
	s.items = items
	s.availability = availability
	s.refresh()
}

func (s *Session) refresh() {
	s.candidates = s.engine.Filter(s.items, s.criteria, s.availability)
	s.page = 1
}

// Criteria returns the criteria currently applied.
func (s *Session) Criteria() models.SearchCriteria { return s.criteria }

// Candidates returns the whole filtered list.
func (s *Session) Candidates() []*models.CatalogItem { return s.candidates }

// Empty reports the "no items match" state. It is not an error.
func (s *Session) Empty() bool { return len(s.candidates) == 0 }

// PageSize is the number of items per page.
func (s *Session) PageSize() int { return s.pageSize }

// PageCount is the number of pages of candidates.
func (s *Session) PageCount() int { return PageCount(len(s.candidates), s.pageSize) }

// GoTo moves to page n, clamped to the valid range.
func (s *Session) GoTo(n int) {
	count := s.PageCount()
	if n > count {
		n = count
	}
	if n < 1 {
		n = 1
	}
	s.page = n
}

// Next moves forward one page if possible.
func (s *Session) Next() { s.GoTo(s.page + 1) }

// Prev moves back one page if possible.
func (s *Session) Prev() { s.GoTo(s.page - 1) }

// Current returns the page being shown.
func (s *Session) Current() Page[*models.CatalogItem] {
	return Page[*models.CatalogItem]{
		Items:  Paginate(s.candidates, s.pageSize, s.page),
		Number: s.page,
		Count:  s.PageCount(),
		Total:  len(s.candidates),
	}
}
