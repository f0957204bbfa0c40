package services

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"hotel-catalog/models"
)

var (
	// ErrUnknownItem is returned when a selection refers to an id not in the catalog.
	ErrUnknownItem = errors.New("unknown catalog item")
	// ErrCapacityShortfall is returned when the selected rooms cannot hold the party.
	ErrCapacityShortfall = errors.New("selected rooms do not fit all guests")
	// ErrEmptySelection is returned when proceeding with nothing selected.
	ErrEmptySelection = errors.New("no rooms selected")
)

// Selection tracks how many of each item a guest has picked on the room
// combination page. Entries at quantity 0 are removed, never stored.
type Selection struct {
	items      map[string]*models.CatalogItem
	order      []string
	quantities map[string]int
	limits     map[string]int
}

// NewSelection creates an empty Selection over the given catalog.
func NewSelection(items []*models.CatalogItem) *Selection {
	s := &Selection{
		items:      make(map[string]*models.CatalogItem, len(items)),
		quantities: make(map[string]int),
		limits:     make(map[string]int),
	}
	for _, it := range items {
		if _, dup := s.items[it.ID]; dup {
			continue
		}
		s.items[it.ID] = it
		s.order = append(s.order, it.ID)
	}
	return s
}

// SetLimit caps the quantity of id, e.g. at the rooms left for the stay.
// A limit <= 0 removes the cap. Existing quantities above the cap are lowered.
func (s *Selection) SetLimit(id string, limit int) error {
	if _, ok := s.items[id]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownItem, id)
	}
	if limit <= 0 {
		delete(s.limits, id)
		return nil
	}
	s.limits[id] = limit
	if s.quantities[id] > limit {
		s.quantities[id] = limit
	}
	return nil
}

// Increment adds one unit of id. It returns false when the limit is reached.
func (s *Selection) Increment(id string) (bool, error) {
	if _, ok := s.items[id]; !ok {
		return false, fmt.Errorf("%w: %s", ErrUnknownItem, id)
	}
	if limit, ok := s.limits[id]; ok && s.quantities[id] >= limit {
		return false, nil
	}
	s.quantities[id]++
	return true, nil
}

// Decrement removes one unit of id. Absent ids are a no-op.
func (s *Selection) Decrement(id string) {
	q, ok := s.quantities[id]
	if !ok {
		return
	}
	if q <= 1 {
		delete(s.quantities, id)
		return
	}
	s.quantities[id] = q - 1
}

// Set replaces the quantity of id, clamped to [0, limit].
func (s *Selection) Set(id string, quantity int) error {
	if _, ok := s.items[id]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownItem, id)
	}
	if limit, ok := s.limits[id]; ok && quantity > limit {
		quantity = limit
	}
	if quantity <= 0 {
		delete(s.quantities, id)
		return nil
	}
	s.quantities[id] = quantity
	return nil
}

// Quantity returns the selected quantity of id.
func (s *Selection) Quantity(id string) int {
	return s.quantities[id]
}

// Len is the number of distinct items selected.
func (s *Selection) Len() int {
	return len(s.quantities)
}

// TotalCapacity is the number of guests the selection can hold.
func (s *Selection) TotalCapacity() int {
	total := 0
	for id, q := range s.quantities {
		if q > 0 {
			total += s.items[id].Capacity * q
		}
	}
	return total
}

// TotalCost is the per-night cost of the selection at effective prices.
func (s *Selection) TotalCost() float64 {
	var total float64
	for id, q := range s.quantities {
		if q > 0 {
			total += EffectivePrice(s.items[id]) * float64(q)
		}
	}
	return round2(total)
}

// StayTotal is TotalCost over the given number of nights.
func (s *Selection) StayTotal(nights int) float64 {
	if nights < 0 {
		nights = 0
	}
	return round2(s.TotalCost() * float64(nights))
}

// Shortfall is how many guests are still without a bed.
func (s *Selection) Shortfall(guests int) int {
	if d := guests - s.TotalCapacity(); d > 0 {
		return d
	}
	return 0
}

// CanProceed reports whether the selection may move on to booking.
func (s *Selection) CanProceed(guests int) bool {
	return len(s.quantities) > 0 && s.TotalCapacity() >= guests
}

// Proceed turns the selection into a booking draft for the stay.
func (s *Selection) Proceed(guests int, checkIn, checkOut time.Time) (*models.BookingDraft, error) {
	if len(s.quantities) == 0 {
		return nil, ErrEmptySelection
	}
	if short := s.Shortfall(guests); short > 0 {
		return nil, fmt.Errorf("%w: %d more guest(s) need a room", ErrCapacityShortfall, short)
	}
	nights, err := Nights(checkIn, checkOut)
	if err != nil {
		return nil, err
	}

	draft := &models.BookingDraft{
		ID:            uuid.New().String(),
		Guests:        guests,
		CheckIn:       models.Day(checkIn),
		CheckOut:      models.Day(checkOut),
		Nights:        nights,
		TotalCapacity: s.TotalCapacity(),
		Total:         s.StayTotal(nights),
		CreatedAt:     time.Now(),
	}
	for _, id := range s.SelectedIDs() {
		q := s.quantities[id]
		it := s.items[id]
		draft.Lines = append(draft.Lines, models.BookingLine{
			ItemID:    id,
			Name:      it.Name,
			Quantity:  q,
			UnitPrice: EffectivePrice(it),
			Capacity:  it.Capacity,
		})
	}
	return draft, nil
}

// BestAvailable returns, per item id, the highest available count seen in
// [start, end]. It seeds Selection limits on the combination page.
func BestAvailable(records []*models.AvailabilityRecord, start, end time.Time) map[string]int {
	start, end = models.Day(start), models.Day(end)
	best := make(map[string]int)
	for _, r := range records {
		d := models.Day(r.Date)
		if d.Before(start) || d.After(end) {
			continue
		}
		if r.Available > best[r.ServiceID] {
			best[r.ServiceID] = r.Available
		}
	}
	return best
}

// SelectedIDs lists the selected ids in catalog order.
func (s *Selection) SelectedIDs() []string {
	ids := make([]string, 0, len(s.quantities))
	for id := range s.quantities {
		ids = append(ids, id)
	}
	pos := make(map[string]int, len(s.order))
	for i, id := range s.order {
		pos[id] = i
	}
	sort.Slice(ids, func(i, j int) bool { return pos[ids[i]] < pos[ids[j]] })
	return ids
}
