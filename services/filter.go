package services

import (
	"strings"
	"time"

	"hotel-catalog/models"
)

// FilterEngine narrows a fetched catalog down to the candidate list for the
// current search criteria.
type FilterEngine struct{}

// NewFilterEngine creates a FilterEngine.
func NewFilterEngine() *FilterEngine {
	return &FilterEngine{}
}

// Filter returns the items matching criteria, in their original order.
// criteria must already be normalised (see SearchCriteria.Normalize).
func (f *FilterEngine) Filter(items []*models.CatalogItem, criteria models.SearchCriteria, availability []*models.AvailabilityRecord) []*models.CatalogItem {
	result := make([]*models.CatalogItem, 0, len(items))
	if len(items) == 0 {
		return result
	}

	var available map[string]struct{}
	if criteria.HasDateRange() {
		available = availableIDs(availability, criteria.DateRangeStart, criteria.DateRangeEnd, criteria.Rule)
	}

	text := strings.ToLower(strings.TrimSpace(criteria.FreeText))

	for _, item := range items {
		if available != nil {
			if _, ok := available[item.ID]; !ok {
				continue
			}
		}
		if item.Kind.HasCapacity() && item.Capacity > 0 && item.Capacity < criteria.Guests {
			continue
		}
		if criteria.Category != "" && item.Category != criteria.Category {
			continue
		}
		if criteria.Specialist != "" && item.Specialist != criteria.Specialist {
			continue
		}
		if text != "" && !containsFold(item, text) {
			continue
		}
		result = append(result, item)
	}
	return result
}

func containsFold(item *models.CatalogItem, lowered string) bool {
	return strings.Contains(strings.ToLower(item.Name), lowered) ||
		strings.Contains(strings.ToLower(item.Description), lowered)
}

type dayKey struct {
	id  string
	day time.Time
}

// availableIDs returns the ids that qualify inside [start, end]. Duplicate
// (service, day) records are collapsed with the last one winning.
func availableIDs(records []*models.AvailabilityRecord, start, end time.Time, rule models.AvailabilityRule) map[string]struct{} {
	start, end = models.Day(start), models.Day(end)

	counts := make(map[dayKey]int, len(records))
	for _, r := range records {
		if r == nil {
			continue
		}
		d := models.Day(r.Date)
		if d.Before(start) || d.After(end) {
			continue
		}
		counts[dayKey{id: r.ServiceID, day: d}] = r.Available
	}

	// days with inventory, per item
	open := make(map[string]int)
	for k, n := range counts {
		if n > 0 {
			open[k.id]++
		}
	}

	want := 1
	if rule == models.EveryDay {
		want = int(end.Sub(start)/(24*time.Hour)) + 1
	}

	ids := make(map[string]struct{}, len(open))
	for id, n := range open {
		if n >= want {
			ids[id] = struct{}{}
		}
	}
	return ids
}

// Similar returns up to n other items of the same kind and category as item,
// keeping catalog order. n <= 0 means no limit.
func Similar(items []*models.CatalogItem, item *models.CatalogItem, n int) []*models.CatalogItem {
	var out []*models.CatalogItem
	for _, other := range items {
		if other.ID == item.ID || other.Kind != item.Kind || other.Category != item.Category {
			continue
		}
		out = append(out, other)
		if n > 0 && len(out) == n {
			break
		}
	}
	return out
}
