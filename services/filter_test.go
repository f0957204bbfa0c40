package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotel-catalog/models"
)

func day(s string) time.Time {
	d, err := models.ParseDay(s)
	if err != nil {
		panic(err)
	}
	return d
}

func ids(items []*models.CatalogItem) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.ID)
	}
	return out
}

func filterFixture() []*models.CatalogItem {
	return []*models.CatalogItem{
		{ID: "r1", Kind: models.KindRoom, Name: "Garden Double", Capacity: 2, Price: 100, Category: "standard"},
		{ID: "r2", Kind: models.KindRoom, Name: "Family Suite", Description: "Two bedrooms", Capacity: 4, Price: 250, Category: "suite"},
		{ID: "r3", Kind: models.KindRoom, Name: "Sea View Single", Capacity: 1, Price: 80, Category: "standard"},
		{ID: "s1", Kind: models.KindSpa, Name: "Relaxing Spa Day", Price: 120, Category: "massage", Specialist: "anna"},
		{ID: "s2", Kind: models.KindSpa, Name: "Deep Tissue", Description: "Spa classic", Price: 90, Category: "massage", Specialist: "omar"},
	}
}

func TestFilterNoDateRangeReturnsAll(t *testing.T) {
	f := NewFilterEngine()
	items := filterFixture()

	got := f.Filter(items, models.SearchCriteria{}.Normalize(), nil)
	assert.Equal(t, ids(items), ids(got))
}

func TestFilterEmptyItems(t *testing.T) {
	f := NewFilterEngine()
	got := f.Filter(nil, models.SearchCriteria{Guests: 2}.Normalize(), nil)
	require.NotNil(t, got)
	assert.Empty(t, got)
}

func TestFilterAvailabilityWindow(t *testing.T) {
	f := NewFilterEngine()
	items := filterFixture()[:3]
	avail := []*models.AvailabilityRecord{
		{ServiceID: "r1", Date: day("2026-11-01"), Available: 0},
		{ServiceID: "r1", Date: day("2026-11-02"), Available: 3},
		{ServiceID: "r2", Date: day("2026-10-31"), Available: 5},
		{ServiceID: "r2", Date: day("2026-11-04"), Available: 5},
	}
	c := models.SearchCriteria{DateRangeStart: day("2026-11-01"), DateRangeEnd: day("2026-11-03")}.Normalize()

	got := f.Filter(items, c, avail)
	// r1 has one open day in range; r2 only outside; r3 has no records at all
	assert.Equal(t, []string{"r1"}, ids(got))
}

func TestFilterMissingRecordDependsOnDateRange(t *testing.T) {
	f := NewFilterEngine()
	items := []*models.CatalogItem{{ID: "x", Kind: models.KindRoom, Name: "X", Capacity: 2}}

	withRange := models.SearchCriteria{DateRangeStart: day("2026-11-01"), DateRangeEnd: day("2026-11-02")}.Normalize()
	assert.Empty(t, f.Filter(items, withRange, nil))

	assert.Len(t, f.Filter(items, models.SearchCriteria{}.Normalize(), nil), 1)
}

func TestFilterRangeBoundsInclusive(t *testing.T) {
	f := NewFilterEngine()
	items := filterFixture()[:2]
	avail := []*models.AvailabilityRecord{
		{ServiceID: "r1", Date: day("2026-11-01"), Available: 1},
		{ServiceID: "r2", Date: day("2026-11-03"), Available: 1},
	}
	c := models.SearchCriteria{DateRangeStart: day("2026-11-01"), DateRangeEnd: day("2026-11-03")}.Normalize()

	assert.Equal(t, []string{"r1", "r2"}, ids(f.Filter(items, c, avail)))
}

func TestFilterDuplicateRecordsLastWins(t *testing.T) {
	f := NewFilterEngine()
	items := filterFixture()[:2]
	avail := []*models.AvailabilityRecord{
		{ServiceID: "r1", Date: day("2026-11-01"), Available: 2},
		{ServiceID: "r1", Date: day("2026-11-01"), Available: 0},
		{ServiceID: "r2", Date: day("2026-11-01"), Available: 0},
		{ServiceID: "r2", Date: day("2026-11-01"), Available: 1},
	}
	c := models.SearchCriteria{DateRangeStart: day("2026-11-01"), DateRangeEnd: day("2026-11-01")}.Normalize()

	assert.Equal(t, []string{"r2"}, ids(f.Filter(items, c, avail)))
}

func TestFilterEveryDayRule(t *testing.T) {
	f := NewFilterEngine()
	items := filterFixture()[:2]
	avail := []*models.AvailabilityRecord{
		{ServiceID: "r1", Date: day("2026-11-01"), Available: 1},
		{ServiceID: "r1", Date: day("2026-11-02"), Available: 1},
		{ServiceID: "r2", Date: day("2026-11-01"), Available: 1},
		{ServiceID: "r2", Date: day("2026-11-02"), Available: 0},
	}
	c := models.SearchCriteria{
		DateRangeStart: day("2026-11-01"),
		DateRangeEnd:   day("2026-11-02"),
		Rule:           models.EveryDay,
	}.Normalize()

	assert.Equal(t, []string{"r1"}, ids(f.Filter(items, c, avail)))

	c.Rule = models.AnyDay
	assert.Equal(t, []string{"r1", "r2"}, ids(f.Filter(items, c, avail)))
}

func TestFilterGuestsCapacity(t *testing.T) {
	f := NewFilterEngine()
	got := f.Filter(filterFixture(), models.SearchCriteria{Guests: 3}.Normalize(), nil)
	// spa services carry no capacity and are not affected
	assert.Equal(t, []string{"r2", "s1", "s2"}, ids(got))
}

func TestFilterCategoryAndSpecialist(t *testing.T) {
	f := NewFilterEngine()

	got := f.Filter(filterFixture(), models.SearchCriteria{Category: "standard"}.Normalize(), nil)
	assert.Equal(t, []string{"r1", "r3"}, ids(got))

	got = f.Filter(filterFixture(), models.SearchCriteria{Category: "massage", Specialist: "omar"}.Normalize(), nil)
	assert.Equal(t, []string{"s2"}, ids(got))
}

func TestFilterFreeTextCaseInsensitive(t *testing.T) {
	f := NewFilterEngine()

	got := f.Filter(filterFixture(), models.SearchCriteria{FreeText: "  spa "}.Normalize(), nil)
	// name match on s1, description match on s2
	assert.Equal(t, []string{"s1", "s2"}, ids(got))

	got = f.Filter(filterFixture(), models.SearchCriteria{FreeText: "   "}.Normalize(), nil)
	assert.Len(t, got, len(filterFixture()))
}

func TestFilterIdempotent(t *testing.T) {
	f := NewFilterEngine()
	avail := []*models.AvailabilityRecord{
		{ServiceID: "r2", Date: day("2026-11-01"), Available: 1},
		{ServiceID: "s1", Date: day("2026-11-01"), Available: 1},
	}
	c := models.SearchCriteria{
		DateRangeStart: day("2026-11-01"), DateRangeEnd: day("2026-11-02"), Guests: 2,
	}.Normalize()

	once := f.Filter(filterFixture(), c, avail)
	twice := f.Filter(once, c, avail)
	assert.Equal(t, ids(once), ids(twice))
}

func TestSimilar(t *testing.T) {
	items := filterFixture()
	got := Similar(items, items[0], 0)
	assert.Equal(t, []string{"r3"}, ids(got))

	got = Similar(items, items[3], 1)
	assert.Equal(t, []string{"s2"}, ids(got))
}
