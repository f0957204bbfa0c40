package services

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotel-catalog/models"
)

func manyRooms(n int) []*models.CatalogItem {
	out := make([]*models.CatalogItem, n)
	for i := range out {
		out[i] = &models.CatalogItem{
			ID:       fmt.Sprintf("r%d", i),
			Kind:     models.KindRoom,
			Name:     fmt.Sprintf("Room %d", i),
			Capacity: 1 + i%4,
			Price:    float64(100 + i),
		}
	}
	return out
}

func TestSessionStartsUnfiltered(t *testing.T) {
	s := NewSession(manyRooms(10), nil, 6)
	p := s.Current()
	assert.Equal(t, 1, p.Number)
	assert.Equal(t, 2, p.Count)
	assert.Equal(t, 10, p.Total)
	assert.Len(t, p.Items, 6)
	assert.False(t, s.Empty())
}

func TestSessionApplyResetsPage(t *testing.T) {
	s := NewSession(manyRooms(20), nil, 6)
	s.GoTo(3)
	require.Equal(t, 3, s.Current().Number)

	require.NoError(t, s.Apply(models.SearchCriteria{Guests: 3}))
	p := s.Current()
	assert.Equal(t, 1, p.Number)
	assert.Equal(t, 10, p.Total)
}

func TestSessionNavigationClamps(t *testing.T) {
	s := NewSession(manyRooms(10), nil, 6)
	s.Prev()
	assert.Equal(t, 1, s.Current().Number)
	s.Next()
	s.Next()
	assert.Equal(t, 2, s.Current().Number)
	s.GoTo(99)
	assert.Equal(t, 2, s.Current().Number)
	assert.Len(t, s.Current().Items, 4)
}

func TestSessionRejectsHalfRange(t *testing.T) {
	s := NewSession(manyRooms(3), nil, 6)
	err := s.Apply(models.SearchCriteria{DateRangeStart: day("2026-11-01")})
	assert.ErrorIs(t, err, models.ErrInvalidCriteria)
	assert.Equal(t, 3, s.Current().Total, "invalid criteria leave the session unchanged")
}

func TestSessionClearDatesShowsAll(t *testing.T) {
	avail := []*models.AvailabilityRecord{{ServiceID: "r0", Date: day("2026-11-01"), Available: 1}}
	s := NewSession(manyRooms(3), avail, 6)

	require.NoError(t, s.Apply(models.SearchCriteria{
		DateRangeStart: day("2026-11-01"), DateRangeEnd: day("2026-11-02"),
	}))
	assert.Equal(t, 1, s.Current().Total)

	s.ClearDates()
	assert.Equal(t, 3, s.Current().Total)
	assert.False(t, s.Criteria().HasDateRange())
}

func TestSessionEmptyIsNotError(t *testing.T) {
	s := NewSession(manyRooms(3), nil, 6)
	require.NoError(t, s.Apply(models.SearchCriteria{FreeText: "penthouse"}))
	assert.True(t, s.Empty())
	p := s.Current()
	assert.Equal(t, 0, p.Count)
	assert.Empty(t, p.Items)
}

func TestSessionReloadKeepsCriteria(t *testing.T) {
	s := NewSession(manyRooms(3), nil, 6)
	require.NoError(t, s.Apply(models.SearchCriteria{FreeText: "room 1"}))
	s.Reload(manyRooms(12), nil)
	// "Room 1", "Room 10", "Room 11"
	assert.Equal(t, 3, s.Current().Total)
}
