package services

import (
	"testing"

	"hotel-catalog/models"
	"hotel-catalog/utils"
)

func newTestLogger() *utils.Logger { return utils.Discard() }

func TestNormalizerParsePrice(t *testing.T) {
	n := NewNormalizer(newTestLogger())

	tests := []struct {
		raw  string
		want float64
	}{
		{"120", 120},
		{"$120 / night", 120},
		{"1,200.50", 1200.50},
		{"USD 99", 99},
		{"", 0},
		{"free", 0},
		{"-5", 0},
	}

	for _, tt := range tests {
		got := n.parsePrice("x", tt.raw)
		if got != tt.want {
			t.Errorf("parsePrice(%q) = %.2f; want %.2f", tt.raw, got, tt.want)
		}
	}
}

func TestNormalizerParseCapacity(t *testing.T) {
	n := NewNormalizer(newTestLogger())

	tests := []struct {
		raw  string
		want int
	}{
		{"2", 2},
		{"up to 4 guests", 4},
		{"", 1},
		{"0", 1},
		{"many", 1},
	}

	for _, tt := range tests {
		got := n.parseCapacity("x", tt.raw)
		if got != tt.want {
			t.Errorf("parseCapacity(%q) = %d; want %d", tt.raw, got, tt.want)
		}
	}
}

func TestNormalizerDefaultsMalformedItems(t *testing.T) {
	n := NewNormalizer(newTestLogger())
	raw := []*models.RawItem{
		{ID: "r1", Kind: models.KindRoom, Name: "  Deluxe   King ", Price: "", Capacity: ""},
		{ID: "s1", Kind: models.KindSpa, Name: "Hot Stone", Price: "80", Capacity: "3", Images: []string{" ", "a.jpg"}},
	}

	got := n.Normalize(raw)
	if len(got) != 2 {
		t.Fatalf("malformed items must be kept, got %d items", len(got))
	}

	room := got[0]
	if room.Name != "Deluxe King" {
		t.Errorf("name: got %q", room.Name)
	}
	if room.Price != 0 {
		t.Errorf("missing price should default to 0, got %.2f", room.Price)
	}
	if room.Capacity != 1 {
		t.Errorf("missing room capacity should default to 1, got %d", room.Capacity)
	}
	if len(room.Images) != 1 || room.Images[0] != models.PlaceholderImage {
		t.Errorf("missing images should become the placeholder, got %v", room.Images)
	}

	spa := got[1]
	if spa.Capacity != 0 {
		t.Errorf("spa services carry no capacity, got %d", spa.Capacity)
	}
	if len(spa.Images) != 1 || spa.Images[0] != "a.jpg" {
		t.Errorf("blank image refs should be dropped, got %v", spa.Images)
	}
}

func TestNormalizerDropsMissingID(t *testing.T) {
	n := NewNormalizer(newTestLogger())
	raw := []*models.RawItem{
		{ID: "", Kind: models.KindEvent, Name: "Gala"},
		{ID: "e1", Kind: models.KindEvent, Name: "Wine Tasting"},
	}

	got := n.Normalize(raw)
	if len(got) != 1 || got[0].ID != "e1" {
		t.Errorf("expected only e1 to survive, got %v", got)
	}
}

func TestNormalizerDeduplicatesID(t *testing.T) {
	n := NewNormalizer(newTestLogger())
	raw := []*models.RawItem{
		{ID: "h1", Kind: models.KindHall, Name: "Ballroom"},
		{ID: "h1", Kind: models.KindHall, Name: "Ballroom copy"},
	}

	got := n.Normalize(raw)
	if len(got) != 1 {
		t.Fatalf("expected 1 item after deduplication, got %d", len(got))
	}
	if got[0].Name != "Ballroom" {
		t.Errorf("first occurrence should win, got %q", got[0].Name)
	}
}

func TestNormalizerDiscount(t *testing.T) {
	n := NewNormalizer(newTestLogger())
	raw := []*models.RawItem{{
		ID: "r1", Kind: models.KindRoom, Price: "100",
		Discount: &models.Discount{Active: true, PublishWebsite: true, Type: " Percentage ", Value: -3},
	}}

	got := n.Normalize(raw)[0].Discount
	if got.Type != models.DiscountPercentage {
		t.Errorf("type: got %q", got.Type)
	}
	if got.Value != 0 {
		t.Errorf("negative value should clamp to 0, got %v", got.Value)
	}
}
