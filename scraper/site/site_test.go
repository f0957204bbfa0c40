package site

import (
	"context"
	"testing"

	"hotel-catalog/models"
	"hotel-catalog/utils"
)

func TestCardsToRaw(t *testing.T) {
	cards := []card{
		{ID: "r1", Name: "Deluxe King", Price: "$80", OldPrice: "$100", Badge: "20% off", Capacity: "2 guests"},
		{ID: "", Name: "No id"},
		{ID: "r1", Name: "Duplicate"},
		{ID: "r2", Name: "Twin", Price: "$90", Badge: "Members only"},
	}

	items := cardsToRaw(models.KindRoom, cards, utils.Discard())
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}

	r1 := items[0]
	if r1.Name != "Deluxe King" || r1.Price != "$100" || r1.Kind != models.KindRoom {
		t.Errorf("unexpected first item: %+v", r1)
	}
	if r1.Discount == nil || r1.Discount.Type != models.DiscountPercentage || r1.Discount.Value != 20 {
		t.Errorf("expected 20%% discount, got %+v", r1.Discount)
	}

	if items[1].Discount != nil {
		t.Errorf("badge without struck price should not become a discount: %+v", items[1].Discount)
	}
}

func TestCardDiscount(t *testing.T) {
	tests := []struct {
		badge    string
		wantType models.DiscountType
		wantVal  float64
		wantNil  bool
	}{
		{"20% off", models.DiscountPercentage, 20, false},
		{"$25 off", models.DiscountFixed, 25, false},
		{"$1,000 OFF", models.DiscountFixed, 1000, false},
		{"", "", 0, true},
		{"special", "", 0, true},
	}

	for _, tt := range tests {
		d := cardDiscount(card{Badge: tt.badge, OldPrice: "$100"})
		if tt.wantNil {
			if d != nil {
				t.Errorf("cardDiscount(%q) = %+v, want nil", tt.badge, d)
			}
			continue
		}
		if d == nil || d.Type != tt.wantType || d.Value != tt.wantVal {
			t.Errorf("cardDiscount(%q) = %+v, want %s %.0f", tt.badge, d, tt.wantType, tt.wantVal)
		}
	}
}

func TestFetchCatalogUnknownKind(t *testing.T) {
	src := NewBrowserSource("http://hotel.test", "/bin/false", utils.Discard())
	if _, err := src.FetchCatalog(context.Background(), models.Kind("garage")); err == nil {
		t.Fatal("expected error for unknown kind")
	}
}
