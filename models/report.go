package models

import "time"

// PriceDisplay is what a catalog card shows in its price slot. When Discounted
// is set the original price is rendered struck through beside Effective.
type PriceDisplay struct {
	Original   float64
	Effective  float64
	Discounted bool
	Label      string
}

// Saving pairs an item with the amount its published discount takes off.
type Saving struct {
	Item   *CatalogItem
	Amount float64
}

// CatalogReport holds the computed summary over a fetched catalog.
type CatalogReport struct {
	TotalItems      int
	ItemsByKind     map[Kind]int
	DiscountedItems int
	AveragePrice    float64
	MinPrice        float64
	MaxPrice        float64
	Cheapest        *CatalogItem
	BiggestSavings  []Saving
	ItemsByCategory map[string]int
}

// BookingLine is one selected item in a booking draft.
type BookingLine struct {
	ItemID    string
	Name      string
	Quantity  int
	UnitPrice float64
	Capacity  int
}

// BookingDraft is the hand-off produced when a room combination may proceed
// to checkout.
type BookingDraft struct {
	ID            string
	Lines         []BookingLine
	Guests        int
	CheckIn       time.Time
	CheckOut      time.Time
	Nights        int
	TotalCapacity int
	Total         float64
	CreatedAt     time.Time
}
