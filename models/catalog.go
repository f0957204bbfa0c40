package models

import (
	"fmt"
	"strings"
)

// Kind tags which catalog a CatalogItem belongs to.
type Kind string

const (
	KindRoom  Kind = "room"
	KindSpa   Kind = "spa"
	KindEvent Kind = "event"
	KindHall  Kind = "hall"
)

// Kinds lists every catalog kind in the order the site presents them.
var Kinds = []Kind{KindRoom, KindSpa, KindEvent, KindHall}

// ParseKind accepts the singular kind name as well as the plural page names
// used by the site ("rooms", "meeting-halls", ...).
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "room", "rooms":
		return KindRoom, nil
	case "spa", "spa-services", "spa_services":
		return KindSpa, nil
	case "event", "events":
		return KindEvent, nil
	case "hall", "halls", "meeting-hall", "meeting-halls", "meetinghall":
		return KindHall, nil
	}
	return "", fmt.Errorf("unknown catalog kind %q", s)
}

// HasCapacity reports whether guest capacity is meaningful for the kind.
func (k Kind) HasCapacity() bool {
	return k == KindRoom || k == KindHall
}

// DiscountType is how a discount value is applied to a price.
type DiscountType string

const (
	DiscountPercentage DiscountType = "percentage"
	DiscountFixed      DiscountType = "fixed"
)

// Discount is the optional promotion attached to an item by the admin dashboard.
type Discount struct {
	Active         bool         `json:"active"`
	PublishWebsite bool         `json:"publishWebsite"`
	Type           DiscountType `json:"type"`
	Value          float64      `json:"value"`
	Name           string       `json:"name"`
}

// CatalogItem is a bookable unit: a room, spa service, event or meeting hall.
// Capacity is zero for kinds where it does not apply.
type CatalogItem struct {
	ID          string    `json:"id"`
	Kind        Kind      `json:"kind"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Capacity    int       `json:"capacity"`
	Price       float64   `json:"price"`
	Discount    *Discount `json:"discount,omitempty"`
	Category    string    `json:"category"`
	Specialist  string    `json:"specialist,omitempty"`
	Images      []string  `json:"images"`
}

// PlaceholderImage is shown for items that arrive without any image.
const PlaceholderImage = "/images/placeholder.jpg"
