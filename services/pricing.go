package services

import (
	"errors"
	"fmt"
	"math"
	"time"

	"hotel-catalog/models"
)

// ErrInvalidStay is returned when a check-out is not at least one night after check-in.
var ErrInvalidStay = errors.New("check-out must be at least one night after check-in")

// discountApplies reports whether item carries a live, published discount of a known type.
func discountApplies(item *models.CatalogItem) bool {
	d := item.Discount
	if d == nil || !d.Active || !d.PublishWebsite {
		return false
	}
	return d.Type == models.DiscountPercentage || d.Type == models.DiscountFixed
}

// EffectivePrice is the price shown to guests after any published discount.
// It lies between 0 and the list price.
func EffectivePrice(item *models.CatalogItem) float64 {
	if !discountApplies(item) {
		return item.Price
	}

	d := item.Discount
	value := math.Max(0, d.Value)
	var price float64
	switch d.Type {
	case models.DiscountPercentage:
		price = item.Price - item.Price*value/100
	case models.DiscountFixed:
		price = item.Price - value
	}
	return math.Min(item.Price, math.Max(0, price))
}

// Display builds the price slot for a catalog card.
func Display(item *models.CatalogItem) models.PriceDisplay {
	pd := models.PriceDisplay{
		Original:  item.Price,
		Effective: EffectivePrice(item),
	}
	if discountApplies(item) {
		pd.Discounted = true
		pd.Label = discountLabel(item.Discount)
	}
	return pd
}

func discountLabel(d *models.Discount) string {
	var amount string
	if d.Type == models.DiscountPercentage {
		amount = fmt.Sprintf("%g%% off", d.Value)
	} else {
		amount = fmt.Sprintf("$%.2f off", d.Value)
	}
	if d.Name == "" {
		return amount
	}
	return d.Name + " (" + amount + ")"
}

// Nights counts the nights between two dates, rounding partial days up.
func Nights(checkIn, checkOut time.Time) (int, error) {
	diff := checkOut.Sub(checkIn)
	nights := int(math.Ceil(diff.Hours() / 24))
	if nights < 1 {
		return 0, fmt.Errorf("%w: %s to %s", ErrInvalidStay,
			models.FormatDay(checkIn), models.FormatDay(checkOut))
	}
	return nights, nil
}

// StayTotal is the price of quantity units of item over the stay.
func StayTotal(item *models.CatalogItem, quantity int, checkIn, checkOut time.Time) (float64, error) {
	nights, err := Nights(checkIn, checkOut)
	if err != nil {
		return 0, err
	}
	if quantity < 0 {
		quantity = 0
	}
	return round2(EffectivePrice(item) * float64(quantity) * float64(nights)), nil
}
