package services

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"hotel-catalog/models"
	"hotel-catalog/utils"
)

var (
	// priceRegexp captures numeric price values
	priceRegexp = regexp.MustCompile(`[\d,]+(?:\.\d+)?`)
	// capacityRegexp captures the first integer, e.g. "up to 4 guests"
	capacityRegexp = regexp.MustCompile(`\d+`)
)

// Normalizer turns RawItems into CatalogItems. Malformed records get safe
// defaults instead of being dropped, so one bad record never hides a page.
type Normalizer struct {
	logger *utils.Logger
}

// NewNormalizer creates a Normalizer with the given logger.
func NewNormalizer(logger *utils.Logger) *Normalizer {
	return &Normalizer{logger: logger}
}

// Normalize processes raw items and returns catalog items in source order.
// Records without an id are dropped; repeated ids keep the first occurrence.
func (n *Normalizer) Normalize(raw []*models.RawItem) []*models.CatalogItem {
	seen := utils.NewSet[string]()
	result := make([]*models.CatalogItem, 0, len(raw))

	for _, r := range raw {
		if r == nil {
			continue
		}
		id := strings.TrimSpace(r.ID)
		if id == "" {
			n.logger.Warn("[normalizer] Dropping %s without id: %q", r.Kind, r.Name)
			continue
		}
		if !seen.Add(id) {
			n.logger.Debug("[normalizer] Duplicate id skipped: %s", id)
			continue
		}

		item := &models.CatalogItem{
			ID:          id,
			Kind:        r.Kind,
			Name:        normaliseText(r.Name),
			Description: normaliseText(r.Description),
			Price:       n.parsePrice(id, r.Price),
			Discount:    normaliseDiscount(r.Discount),
			Category:    strings.TrimSpace(r.Category),
			Specialist:  strings.TrimSpace(r.Specialist),
			Images:      normaliseImages(r.Images),
		}
		if item.Name == "" {
			item.Name = "Untitled " + string(r.Kind)
		}
		if r.Kind.HasCapacity() {
			item.Capacity = n.parseCapacity(id, r.Capacity)
		}

		result = append(result, item)
	}

	n.logger.Info("[normalizer] Normalized %d → %d items (dropped %d)",
		len(raw), len(result), len(raw)-len(result))
	return result
}

// parsePrice extracts a non-negative price, defaulting to 0.
// Examples:
//
//	"$1,200.50" → 1200.50
//	"120 / night" → 120
//	"-5" → 0
func (n *Normalizer) parsePrice(id, raw string) float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" || strings.HasPrefix(raw, "-") {
		n.logger.Debug("[normalizer] %s: price %q defaulted to 0", id, raw)
		return 0
	}

	match := priceRegexp.FindString(raw)
	if match == "" {
		n.logger.Debug("[normalizer] %s: price %q defaulted to 0", id, raw)
		return 0
	}

	price, err := strconv.ParseFloat(strings.ReplaceAll(match, ",", ""), 64)
	if err != nil || price < 0 {
		return 0
	}
	return price
}

// parseCapacity extracts a guest capacity of at least 1.
func (n *Normalizer) parseCapacity(id, raw string) int {
	match := capacityRegexp.FindString(raw)
	if match == "" {
		n.logger.Debug("[normalizer] %s: capacity %q defaulted to 1", id, raw)
		return 1
	}
	c, err := strconv.Atoi(match)
	if err != nil || c < 1 {
		return 1
	}
	return c
}

func normaliseDiscount(d *models.Discount) *models.Discount {
	if d == nil {
		return nil
	}
	out := *d
	out.Type = models.DiscountType(strings.ToLower(strings.TrimSpace(string(d.Type))))
	out.Name = normaliseText(d.Name)
	if out.Value < 0 {
		out.Value = 0
	}
	return &out
}

func normaliseImages(images []string) []string {
	out := make([]string, 0, len(images))
	for _, img := range images {
		if img = strings.TrimSpace(img); img != "" {
			out = append(out, img)
		}
	}
	if len(out) == 0 {
		out = append(out, models.PlaceholderImage)
	}
	return out
}

// normaliseText strips leading/trailing whitespace and collapses internal whitespace.
func normaliseText(s string) string {
	fields := strings.FieldsFunc(s, unicode.IsSpace)
	return strings.Join(fields, " ")
}
