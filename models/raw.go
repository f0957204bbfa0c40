package models

// RawItem is a catalog record as it arrives from an endpoint or the rendered
// site, before defaults are applied. Numeric fields are kept as text because
// the sources disagree on whether they send numbers or formatted strings.
type RawItem struct {
	ID          string
	Kind        Kind
	Name        string
	Description string
	Capacity    string
	Price       string
	Discount    *Discount
	Category    string
	Specialist  string
	Images      []string
}
