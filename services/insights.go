package services

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"hotel-catalog/models"
	"hotel-catalog/utils"
)

const topSavings = 5

type InsightService struct {
	logger *utils.Logger
}

func NewInsightService(logger *utils.Logger) *InsightService {
	return &InsightService{logger: logger}
}

func (s *InsightService) Generate(items []*models.CatalogItem) *models.CatalogReport {
	report := &models.CatalogReport{
		ItemsByKind:     make(map[models.Kind]int),
		ItemsByCategory: make(map[string]int),
	}

	if len(items) == 0 {
		return report
	}

	report.TotalItems = len(items)

	var priced []*models.CatalogItem
	var savings []models.Saving

	for _, it := range items {
		report.ItemsByKind[it.Kind]++
		if it.Category != "" {
			report.ItemsByCategory[it.Category]++
		}
		if it.Price > 0 {
			priced = append(priced, it)
		}
		if discountApplies(it) {
			report.DiscountedItems++
			if amount := it.Price - EffectivePrice(it); amount > 0 {
				savings = append(savings, models.Saving{Item: it, Amount: round2(amount)})
			}
		}
	}

	// Price stats over effective prices (only items with a base price > 0)
	if len(priced) > 0 {
		first := EffectivePrice(priced[0])
		report.MinPrice, report.MaxPrice = first, first
		report.Cheapest = priced[0]
		var total float64
		for _, it := range priced {
			p := EffectivePrice(it)
			total += p
			if p < report.MinPrice {
				report.MinPrice = p
				report.Cheapest = it
			}
			if p > report.MaxPrice {
				report.MaxPrice = p
			}
		}
		report.AveragePrice = round2(total / float64(len(priced)))
		report.MinPrice = round2(report.MinPrice)
		report.MaxPrice = round2(report.MaxPrice)
	}

	sort.SliceStable(savings, func(i, j int) bool {
		return savings[i].Amount > savings[j].Amount
	})
	if len(savings) > topSavings {
		savings = savings[:topSavings]
	}
	report.BiggestSavings = savings

	s.logger.Debug("[insights] %d items, %d discounted", report.TotalItems, report.DiscountedItems)
	return report
}

func (s *InsightService) Print(w io.Writer, r *models.CatalogReport) {
	sep := strings.Repeat("═", 54)
	thin := strings.Repeat("─", 54)

	fmt.Fprintf(w, "\n\033[1;35m%s\033[0m\n", sep)
	fmt.Fprintf(w, "\033[1;35m  HOTEL CATALOG INSIGHTS\033[0m\n")
	fmt.Fprintf(w, "\033[1;35m%s\033[0m\n\n", sep)

	fmt.Fprintf(w, "\033[1;33m  Overview\033[0m\n")
	fmt.Fprintf(w, "  %s\n", thin)
	fmt.Fprintf(w, "  Total items      : \033[1m%d\033[0m\n", r.TotalItems)
	for _, k := range models.Kinds {
		if n := r.ItemsByKind[k]; n > 0 {
			fmt.Fprintf(w, "  %-16s : \033[1m%d\033[0m\n", k, n)
		}
	}
	fmt.Fprintf(w, "  On promotion     : \033[1m%d\033[0m\n", r.DiscountedItems)
	fmt.Fprintln(w)

	fmt.Fprintf(w, "\033[1;33m  Price Statistics (after discounts)\033[0m\n")
	fmt.Fprintf(w, "  %s\n", thin)
	if r.AveragePrice > 0 {
		fmt.Fprintf(w, "  Average price : \033[1;32m$%.2f\033[0m\n", r.AveragePrice)
		fmt.Fprintf(w, "  Minimum price : \033[1;32m$%.2f\033[0m\n", r.MinPrice)
		fmt.Fprintf(w, "  Maximum price : \033[1;32m$%.2f\033[0m\n", r.MaxPrice)
	} else {
		fmt.Fprintf(w, "  No price data available\n")
	}
	fmt.Fprintln(w)

	if r.Cheapest != nil {
		fmt.Fprintf(w, "\033[1;33m  Best Value\033[0m\n")
		fmt.Fprintf(w, "  %s\n", thin)
		fmt.Fprintf(w, "  %s\n", truncate(r.Cheapest.Name, 50))
		fmt.Fprintf(w, "  Price    : \033[1;32m$%.2f\033[0m\n", EffectivePrice(r.Cheapest))
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "\033[1;33m  Biggest Savings\033[0m\n")
	fmt.Fprintf(w, "  %s\n", thin)
	if len(r.BiggestSavings) == 0 {
		fmt.Fprintf(w, "  No published discounts\n")
	} else {
		for i, sv := range r.BiggestSavings {
			fmt.Fprintf(w, "  \033[1m%d.\033[0m %-40s \033[1;31m-$%.2f\033[0m\n",
				i+1, truncate(sv.Item.Name, 38), sv.Amount)
		}
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "\033[1;33m  Items by Category\033[0m\n")
	fmt.Fprintf(w, "  %s\n", thin)
	if len(r.ItemsByCategory) == 0 {
		fmt.Fprintf(w, "  No category data\n")
	} else {
		type catCount struct {
			cat   string
			count int
		}
		var cats []catCount
		for cat, cnt := range r.ItemsByCategory {
			cats = append(cats, catCount{cat, cnt})
		}
		sort.Slice(cats, func(i, j int) bool {
			if cats[i].count != cats[j].count {
				return cats[i].count > cats[j].count
			}
			return cats[i].cat < cats[j].cat
		})
		for _, cc := range cats {
			bar := strings.Repeat("█", cc.count)
			fmt.Fprintf(w, "  %-30s %s (%d)\n", truncate(cc.cat, 28), bar, cc.count)
		}
	}

	fmt.Fprintf(w, "\n\033[1;35m%s\033[0m\n\n", sep)
}

func round2(f float64) float64 {
	return float64(int64(f*100+0.5)) / 100
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}
