package cmd

import (
	"fmt"
	"io"
	"strings"

	"hotel-catalog/fetcher"
	"hotel-catalog/models"
	"hotel-catalog/services"
)

const (
	ansiReset  = "\033[0m"
	ansiBold   = "\033[1m"
	ansiStrike = "\033[9m"
	ansiRed    = "\033[1;31m"
	ansiGreen  = "\033[1;32m"
	ansiYellow = "\033[1;33m"
)

// priceText renders a price slot. A discounted price shows the original
// struck through before the effective price.
func priceText(pd models.PriceDisplay) string {
	if !pd.Discounted {
		return fmt.Sprintf("%s$%.2f%s", ansiBold, pd.Effective, ansiReset)
	}
	return fmt.Sprintf("%s$%.2f%s %s$%.2f%s  %s",
		ansiStrike, pd.Original, ansiReset,
		ansiGreen, pd.Effective, ansiReset,
		pd.Label)
}

// renderState prints the banner for error and degraded states, then the
// current page or the empty state. An error with no data shows only the banner.
func renderState(w io.Writer, st fetcher.State, s *services.Session) {
	switch st.Status {
	case fetcher.StatusError:
		fmt.Fprintf(w, "%s%s%s\n", ansiRed, st.Banner(), ansiReset)
		return
	case fetcher.StatusDegraded:
		fmt.Fprintf(w, "%s%s%s\n", ansiYellow, st.Banner(), ansiReset)
	}

	if s.Empty() {
		fmt.Fprintf(w, "No %s match your search. Try other dates or clear the filters.\n", plural(st.Request.Kind))
		return
	}

	c := s.Criteria()
	nights := 0
	if st.Request.Kind == models.KindRoom && c.HasDateRange() {
		nights, _ = services.Nights(c.DateRangeStart, c.DateRangeEnd)
	}

	page := s.Current()
	first := (page.Number-1)*s.PageSize() + 1
	for i, it := range page.Items {
		fmt.Fprintf(w, "%3d. %s", first+i, itemLine(it))
		if nights > 0 {
			total, _ := services.StayTotal(it, c.RoomsRequested, c.DateRangeStart, c.DateRangeEnd)
			fmt.Fprintf(w, "  %d room(s) × %d night(s) = $%.2f", c.RoomsRequested, nights, total)
		}
		fmt.Fprintln(w)
	}
	fmt.Fprintf(w, "\nPage %d of %d (%d results)\n", page.Number, page.Count, page.Total)
}

// prompt lists the interactive commands, offering paging only where a
// neighbouring page exists.
func prompt(page services.Page[*models.CatalogItem]) string {
	var cmds []string
	if page.HasNext() {
		cmds = append(cmds, "[n]ext")
	}
	if page.HasPrev() {
		cmds = append(cmds, "[p]rev")
	}
	if page.Count > 1 {
		cmds = append(cmds, "[g N]")
	}
	cmds = append(cmds, "[c]lear dates", "[r]etry", "[q]uit")
	return "\n" + strings.Join(cmds, " ") + " > "
}

func itemLine(it *models.CatalogItem) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%-34s %s", truncate(it.Name, 32), priceText(services.Display(it)))
	if it.Kind.HasCapacity() && it.Capacity > 0 {
		fmt.Fprintf(&b, "  sleeps/seats %d", it.Capacity)
	}
	if it.Category != "" {
		fmt.Fprintf(&b, "  [%s]", it.Category)
	}
	if it.Specialist != "" {
		fmt.Fprintf(&b, "  with %s", it.Specialist)
	}
	return b.String()
}

func renderDraft(w io.Writer, d *models.BookingDraft) {
	fmt.Fprintf(w, "\n%sBooking draft %s%s\n", ansiBold, d.ID, ansiReset)
	fmt.Fprintf(w, "  %s → %s (%d night(s)), %d guest(s)\n",
		models.FormatDay(d.CheckIn), models.FormatDay(d.CheckOut), d.Nights, d.Guests)
	for _, l := range d.Lines {
		fmt.Fprintf(w, "  %d × %-30s $%.2f/night  sleeps %d\n", l.Quantity, truncate(l.Name, 30), l.UnitPrice, l.Capacity*l.Quantity)
	}
	fmt.Fprintf(w, "  Capacity %d | Total %s$%.2f%s\n", d.TotalCapacity, ansiGreen, d.Total, ansiReset)
}

func plural(k models.Kind) string {
	switch k {
	case models.KindRoom:
		return "rooms"
	case models.KindSpa:
		return "spa services"
	case models.KindEvent:
		return "events"
	case models.KindHall:
		return "meeting halls"
	}
	return "items"
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-1]) + "…"
}
