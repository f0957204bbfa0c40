package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"hotel-catalog/fetcher"
	"hotel-catalog/models"
	"hotel-catalog/services"
)

type quoteOptions struct {
	start   string
	end     string
	guests  int
	picks   []string
	proceed bool
}

var quoteOpts quoteOptions

var quoteCmd = &cobra.Command{
	Use:   "quote",
	Short: "Price a combination of rooms for a stay",
	Example: `  hotel-catalog quote --start 2024-06-01 --end 2024-06-04 --guests 5 --pick r1=1 --pick r2=2 --proceed`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		a, err := newApp(ctx, false)
		if err != nil {
			return err
		}
		defer a.close()
		return runQuote(ctx, a.loader(), quoteOpts, cmd.OutOrStdout())
	},
}

func init() {
	f := quoteCmd.Flags()
	f.StringVar(&quoteOpts.start, "start", "", "Check-in (YYYY-MM-DD)")
	f.StringVar(&quoteOpts.end, "end", "", "Check-out (YYYY-MM-DD)")
	f.IntVar(&quoteOpts.guests, "guests", 1, "Party size")
	f.StringArrayVar(&quoteOpts.picks, "pick", nil, "Room and quantity as id=qty; repeatable")
	f.BoolVar(&quoteOpts.proceed, "proceed", false, "Create a booking draft when the rooms fit the party")
	_ = quoteCmd.MarkFlagRequired("start")
	_ = quoteCmd.MarkFlagRequired("end")
}

func parsePick(s string) (string, int, error) {
	id, qty, found := strings.Cut(s, "=")
	if !found {
		return s, 1, nil
	}
	n, err := strconv.Atoi(qty)
	if err != nil || n < 0 {
		return "", 0, fmt.Errorf("bad quantity in --pick %q", s)
	}
	return id, n, nil
}

func runQuote(ctx context.Context, loader *fetcher.Loader, o quoteOptions, out io.Writer) error {
	checkIn, err := models.ParseDay(o.start)
	if err != nil {
		return fmt.Errorf("check-in: %w", err)
	}
	checkOut, err := models.ParseDay(o.end)
	if err != nil {
		return fmt.Errorf("check-out: %w", err)
	}
	nights, err := services.Nights(checkIn, checkOut)
	if err != nil {
		return err
	}

	st := loader.Load(ctx, fetcher.Request{Kind: models.KindRoom, Start: checkIn, End: checkOut})
	if st.Status == fetcher.StatusError {
		fmt.Fprintf(out, "%s%s%s\n", ansiRed, st.Banner(), ansiReset)
		return st.Err
	}
	if st.Status == fetcher.StatusDegraded {
		fmt.Fprintf(out, "%s%s%s\n", ansiYellow, st.Banner(), ansiReset)
	}

	// Rooms are combined to fit the party, so a single room need not hold
	// every guest; only the date window narrows the list.
	criteria := models.SearchCriteria{DateRangeStart: checkIn, DateRangeEnd: checkOut}
	rooms := services.NewFilterEngine().Filter(st.Items, criteria.Normalize(), st.Availability)

	sel := services.NewSelection(rooms)
	for id, n := range services.BestAvailable(st.Availability, checkIn, checkOut) {
		if err := sel.SetLimit(id, n); err != nil && !errors.Is(err, services.ErrUnknownItem) {
			return err
		}
	}

	for _, p := range o.picks {
		id, qty, err := parsePick(p)
		if err != nil {
			return err
		}
		if err := sel.Set(id, qty); err != nil {
			return fmt.Errorf("%w (not available for these dates)", err)
		}
		if got := sel.Quantity(id); got < qty {
			fmt.Fprintf(out, "Only %d of %s left for these dates\n", got, id)
		}
	}

	fmt.Fprintf(out, "%d room(s) available for %d night(s)\n", len(rooms), nights)
	for _, it := range rooms {
		marker := " "
		if q := sel.Quantity(it.ID); q > 0 {
			marker = strconv.Itoa(q)
		}
		fmt.Fprintf(out, "  [%s] %-10s %s\n", marker, it.ID, itemLine(it))
	}

	fmt.Fprintf(out, "\nCapacity %d / %d guests | $%.2f per night | $%.2f total\n",
		sel.TotalCapacity(), o.guests, sel.TotalCost(), sel.StayTotal(nights))
	if short := sel.Shortfall(o.guests); short > 0 {
		fmt.Fprintf(out, "%sAdd rooms for %d more guest(s) to continue.%s\n", ansiYellow, short, ansiReset)
	}

	if !o.proceed {
		return nil
	}
	draft, err := sel.Proceed(o.guests, checkIn, checkOut)
	if err != nil {
		return err
	}
	renderDraft(out, draft)
	return nil
}
