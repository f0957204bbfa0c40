package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"hotel-catalog/fetcher"
	"hotel-catalog/models"
	"hotel-catalog/services"
	"hotel-catalog/storage"
)

type searchOptions struct {
	kind        string
	start       string
	end         string
	guests      int
	rooms       int
	category    string
	specialist  string
	text        string
	everyNight  bool
	page        int
	interactive bool
	csvPath     string
	similar     string
	// listing receives the rendered page when the CSV export owns stdout.
	listing io.Writer
}

var searchOpts searchOptions

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "List one catalog page, filtered and paginated",
	Example: `  hotel-catalog search --kind rooms --start 2024-06-01 --end 2024-06-03 --guests 2
  hotel-catalog search --kind spa --q massage --interactive`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		a, err := newApp(ctx, false)
		if err != nil {
			return err
		}
		defer a.close()

		if searchOpts.csvPath == "" {
			searchOpts.csvPath = a.cfg.CSVOutputPath
		}
		searchOpts.listing = cmd.ErrOrStderr()
		return runSearch(ctx, a.loader(), searchOpts, a.cfg.PageSize, cmd.InOrStdin(), cmd.OutOrStdout())
	},
}

func init() {
	f := searchCmd.Flags()
	f.StringVar(&searchOpts.kind, "kind", "rooms", "Catalog: rooms, spa, events or halls")
	f.StringVar(&searchOpts.start, "start", "", "Window start (YYYY-MM-DD)")
	f.StringVar(&searchOpts.end, "end", "", "Window end (YYYY-MM-DD)")
	f.IntVar(&searchOpts.guests, "guests", 1, "Party size")
	f.IntVar(&searchOpts.rooms, "rooms", 1, "Rooms requested")
	f.StringVar(&searchOpts.category, "category", "", "Category id")
	f.StringVar(&searchOpts.specialist, "specialist", "", "Specialist id")
	f.StringVar(&searchOpts.text, "q", "", "Free text matched against name and description")
	f.BoolVar(&searchOpts.everyNight, "every-night", false, "Require inventory on every day of the window")
	f.IntVar(&searchOpts.page, "page", 1, "Page to show")
	f.BoolVar(&searchOpts.interactive, "interactive", false, "Read n/p/g N/c/r/q commands from stdin")
	f.StringVar(&searchOpts.csvPath, "csv", "", "Export every candidate to this CSV file (- for stdout)")
	f.StringVar(&searchOpts.similar, "similar", "", "Also list items similar to this id")
}

// criteria turns the flags into search criteria.
func (o searchOptions) criteria() (models.SearchCriteria, error) {
	c := models.SearchCriteria{
		Guests:         o.guests,
		RoomsRequested: o.rooms,
		Category:       o.category,
		Specialist:     o.specialist,
		FreeText:       o.text,
	}
	if o.everyNight {
		c.Rule = models.EveryDay
	}

	var err error
	if o.start != "" {
		if c.DateRangeStart, err = models.ParseDay(o.start); err != nil {
			return c, fmt.Errorf("%w: start: %v", models.ErrInvalidCriteria, err)
		}
	}
	if o.end != "" {
		if c.DateRangeEnd, err = models.ParseDay(o.end); err != nil {
			return c, fmt.Errorf("%w: end: %v", models.ErrInvalidCriteria, err)
		}
	}
	c = c.Normalize()
	return c, c.Validate()
}

func runSearch(ctx context.Context, loader *fetcher.Loader, o searchOptions, pageSize int, in io.Reader, out io.Writer) error {
	kind, err := models.ParseKind(o.kind)
	if err != nil {
		return err
	}
	criteria, err := o.criteria()
	if err != nil {
		return err
	}

	req := fetcher.Request{Kind: kind}
	if criteria.HasDateRange() {
		req.Start, req.End = criteria.DateRangeStart, criteria.DateRangeEnd
	}
	st := loader.Load(ctx, req)

	session := services.NewSession(st.Items, st.Availability, pageSize)
	if err := session.Apply(criteria); err != nil {
		return err
	}
	session.GoTo(o.page)

	view := out
	if o.csvPath == "-" {
		view = o.listing
		if view == nil {
			view = io.Discard
		}
	}
	renderState(view, st, session)

	if st.Status != fetcher.StatusError {
		if err := exportCandidates(o.csvPath, session.Candidates(), out); err != nil {
			return err
		}
		if o.similar != "" {
			renderSimilar(view, st.Items, o.similar)
		}
	}

	if !o.interactive {
		if st.Status == fetcher.StatusError {
			return st.Err
		}
		return nil
	}

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(view, prompt(session.Current()))
		if !scanner.Scan() {
			return scanner.Err()
		}
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "n":
			session.Next()
		case "p":
			session.Prev()
		case "g":
			if len(fields) < 2 {
				fmt.Fprintln(view, "usage: g N")
				continue
			}
			n, err := strconv.Atoi(fields[1])
			if err != nil {
				fmt.Fprintf(view, "not a page number: %s\n", fields[1])
				continue
			}
			session.GoTo(n)
		case "c":
			session.ClearDates()
		case "r":
			st = loader.Retry(ctx)
			session.Reload(st.Items, st.Availability)
		case "q":
			return nil
		default:
			fmt.Fprintf(view, "unknown command %q\n", fields[0])
			continue
		}
		renderState(view, st, session)
	}
}

func renderSimilar(w io.Writer, items []*models.CatalogItem, id string) {
	for _, it := range items {
		if it.ID != id {
			continue
		}
		similar := services.Similar(items, it, 3)
		if len(similar) == 0 {
			return
		}
		fmt.Fprintf(w, "\nSimilar to %s:\n", it.Name)
		for _, s := range similar {
			fmt.Fprintf(w, "  - %s\n", itemLine(s))
		}
		return
	}
}

// exportCandidates writes items as CSV to path, or to out when path is "-".
func exportCandidates(path string, items []*models.CatalogItem, out io.Writer) error {
	var (
		w   *storage.CSVWriter
		err error
	)
	switch path {
	case "":
		return nil
	case "-":
		w, err = storage.NewCSVWriterTo(out)
	default:
		w, err = storage.NewCSVWriter(path)
	}
	if err != nil {
		return err
	}
	if err := w.WriteCandidates(items); err != nil {
		_ = w.Close()
		return err
	}
	return w.Close()
}
