package cmd

import (
	"context"
	"io"

	"github.com/spf13/cobra"

	"hotel-catalog/fetcher"
	"hotel-catalog/models"
	"hotel-catalog/services"
	"hotel-catalog/utils"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print catalog insights across every kind",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		a, err := newApp(ctx, false)
		if err != nil {
			return err
		}
		defer a.close()
		return runReport(ctx, a.loader(), a.logger, cmd.OutOrStdout())
	},
}

// runReport loads every kind and prints the insights over whatever loaded.
// A kind that fails without a snapshot is skipped with a warning.
func runReport(ctx context.Context, loader *fetcher.Loader, logger *utils.Logger, out io.Writer) error {
	var all []*models.CatalogItem
	for _, kind := range models.Kinds {
		st := loader.Load(ctx, fetcher.Request{Kind: kind})
		if st.Status == fetcher.StatusError {
			logger.Warn("[report] Skipping %s: %v", kind, st.Err)
			continue
		}
		if st.Status == fetcher.StatusDegraded {
			logger.Warn("[report] %s", st.Banner())
		}
		all = append(all, st.Items...)
	}

	insights := services.NewInsightService(logger)
	insights.Print(out, insights.Generate(all))
	return nil
}
