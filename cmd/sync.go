package cmd

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"hotel-catalog/fetcher"
	"hotel-catalog/models"
	"hotel-catalog/services"
	"hotel-catalog/storage"
	"hotel-catalog/utils"
)

type syncOptions struct {
	start string
	days  int
}

var syncOpts syncOptions

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Save every catalog and an availability window to the PostgreSQL snapshot",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		a, err := newApp(ctx, true)
		if err != nil {
			return err
		}
		defer a.close()

		start := models.Day(time.Now())
		if syncOpts.start != "" {
			if start, err = models.ParseDay(syncOpts.start); err != nil {
				return err
			}
		}
		end := start.AddDate(0, 0, syncOpts.days)

		job := &syncJob{
			catalog:      a.catalogSource(),
			availability: a.client,
			writer:       a.store,
			pool:         utils.NewWorkerPool(a.cfg.MaxConcurrency, a.cfg.RateLimitMs),
			logger:       a.logger,
		}
		return job.run(ctx, start, end, cmd.ErrOrStderr())
	},
}

func init() {
	syncCmd.Flags().StringVar(&syncOpts.start, "start", "", "First day of the availability window (default today)")
	syncCmd.Flags().IntVar(&syncOpts.days, "days", 30, "Length of the availability window in days")
}

// syncJob copies each kind's catalog and availability into the snapshot.
type syncJob struct {
	catalog      fetcher.CatalogSource
	availability fetcher.AvailabilitySource
	writer       storage.CatalogWriter
	pool         *utils.WorkerPool
	logger       *utils.Logger
}

func (j *syncJob) run(ctx context.Context, start, end time.Time, progress io.Writer) error {
	steps := len(models.Kinds) * 2
	bar := progressbar.NewOptions(steps,
		progressbar.OptionSetWriter(progress),
		progressbar.OptionSetDescription("syncing snapshot"),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)
	normalizer := services.NewNormalizer(j.logger)

	for _, kind := range models.Kinds {
		kind := kind
		j.pool.Submit(ctx, func(ctx context.Context) error {
			defer func() { _ = bar.Add(1) }()
			raw, err := j.catalog.FetchCatalog(ctx, kind)
			if err == nil {
				err = j.writer.SaveCatalog(ctx, kind, normalizer.Normalize(raw))
			}
			if err != nil {
				return fmt.Errorf("%s catalog: %w", kind, err)
			}
			return nil
		})
		j.pool.Submit(ctx, func(ctx context.Context) error {
			defer func() { _ = bar.Add(1) }()
			records, err := j.availability.FetchAvailability(ctx, kind, start, end)
			if err == nil {
				err = j.writer.SaveAvailability(ctx, kind, start, end, records)
			}
			if err != nil {
				return fmt.Errorf("%s availability: %w", kind, err)
			}
			return nil
		})
	}
	err := j.pool.Wait()
	_ = bar.Finish()

	if err != nil {
		j.logger.Error("[sync] Snapshot incomplete: %v", err)
		return err
	}
	j.logger.Info("[sync] Snapshot updated for %s → %s", models.FormatDay(start), models.FormatDay(end))
	return nil
}
