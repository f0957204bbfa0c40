package storage

import (
	"context"
	"time"

	"hotel-catalog/models"
)

// CatalogWriter is the interface any snapshot backend must satisfy.
type CatalogWriter interface {
	SaveCatalog(ctx context.Context, kind models.Kind, items []*models.CatalogItem) error
	SaveAvailability(ctx context.Context, kind models.Kind, start, end time.Time, records []*models.AvailabilityRecord) error
	Close() error
}

// CandidateWriter is the interface for exporting a filtered candidate list.
type CandidateWriter interface {
	WriteCandidates(items []*models.CatalogItem) error
	Close() error
}

var (
	_ CatalogWriter   = (*SnapshotStore)(nil)
	_ CandidateWriter = (*CSVWriter)(nil)
)
