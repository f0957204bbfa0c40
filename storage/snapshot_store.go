package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"

	"hotel-catalog/models"
	"hotel-catalog/utils"
)

const batchSize = 50

// SnapshotStore keeps the last synced catalog and availability in PostgreSQL
// so pages can fall back to them, flagged as degraded, when the API is down.
type SnapshotStore struct {
	db     *sql.DB
	logger *utils.Logger
}

// NewSnapshotStore opens a connection to PostgreSQL, waits for it to accept
// pings, runs schema migrations and returns a ready-to-use store.
func NewSnapshotStore(ctx context.Context, dsn string, retry *utils.RetryConfig, logger *utils.Logger) (*SnapshotStore, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: open: %w", err)
	}

	if err := retry.Do(ctx, "postgres-ping", db.PingContext); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres: %w", err)
	}

	s := &SnapshotStore{db: db, logger: logger}
	if err := s.migrate(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres: migrate: %w", err)
	}

	return s, nil
}

func (s *SnapshotStore) migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS catalog_items (
			kind              VARCHAR(16)   NOT NULL,
			id                TEXT          NOT NULL,
			position          INTEGER       NOT NULL,
			name              TEXT          NOT NULL,
			description       TEXT          NOT NULL DEFAULT '',
			capacity          INTEGER       NOT NULL DEFAULT 0,
			price             NUMERIC(12,2) NOT NULL DEFAULT 0,
			discount_type     VARCHAR(16),
			discount_value    NUMERIC(12,2),
			discount_name     TEXT,
			discount_active   BOOLEAN,
			discount_publish  BOOLEAN,
			category          TEXT          NOT NULL DEFAULT '',
			specialist        TEXT          NOT NULL DEFAULT '',
			images            TEXT[]        NOT NULL DEFAULT '{}',
			synced_at         TIMESTAMPTZ   NOT NULL DEFAULT NOW(),
			PRIMARY KEY (kind, id)
		);

		CREATE TABLE IF NOT EXISTS availability (
			kind        VARCHAR(16) NOT NULL,
			service_id  TEXT        NOT NULL,
			day         DATE        NOT NULL,
			available   INTEGER     NOT NULL DEFAULT 0,
			synced_at   TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			PRIMARY KEY (kind, service_id, day)
		);

		CREATE INDEX IF NOT EXISTS idx_catalog_items_position ON catalog_items(kind, position);
		CREATE INDEX IF NOT EXISTS idx_availability_day       ON availability(kind, day);
	`)
	return err
}

// SaveCatalog replaces the stored catalog of kind with items.
func (s *SnapshotStore) SaveCatalog(ctx context.Context, kind models.Kind, items []*models.CatalogItem) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("postgres: begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "DELETE FROM catalog_items WHERE kind = $1", string(kind)); err != nil {
		return fmt.Errorf("postgres: clear %s: %w", kind, err)
	}

	for i := 0; i < len(items); i += batchSize {
		end := i + batchSize
		if end > len(items) {
			end = len(items)
		}
		query, args := itemInsert(kind, i, items[i:end])
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("postgres: insert %s: %w", kind, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("postgres: commit: %w", err)
	}
	s.logger.Info("[snapshot] Saved %d %s items", len(items), kind)
	return nil
}

const itemColumns = 15

// itemInsert builds one multi-row INSERT for a batch. offset is the position
// of the batch's first item in the catalog.
func itemInsert(kind models.Kind, offset int, batch []*models.CatalogItem) (string, []interface{}) {
	valueStrings := make([]string, 0, len(batch))
	valueArgs := make([]interface{}, 0, len(batch)*itemColumns)

	for idx, it := range batch {
		base := idx * itemColumns
		ph := make([]string, itemColumns)
		for c := range ph {
			ph[c] = fmt.Sprintf("$%d", base+c+1)
		}
		valueStrings = append(valueStrings, "("+strings.Join(ph, ",")+")")

		var dType, dName sql.NullString
		var dValue sql.NullFloat64
		var dActive, dPublish sql.NullBool
		if d := it.Discount; d != nil {
			dType = sql.NullString{String: string(d.Type), Valid: true}
			dName = sql.NullString{String: d.Name, Valid: true}
			dValue = sql.NullFloat64{Float64: d.Value, Valid: true}
			dActive = sql.NullBool{Bool: d.Active, Valid: true}
			dPublish = sql.NullBool{Bool: d.PublishWebsite, Valid: true}
		}

		images := it.Images
		if images == nil {
			images = []string{}
		}

		valueArgs = append(valueArgs,
			string(kind), it.ID, offset+idx, it.Name, it.Description, it.Capacity, it.Price,
			dType, dValue, dName, dActive, dPublish,
			it.Category, it.Specialist, pq.Array(images))
	}

	query := fmt.Sprintf(`
		INSERT INTO catalog_items (kind, id, position, name, description, capacity, price,
			discount_type, discount_value, discount_name, discount_active, discount_publish,
			category, specialist, images)
		VALUES %s
	`, strings.Join(valueStrings, ","))
	return query, valueArgs
}

// SaveAvailability replaces the stored records of kind inside [start, end].
func (s *SnapshotStore) SaveAvailability(ctx context.Context, kind models.Kind, start, end time.Time, records []*models.AvailabilityRecord) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("postgres: begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx,
		"DELETE FROM availability WHERE kind = $1 AND day BETWEEN $2 AND $3",
		string(kind), models.Day(start), models.Day(end)); err != nil {
		return fmt.Errorf("postgres: clear %s availability: %w", kind, err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO availability (kind, service_id, day, available)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (kind, service_id, day) DO UPDATE SET available = EXCLUDED.available, synced_at = NOW()
	`)
	if err != nil {
		return fmt.Errorf("postgres: prepare: %w", err)
	}
	defer stmt.Close()

	for _, r := range records {
		if _, err := stmt.ExecContext(ctx, string(kind), r.ServiceID, models.Day(r.Date), r.Available); err != nil {
			return fmt.Errorf("postgres: insert availability: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("postgres: commit: %w", err)
	}
	s.logger.Info("[snapshot] Saved %d %s availability records", len(records), kind)
	return nil
}

// LoadCatalog returns the stored catalog of kind in its original order.
func (s *SnapshotStore) LoadCatalog(ctx context.Context, kind models.Kind) ([]*models.CatalogItem, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, description, capacity, price,
		       discount_type, discount_value, discount_name, discount_active, discount_publish,
		       category, specialist, images
		FROM catalog_items
		WHERE kind = $1
		ORDER BY position
	`, string(kind))
	if err != nil {
		return nil, fmt.Errorf("postgres: load %s: %w", kind, err)
	}
	defer rows.Close()

	var items []*models.CatalogItem
	for rows.Next() {
		it := &models.CatalogItem{Kind: kind}
		var dType, dName sql.NullString
		var dValue sql.NullFloat64
		var dActive, dPublish sql.NullBool
		if err := rows.Scan(
			&it.ID, &it.Name, &it.Description, &it.Capacity, &it.Price,
			&dType, &dValue, &dName, &dActive, &dPublish,
			&it.Category, &it.Specialist, pq.Array(&it.Images),
		); err != nil {
			return nil, fmt.Errorf("postgres: scan row: %w", err)
		}
		if dType.Valid {
			it.Discount = &models.Discount{
				Type:           models.DiscountType(dType.String),
				Value:          dValue.Float64,
				Name:           dName.String,
				Active:         dActive.Bool,
				PublishWebsite: dPublish.Bool,
			}
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// LoadAvailability returns the stored records of kind inside [start, end].
func (s *SnapshotStore) LoadAvailability(ctx context.Context, kind models.Kind, start, end time.Time) ([]*models.AvailabilityRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT service_id, day, available
		FROM availability
		WHERE kind = $1 AND day BETWEEN $2 AND $3
		ORDER BY day, service_id
	`, string(kind), models.Day(start), models.Day(end))
	if err != nil {
		return nil, fmt.Errorf("postgres: load %s availability: %w", kind, err)
	}
	defer rows.Close()

	var records []*models.AvailabilityRecord
	for rows.Next() {
		r := &models.AvailabilityRecord{}
		if err := rows.Scan(&r.ServiceID, &r.Date, &r.Available); err != nil {
			return nil, fmt.Errorf("postgres: scan row: %w", err)
		}
		r.Date = models.Day(r.Date)
		records = append(records, r)
	}
	return records, rows.Err()
}

func (s *SnapshotStore) Close() error {
	return s.db.Close()
}
