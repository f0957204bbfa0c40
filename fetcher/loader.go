package fetcher

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"hotel-catalog/models"
	"hotel-catalog/services"
	"hotel-catalog/utils"
)

// Status is the visible state of a catalog page's data.
type Status string

const (
	StatusIdle     Status = "idle"
	StatusLoading  Status = "loading"
	StatusReady    Status = "ready"
	StatusError    Status = "error"
	StatusDegraded Status = "degraded"
)

// ErrNothingToRetry is returned by Retry before any Load.
var ErrNothingToRetry = errors.New("fetcher: nothing to retry")

// Request names the catalog to load and, optionally, the availability window.
type Request struct {
	Kind  models.Kind
	Start time.Time
	End   time.Time
}

// HasWindow reports whether availability should be fetched.
func (r Request) HasWindow() bool {
	return !r.Start.IsZero() && !r.End.IsZero()
}

// State is what a page renders from. In StatusDegraded the data comes from
// the saved snapshot and Err still holds the live failure.
type State struct {
	Status       Status
	Request      Request
	Items        []*models.CatalogItem
	Availability []*models.AvailabilityRecord
	Err          error
	FetchedAt    time.Time
}

// Snapshot is previously saved catalog data used when the API is down.
type Snapshot interface {
	LoadCatalog(ctx context.Context, kind models.Kind) ([]*models.CatalogItem, error)
	LoadAvailability(ctx context.Context, kind models.Kind, start, end time.Time) ([]*models.AvailabilityRecord, error)
}

// Loader runs the fetch sequence for one page: catalog first, then
// availability. Failures are not retried automatically; callers offer Retry.
type Loader struct {
	catalog      CatalogSource
	availability AvailabilitySource
	normalizer   *services.Normalizer
	snapshot     Snapshot
	logger       *utils.Logger

	mu    sync.Mutex
	state State
	last  *Request
}

// NewLoader creates a Loader. availability may be nil when the page never
// filters by date.
func NewLoader(catalog CatalogSource, availability AvailabilitySource, logger *utils.Logger) *Loader {
	return &Loader{
		catalog:      catalog,
		availability: availability,
		normalizer:   services.NewNormalizer(logger),
		logger:       logger,
		state:        State{Status: StatusIdle},
	}
}

// WithSnapshot enables degraded mode backed by s.
func (l *Loader) WithSnapshot(s Snapshot) *Loader {
	l.snapshot = s
	return l
}

// State returns the current state.
func (l *Loader) State() State {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state
}

// Load fetches req and returns the resulting state.
func (l *Loader) Load(ctx context.Context, req Request) State {
	l.mu.Lock()
	l.last = &req
	l.state = State{Status: StatusLoading, Request: req}
	l.mu.Unlock()

	items, availability, err := l.fetch(ctx, req)

	st := State{Request: req, FetchedAt: time.Now()}
	switch {
	case err == nil:
		st.Status = StatusReady
		st.Items = items
		st.Availability = availability
	default:
		l.logger.Error("[loader] %s: %v", req.Kind, err)
		st.Err = err
		st.Status = StatusError
		if saved, savedAvail, ok := l.fallback(ctx, req); ok {
			l.logger.Warn("[loader] %s: showing %d saved items (degraded)", req.Kind, len(saved))
			st.Status = StatusDegraded
			st.Items = saved
			st.Availability = savedAvail
		}
	}

	l.mu.Lock()
	l.state = st
	l.mu.Unlock()
	return st
}

// Retry repeats the last Load.
func (l *Loader) Retry(ctx context.Context) State {
	l.mu.Lock()
	last := l.last
	l.mu.Unlock()

	if last == nil {
		return State{Status: StatusError, Err: ErrNothingToRetry}
	}
	l.logger.Info("[loader] Retrying %s", last.Kind)
	return l.Load(ctx, *last)
}

func (l *Loader) fetch(ctx context.Context, req Request) ([]*models.CatalogItem, []*models.AvailabilityRecord, error) {
	raw, err := l.catalog.FetchCatalog(ctx, req.Kind)
	if err != nil {
		return nil, nil, err
	}
	items := l.normalizer.Normalize(raw)

	if !req.HasWindow() || l.availability == nil {
		return items, nil, nil
	}
	availability, err := l.availability.FetchAvailability(ctx, req.Kind, req.Start, req.End)
	if err != nil {
		return nil, nil, err
	}
	return items, availability, nil
}

func (l *Loader) fallback(ctx context.Context, req Request) ([]*models.CatalogItem, []*models.AvailabilityRecord, bool) {
	if l.snapshot == nil {
		return nil, nil, false
	}
	items, err := l.snapshot.LoadCatalog(ctx, req.Kind)
	if err != nil {
		l.logger.Warn("[loader] snapshot unavailable: %v", err)
		return nil, nil, false
	}
	if len(items) == 0 {
		return nil, nil, false
	}
	if !req.HasWindow() {
		return items, nil, true
	}
	availability, err := l.snapshot.LoadAvailability(ctx, req.Kind, req.Start, req.End)
	if err != nil {
		l.logger.Warn("[loader] snapshot availability unavailable: %v", err)
		return nil, nil, false
	}
	return items, availability, true
}

// Banner is the user-facing line for error and degraded states; empty otherwise.
func (s State) Banner() string {
	switch s.Status {
	case StatusError:
		return fmt.Sprintf("Could not load %s: %v. Use retry to try again.", s.Request.Kind, s.Err)
	case StatusDegraded:
		return fmt.Sprintf("Live %s data is unavailable (%v). Showing saved data from the last sync.", s.Request.Kind, s.Err)
	}
	return ""
}
