// ABOUTME: Orchestrates scan, recommend, and feedback against one capability store
// ABOUTME: Owns the staleness policy and the rebuild-on-corruption behavior
package engine

import (
	"context"
	"os"
	"time"

	"github.com/toolscout/toolscout/internal/builder"
	"github.com/toolscout/toolscout/internal/capability"
	"github.com/toolscout/toolscout/internal/collector"
	"github.com/toolscout/toolscout/internal/events"
	"github.com/toolscout/toolscout/internal/feedback"
	"github.com/toolscout/toolscout/internal/recommend"
	"github.com/toolscout/toolscout/internal/scoring"
	"github.com/toolscout/toolscout/internal/store"
)

// DefaultStaleness is how old an index may grow before Recommend
// triggers an incremental rescan. The threshold lives here, in the
// calling layer, never inside the scorer or ranker.
const DefaultStaleness = 3600 * time.Second

// ScanMode selects how much of the configured location set a scan covers
type ScanMode string

const (
	// ModeFull scans every configured location, so orphan pruning can
	// consider the whole index.
	ModeFull ScanMode = "full"
	// ModeIncremental scans the given locations only; entries from
	// uncovered locations are retained untouched.
	ModeIncremental ScanMode = "incremental"
)

// Options configures an Engine
type Options struct {
	Store     *store.Store
	Collector *collector.Collector
	Scorer    *scoring.Scorer
	Strategy  feedback.Strategy // nil selects the default nudge strategy
	Audit     events.Writer     // nil disables the audit trail
	Locations []string          // configured scan locations
	Staleness time.Duration     // zero selects DefaultStaleness
}

// Engine is the local facade over the capability index: scan merges
// discovery output into the store, recommend ranks an immutable snapshot,
// feedback nudges learned fields. All three share one store, injected
// rather than reached through any global state.
type Engine struct {
	store     *store.Store
	collector *collector.Collector
	builder   *builder.Builder
	ranker    *recommend.Ranker
	updater   *feedback.Updater
	audit     events.Writer
	locations []string
	staleness time.Duration
}

// New creates an Engine from options
func New(opts Options) *Engine {
	scorer := opts.Scorer
	if scorer == nil {
		scorer = scoring.New(scoring.Options{})
	}
	coll := opts.Collector
	if coll == nil {
		coll = collector.New()
	}
	staleness := opts.Staleness
	if staleness <= 0 {
		staleness = DefaultStaleness
	}
	return &Engine{
		store:     opts.Store,
		collector: coll,
		builder:   builder.New(),
		ranker:    recommend.New(scorer),
		updater:   feedback.NewUpdater(opts.Store, opts.Strategy),
		audit:     opts.Audit,
		locations: opts.Locations,
		staleness: staleness,
	}
}

// Scan collects the given locations (all configured locations when nil),
// merges the result against the stored index, and persists it. A
// corrupted prior index is discarded and rebuilt rather than surfaced.
// Cancelling ctx yields a partial index with error statistics.
func (e *Engine) Scan(ctx context.Context, locations []string, mode ScanMode) (*capability.Index, error) {
	if len(locations) == 0 || mode == ModeFull {
		locations = e.locations
	}

	started := time.Now()
	batch := e.collector.Collect(ctx, locations)

	// The merge reads the prior index and writes the replacement under
	// the store's writer lock, so feedback committed mid-scan is part of
	// the prior the builder copies forward, never overwritten. Only the
	// collection itself runs outside the lock.
	var idx *capability.Index
	err := e.store.Replace(func(prior *capability.Index) (*capability.Index, error) {
		idx = e.builder.Build(prior, batch, time.Now())
		idx.Statistics.ScanDuration = time.Since(started)
		return idx, nil
	})
	if err != nil {
		return nil, err
	}

	e.record(&events.Event{
		Timestamp: time.Now(),
		Kind:      events.KindScan,
		Context: map[string]any{
			"mode":         string(mode),
			"locations":    locations,
			"capabilities": idx.TotalCapabilities,
			"scanned":      idx.Statistics.Scanned,
			"skipped":      idx.Statistics.Skipped,
			"errors":       len(idx.Statistics.Errors),
		},
	})
	return idx, nil
}

// Recommend ranks the stored index for the query. A missing or invalid
// index, or one older than the staleness threshold, triggers a rescan
// first when scan locations are configured.
func (e *Engine) Recommend(ctx context.Context, query string, constraints recommend.Constraints) (*recommend.Recommendation, error) {
	idx, err := e.loadFresh(ctx)
	if err != nil {
		return nil, err
	}
	return e.ranker.Rank(idx, query, constraints, time.Now()), nil
}

// loadFresh returns a usable index snapshot, rescanning when the stored
// one is absent, structurally invalid, or stale.
func (e *Engine) loadFresh(ctx context.Context) (*capability.Index, error) {
	idx, err := e.store.Load()
	switch {
	case err == nil:
		if idx.Age(time.Now()) > e.staleness && len(e.locations) > 0 {
			if fresh, scanErr := e.Scan(ctx, nil, ModeIncremental); scanErr == nil {
				return fresh, nil
			}
			// A failed refresh still leaves the stale snapshot usable.
		}
		return idx, nil
	case os.IsNotExist(err), store.IsValidation(err):
		if len(e.locations) == 0 {
			return capability.NewIndex(), nil
		}
		return e.Scan(ctx, nil, ModeFull)
	default:
		return nil, err
	}
}

// Accepted records that the user accepted a recommendation for id.
// query is the task description that produced the recommendation; empty
// when the feedback arrives outside a recommendation flow.
func (e *Engine) Accepted(id, query string) error {
	if err := e.updater.Accepted(id, time.Now()); err != nil {
		return err
	}
	e.record(&events.Event{Timestamp: time.Now(), Kind: events.KindAccepted, CapabilityID: id, Query: query})
	return nil
}

// Rejected records that the user declined a recommendation for id
func (e *Engine) Rejected(id, query string) error {
	if err := e.updater.Rejected(id); err != nil {
		return err
	}
	e.record(&events.Event{Timestamp: time.Now(), Kind: events.KindRejected, CapabilityID: id, Query: query})
	return nil
}

// Completed records a task outcome for id
func (e *Engine) Completed(id string, success bool) error {
	if err := e.updater.Completed(id, success); err != nil {
		return err
	}
	e.record(&events.Event{Timestamp: time.Now(), Kind: events.KindCompleted, CapabilityID: id, Success: &success})
	return nil
}

// Index returns the current stored index without freshness checks.
// Missing and invalid indexes both read as empty.
func (e *Engine) Index() (*capability.Index, error) {
	idx, err := e.store.Load()
	if err != nil {
		if os.IsNotExist(err) || store.IsValidation(err) {
			return capability.NewIndex(), nil
		}
		return nil, err
	}
	return idx, nil
}

// record appends an audit event, best-effort. Audit failures never fail
// the operation they describe.
func (e *Engine) record(event *events.Event) {
	if e.audit == nil {
		return
	}
	_ = e.audit.Write(event)
}
