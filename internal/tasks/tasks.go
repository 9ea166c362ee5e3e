// package tasks implements the artist analytics sync pipeline.
//
// The core abstraction is SyncEngine, which resolves one artist's daily
// metrics through priority-ordered providers and commits the first non-empty
// result. SyncJob fans the engine out across all tracked artists with bounded
// concurrency. Operations emit progress updates via channels for non-blocking
// status reporting to CLI/HTTP layers.
package tasks

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/log"
	"github.com/syruplabs/syrup/internal/models"
	"github.com/syruplabs/syrup/internal/services"
	"github.com/syruplabs/syrup/internal/shared"
)

// SyncOutcome is the per-artist result of one sync run. It exists only for
// the duration of the run; reports are logged and returned, never persisted.
type SyncOutcome struct {
	ArtistID       string
	ArtistName     string
	SourceUsed     models.Source // empty when nothing was written
	RecordsWritten int
	FellBack       bool // a configured higher-priority provider fell through first
	Skipped        bool // no provider configured for this artist
	Err            error
}

// Succeeded reports whether the sync committed records for this artist.
func (o SyncOutcome) Succeeded() bool {
	return o.SourceUsed != "" && o.Err == nil
}

// JobReport aggregates the outcomes of one full sync run.
//
// The categories are disjoint: Total = Succeeded + FallenBack + Failed + Skipped
// unless in-flight work was abandoned to a deadline.
type JobReport struct {
	Total      int
	Succeeded  int
	FallenBack int
	Failed     int
	Skipped    int
	Duration   time.Duration
	Outcomes   []SyncOutcome
}

// MetricStore is the subset of the metric repository the engine writes through.
type MetricStore interface {
	UpsertBatch(artistID string, metrics []models.DailyMetric) (int, error)
}

// ArtistStore is the subset of the artist repository the sync pipeline needs.
type ArtistStore interface {
	List() ([]*models.Artist, error)
	SetLastSyncedAt(id string, t time.Time) error
}

// ArtistSyncer resolves one artist's metrics for the sync window.
type ArtistSyncer interface {
	SyncArtist(ctx context.Context, artist *models.Artist) SyncOutcome
}

// SyncEngine implements ArtistSyncer by walking providers in priority order.
//
// The first provider that is configured for the artist and returns at least
// one record wins: its records are committed as a batch and the artist's
// last-synced marker advances. Errors and empty results both fall through to
// the next provider. If nothing produces records, the store is left untouched
// so the artist is retried, not silently marked current, on the next run.
type SyncEngine struct {
	providers  []services.Provider
	metrics    MetricStore
	artists    ArtistStore
	windowDays int
	logger     *log.Logger
	now        func() time.Time
}

// SyncEngineOpts contains dependencies and tunables for a SyncEngine.
type SyncEngineOpts struct {
	Providers  []services.Provider // priority order, primary first
	Metrics    MetricStore
	Artists    ArtistStore
	WindowDays int
	Logger     *log.Logger
}

// NewSyncEngine creates a new SyncEngine with the provided dependencies.
func NewSyncEngine(opts SyncEngineOpts) *SyncEngine {
	if opts.WindowDays <= 0 {
		opts.WindowDays = 90
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}

	return &SyncEngine{
		providers:  opts.Providers,
		metrics:    opts.Metrics,
		artists:    opts.Artists,
		windowDays: opts.WindowDays,
		logger:     opts.Logger,
		now:        time.Now,
	}
}

// SyncArtist resolves and commits one artist's metrics for the sync window.
//
// All provider and write failures are converted into the returned outcome;
// this method never propagates an error that could abort the fan-out.
func (e *SyncEngine) SyncArtist(ctx context.Context, artist *models.Artist) SyncOutcome {
	outcome := SyncOutcome{ArtistID: artist.ID, ArtistName: artist.Name}

	var errs []error
	attempted := 0

	for _, provider := range e.providers {
		externalID := artist.ExternalID(provider.Source())
		if externalID == "" {
			// Not configured for this artist; a skip, not a failure.
			continue
		}

		records, err := provider.Fetch(ctx, externalID, e.windowDays)
		if err != nil {
			e.logger.Warn("provider fetch failed",
				"artist", artist.Name, "provider", provider.Name(), "error", err)
			errs = append(errs, err)
			attempted++
			continue
		}

		if len(records) == 0 {
			e.logger.Debug("provider returned no data",
				"artist", artist.Name, "provider", provider.Name())
			attempted++
			continue
		}

		written, err := e.metrics.UpsertBatch(artist.ID, records)
		if err != nil {
			// The batch rolled back whole; the artist is failed for this run
			// and no lower-priority provider is consulted.
			outcome.Err = err
			return outcome
		}

		outcome.SourceUsed = provider.Source()
		outcome.RecordsWritten = written
		outcome.FellBack = attempted > 0

		if err := e.artists.SetLastSyncedAt(artist.ID, e.now()); err != nil {
			// Records are committed; surface the marker failure without
			// pretending the write didn't happen.
			outcome.Err = err
		}

		e.logger.Info("artist synced",
			"artist", artist.Name, "source", outcome.SourceUsed, "records", written, "fallback", outcome.FellBack)
		return outcome
	}

	if attempted == 0 {
		outcome.Skipped = true
		e.logger.Debug("artist skipped, no provider configured", "artist", artist.Name)
		return outcome
	}

	// Nothing written. Err stays nil when every provider was merely empty;
	// the store never records "we tried and got nothing" as a fact.
	outcome.Err = errors.Join(errs...)
	return outcome
}
