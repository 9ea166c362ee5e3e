package tasks

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/syruplabs/syrup/internal/models"
	"github.com/syruplabs/syrup/internal/shared"
	"golang.org/x/time/rate"
)

// SyncJob fans the sync engine out across all tracked artists.
//
// This implements a worker pool over one task per artist. Workers share only
// the channels; each task owns exactly its artist's rows, so there is no
// cross-artist contention. One artist's failure never cancels or blocks any
// other artist's processing.
type SyncJob struct {
	syncer    ArtistSyncer
	artists   ArtistStore
	workers   int
	rateLimit float64
	logger    *log.Logger
}

// SyncJobOpts contains dependencies and tunables for a SyncJob.
type SyncJobOpts struct {
	Syncer    ArtistSyncer
	Artists   ArtistStore
	Workers   int     // concurrent workers (default: 5, max: 10)
	RateLimit float64 // artist dispatches per second (default: 5)
	Logger    *log.Logger
}

// NewSyncJob creates a new SyncJob with the provided dependencies.
func NewSyncJob(opts SyncJobOpts) *SyncJob {
	if opts.Workers <= 0 {
		opts.Workers = 5
	}
	if opts.Workers > 10 {
		opts.Workers = 10
	}
	if opts.RateLimit <= 0 {
		opts.RateLimit = 5.0
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}

	return &SyncJob{
		syncer:    opts.Syncer,
		artists:   opts.Artists,
		workers:   opts.Workers,
		rateLimit: opts.RateLimit,
		logger:    opts.Logger,
	}
}

// Run enumerates all tracked artists and syncs each one concurrently,
// waiting for every task to finish before returning the aggregated report.
//
// An empty artist set completes immediately with a zero report. Run only
// returns an error when enumeration itself fails; per-artist failures are
// folded into the report.
func (j *SyncJob) Run(ctx context.Context, progress chan<- ProgressUpdate) (*JobReport, error) {
	start := time.Now()

	artists, err := j.artists.List()
	if err != nil {
		return nil, fmt.Errorf("failed to list artists: %w", err)
	}

	report := &JobReport{Total: len(artists)}
	if len(artists) == 0 {
		report.Duration = time.Since(start)
		j.logger.Info("sync job finished, no artists to sync")
		return report, nil
	}

	sendProgress(progress, enumeratedUpdate(len(artists)))

	// Dispatch is throttled, not the workers themselves: each artist costs at
	// most a couple of upstream calls, so artists-per-second approximates the
	// upstream request budget.
	limiter := rate.NewLimiter(rate.Limit(j.rateLimit), 1)

	jobs := make(chan *models.Artist, len(artists))
	results := make(chan SyncOutcome, len(artists))

	var wg sync.WaitGroup
	for i := 0; i < j.workers; i++ {
		wg.Add(1)
		go j.syncWorker(ctx, &wg, jobs, results)
	}

	go func() {
		for _, artist := range artists {
			select {
			case <-ctx.Done():
				close(jobs)
				return
			default:
			}

			if err := limiter.Wait(ctx); err != nil {
				close(jobs)
				return
			}

			jobs <- artist
		}
		close(jobs)
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	completed := 0
	for outcome := range results {
		completed++
		report.Outcomes = append(report.Outcomes, outcome)

		switch {
		case outcome.Skipped:
			report.Skipped++
		case !outcome.Succeeded():
			report.Failed++
		case outcome.FellBack:
			report.FallenBack++
		default:
			report.Succeeded++
		}

		sendProgress(progress, artistSyncedUpdate(completed, len(artists), outcome))
	}

	report.Duration = time.Since(start)
	j.logger.Info("sync job finished",
		"total", report.Total,
		"succeeded", report.Succeeded,
		"fallen_back", report.FallenBack,
		"failed", report.Failed,
		"skipped", report.Skipped,
		"duration", report.Duration)

	return report, nil
}

// syncWorker consumes artists from the jobs channel until it closes or the
// context is cancelled. Outcomes go to the results channel; nothing a single
// artist does can take the worker down with it.
func (j *SyncJob) syncWorker(ctx context.Context, wg *sync.WaitGroup, jobs <-chan *models.Artist, results chan<- SyncOutcome) {
	defer wg.Done()

	for artist := range jobs {
		select {
		case <-ctx.Done():
			return
		default:
		}

		results <- j.syncer.SyncArtist(ctx, artist)
	}
}
