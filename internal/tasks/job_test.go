package tasks

import (
	"context"
	"errors"
	"testing"

	"github.com/syruplabs/syrup/internal/models"
)

// fakeSyncer returns a canned outcome per artist id.
type fakeSyncer struct {
	outcomes map[string]SyncOutcome
}

func (s *fakeSyncer) SyncArtist(ctx context.Context, artist *models.Artist) SyncOutcome {
	if outcome, ok := s.outcomes[artist.ID]; ok {
		return outcome
	}
	return SyncOutcome{ArtistID: artist.ID, ArtistName: artist.Name, SourceUsed: models.SourceSoundcharts, RecordsWritten: 1}
}

func TestSyncJob(t *testing.T) {
	t.Run("aggregates outcomes across artists", func(t *testing.T) {
		artists := newFakeArtistStore(
			&models.Artist{ID: "a", Name: "A"},
			&models.Artist{ID: "b", Name: "B"},
			&models.Artist{ID: "c", Name: "C"},
			&models.Artist{ID: "d", Name: "D"},
		)

		syncer := &fakeSyncer{outcomes: map[string]SyncOutcome{
			"a": {ArtistID: "a", SourceUsed: models.SourceSoundcharts, RecordsWritten: 3},
			"b": {ArtistID: "b", SourceUsed: models.SourceSpotify, RecordsWritten: 2, FellBack: true},
			"c": {ArtistID: "c", Err: errors.New("write failed")},
			"d": {ArtistID: "d", Skipped: true},
		}}

		job := NewSyncJob(SyncJobOpts{Syncer: syncer, Artists: artists, Workers: 2, RateLimit: 1000})

		report, err := job.Run(context.Background(), nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if report.Total != 4 {
			t.Errorf("expected total 4, got %d", report.Total)
		}
		if report.Succeeded != 1 || report.FallenBack != 1 || report.Failed != 1 || report.Skipped != 1 {
			t.Errorf("unexpected report: %+v", report)
		}
		if len(report.Outcomes) != 4 {
			t.Errorf("expected 4 outcomes, got %d", len(report.Outcomes))
		}
		if report.Duration <= 0 {
			t.Error("report should carry a duration")
		}
	})

	t.Run("one artist's failure never blocks the others", func(t *testing.T) {
		artists := newFakeArtistStore(
			&models.Artist{ID: "ok-1", Name: "One"},
			&models.Artist{ID: "boom", Name: "Boom"},
			&models.Artist{ID: "ok-2", Name: "Two"},
		)

		syncer := &fakeSyncer{outcomes: map[string]SyncOutcome{
			"boom": {ArtistID: "boom", Err: errors.New("provider exploded")},
		}}

		job := NewSyncJob(SyncJobOpts{Syncer: syncer, Artists: artists, Workers: 1, RateLimit: 1000})

		report, err := job.Run(context.Background(), nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if report.Succeeded != 2 || report.Failed != 1 {
			t.Errorf("expected 2 successes around the failure, got %+v", report)
		}
	})

	t.Run("empty artist set completes immediately", func(t *testing.T) {
		job := NewSyncJob(SyncJobOpts{Syncer: &fakeSyncer{}, Artists: newFakeArtistStore(), RateLimit: 1000})

		report, err := job.Run(context.Background(), nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if report.Total != 0 || len(report.Outcomes) != 0 {
			t.Errorf("expected zero report, got %+v", report)
		}
	})

	t.Run("enumeration failure aborts the run", func(t *testing.T) {
		artists := newFakeArtistStore()
		artists.listErr = errors.New("db locked")

		job := NewSyncJob(SyncJobOpts{Syncer: &fakeSyncer{}, Artists: artists, RateLimit: 1000})

		if _, err := job.Run(context.Background(), nil); err == nil {
			t.Error("expected enumeration error")
		}
	})

	t.Run("emits progress updates without blocking", func(t *testing.T) {
		artists := newFakeArtistStore(
			&models.Artist{ID: "a", Name: "A"},
			&models.Artist{ID: "b", Name: "B"},
		)

		job := NewSyncJob(SyncJobOpts{Syncer: &fakeSyncer{}, Artists: artists, Workers: 1, RateLimit: 1000})

		progress := make(chan ProgressUpdate, 8)
		report, err := job.Run(context.Background(), progress)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		close(progress)

		var sawEnumerate, sawSync bool
		for update := range progress {
			switch update.Phase {
			case EnumerateArtists:
				sawEnumerate = true
				if update.Total != 1 {
					t.Errorf("unexpected enumerate update: %+v", update)
				}
			case SyncArtists:
				sawSync = true
				if update.Total != report.Total {
					t.Errorf("sync update total should match report total: %+v", update)
				}
			}
		}

		if !sawEnumerate || !sawSync {
			t.Errorf("expected both phases reported, enumerate=%v sync=%v", sawEnumerate, sawSync)
		}
	})

	t.Run("full progress channel is skipped not blocked", func(t *testing.T) {
		artists := newFakeArtistStore(
			&models.Artist{ID: "a", Name: "A"},
			&models.Artist{ID: "b", Name: "B"},
			&models.Artist{ID: "c", Name: "C"},
		)

		job := NewSyncJob(SyncJobOpts{Syncer: &fakeSyncer{}, Artists: artists, Workers: 2, RateLimit: 1000})

		// Capacity 1 and no reader: updates past the first must be dropped,
		// and Run must still finish.
		progress := make(chan ProgressUpdate, 1)
		report, err := job.Run(context.Background(), progress)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if report.Total != 3 {
			t.Errorf("expected total 3, got %d", report.Total)
		}
	})
}
