package tasks

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/syruplabs/syrup/internal/models"
	"github.com/syruplabs/syrup/internal/services"
	itesting "github.com/syruplabs/syrup/internal/testing"
)

// fakeMetricStore records upserted batches and can be told to fail.
type fakeMetricStore struct {
	written map[string][]models.DailyMetric
	err     error
}

func newFakeMetricStore() *fakeMetricStore {
	return &fakeMetricStore{written: map[string][]models.DailyMetric{}}
}

func (s *fakeMetricStore) UpsertBatch(artistID string, metrics []models.DailyMetric) (int, error) {
	if s.err != nil {
		return 0, s.err
	}
	s.written[artistID] = append(s.written[artistID], metrics...)
	return len(metrics), nil
}

// fakeArtistStore tracks last-synced markers and can be told to fail.
type fakeArtistStore struct {
	artists []*models.Artist
	markers map[string]time.Time
	listErr error
	markErr error
}

func newFakeArtistStore(artists ...*models.Artist) *fakeArtistStore {
	return &fakeArtistStore{artists: artists, markers: map[string]time.Time{}}
}

func (s *fakeArtistStore) List() ([]*models.Artist, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	return s.artists, nil
}

func (s *fakeArtistStore) SetLastSyncedAt(id string, t time.Time) error {
	if s.markErr != nil {
		return s.markErr
	}
	s.markers[id] = t
	return nil
}

func metricsFor(source models.Source, days int) []models.DailyMetric {
	base := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	out := make([]models.DailyMetric, 0, days)
	for i := 0; i < days; i++ {
		out = append(out, models.DailyMetric{Source: source, Date: base.AddDate(0, 0, i), Streams: int64(100 + i)})
	}
	return out
}

func bothIDs() *models.Artist {
	return &models.Artist{ID: "artist-1", Name: "Artist One", SoundchartsID: "sc-1", SpotifyID: "sp-1"}
}

func TestSyncEngine(t *testing.T) {
	t.Run("primary provider wins", func(t *testing.T) {
		primary := &itesting.MockProvider{ProviderSource: models.SourceSoundcharts, Metrics: metricsFor(models.SourceSoundcharts, 3)}
		secondary := &itesting.MockProvider{ProviderSource: models.SourceSpotify, Metrics: metricsFor(models.SourceSpotify, 3)}
		metrics := newFakeMetricStore()
		artists := newFakeArtistStore()

		engine := NewSyncEngine(SyncEngineOpts{
			Providers: []services.Provider{primary, secondary},
			Metrics:   metrics,
			Artists:   artists,
		})

		outcome := engine.SyncArtist(context.Background(), bothIDs())

		if !outcome.Succeeded() {
			t.Fatalf("expected success, got %+v", outcome)
		}
		if outcome.SourceUsed != models.SourceSoundcharts {
			t.Errorf("expected soundcharts source, got %s", outcome.SourceUsed)
		}
		if outcome.FellBack {
			t.Error("primary success should not be marked as fallback")
		}
		if outcome.RecordsWritten != 3 {
			t.Errorf("expected 3 records written, got %d", outcome.RecordsWritten)
		}
		if secondary.Calls != 0 {
			t.Error("secondary provider should not be consulted when primary yields data")
		}
		if _, ok := artists.markers["artist-1"]; !ok {
			t.Error("last-synced marker should advance after a committed batch")
		}
	})

	t.Run("falls back when primary is empty", func(t *testing.T) {
		primary := &itesting.MockProvider{ProviderSource: models.SourceSoundcharts}
		secondary := &itesting.MockProvider{ProviderSource: models.SourceSpotify, Metrics: metricsFor(models.SourceSpotify, 2)}
		metrics := newFakeMetricStore()
		artists := newFakeArtistStore()

		engine := NewSyncEngine(SyncEngineOpts{
			Providers: []services.Provider{primary, secondary},
			Metrics:   metrics,
			Artists:   artists,
		})

		outcome := engine.SyncArtist(context.Background(), bothIDs())

		if !outcome.Succeeded() {
			t.Fatalf("expected success, got %+v", outcome)
		}
		if outcome.SourceUsed != models.SourceSpotify {
			t.Errorf("expected spotify source, got %s", outcome.SourceUsed)
		}
		if !outcome.FellBack {
			t.Error("winning via the secondary provider should be marked as fallback")
		}
	})

	t.Run("falls back when primary errors", func(t *testing.T) {
		primary := &itesting.MockProvider{ProviderSource: models.SourceSoundcharts, Err: errors.New("upstream 500")}
		secondary := &itesting.MockProvider{ProviderSource: models.SourceSpotify, Metrics: metricsFor(models.SourceSpotify, 2)}
		metrics := newFakeMetricStore()
		artists := newFakeArtistStore()

		engine := NewSyncEngine(SyncEngineOpts{
			Providers: []services.Provider{primary, secondary},
			Metrics:   metrics,
			Artists:   artists,
		})

		outcome := engine.SyncArtist(context.Background(), bothIDs())

		if !outcome.Succeeded() || !outcome.FellBack {
			t.Fatalf("expected fallback success, got %+v", outcome)
		}
		if outcome.Err != nil {
			t.Errorf("fallback success should not carry the primary's error: %v", outcome.Err)
		}
	})

	t.Run("all providers empty leaves store untouched", func(t *testing.T) {
		primary := &itesting.MockProvider{ProviderSource: models.SourceSoundcharts}
		secondary := &itesting.MockProvider{ProviderSource: models.SourceSpotify}
		metrics := newFakeMetricStore()
		artists := newFakeArtistStore()

		engine := NewSyncEngine(SyncEngineOpts{
			Providers: []services.Provider{primary, secondary},
			Metrics:   metrics,
			Artists:   artists,
		})

		outcome := engine.SyncArtist(context.Background(), bothIDs())

		if outcome.Succeeded() || outcome.Skipped {
			t.Fatalf("expected plain no-data outcome, got %+v", outcome)
		}
		if outcome.Err != nil {
			t.Errorf("merely-empty providers are not an error: %v", outcome.Err)
		}
		if len(metrics.written) != 0 {
			t.Error("no-data outcome must not write metrics")
		}
		if len(artists.markers) != 0 {
			t.Error("no-data outcome must not advance the last-synced marker")
		}
	})

	t.Run("all providers failing joins their errors", func(t *testing.T) {
		primaryErr := errors.New("primary down")
		secondaryErr := errors.New("secondary down")
		engine := NewSyncEngine(SyncEngineOpts{
			Providers: []services.Provider{
				&itesting.MockProvider{ProviderSource: models.SourceSoundcharts, Err: primaryErr},
				&itesting.MockProvider{ProviderSource: models.SourceSpotify, Err: secondaryErr},
			},
			Metrics: newFakeMetricStore(),
			Artists: newFakeArtistStore(),
		})

		outcome := engine.SyncArtist(context.Background(), bothIDs())

		if !errors.Is(outcome.Err, primaryErr) || !errors.Is(outcome.Err, secondaryErr) {
			t.Errorf("outcome should carry both provider errors, got %v", outcome.Err)
		}
	})

	t.Run("write failure fails the artist without fallback", func(t *testing.T) {
		primary := &itesting.MockProvider{ProviderSource: models.SourceSoundcharts, Metrics: metricsFor(models.SourceSoundcharts, 2)}
		secondary := &itesting.MockProvider{ProviderSource: models.SourceSpotify, Metrics: metricsFor(models.SourceSpotify, 2)}
		metrics := newFakeMetricStore()
		metrics.err = errors.New("disk full")
		artists := newFakeArtistStore()

		engine := NewSyncEngine(SyncEngineOpts{
			Providers: []services.Provider{primary, secondary},
			Metrics:   metrics,
			Artists:   artists,
		})

		outcome := engine.SyncArtist(context.Background(), bothIDs())

		if outcome.Succeeded() {
			t.Fatal("write failure must not be a success")
		}
		if outcome.Err == nil {
			t.Error("write failure should surface in the outcome")
		}
		if secondary.Calls != 0 {
			t.Error("write failure must not trigger a secondary attempt")
		}
		if len(artists.markers) != 0 {
			t.Error("write failure must not advance the last-synced marker")
		}
	})

	t.Run("artist with no provider ids is skipped", func(t *testing.T) {
		engine := NewSyncEngine(SyncEngineOpts{
			Providers: []services.Provider{
				&itesting.MockProvider{ProviderSource: models.SourceSoundcharts, Metrics: metricsFor(models.SourceSoundcharts, 1)},
			},
			Metrics: newFakeMetricStore(),
			Artists: newFakeArtistStore(),
		})

		outcome := engine.SyncArtist(context.Background(), &models.Artist{ID: "bare", Name: "No IDs"})

		if !outcome.Skipped {
			t.Errorf("expected skipped outcome, got %+v", outcome)
		}
		if outcome.Err != nil {
			t.Errorf("skip is not an error: %v", outcome.Err)
		}
	})

	t.Run("unconfigured primary is a skip not a fallback", func(t *testing.T) {
		secondary := &itesting.MockProvider{ProviderSource: models.SourceSpotify, Metrics: metricsFor(models.SourceSpotify, 1)}
		engine := NewSyncEngine(SyncEngineOpts{
			Providers: []services.Provider{
				&itesting.MockProvider{ProviderSource: models.SourceSoundcharts, Metrics: metricsFor(models.SourceSoundcharts, 1)},
				secondary,
			},
			Metrics: newFakeMetricStore(),
			Artists: newFakeArtistStore(),
		})

		outcome := engine.SyncArtist(context.Background(), &models.Artist{ID: "sp-only", Name: "Spotify Only", SpotifyID: "sp-9"})

		if !outcome.Succeeded() {
			t.Fatalf("expected success, got %+v", outcome)
		}
		if outcome.FellBack {
			t.Error("winning with the only configured provider is not a fallback")
		}
	})

	t.Run("marker failure after commit surfaces in the outcome", func(t *testing.T) {
		artists := newFakeArtistStore()
		artists.markErr = errors.New("marker update failed")
		metrics := newFakeMetricStore()

		engine := NewSyncEngine(SyncEngineOpts{
			Providers: []services.Provider{
				&itesting.MockProvider{ProviderSource: models.SourceSoundcharts, Metrics: metricsFor(models.SourceSoundcharts, 2)},
			},
			Metrics: metrics,
			Artists: artists,
		})

		outcome := engine.SyncArtist(context.Background(), bothIDs())

		if outcome.SourceUsed != models.SourceSoundcharts || outcome.RecordsWritten != 2 {
			t.Errorf("committed records should be reported, got %+v", outcome)
		}
		if outcome.Err == nil {
			t.Error("marker failure should surface in the outcome")
		}
	})
}
