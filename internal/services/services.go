// package services defines interface Provider for upstream analytics HTTP APIs
//
// Soundcharts (primary), Spotify partner API (secondary)
package services

import (
	"context"
	"fmt"

	"github.com/syruplabs/syrup/internal/models"
)

// Provider defines the contract for upstream streaming-analytics providers.
// Implementations fetch and translate responses into canonical daily metrics;
// they never touch storage and never retry. Fallback and retry policy belong
// to the sync engine.
type Provider interface {
	// Fetch retrieves daily metrics for the given external artist id covering
	// the last sinceDays days. Returned metrics carry the provider's source
	// tag and are deduplicated by date (last entry for a day wins).
	//
	// A nil error with zero records is a valid outcome; it signals the caller
	// to attempt fallback.
	Fetch(ctx context.Context, externalID string, sinceDays int) ([]models.DailyMetric, error)

	// Source returns the provider tag stamped on every metric row.
	Source() models.Source

	// Name returns the provider's display name (e.g., "Soundcharts")
	Name() string
}

// ProviderError surfaces any transport failure, non-2xx status, or malformed
// response body from a single provider call.
type ProviderError struct {
	Provider string
	Err      error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("provider %s: %v", e.Provider, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// ArtistMatch is one result from a provider artist search, used by onboarding
// to resolve external identifiers for tracked artists.
type ArtistMatch struct {
	SoundchartsID string
	Name          string
	ImageURL      string
	CountryCode   string
}

// dedupeByDate collapses duplicate calendar days in upstream responses.
// The last entry for a day wins; first-seen order is preserved otherwise.
func dedupeByDate(metrics []models.DailyMetric) []models.DailyMetric {
	if len(metrics) < 2 {
		return metrics
	}

	seen := make(map[string]int, len(metrics))
	deduped := make([]models.DailyMetric, 0, len(metrics))

	for _, m := range metrics {
		day := m.Day()
		if idx, ok := seen[day]; ok {
			deduped[idx] = m
			continue
		}
		seen[day] = len(deduped)
		deduped = append(deduped, m)
	}

	return deduped
}
