// Soundcharts API implementation of [Provider]
//
// Endpoint and response shapes based on https://doc.api.soundcharts.com/
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/syruplabs/syrup/internal/models"
	"github.com/syruplabs/syrup/internal/shared"
)

const defaultSoundchartsBaseURL = "https://customer.api.soundcharts.com"

type soundchartsItem struct {
	Date  string `json:"date"`
	Value int64  `json:"value"`
}

// soundchartsListening is the daily Spotify listening response.
type soundchartsListening struct {
	Items []soundchartsItem `json:"items"`
}

type soundchartsArtist struct {
	UUID        string `json:"uuid"`
	Name        string `json:"name"`
	ImageURL    string `json:"imageUrl"`
	CountryCode string `json:"countryCode"`
}

type soundchartsSearch struct {
	Items []soundchartsArtist `json:"items"`
}

// SoundchartsService implements the Provider interface for the Soundcharts
// customer API. Authenticates with static app id / api key headers.
type SoundchartsService struct {
	appID      string
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewSoundchartsService creates a new Soundcharts provider with the given credentials.
func NewSoundchartsService(appID, apiKey, baseURL string, client *http.Client) (*SoundchartsService, error) {
	if appID == "" || apiKey == "" {
		return nil, fmt.Errorf("%w: soundcharts app_id and api_key are required", shared.ErrMissingCredentials)
	}
	if baseURL == "" {
		baseURL = defaultSoundchartsBaseURL
	}
	if client == nil {
		client = http.DefaultClient
	}

	return &SoundchartsService{
		appID:      appID,
		apiKey:     apiKey,
		baseURL:    baseURL,
		httpClient: client,
	}, nil
}

// Name returns the provider's display name.
func (s *SoundchartsService) Name() string {
	return "Soundcharts"
}

// Source returns the tag stamped on metric rows fetched from Soundcharts.
func (s *SoundchartsService) Source() models.Source {
	return models.SourceSoundcharts
}

// doRequest performs an authenticated GET request against the Soundcharts API.
// Every failure mode is surfaced as a [ProviderError].
func (s *SoundchartsService) doRequest(ctx context.Context, endpoint string, result any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+endpoint, nil)
	if err != nil {
		return &ProviderError{Provider: s.Name(), Err: fmt.Errorf("failed to create request: %w", err)}
	}

	req.Header.Set("x-app-id", s.appID)
	req.Header.Set("x-api-key", s.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return &ProviderError{Provider: s.Name(), Err: fmt.Errorf("request failed: %w", err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &ProviderError{Provider: s.Name(), Err: fmt.Errorf("unexpected status %d", resp.StatusCode)}
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return &ProviderError{Provider: s.Name(), Err: fmt.Errorf("failed to decode response: %w", err)}
	}

	return nil
}

// Fetch retrieves daily Spotify listening counts for the artist identified by
// the Soundcharts uuid, covering the last sinceDays days.
func (s *SoundchartsService) Fetch(ctx context.Context, externalID string, sinceDays int) ([]models.DailyMetric, error) {
	if externalID == "" {
		return nil, fmt.Errorf("%w: soundcharts id is empty", shared.ErrNotConfigured)
	}
	if sinceDays <= 0 {
		sinceDays = 90
	}

	endpoint := fmt.Sprintf("/api/v2/artist/%s/streaming/spotify/listening?period=%d", url.PathEscape(externalID), sinceDays)

	var listening soundchartsListening
	if err := s.doRequest(ctx, endpoint, &listening); err != nil {
		return nil, err
	}

	metrics := make([]models.DailyMetric, 0, len(listening.Items))
	for _, item := range listening.Items {
		day, err := shared.ParseDay(item.Date)
		if err != nil {
			return nil, &ProviderError{Provider: s.Name(), Err: fmt.Errorf("malformed date %q: %w", item.Date, err)}
		}
		metrics = append(metrics, models.DailyMetric{
			Source:  s.Source(),
			Date:    day,
			Streams: item.Value,
		})
	}

	return dedupeByDate(metrics), nil
}

// SearchArtists queries the Soundcharts artist catalog by name.
//
// Used by onboarding to resolve an artist's uuid before tracking begins.
func (s *SoundchartsService) SearchArtists(ctx context.Context, query string, limit int) ([]ArtistMatch, error) {
	if query == "" {
		return nil, fmt.Errorf("%w: search query is empty", shared.ErrMissingArgument)
	}
	if limit <= 0 || limit > 20 {
		limit = 10
	}

	endpoint := fmt.Sprintf("/api/v2/artist/search/%s?limit=%d", url.PathEscape(query), limit)

	var search soundchartsSearch
	if err := s.doRequest(ctx, endpoint, &search); err != nil {
		return nil, err
	}

	matches := make([]ArtistMatch, 0, len(search.Items))
	for _, item := range search.Items {
		matches = append(matches, ArtistMatch{
			SoundchartsID: item.UUID,
			Name:          item.Name,
			ImageURL:      item.ImageURL,
			CountryCode:   item.CountryCode,
		})
	}

	return matches, nil
}
