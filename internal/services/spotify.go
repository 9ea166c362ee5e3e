// Spotify partner API implementation of [Provider]
//
// Uses the OAuth2 client-credentials flow; tokens are fetched and refreshed
// automatically by the [clientcredentials.Config] HTTP client.
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/syruplabs/syrup/internal/models"
	"github.com/syruplabs/syrup/internal/shared"
	"golang.org/x/oauth2/clientcredentials"
)

const (
	defaultSpotifyTokenURL = "https://accounts.spotify.com/api/token"
	defaultSpotifyBaseURL  = "https://api.spotify.com"
)

type spotifyStreamEntry struct {
	Date    string `json:"date"`
	Streams int64  `json:"streams"`
}

// spotifyDailyStreams is the partner daily streams response.
type spotifyDailyStreams struct {
	Data []spotifyStreamEntry `json:"data"`
}

// SpotifyService implements the Provider interface for the Spotify partner
// analytics API. Acts as the fallback source when Soundcharts yields nothing.
type SpotifyService struct {
	baseURL    string
	httpClient *http.Client
}

// NewSpotifyService creates a new Spotify provider with the given client credentials.
//
// The returned service owns an HTTP client that attaches and refreshes the
// client-credentials token on every request.
func NewSpotifyService(clientID, clientSecret, tokenURL, baseURL string) (*SpotifyService, error) {
	if clientID == "" || clientSecret == "" {
		return nil, fmt.Errorf("%w: spotify client_id and client_secret are required", shared.ErrMissingCredentials)
	}
	if tokenURL == "" {
		tokenURL = defaultSpotifyTokenURL
	}
	if baseURL == "" {
		baseURL = defaultSpotifyBaseURL
	}

	conf := &clientcredentials.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		TokenURL:     tokenURL,
	}

	return &SpotifyService{
		baseURL:    baseURL,
		httpClient: conf.Client(context.Background()),
	}, nil
}

// Name returns the provider's display name.
func (s *SpotifyService) Name() string {
	return "Spotify"
}

// Source returns the tag stamped on metric rows fetched from Spotify.
func (s *SpotifyService) Source() models.Source {
	return models.SourceSpotify
}

// Fetch retrieves daily stream counts for the artist identified by the
// Spotify artist id, covering the last sinceDays days.
func (s *SpotifyService) Fetch(ctx context.Context, externalID string, sinceDays int) ([]models.DailyMetric, error) {
	if externalID == "" {
		return nil, fmt.Errorf("%w: spotify id is empty", shared.ErrNotConfigured)
	}
	if sinceDays <= 0 {
		sinceDays = 90
	}

	endpoint := fmt.Sprintf("/v1/partners/artists/%s/streams/daily?days=%d", url.PathEscape(externalID), sinceDays)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+endpoint, nil)
	if err != nil {
		return nil, &ProviderError{Provider: s.Name(), Err: fmt.Errorf("failed to create request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, &ProviderError{Provider: s.Name(), Err: fmt.Errorf("request failed: %w", err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &ProviderError{Provider: s.Name(), Err: fmt.Errorf("unexpected status %d", resp.StatusCode)}
	}

	var streams spotifyDailyStreams
	if err := json.NewDecoder(resp.Body).Decode(&streams); err != nil {
		return nil, &ProviderError{Provider: s.Name(), Err: fmt.Errorf("failed to decode response: %w", err)}
	}

	metrics := make([]models.DailyMetric, 0, len(streams.Data))
	for _, entry := range streams.Data {
		day, err := shared.ParseDay(entry.Date)
		if err != nil {
			return nil, &ProviderError{Provider: s.Name(), Err: fmt.Errorf("malformed date %q: %w", entry.Date, err)}
		}
		metrics = append(metrics, models.DailyMetric{
			Source:  s.Source(),
			Date:    day,
			Streams: entry.Streams,
		})
	}

	return dedupeByDate(metrics), nil
}
