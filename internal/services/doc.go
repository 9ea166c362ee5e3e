// Package services defines the [Provider] interface for upstream streaming
// analytics and implements it for Soundcharts and Spotify, plus the Gemini
// client used by the answer service.
//
// # Provider Interface
//
// Both analytics providers implement a common fetch-and-translate contract so
// the sync engine can walk them in priority order without caring which is which.
// Adapters are pure: no storage writes, no retries, no fallback decisions.
//
// # Soundcharts Implementation
//
// [SoundchartsService] is the primary source. It authenticates with static
// x-app-id / x-api-key headers and maps the daily Spotify listening endpoint
// into canonical metrics. It also exposes [SoundchartsService.SearchArtists]
// for onboarding lookups.
//
// # Spotify Implementation
//
// [SpotifyService] is the fallback source. It uses the OAuth2
// client-credentials flow; the oauth2 client transparently fetches and
// refreshes access tokens.
//
// # Error Handling
//
// Every transport failure, non-2xx status, and malformed body is wrapped in
// [ProviderError] carrying the provider name, so the sync engine can log which
// upstream failed and move on to the next one. An empty result with a nil
// error is deliberately NOT an error: it is the fallback trigger.
//
// # Gemini Client
//
// [GeminiService] wraps the generateContent endpoint behind a plain
// prompt-in/text-out method consumed by the answers package.
package services
