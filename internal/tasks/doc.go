// Package tasks orchestrates the recurring artist analytics sync with real-time progress reporting.
//
// # Core Operations
//
//  1. [SyncEngine.SyncArtist] : Priority fallback for one artist
//     - Walks providers in order (Soundcharts first, Spotify second)
//     - Skips providers the artist has no external id for
//     - Commits the first non-empty result as an all-or-nothing batch
//     - Advances the artist's last-synced marker only after a commit
//
//  2. [SyncJob.Run] : Fan-out across all tracked artists
//     - Full-table artist scan each run (no cursor between runs)
//     - Fixed-size worker pool with rate-limited dispatch
//     - Collects per-artist outcomes into a [JobReport]
//
// # Failure Isolation
//
// Provider errors and write failures are converted into per-artist outcomes
// inside the engine; they never unwind the batch. The job always waits for
// every task to finish and always produces a report, so job-level success is
// not the same thing as all-artists success.
//
// # Progress Reporting
//
// All operations use non-blocking channels for progress updates.
//
// The [ProgressUpdate] struct contains phase, step counters, messages, and
// optional data. Updates use select with default to prevent blocking.
package tasks
