// Package repositories implements SQLite persistence for all domain entities.
//
// Key Implementations:
//   - [ArtistRepository] : Tracked artists and last-synced bookkeeping
//   - [MetricRepository] : Daily streaming metrics with idempotent batch upserts
//   - [UserRepository] : Caller identities with token-based lookups
//   - [GrantRepository] : User-to-artist authorization grants
//
// Metric writes are all-or-nothing: a batch either commits every row for an
// artist or none of them, surfacing a [WriteError] so the sync engine can
// treat the whole artist as failed for the run. Read queries with optional
// filters are built with squirrel rather than string concatenation.
package repositories
