// Package models defines domain entities for the artist analytics service.
//
// The package contains two categories of types:
//
// 1. Persistent entities, backed by the SQLite store:
//   - [Artist] : Tracked artists with per-provider external identifiers
//   - [DailyMetric] : Daily streaming counts keyed by (artist, source, date)
//   - [User] : Caller identities with tier and API token
//   - [Grant] : Authorization relation between a caller and an artist
//
// 2. Value types shared across packages:
//   - [Source] : Provider tag recorded on every metric row
//
// Persistent entities expose Validate for repository-level checks before writes.
package models
