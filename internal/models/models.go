// package models defines the data model for the artist analytics service
package models

import (
	"fmt"
	"strings"
	"time"
)

// Source identifies the upstream provider a metric row came from.
type Source string

const (
	SourceSoundcharts Source = "soundcharts"
	SourceSpotify     Source = "spotify"
)

// Valid reports whether the source is one of the known provider tags.
func (s Source) Valid() bool {
	return s == SourceSoundcharts || s == SourceSpotify
}

func (s Source) String() string {
	return string(s)
}

// Artist is a tracked artist. External identifiers are optional; an empty
// identifier means the matching provider is not configured for this artist.
//
// LastSyncedAt is advanced only when a sync run commits at least one metric
// row, so artists that produced nothing are retried on the next run.
type Artist struct {
	ID            string
	Name          string
	SoundchartsID string
	SpotifyID     string
	LastSyncedAt  *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// ExternalID returns the artist's identifier for the given provider source.
func (a *Artist) ExternalID(source Source) string {
	switch source {
	case SourceSoundcharts:
		return a.SoundchartsID
	case SourceSpotify:
		return a.SpotifyID
	default:
		return ""
	}
}

// Validate checks the artist's data before persistence.
func (a *Artist) Validate() error {
	if strings.TrimSpace(a.Name) == "" {
		return fmt.Errorf("artist name is required")
	}
	return nil
}

// DailyMetric is one day of streaming activity for an artist from one source.
// At most one row exists per (ArtistID, Source, Date); writes replace.
type DailyMetric struct {
	ArtistID string
	Source   Source
	Date     time.Time // UTC calendar day
	Streams  int64
}

// Validate checks the metric's data before persistence.
func (m *DailyMetric) Validate() error {
	if !m.Source.Valid() {
		return fmt.Errorf("unknown metric source %q", m.Source)
	}
	if m.Streams < 0 {
		return fmt.Errorf("streams must be non-negative, got %d", m.Streams)
	}
	if m.Date.IsZero() {
		return fmt.Errorf("metric date is required")
	}
	return nil
}

// Day returns the metric's date in canonical day layout.
func (m *DailyMetric) Day() string {
	return m.Date.UTC().Format("2006-01-02")
}

// User is a caller identity. Accounts are created by onboarding; this
// service only reads them. TierID feeds future rate-limit policy and is
// never mutated here.
type User struct {
	ID          string
	Email       string
	DisplayName string
	TierID      string
	APIToken    string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Validate checks the user's data before persistence.
func (u *User) Validate() error {
	if !strings.Contains(u.Email, "@") {
		return fmt.Errorf("invalid email %q", u.Email)
	}
	if u.APIToken == "" {
		return fmt.Errorf("api token is required")
	}
	return nil
}

// Grant authorizes a user to query one artist's analytics.
// Read-only for the answer path; created by onboarding.
type Grant struct {
	UserID    string
	ArtistID  string
	CreatedAt time.Time
}
