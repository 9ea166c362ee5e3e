package repositories

import (
	"database/sql"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/syruplabs/syrup/internal/models"
	"github.com/syruplabs/syrup/internal/shared"
)

// MetricRepository handles persistence for daily streaming metrics.
//
// Rows are keyed by (artist_id, source, date); every write is an upsert that
// replaces the prior streams value, so re-running a sync with identical
// upstream data leaves the store unchanged.
type MetricRepository struct {
	db *sql.DB
}

// NewMetricRepository creates a new MetricRepository with the given database connection
func NewMetricRepository(db *sql.DB) *MetricRepository {
	return &MetricRepository{db: db}
}

// UpsertBatch writes all metrics for one artist in a single transaction and
// returns the number of rows written.
//
// The batch is all-or-nothing: any failure rolls back every row and returns a
// [WriteError], and the sync engine treats the artist as failed for the run.
func (r *MetricRepository) UpsertBatch(artistID string, metrics []models.DailyMetric) (int, error) {
	if artistID == "" {
		return 0, fmt.Errorf("%w: artist id is empty", shared.ErrInvalidArgument)
	}
	if len(metrics) == 0 {
		return 0, nil
	}

	for i := range metrics {
		if err := metrics[i].Validate(); err != nil {
			return 0, &WriteError{ArtistID: artistID, Err: fmt.Errorf("validation failed: %w", err)}
		}
	}

	tx, err := r.db.Begin()
	if err != nil {
		return 0, &WriteError{ArtistID: artistID, Err: fmt.Errorf("failed to begin transaction: %w", err)}
	}
	defer tx.Rollback()

	query := `
		INSERT INTO daily_metrics (artist_id, source, date, streams, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (artist_id, source, date) DO UPDATE
		SET streams = excluded.streams, updated_at = excluded.updated_at
	`

	stmt, err := tx.Prepare(query)
	if err != nil {
		return 0, &WriteError{ArtistID: artistID, Err: fmt.Errorf("failed to prepare upsert: %w", err)}
	}
	defer stmt.Close()

	now := time.Now().UTC()
	for _, m := range metrics {
		if _, err := stmt.Exec(artistID, m.Source.String(), m.Day(), m.Streams, now, now); err != nil {
			return 0, &WriteError{ArtistID: artistID, Err: fmt.Errorf("failed to upsert %s/%s: %w", m.Source, m.Day(), err)}
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, &WriteError{ArtistID: artistID, Err: fmt.Errorf("failed to commit batch: %w", err)}
	}

	return len(metrics), nil
}

// ListRecent retrieves the artist's most recent metric rows ordered by date
// descending, up to limit rows. Zero rows is not an error.
func (r *MetricRepository) ListRecent(artistID string, limit int) ([]models.DailyMetric, error) {
	if limit <= 0 {
		limit = 30
	}

	return r.list(map[string]any{"artist_id": artistID}, limit)
}

// List retrieves metric rows matching the given criteria ordered by date
// descending. Supported criteria: artist_id, source, since (day string).
func (r *MetricRepository) List(criteria map[string]any) ([]models.DailyMetric, error) {
	return r.list(criteria, 0)
}

func (r *MetricRepository) list(criteria map[string]any, limit int) ([]models.DailyMetric, error) {
	q := builder.
		Select("artist_id", "source", "date", "streams").
		From("daily_metrics").
		OrderBy("date DESC", "source ASC")

	if artistID, ok := criteria["artist_id"].(string); ok && artistID != "" {
		q = q.Where(sq.Eq{"artist_id": artistID})
	}
	if source, ok := criteria["source"].(string); ok && source != "" {
		q = q.Where(sq.Eq{"source": source})
	}
	if since, ok := criteria["since"].(string); ok && since != "" {
		q = q.Where(sq.GtOrEq{"date": since})
	}
	if limit > 0 {
		q = q.Limit(uint64(limit))
	}

	rows, err := q.RunWith(r.db).Query()
	if err != nil {
		return nil, fmt.Errorf("failed to query metrics: %w", err)
	}
	defer rows.Close()

	var metrics []models.DailyMetric
	for rows.Next() {
		var (
			m      models.DailyMetric
			source string
			day    string
		)
		if err := rows.Scan(&m.ArtistID, &source, &day, &m.Streams); err != nil {
			return nil, fmt.Errorf("failed to scan metric: %w", err)
		}

		date, err := time.Parse(shared.DayFormat, day)
		if err != nil {
			return nil, fmt.Errorf("corrupt metric date %q: %w", day, err)
		}

		m.Source = models.Source(source)
		m.Date = date
		metrics = append(metrics, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return metrics, nil
}

// Count returns the number of metric rows stored for an artist.
func (r *MetricRepository) Count(artistID string) (int, error) {
	var count int
	err := builder.
		Select("COUNT(*)").
		From("daily_metrics").
		Where(sq.Eq{"artist_id": artistID}).
		RunWith(r.db).
		QueryRow().
		Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count metrics: %w", err)
	}
	return count, nil
}
