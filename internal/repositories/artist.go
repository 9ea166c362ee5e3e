package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/syruplabs/syrup/internal/models"
	"github.com/syruplabs/syrup/internal/shared"
)

// ArtistRepository handles persistence for tracked artists.
//
// External identifiers are set by onboarding; the sync engine only ever
// advances last_synced_at through [ArtistRepository.SetLastSyncedAt].
type ArtistRepository struct {
	db *sql.DB
}

// NewArtistRepository creates a new ArtistRepository with the given database connection
func NewArtistRepository(db *sql.DB) *ArtistRepository {
	return &ArtistRepository{db: db}
}

// Create inserts a new artist into the database with a generated ID
func (r *ArtistRepository) Create(artist *models.Artist) error {
	if err := artist.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	now := time.Now().UTC()
	artist.ID = shared.GenerateID()
	artist.CreatedAt = now
	artist.UpdatedAt = now

	query := `
		INSERT INTO artists (id, name, soundcharts_id, spotify_id, last_synced_at, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	var lastSynced sql.NullTime
	if artist.LastSyncedAt != nil {
		lastSynced = sql.NullTime{Time: *artist.LastSyncedAt, Valid: true}
	}

	_, err := r.db.Exec(query,
		artist.ID,
		artist.Name,
		artist.SoundchartsID,
		artist.SpotifyID,
		lastSynced,
		artist.CreatedAt,
		artist.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert artist: %w", err)
	}

	return nil
}

// Get retrieves an artist by ID
func (r *ArtistRepository) Get(id string) (*models.Artist, error) {
	query := `
		SELECT id, name, soundcharts_id, spotify_id, last_synced_at, created_at, updated_at
		FROM artists
		WHERE id = ?
	`

	artist, err := scanArtist(r.db.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: %s", shared.ErrArtistNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query artist: %w", err)
	}

	return artist, nil
}

// List retrieves all tracked artists ordered by creation time.
//
// The sync job scans the full table every run; there is no pagination cursor.
func (r *ArtistRepository) List() ([]*models.Artist, error) {
	query := `
		SELECT id, name, soundcharts_id, spotify_id, last_synced_at, created_at, updated_at
		FROM artists
		ORDER BY created_at ASC
	`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query artists: %w", err)
	}
	defer rows.Close()

	var artists []*models.Artist
	for rows.Next() {
		artist, err := scanArtist(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan artist: %w", err)
		}
		artists = append(artists, artist)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return artists, nil
}

// Update modifies an existing artist's name and external identifiers
func (r *ArtistRepository) Update(artist *models.Artist) error {
	if err := artist.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	now := time.Now().UTC()
	artist.UpdatedAt = now

	query := `
		UPDATE artists
		SET name = ?, soundcharts_id = ?, spotify_id = ?, updated_at = ?
		WHERE id = ?
	`

	result, err := r.db.Exec(query, artist.Name, artist.SoundchartsID, artist.SpotifyID, now, artist.ID)
	if err != nil {
		return fmt.Errorf("failed to update artist: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: %s", shared.ErrArtistNotFound, artist.ID)
	}

	return nil
}

// SetLastSyncedAt advances the artist's last-synced marker.
//
// Called by the sync engine only after a successful batch commit; overlapping
// runs race here and last writer wins, which is acceptable.
func (r *ArtistRepository) SetLastSyncedAt(id string, t time.Time) error {
	query := `
		UPDATE artists
		SET last_synced_at = ?, updated_at = ?
		WHERE id = ?
	`

	result, err := r.db.Exec(query, t.UTC(), time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("failed to set last synced: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: %s", shared.ErrArtistNotFound, id)
	}

	return nil
}

// scanner abstracts *sql.Row and *sql.Rows for shared scan helpers.
type scanner interface {
	Scan(dest ...any) error
}

// scanArtist scans one artists row into a [models.Artist]
func scanArtist(row scanner) (*models.Artist, error) {
	var (
		artist     models.Artist
		lastSynced sql.NullTime
	)

	err := row.Scan(
		&artist.ID,
		&artist.Name,
		&artist.SoundchartsID,
		&artist.SpotifyID,
		&lastSynced,
		&artist.CreatedAt,
		&artist.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if lastSynced.Valid {
		t := lastSynced.Time
		artist.LastSyncedAt = &t
	}

	return &artist, nil
}
