package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/syruplabs/syrup/internal/models"
)

// GrantRepository handles the authorization relation between users and artists.
//
// The answer path only ever asks "does this grant exist"; creation happens
// during onboarding.
type GrantRepository struct {
	db *sql.DB
}

// NewGrantRepository creates a new GrantRepository with the given database connection
func NewGrantRepository(db *sql.DB) *GrantRepository {
	return &GrantRepository{db: db}
}

// Create links a user to an artist. Creating an existing grant is a no-op.
func (r *GrantRepository) Create(userID, artistID string) error {
	query := `
		INSERT INTO grants (user_id, artist_id, created_at)
		VALUES (?, ?, ?)
		ON CONFLICT (user_id, artist_id) DO NOTHING
	`

	_, err := r.db.Exec(query, userID, artistID, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to insert grant: %w", err)
	}

	return nil
}

// Has reports whether the user holds a grant for the artist.
func (r *GrantRepository) Has(userID, artistID string) (bool, error) {
	query := `SELECT 1 FROM grants WHERE user_id = ? AND artist_id = ?`

	var one int
	err := r.db.QueryRow(query, userID, artistID).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to query grant: %w", err)
	}

	return true, nil
}

// ListArtists retrieves all grants held by a user ordered by creation time.
func (r *GrantRepository) ListArtists(userID string) ([]models.Grant, error) {
	query := `
		SELECT user_id, artist_id, created_at
		FROM grants
		WHERE user_id = ?
		ORDER BY created_at ASC
	`

	rows, err := r.db.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query grants: %w", err)
	}
	defer rows.Close()

	var grants []models.Grant
	for rows.Next() {
		var g models.Grant
		if err := rows.Scan(&g.UserID, &g.ArtistID, &g.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan grant: %w", err)
		}
		grants = append(grants, g)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return grants, nil
}
