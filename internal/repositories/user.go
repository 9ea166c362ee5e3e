package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/syruplabs/syrup/internal/models"
	"github.com/syruplabs/syrup/internal/shared"
)

// UserRepository handles persistence for caller identities.
//
// Accounts come from onboarding; the answer path only reads them. Tokens are
// opaque and looked up verbatim.
type UserRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new UserRepository with the given database connection
func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts a new user with a generated ID and API token
func (r *UserRepository) Create(user *models.User) error {
	now := time.Now().UTC()
	user.ID = shared.GenerateID()
	if user.APIToken == "" {
		user.APIToken = shared.GenerateToken()
	}
	if user.TierID == "" {
		user.TierID = "taste-test"
	}
	user.CreatedAt = now
	user.UpdatedAt = now

	if err := user.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	query := `
		INSERT INTO users (id, email, display_name, tier_id, api_token, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.Exec(query,
		user.ID,
		user.Email,
		user.DisplayName,
		user.TierID,
		user.APIToken,
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert user: %w", err)
	}

	return nil
}

// Get retrieves a user by ID
func (r *UserRepository) Get(id string) (*models.User, error) {
	return r.getBy("id", id)
}

// GetByEmail retrieves a user by email address
func (r *UserRepository) GetByEmail(email string) (*models.User, error) {
	return r.getBy("email", email)
}

// GetByToken retrieves a user by API token.
//
// Used by the HTTP surface to resolve the caller identity.
func (r *UserRepository) GetByToken(token string) (*models.User, error) {
	return r.getBy("api_token", token)
}

func (r *UserRepository) getBy(column, value string) (*models.User, error) {
	query := fmt.Sprintf(`
		SELECT id, email, display_name, tier_id, api_token, created_at, updated_at
		FROM users
		WHERE %s = ?
	`, column)

	var user models.User
	err := r.db.QueryRow(query, value).Scan(
		&user.ID,
		&user.Email,
		&user.DisplayName,
		&user.TierID,
		&user.APIToken,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, shared.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query user: %w", err)
	}

	return &user, nil
}

// List retrieves all users ordered by creation time
func (r *UserRepository) List() ([]*models.User, error) {
	query := `
		SELECT id, email, display_name, tier_id, api_token, created_at, updated_at
		FROM users
		ORDER BY created_at ASC
	`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		var user models.User
		err := rows.Scan(
			&user.ID,
			&user.Email,
			&user.DisplayName,
			&user.TierID,
			&user.APIToken,
			&user.CreatedAt,
			&user.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, &user)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return users, nil
}
