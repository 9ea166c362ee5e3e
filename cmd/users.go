package main

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/syruplabs/syrup/internal/models"
	"github.com/syruplabs/syrup/internal/repositories"
	"github.com/urfave/cli/v3"
)

// UsersAdd creates a user and prints the issued API token.
//
// The token is shown exactly once; it is stored but never printed again.
func (r *Runner) UsersAdd(ctx context.Context, cmd *cli.Command) error {
	config := r.loadConfig(cmd)

	db, err := r.openDatabase(config)
	if err != nil {
		return err
	}
	defer db.Close()

	user := &models.User{
		Email:       cmd.String("email"),
		DisplayName: cmd.String("name"),
	}

	if err := repositories.NewUserRepository(db).Create(user); err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	r.writePlain("✓ User created\n")
	r.writePlain("ID: %s\n", user.ID)
	r.writePlain("Tier: %s\n", user.TierID)
	r.writePlainln("API token (store this now, it is not shown again):")
	r.writePlain("%s\n", user.APIToken)
	return nil
}

// UsersGrant grants a user access to an artist's metrics. Accepts the user's
// ID or email; granting twice is a no-op.
func (r *Runner) UsersGrant(ctx context.Context, cmd *cli.Command) error {
	config := r.loadConfig(cmd)

	db, err := r.openDatabase(config)
	if err != nil {
		return err
	}
	defer db.Close()

	user, err := resolveUser(db, cmd.String("user"))
	if err != nil {
		return err
	}

	artistID := cmd.String("artist")
	if _, err := repositories.NewArtistRepository(db).Get(artistID); err != nil {
		return fmt.Errorf("failed to resolve artist: %w", err)
	}

	if err := repositories.NewGrantRepository(db).Create(user.ID, artistID); err != nil {
		return fmt.Errorf("failed to create grant: %w", err)
	}

	r.writePlain("✓ Granted %s access to artist %s\n", user.Email, artistID)
	return nil
}

// UsersList lists registered users.
func (r *Runner) UsersList(ctx context.Context, cmd *cli.Command) error {
	config := r.loadConfig(cmd)

	db, err := r.openDatabase(config)
	if err != nil {
		return err
	}
	defer db.Close()

	users, err := repositories.NewUserRepository(db).List()
	if err != nil {
		return fmt.Errorf("failed to list users: %w", err)
	}

	if len(users) == 0 {
		r.writePlain("No users registered yet. Add one with 'syrup users add'.\n")
		return nil
	}

	r.writePlainHeader(fmt.Sprintf("Users (%d)", len(users)))
	for _, user := range users {
		r.writePlain("%s  %s [%s]\n", user.ID, user.Email, user.TierID)
	}

	return nil
}

// resolveUser looks a user up by ID, or by email when the value contains "@".
func resolveUser(db *sql.DB, value string) (*models.User, error) {
	repo := repositories.NewUserRepository(db)

	var user *models.User
	var err error
	if strings.Contains(value, "@") {
		user, err = repo.GetByEmail(value)
	} else {
		user, err = repo.Get(value)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to resolve user %q: %w", value, err)
	}

	return user, nil
}
