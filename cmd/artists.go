package main

import (
	"context"
	"fmt"

	"github.com/syruplabs/syrup/internal/models"
	"github.com/syruplabs/syrup/internal/repositories"
	"github.com/syruplabs/syrup/internal/shared"
	"github.com/urfave/cli/v3"
)

// ArtistsAdd tracks a new artist.
//
// An artist with neither provider ID is allowed but will be skipped by every
// sync run until one is set.
func (r *Runner) ArtistsAdd(ctx context.Context, cmd *cli.Command) error {
	config := r.loadConfig(cmd)

	db, err := r.openDatabase(config)
	if err != nil {
		return err
	}
	defer db.Close()

	artist := &models.Artist{
		Name:          cmd.String("name"),
		SoundchartsID: cmd.String("soundcharts-id"),
		SpotifyID:     cmd.String("spotify-id"),
	}

	if err := repositories.NewArtistRepository(db).Create(artist); err != nil {
		return fmt.Errorf("failed to create artist: %w", err)
	}

	if artist.SoundchartsID == "" && artist.SpotifyID == "" {
		r.logger.Warn("artist has no provider IDs and will be skipped by sync runs", "id", artist.ID)
	}

	r.writePlain("✓ Artist tracked\n")
	r.writePlain("ID: %s\n", artist.ID)
	return nil
}

// ArtistsList lists all tracked artists.
func (r *Runner) ArtistsList(ctx context.Context, cmd *cli.Command) error {
	config := r.loadConfig(cmd)

	db, err := r.openDatabase(config)
	if err != nil {
		return err
	}
	defer db.Close()

	artists, err := repositories.NewArtistRepository(db).List()
	if err != nil {
		return fmt.Errorf("failed to list artists: %w", err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(artists, true)
	}

	if len(artists) == 0 {
		r.writePlain("No artists tracked yet. Add one with 'syrup artists add'.\n")
		return nil
	}

	r.writePlainHeader(fmt.Sprintf("Tracked Artists (%d)", len(artists)))
	for _, artist := range artists {
		lastSynced := "never"
		if artist.LastSyncedAt != nil {
			lastSynced = artist.LastSyncedAt.Format(shared.DayFormat)
		}
		r.writePlain("%s  %s (last synced: %s)\n", artist.ID, artist.Name, lastSynced)
	}

	return nil
}

// ArtistsSearch queries the Soundcharts catalog, used to resolve external IDs
// before tracking an artist.
func (r *Runner) ArtistsSearch(ctx context.Context, cmd *cli.Command) error {
	query := cmd.StringArg("query")
	if query == "" {
		return fmt.Errorf("%w: search query is required", shared.ErrMissingArgument)
	}

	config := r.loadConfig(cmd)

	soundcharts, err := r.buildSoundcharts(config)
	if err != nil {
		return fmt.Errorf("failed to create soundcharts service: %w", err)
	}

	matches, err := soundcharts.SearchArtists(ctx, query, cmd.Int("limit"))
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(matches, true)
	}

	if len(matches) == 0 {
		r.writePlain("No artists found for %q\n", query)
		return nil
	}

	for _, match := range matches {
		r.writePlain("%s  %s (%s)\n", match.SoundchartsID, match.Name, match.CountryCode)
	}

	return nil
}
