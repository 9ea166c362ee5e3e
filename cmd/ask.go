package main

import (
	"context"
	"fmt"

	"github.com/syruplabs/syrup/internal/answers"
	"github.com/syruplabs/syrup/internal/repositories"
	"github.com/urfave/cli/v3"
)

// Ask runs the answer service from the CLI on behalf of a user.
//
// The same authorization gate applies as over HTTP: the user must hold a
// grant for the artist or the question is refused before any data is read.
func (r *Runner) Ask(ctx context.Context, cmd *cli.Command) error {
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

	generator, err := r.buildGenerator(config)
	if err != nil {
		return fmt.Errorf("failed to create answer generator: %w", err)
	}

	service := answers.NewService(answers.ServiceOpts{
		Users:       repositories.NewUserRepository(db),
		Artists:     repositories.NewArtistRepository(db),
		Grants:      repositories.NewGrantRepository(db),
		Metrics:     repositories.NewMetricRepository(db),
		Generator:   generator,
		RecentLimit: config.Query.RecentLimit,
		Logger:      r.logger,
	})

	answer, err := service.Ask(ctx, user.ID, cmd.String("artist"), cmd.String("prompt"))
	if err != nil {
		return err
	}

	r.logger.Debug("answer generated", "records", answer.RecordCount)
	r.writePlain("%s\n", answer.Text)
	return nil
}
