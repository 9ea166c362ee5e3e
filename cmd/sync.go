package main

import (
	"context"

	"github.com/syruplabs/syrup/internal/formatter"
	"github.com/syruplabs/syrup/internal/repositories"
	"github.com/syruplabs/syrup/internal/tasks"
	"github.com/urfave/cli/v3"
)

// Sync runs one full sync job across all tracked artists and prints the report.
func (r *Runner) Sync(ctx context.Context, cmd *cli.Command) error {
	config := r.loadConfig(cmd)
	if workers := cmd.Int("workers"); workers > 0 {
		config.Sync.Workers = workers
	}

	db, err := r.openDatabase(config)
	if err != nil {
		return err
	}
	defer db.Close()

	artistRepo := repositories.NewArtistRepository(db)
	metricRepo := repositories.NewMetricRepository(db)

	job, err := r.buildSyncJob(config, artistRepo, metricRepo)
	if err != nil {
		return err
	}

	progress := make(chan tasks.ProgressUpdate, 16)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for update := range progress {
			r.logger.Info(update.Message, "step", update.Step, "total", update.Total)
		}
	}()

	report, err := job.Run(ctx, progress)
	close(progress)
	<-done
	if err != nil {
		return err
	}

	if cmd.Bool("table") && len(report.Outcomes) > 0 {
		r.writePlainHeader("Sync Report")
		r.writePlain("%s\n", formatter.ReportTable(report))
	}
	r.writePlain("%s", formatter.Summary(report))

	return nil
}
