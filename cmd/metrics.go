package main

import (
	"context"
	"fmt"
	"os"

	"github.com/syruplabs/syrup/internal/formatter"
	"github.com/syruplabs/syrup/internal/repositories"
	"github.com/syruplabs/syrup/internal/shared"
	"github.com/urfave/cli/v3"
)

// MetricsExport exports an artist's stored metrics as CSV, Markdown, or JSON.
func (r *Runner) MetricsExport(ctx context.Context, cmd *cli.Command) error {
	config := r.loadConfig(cmd)

	db, err := r.openDatabase(config)
	if err != nil {
		return err
	}
	defer db.Close()

	artistID := cmd.String("artist")
	artist, err := repositories.NewArtistRepository(db).Get(artistID)
	if err != nil {
		return fmt.Errorf("failed to resolve artist: %w", err)
	}

	metrics, err := repositories.NewMetricRepository(db).List(map[string]any{"artist_id": artistID})
	if err != nil {
		return fmt.Errorf("failed to list metrics: %w", err)
	}

	var data []byte
	switch format := cmd.String("format"); format {
	case "csv":
		data, err = formatter.MetricsToCSV(metrics)
	case "markdown", "md":
		data, err = formatter.MetricsToMarkdown(artist, metrics)
	case "json":
		return r.writeJSON(metrics, true)
	default:
		return fmt.Errorf("%w: unknown format %q", shared.ErrInvalidArgument, format)
	}
	if err != nil {
		return fmt.Errorf("failed to format metrics: %w", err)
	}

	if outputPath := cmd.String("output"); outputPath != "" {
		if err := os.WriteFile(outputPath, data, 0644); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
		r.logger.Info("metrics exported", "artist", artist.Name, "records", len(metrics), "path", outputPath)
		return nil
	}

	return r.writePlain("%s", data)
}
