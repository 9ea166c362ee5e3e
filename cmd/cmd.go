// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

// configFlag is shared by every command that reads the TOML config.
func configFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Path to configuration file",
		Value:   "config.toml",
	}
}

// setupCommand handles database initialization.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "setup",
		Usage:  "Initialize database and run migrations",
		Flags:  []cli.Flag{configFlag()},
		Action: r.Setup,
	}
}

// serveCommand starts the HTTP server.
func serveCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Start the HTTP server for sync triggers and the answers RPC",
		Flags: []cli.Flag{
			configFlag(),
			&cli.IntFlag{
				Name:    "port",
				Aliases: []string{"p"},
				Usage:   "Port to listen on (overrides config)",
			},
		},
		Action: r.Serve,
	}
}

// syncCommand runs a full sync job from the CLI.
func syncCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "sync",
		Usage: "Sync daily streaming metrics for all tracked artists",
		Flags: []cli.Flag{
			configFlag(),
			&cli.IntFlag{
				Name:  "workers",
				Usage: "Concurrent sync workers (overrides config)",
			},
			&cli.BoolFlag{
				Name:  "table",
				Usage: "Render the per-artist report as a table",
				Value: true,
			},
		},
		Action: r.Sync,
	}
}

// artistsCommand manages the tracked artist roster.
func artistsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "artists",
		Usage: "Manage tracked artists",
		Commands: []*cli.Command{
			{
				Name:  "add",
				Usage: "Track a new artist",
				Flags: []cli.Flag{
					configFlag(),
					&cli.StringFlag{
						Name:     "name",
						Usage:    "Artist display name",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "soundcharts-id",
						Usage: "Soundcharts artist UUID",
					},
					&cli.StringFlag{
						Name:  "spotify-id",
						Usage: "Spotify artist ID",
					},
				},
				Action: r.ArtistsAdd,
			},
			{
				Name:  "list",
				Usage: "List tracked artists",
				Flags: []cli.Flag{
					configFlag(),
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.ArtistsList,
			},
			{
				Name:  "search",
				Usage: "Search the Soundcharts catalog for an artist",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "query",
					},
				},
				Flags: []cli.Flag{
					configFlag(),
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Maximum number of matches to return",
						Value: 10,
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.ArtistsSearch,
			},
		},
	}
}

// usersCommand manages API callers and their artist grants.
func usersCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "users",
		Usage: "Manage API users and grants",
		Commands: []*cli.Command{
			{
				Name:  "add",
				Usage: "Create a user and issue an API token",
				Flags: []cli.Flag{
					configFlag(),
					&cli.StringFlag{
						Name:     "email",
						Usage:    "User email address",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "name",
						Usage: "User display name",
					},
				},
				Action: r.UsersAdd,
			},
			{
				Name:  "grant",
				Usage: "Grant a user access to an artist's metrics",
				Flags: []cli.Flag{
					configFlag(),
					&cli.StringFlag{
						Name:     "user",
						Usage:    "User ID or email",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "artist",
						Usage:    "Artist ID",
						Required: true,
					},
				},
				Action: r.UsersGrant,
			},
			{
				Name:   "list",
				Usage:  "List registered users",
				Flags:  []cli.Flag{configFlag()},
				Action: r.UsersList,
			},
		},
	}
}

// askCommand runs the answer service from the CLI.
func askCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "ask",
		Usage: "Ask a question about an artist's recent streaming metrics",
		Flags: []cli.Flag{
			configFlag(),
			&cli.StringFlag{
				Name:     "user",
				Usage:    "Asking user's ID or email",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "artist",
				Usage:    "Artist ID",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "prompt",
				Usage:    "The question to ask",
				Required: true,
			},
		},
		Action: r.Ask,
	}
}

// metricsCommand exports stored metrics.
func metricsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "metrics",
		Usage: "Inspect and export stored metrics",
		Commands: []*cli.Command{
			{
				Name:  "export",
				Usage: "Export an artist's stored metrics",
				Flags: []cli.Flag{
					configFlag(),
					&cli.StringFlag{
						Name:     "artist",
						Usage:    "Artist ID",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "format",
						Usage: "Output format: csv, markdown, or json",
						Value: "csv",
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output file path (default: stdout)",
					},
				},
				Action: r.MetricsExport,
			},
		},
	}
}
