package main

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/charmbracelet/log"
	"github.com/syruplabs/syrup/internal/services"
	"github.com/syruplabs/syrup/internal/shared"
	"github.com/syruplabs/syrup/internal/tasks"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config     *shared.Config
	httpClient *http.Client
	logger     *log.Logger
	output     io.Writer
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config     *shared.Config
	HTTPClient *http.Client
	Logger     *log.Logger
	Output     io.Writer
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = http.DefaultClient
	}

	return &Runner{
		config:     opts.Config,
		httpClient: opts.HTTPClient,
		logger:     opts.Logger,
		output:     opts.Output,
	}
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, serveCommand, syncCommand, artistsCommand, usersCommand, askCommand, metricsCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// loadConfig resolves the command's --config flag, falling back to the
// runner's startup config when the flag is unset or the file is unreadable.
func (r *Runner) loadConfig(cmd *cli.Command) *shared.Config {
	path := cmd.String("config")
	if path == "" {
		return r.config
	}

	config, err := shared.LoadConfig(path)
	if err != nil {
		r.logger.Warn("failed to load config, using defaults", "path", path, "error", err)
		return r.config
	}

	return config
}

// openDatabase opens and configures the SQLite database from config.
func (r *Runner) openDatabase(config *shared.Config) (*sql.DB, error) {
	db, err := shared.NewDatabase(config.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	shared.ConfigureDatabase(db, config.Database.MaxOpenConns, config.Database.MaxIdleConns)
	return db, nil
}

// buildProviders constructs the configured metric providers in priority order,
// Soundcharts first.
func (r *Runner) buildProviders(config *shared.Config) ([]services.Provider, error) {
	var providers []services.Provider

	if sc := config.Credentials.Soundcharts; sc.AppID != "" && sc.APIKey != "" {
		svc, err := services.NewSoundchartsService(sc.AppID, sc.APIKey, sc.BaseURL, r.httpClient)
		if err != nil {
			return nil, fmt.Errorf("failed to create soundcharts service: %w", err)
		}
		providers = append(providers, svc)
	}

	if sp := config.Credentials.Spotify; sp.ClientID != "" && sp.ClientSecret != "" {
		svc, err := services.NewSpotifyService(sp.ClientID, sp.ClientSecret, sp.TokenURL, sp.BaseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to create spotify service: %w", err)
		}
		providers = append(providers, svc)
	}

	if len(providers) == 0 {
		return nil, fmt.Errorf("%w: no metric providers configured", shared.ErrMissingCredentials)
	}

	return providers, nil
}

// buildSoundcharts constructs the Soundcharts service for catalog search.
func (r *Runner) buildSoundcharts(config *shared.Config) (*services.SoundchartsService, error) {
	sc := config.Credentials.Soundcharts
	return services.NewSoundchartsService(sc.AppID, sc.APIKey, sc.BaseURL, r.httpClient)
}

// buildGenerator constructs the Gemini answer generator from config.
func (r *Runner) buildGenerator(config *shared.Config) (*services.GeminiService, error) {
	g := config.Credentials.Google
	return services.NewGeminiService(g.APIKey, g.Model, g.BaseURL, r.httpClient)
}

// buildSyncJob wires providers, engine, and stores into a runnable sync job.
func (r *Runner) buildSyncJob(config *shared.Config, artists tasks.ArtistStore, metrics tasks.MetricStore) (*tasks.SyncJob, error) {
	providers, err := r.buildProviders(config)
	if err != nil {
		return nil, err
	}

	engine := tasks.NewSyncEngine(tasks.SyncEngineOpts{
		Providers:  providers,
		Metrics:    metrics,
		Artists:    artists,
		WindowDays: config.Sync.WindowDays,
		Logger:     r.logger,
	})

	return tasks.NewSyncJob(tasks.SyncJobOpts{
		Syncer:    engine,
		Artists:   artists,
		Workers:   config.Sync.Workers,
		RateLimit: config.Sync.RateLimit,
		Logger:    r.logger,
	}), nil
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	var output []byte
	var err error

	if pretty {
		output, err = json.MarshalIndent(data, "", "  ")
	} else {
		output, err = json.Marshal(data)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainln(format string, args ...any) error {
	text := "\n" + fmt.Sprintf(format, args...) + "\n"
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainHeader(title string) {
	r.writePlain("═══════════════════════════════════════\n")
	r.writePlain("%v\n", title)
	r.writePlain("═══════════════════════════════════════\n")
}
