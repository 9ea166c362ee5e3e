package main

import (
	"context"
	"fmt"
	"net/http"

	"github.com/syruplabs/syrup/internal/answers"
	"github.com/syruplabs/syrup/internal/repositories"
	"github.com/syruplabs/syrup/internal/server"
	"github.com/syruplabs/syrup/internal/shared"
	"github.com/urfave/cli/v3"
)

// Serve starts the HTTP server exposing the sync trigger, the answers RPC,
// and the artist catalog search.
func (r *Runner) Serve(ctx context.Context, cmd *cli.Command) error {
	config := r.loadConfig(cmd)

	port := config.Server.Port
	if cmd.Int("port") > 0 {
		port = cmd.Int("port")
	}

	db, err := r.openDatabase(config)
	if err != nil {
		return err
	}
	defer db.Close()

	artistRepo := repositories.NewArtistRepository(db)
	metricRepo := repositories.NewMetricRepository(db)
	userRepo := repositories.NewUserRepository(db)
	grantRepo := repositories.NewGrantRepository(db)

	job, err := r.buildSyncJob(config, artistRepo, metricRepo)
	if err != nil {
		return err
	}

	generator, err := r.buildGenerator(config)
	if err != nil {
		return fmt.Errorf("failed to create answer generator: %w", err)
	}

	answerService := answers.NewService(answers.ServiceOpts{
		Users:       userRepo,
		Artists:     artistRepo,
		Grants:      grantRepo,
		Metrics:     metricRepo,
		Generator:   generator,
		RecentLimit: config.Query.RecentLimit,
		Logger:      r.logger,
	})

	soundcharts, err := r.buildSoundcharts(config)
	if err != nil {
		return fmt.Errorf("failed to create soundcharts service: %w", err)
	}

	router := server.NewBasicRouter()
	router.Use(server.LoggingMiddleware(shared.WithLogger(r.logger, "component", "http")))

	// The sync trigger is unauthenticated; its caller is a scheduler on a
	// trusted network. The caller-facing endpoints require a bearer token.
	router.Handler(server.NewSyncHandler(job, r.logger))

	auth := server.AuthMiddleware(userRepo)
	router.Handle(http.MethodPost, "/v1/answers", auth(server.NewAnswerHandler(answerService)))
	router.Handle(http.MethodGet, "/v1/artists/search", auth(server.NewSearchHandler(soundcharts)))

	addr := fmt.Sprintf("%s:%d", config.Server.Host, port)
	r.logger.Info("starting server", "addr", addr)

	srv := &http.Server{Addr: addr, Handler: router}

	go func() {
		<-ctx.Done()
		srv.Shutdown(context.Background())
	}()

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}
