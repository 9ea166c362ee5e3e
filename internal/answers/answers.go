// package answers implements the authorization-gated, retrieval-augmented
// answer service over synced artist metrics.
package answers

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/syruplabs/syrup/internal/models"
	"github.com/syruplabs/syrup/internal/shared"
)

// Generator is the opaque answer-generation collaborator: prompt in, text
// out. Generation failures are surfaced to the caller, never retried here.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// UserStore is the subset of the user repository the answer path reads.
type UserStore interface {
	Get(id string) (*models.User, error)
}

// ArtistStore is the subset of the artist repository the answer path reads.
type ArtistStore interface {
	Get(id string) (*models.Artist, error)
}

// GrantStore answers "does this caller hold a grant for this artist".
type GrantStore interface {
	Has(userID, artistID string) (bool, error)
}

// MetricStore is the subset of the metric repository the answer path reads.
type MetricStore interface {
	ListRecent(artistID string, limit int) ([]models.DailyMetric, error)
}

// Answer is a successful generation result.
type Answer struct {
	Text        string
	RecordCount int // metric rows embedded in the prompt
}

// Service answers caller questions grounded in an artist's recent metrics.
//
// Authorization is checked before any data is read: a caller without a grant
// gets a permission error, not silently empty data. A caller WITH a grant but
// no stored metrics still gets an answer; the generator handles "no data".
type Service struct {
	users       UserStore
	artists     ArtistStore
	grants      GrantStore
	metrics     MetricStore
	generator   Generator
	recentLimit int
	logger      *log.Logger
}

// ServiceOpts contains dependencies and tunables for an answer Service.
type ServiceOpts struct {
	Users       UserStore
	Artists     ArtistStore
	Grants      GrantStore
	Metrics     MetricStore
	Generator   Generator
	RecentLimit int // metric rows embedded per answer (default: 30)
	Logger      *log.Logger
}

// NewService creates a new answer Service with the provided dependencies.
func NewService(opts ServiceOpts) *Service {
	if opts.RecentLimit <= 0 {
		opts.RecentLimit = 30
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}

	return &Service{
		users:       opts.Users,
		artists:     opts.Artists,
		grants:      opts.Grants,
		metrics:     opts.Metrics,
		generator:   opts.Generator,
		recentLimit: opts.RecentLimit,
		logger:      opts.Logger,
	}
}

// Ask generates an answer to the caller's question grounded in the artist's
// most recent metrics.
func (s *Service) Ask(ctx context.Context, userID, artistID, question string) (*Answer, error) {
	if strings.TrimSpace(artistID) == "" || strings.TrimSpace(question) == "" {
		return nil, fmt.Errorf("%w: artistId and prompt are required", shared.ErrInvalidArgument)
	}

	user, err := s.users.Get(userID)
	if err != nil {
		return nil, fmt.Errorf("%w: unknown caller", shared.ErrNotAuthenticated)
	}

	granted, err := s.grants.Has(user.ID, artistID)
	if err != nil {
		return nil, fmt.Errorf("failed to check grant: %w", err)
	}
	if !granted {
		return nil, fmt.Errorf("%w: no grant for artist %s", shared.ErrPermissionDenied, artistID)
	}

	artist, err := s.artists.Get(artistID)
	if err != nil {
		return nil, err
	}

	metrics, err := s.metrics.ListRecent(artist.ID, s.recentLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to load metrics: %w", err)
	}

	// TierID feeds future per-tier rate limiting; for now it is only logged.
	s.logger.Info("answering question",
		"user", user.Email, "tier", user.TierID, "artist", artist.Name, "records", len(metrics))

	prompt, err := buildPrompt(artist, question, metrics)
	if err != nil {
		return nil, fmt.Errorf("failed to build prompt: %w", err)
	}

	text, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrGenerationFailed, err)
	}

	return &Answer{Text: text, RecordCount: len(metrics)}, nil
}
