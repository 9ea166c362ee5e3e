package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/syruplabs/syrup/internal/answers"
	"github.com/syruplabs/syrup/internal/formatter"
	"github.com/syruplabs/syrup/internal/services"
	"github.com/syruplabs/syrup/internal/shared"
	"github.com/syruplabs/syrup/internal/tasks"
)

// SyncRunner runs one full sync job. Implemented by [tasks.SyncJob].
type SyncRunner interface {
	Run(ctx context.Context, progress chan<- tasks.ProgressUpdate) (*tasks.JobReport, error)
}

// Answerer answers caller questions. Implemented by [answers.Service].
type Answerer interface {
	Ask(ctx context.Context, userID, artistID, question string) (*answers.Answer, error)
}

// ArtistSearcher looks up artists in the provider catalog.
// Implemented by [services.SoundchartsService].
type ArtistSearcher interface {
	SearchArtists(ctx context.Context, query string, limit int) ([]services.ArtistMatch, error)
}

// errorBody is the wire shape of a typed failure.
type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// envelope is the JSON response shape shared by the RPC-style endpoints.
type envelope struct {
	Success bool                  `json:"success"`
	Answer  string                `json:"answer,omitempty"`
	Artists []services.ArtistMatch `json:"artists,omitempty"`
	Error   *errorBody            `json:"error,omitempty"`
}

// errorCode maps service errors onto HTTP status and wire code.
func errorCode(err error) (int, string) {
	switch {
	case errors.Is(err, shared.ErrNotAuthenticated):
		return http.StatusUnauthorized, "unauthenticated"
	case errors.Is(err, shared.ErrInvalidArgument),
		errors.Is(err, shared.ErrMissingArgument),
		errors.Is(err, shared.ErrInvalidInput):
		return http.StatusBadRequest, "invalid-argument"
	case errors.Is(err, shared.ErrPermissionDenied):
		return http.StatusForbidden, "permission-denied"
	case errors.Is(err, shared.ErrArtistNotFound), errors.Is(err, shared.ErrUserNotFound):
		return http.StatusNotFound, "not-found"
	default:
		return http.StatusInternalServerError, "internal"
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	status, code := errorCode(err)
	writeJSON(w, status, envelope{
		Success: false,
		Error:   &errorBody{Code: code, Message: err.Error()},
	})
}

// SyncHandler triggers a full sync run.
//
// The response is always 200 with a plain-text summary: this is a background
// job endpoint and job-level success is not the same as all-artists success.
// Failures show up in the summary body and the logs.
type SyncHandler struct {
	job    SyncRunner
	logger *log.Logger
}

// NewSyncHandler creates a new SyncHandler with the given job and logger.
func NewSyncHandler(job SyncRunner, logger *log.Logger) *SyncHandler {
	return &SyncHandler{job: job, logger: logger}
}

// Routes returns the HTTP routes this handler serves.
func (h *SyncHandler) Routes() []string {
	return []string{"/tasks/sync"}
}

// ServeHTTP runs the sync job and writes the plain-text summary.
func (h *SyncHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	report, err := h.job.Run(r.Context(), nil)
	if err != nil {
		// Enumeration failed before any work started; this is the one case
		// where the trigger itself errors.
		h.logger.Error("sync job failed to start", "error", err)
		http.Error(w, fmt.Sprintf("sync job failed to start: %v", err), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, formatter.Summary(report))
}

// answerRequest is the wire shape of the answers RPC request.
type answerRequest struct {
	ArtistID string `json:"artistId"`
	Prompt   string `json:"prompt"`
}

// AnswerHandler serves the query RPC. Requires [AuthMiddleware] upstream.
type AnswerHandler struct {
	service Answerer
}

// NewAnswerHandler creates a new AnswerHandler backed by the given service.
func NewAnswerHandler(service Answerer) *AnswerHandler {
	return &AnswerHandler{service: service}
}

// Routes returns the HTTP routes this handler serves.
func (h *AnswerHandler) Routes() []string {
	return []string{"/v1/answers"}
}

// ServeHTTP decodes the request, runs the answer service, and writes the envelope.
func (h *AnswerHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	caller, ok := CallerFrom(r.Context())
	if !ok {
		writeError(w, shared.ErrNotAuthenticated)
		return
	}

	var req answerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, fmt.Errorf("%w: malformed request body", shared.ErrInvalidArgument))
		return
	}

	answer, err := h.service.Ask(r.Context(), caller.ID, req.ArtistID, req.Prompt)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, envelope{Success: true, Answer: answer.Text})
}

// SearchHandler proxies artist search to the provider catalog for onboarding.
// Requires [AuthMiddleware] upstream.
type SearchHandler struct {
	search ArtistSearcher
}

// NewSearchHandler creates a new SearchHandler backed by the given searcher.
func NewSearchHandler(search ArtistSearcher) *SearchHandler {
	return &SearchHandler{search: search}
}

// Routes returns the HTTP routes this handler serves.
func (h *SearchHandler) Routes() []string {
	return []string{"/v1/artists/search"}
}

// ServeHTTP runs the catalog search and writes the envelope.
func (h *SearchHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if _, ok := CallerFrom(r.Context()); !ok {
		writeError(w, shared.ErrNotAuthenticated)
		return
	}

	query := r.URL.Query().Get("q")
	if query == "" {
		writeError(w, fmt.Errorf("%w: q parameter is required", shared.ErrMissingArgument))
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	matches, err := h.search.SearchArtists(r.Context(), query, limit)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, envelope{Success: true, Artists: matches})
}
