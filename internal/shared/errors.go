package shared

import "fmt"

var (
	// Configuration errors
	ErrMissingConfig      = fmt.Errorf("configuration not found")
	ErrInvalidConfig      = fmt.Errorf("invalid configuration")
	ErrMissingCredentials = fmt.Errorf("missing credentials")
	ErrNotConfigured      = fmt.Errorf("provider not configured")

	// Authentication and authorization errors
	ErrNotAuthenticated = fmt.Errorf("not authenticated")
	ErrPermissionDenied = fmt.Errorf("permission denied")

	// Lookup errors
	ErrArtistNotFound = fmt.Errorf("artist not found")
	ErrUserNotFound   = fmt.Errorf("user not found")

	// Answer generation errors
	ErrGenerationFailed = fmt.Errorf("answer generation failed")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
)
