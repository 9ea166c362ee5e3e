// package repositories provides persistence layer implementations for all model types.
package repositories

import (
	"fmt"

	sq "github.com/Masterminds/squirrel"
)

// builder is the shared squirrel statement builder. SQLite uses ? placeholders.
var builder = sq.StatementBuilder.PlaceholderFormat(sq.Question)

// WriteError reports a failed metric batch commit for one artist.
// No partial subset of the batch is committed when this is returned.
type WriteError struct {
	ArtistID string
	Err      error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("metric batch write for artist %s: %v", e.ArtistID, e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}
