package tasks

import (
	"fmt"
)

// ProgressUpdate represents a progress event during a sync run.
//
// Used to send real-time updates to the CLI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data
}

// Operation phase enumeration
type Phase int

const (
	EnumerateArtists Phase = iota
	SyncArtists
)

func (p Phase) String() string {
	switch p {
	case EnumerateArtists:
		return "enumerate_artists"
	case SyncArtists:
		return "sync_artists"
	default:
		return ""
	}
}

// sendProgress sends a progress update through the channel without blocking.
// Uses select with default so progress reporting never stalls the job.
func sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
		// Sent successfully
	default:
		// Channel full or closed, skip this update
	}
}

func enumeratedUpdate(total int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   EnumerateArtists,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Syncing %d tracked artists...", total),
	}
}

func artistSyncedUpdate(step, total int, outcome SyncOutcome) ProgressUpdate {
	update := ProgressUpdate{
		Phase: SyncArtists,
		Step:  step,
		Total: total,
		Data:  outcome,
	}

	switch {
	case outcome.Skipped:
		update.Message = fmt.Sprintf("[%d/%d] - %s: no provider configured", step, total, outcome.ArtistName)
	case !outcome.Succeeded():
		update.Message = fmt.Sprintf("[%d/%d] ✗ %s: no data committed", step, total, outcome.ArtistName)
	default:
		update.Message = fmt.Sprintf("[%d/%d] ✓ %s: %d records from %s", step, total, outcome.ArtistName, outcome.RecordsWritten, outcome.SourceUsed)
	}

	return update
}
