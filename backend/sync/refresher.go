package sync

import (
	"fmt"
	"sync"
	"time"

	"teampulse/backend"
)

// SnapshotWriter is the slice of the local snapshot store the refresher
// needs: replacing the whole record set atomically.
type SnapshotWriter interface {
	Replace(snap *backend.Snapshot, source string) error
}

// Refresher pulls the full record set from the remote store, runs it
// through normalization, and swaps the local snapshot. Writes never flow
// the other way: commands append directly to the remote and the next
// refresh makes them visible locally.
type Refresher struct {
	remote backend.StatusStore
	local  SnapshotWriter

	mu      sync.Mutex
	running bool
}

// NewRefresher creates a refresher pulling from remote into local
func NewRefresher(remote backend.StatusStore, local SnapshotWriter) *Refresher {
	return &Refresher{
		remote: remote,
		local:  local,
	}
}

// RefreshResult contains statistics about one refresh
type RefreshResult struct {
	Checkins int
	Kudos    int
	Replies  int
	Tasks    int
	Goals    int
	Duration time.Duration
}

// Total returns the number of records pulled
func (r *RefreshResult) Total() int {
	return r.Checkins + r.Kudos + r.Replies + r.Tasks + r.Goals
}

// String returns a human-readable summary of the refresh
func (r *RefreshResult) String() string {
	return fmt.Sprintf(
		"%d records (%d checkins, %d kudos, %d replies, %d tasks, %d goals) in %s",
		r.Total(), r.Checkins, r.Kudos, r.Replies, r.Tasks, r.Goals, r.Duration.Round(time.Millisecond),
	)
}

// ErrRefreshInProgress is returned when a refresh is already running.
// The watch loop and a manual refresh may race; the loser just skips.
var ErrRefreshInProgress = fmt.Errorf("refresh already in progress")

// Refresh pulls everything from the remote and replaces the snapshot.
// Only one refresh runs at a time.
func (r *Refresher) Refresh() (*RefreshResult, error) {
	r.mu.Lock()
	if r.running {
		r.mu.Unlock()
		return nil, ErrRefreshInProgress
	}
	r.running = true
	r.mu.Unlock()

	defer func() {
		r.mu.Lock()
		r.running = false
		r.mu.Unlock()
	}()

	startTime := time.Now()

	snap, err := backend.FetchAll(r.remote)
	if err != nil {
		return nil, err
	}

	if err := r.local.Replace(snap, r.remote.Name()); err != nil {
		return nil, fmt.Errorf("failed to replace snapshot: %w", err)
	}

	return &RefreshResult{
		Checkins: len(snap.Checkins),
		Kudos:    len(snap.Kudos),
		Replies:  len(snap.Replies),
		Tasks:    len(snap.Tasks),
		Goals:    len(snap.Goals),
		Duration: time.Since(startTime),
	}, nil
}
