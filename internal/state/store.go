package state

import (
	"fmt"
	"sync"
	"time"

	"github.com/five82/settingsync/internal/settings"
)

// Snapshot represents the latest remote fetch result.
type Snapshot struct {
	Remote              settings.Remote
	HasRemote           bool
	Fetching            bool
	LastUpdated         time.Time
	LastError           error
	ConsecutiveFailures int // Number of consecutive fetch failures
}

// IsOffline returns true when the API has been unreachable for multiple fetches.
func (s Snapshot) IsOffline() bool {
	return s.ConsecutiveFailures >= 2
}

// IsError reports whether the most recent fetch failed.
func (s Snapshot) IsError() bool {
	return s.LastError != nil
}

// Store coordinates concurrent updates to the snapshot.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot
}

// Begin marks a fetch as in flight.
func (s *Store) Begin() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot.Fetching = true
}

// Update records a fetch result. When err is non-nil the previous data is
// kept but the error is recorded for visibility.
func (s *Store) Update(remote *settings.Remote, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snapshot.Fetching = false
	s.snapshot.LastUpdated = time.Now()

	if err != nil {
		s.snapshot.LastError = err
		s.snapshot.ConsecutiveFailures++
		return
	}

	if remote != nil {
		s.snapshot.Remote = cloneRemote(*remote)
		s.snapshot.HasRemote = true
	}
	s.snapshot.LastError = nil
	s.snapshot.ConsecutiveFailures = 0
}

// Reset forgets everything, e.g. after logout.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot = Snapshot{}
}

// Snapshot returns a copy of the current snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	snap.Remote = cloneRemote(s.snapshot.Remote)
	if s.snapshot.LastError != nil {
		snap.LastError = fmt.Errorf("%w", s.snapshot.LastError)
	}
	return snap
}

// cloneRemote copies every pointer field so callers can't reach the stored values.
func cloneRemote(r settings.Remote) settings.Remote {
	t := r.Theme
	return settings.Remote{Theme: settings.RemoteTheme{
		ThemeStretch:      clonePtr(t.ThemeStretch),
		ThemeMode:         clonePtr(t.ThemeMode),
		ThemeDirection:    clonePtr(t.ThemeDirection),
		ThemeContrast:     clonePtr(t.ThemeContrast),
		ThemeLayout:       clonePtr(t.ThemeLayout),
		ThemeColorPresets: clonePtr(t.ThemeColorPresets),
		FontSizeScale:     clonePtr(t.FontSizeScale),
	}}
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
