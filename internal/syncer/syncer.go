package syncer

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/five82/settingsync/internal/auth"
	"github.com/five82/settingsync/internal/debounce"
	"github.com/five82/settingsync/internal/settings"
	"github.com/five82/settingsync/internal/state"
)

// DefaultDelay is the quiet period before a local change is pushed.
const DefaultDelay = 1500 * time.Millisecond

// ErrClosed is returned by operations on a closed Synchronizer.
var ErrClosed = errors.New("synchronizer closed")

// Storage is the durable local mirror.
type Storage interface {
	Load() settings.Settings
	Save(settings.Settings) error
}

// Saver pushes the full settings record to the server.
type Saver interface {
	SaveSettings(ctx context.Context, s settings.Settings) error
}

// Remote is the fetch collaborator: it refreshes the server snapshot on
// request, reports fetch status and delivers new snapshots to subscribers.
type Remote interface {
	Refresh(ctx context.Context) error
	Snapshot() state.Snapshot
	Subscribe(fn func(settings.Remote)) func()
}

// Options configure a Synchronizer. Storage and Saver are required.
type Options struct {
	Storage Storage
	Saver   Saver
	Auth    auth.Signal // nil means never authenticated
	Remote  Remote      // optional
	Delay   time.Duration
	Logger  *zap.Logger
	Now     func() time.Time
}

// Status is the sync state shown next to the settings.
type Status struct {
	Authenticated bool
	Saving        bool
	Pending       bool
	LastSavedAt   time.Time
	Fetching      bool
	FetchErr      error
	Offline       bool
}

// Synchronizer owns the settings record. Writes land in memory and in local
// storage before returning; remote saves are debounced and only run while
// authenticated; remote snapshots are merged back without triggering a save.
type Synchronizer struct {
	ctx     context.Context
	storage Storage
	saver   Saver
	auth    auth.Signal
	remote  Remote
	logger  *zap.Logger
	now     func() time.Time
	timer   *debounce.Timer

	unsubscribe func()
	wg          sync.WaitGroup

	mu          sync.Mutex
	current     settings.Settings
	saving      int
	lastSavedAt time.Time
	drawerOpen  bool
	closed      bool
	nextID      int
	listeners   map[int]func(settings.Settings)
}

// New seeds the state from storage and subscribes to remote snapshots.
// Debounced saves run under ctx.
func New(ctx context.Context, opts Options) (*Synchronizer, error) {
	if opts.Storage == nil {
		return nil, fmt.Errorf("synchronizer requires storage")
	}
	if opts.Saver == nil {
		return nil, fmt.Errorf("synchronizer requires a saver")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	signal := opts.Auth
	if signal == nil {
		signal = auth.Static(false)
	}
	delay := opts.Delay
	if delay <= 0 {
		delay = DefaultDelay
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	s := &Synchronizer{
		ctx:       ctx,
		storage:   opts.Storage,
		saver:     opts.Saver,
		auth:      signal,
		remote:    opts.Remote,
		logger:    logger.Named("syncer"),
		now:       now,
		timer:     debounce.New(delay),
		current:   opts.Storage.Load(),
		listeners: make(map[int]func(settings.Settings)),
	}
	if s.remote != nil {
		s.unsubscribe = s.remote.Subscribe(func(r settings.Remote) { s.ApplyRemote(r) })
	}
	return s, nil
}

// Settings returns the current record.
func (s *Synchronizer) Settings() settings.Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// CanReset reports whether the record differs from the defaults.
func (s *Synchronizer) CanReset() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current != settings.Defaults()
}

// Update sets one field, persists locally and (re)arms the debounced remote
// save when authenticated. Only a key/value type mismatch or a local
// storage failure is returned; the in-memory change is kept either way.
func (s *Synchronizer) Update(key settings.Key, value any) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}
	next, err := s.current.With(key, value)
	if err != nil {
		s.mu.Unlock()
		return err
	}
	changed := next != s.current
	s.current = next
	storeErr := s.storage.Save(next)

	s.timer.Cancel()
	if s.auth.Authenticated() {
		s.timer.Schedule(s.debouncedSave)
	}
	listeners := s.listenersLocked()
	s.mu.Unlock()

	s.logger.Debug("settings updated", zap.String("key", string(key)), zap.Any("value", value))
	if changed {
		notify(listeners, next)
	}
	if storeErr != nil {
		s.logger.Error("persist settings failed", zap.Error(storeErr))
		return fmt.Errorf("persist settings: %w", storeErr)
	}
	return nil
}

// SetDirectionByLanguage applies the text direction for lang through Update.
func (s *Synchronizer) SetDirectionByLanguage(lang string) error {
	return s.Update(settings.KeyThemeDirection, settings.DirectionFor(lang))
}

// Reset restores the defaults locally. It does not push to the server; a
// later Update or SaveNow does.
func (s *Synchronizer) Reset() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}
	next := settings.Defaults()
	changed := next != s.current
	s.current = next
	storeErr := s.storage.Save(next)
	listeners := s.listenersLocked()
	s.mu.Unlock()

	s.logger.Debug("settings reset")
	if changed {
		notify(listeners, next)
	}
	if storeErr != nil {
		s.logger.Error("persist settings failed", zap.Error(storeErr))
		return fmt.Errorf("persist settings: %w", storeErr)
	}
	return nil
}

// SaveNow pushes the current record immediately. Any pending debounced save
// is dropped since it would carry the same record. Unauthenticated calls are
// a silent no-op.
func (s *Synchronizer) SaveNow(ctx context.Context) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}
	s.timer.Cancel()
	s.wg.Add(1)
	s.mu.Unlock()
	defer s.wg.Done()

	return s.save(ctx)
}

// ApplyRemote merges a server snapshot into local state. Fields that are
// absent or already equal are skipped; nothing is scheduled for upload.
// It returns the keys that changed.
func (s *Synchronizer) ApplyRemote(remote settings.Remote) []settings.Key {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	merged, changed := remote.Theme.Merge(s.current)
	if len(changed) == 0 {
		s.mu.Unlock()
		return nil
	}
	s.current = merged
	storeErr := s.storage.Save(merged)
	listeners := s.listenersLocked()
	s.mu.Unlock()

	keys := make([]string, len(changed))
	for i, k := range changed {
		keys[i] = string(k)
	}
	s.logger.Debug("applied remote settings", zap.Strings("keys", keys))
	if storeErr != nil {
		s.logger.Error("persist settings failed", zap.Error(storeErr))
	}
	notify(listeners, merged)
	return changed
}

// Status reports saving/fetching state.
func (s *Synchronizer) Status() Status {
	s.mu.Lock()
	st := Status{
		Saving:      s.saving > 0,
		LastSavedAt: s.lastSavedAt,
	}
	s.mu.Unlock()

	st.Authenticated = s.auth.Authenticated()
	st.Pending = s.timer.Pending()
	if s.remote != nil {
		snap := s.remote.Snapshot()
		st.Fetching = snap.Fetching
		st.FetchErr = snap.LastError
		st.Offline = snap.IsOffline()
	}
	return st
}

// DrawerOpen reports whether the settings drawer is shown.
func (s *Synchronizer) DrawerOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.drawerOpen
}

// ToggleDrawer flips the drawer state.
func (s *Synchronizer) ToggleDrawer() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.drawerOpen = !s.drawerOpen
}

// CloseDrawer hides the drawer.
func (s *Synchronizer) CloseDrawer() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.drawerOpen = false
}

// Subscribe registers fn for every change to the record and returns a
// function that removes it. fn runs outside the synchronizer's lock.
func (s *Synchronizer) Subscribe(fn func(settings.Settings)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.listeners, id)
	}
}

// Close cancels any pending save, detaches from the remote and waits for
// in-flight saves to finish. It is safe to call more than once.
func (s *Synchronizer) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.timer.Stop()
	s.listeners = make(map[int]func(settings.Settings))
	s.mu.Unlock()

	if s.unsubscribe != nil {
		s.unsubscribe()
	}
	s.wg.Wait()
}

func (s *Synchronizer) debouncedSave() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.wg.Add(1)
	s.mu.Unlock()
	defer s.wg.Done()

	_ = s.save(s.ctx)
}

func (s *Synchronizer) save(ctx context.Context) error {
	if !s.auth.Authenticated() {
		return nil
	}

	s.mu.Lock()
	snapshot := s.current
	s.saving++
	s.mu.Unlock()

	err := s.saver.SaveSettings(ctx, snapshot)

	s.mu.Lock()
	s.saving--
	if err == nil {
		s.lastSavedAt = s.now()
	}
	s.mu.Unlock()

	if err != nil {
		s.logger.Warn("settings save failed", zap.Error(err))
		return fmt.Errorf("save settings: %w", err)
	}
	s.logger.Info("settings saved")

	if s.remote != nil {
		if err := s.remote.Refresh(ctx); err != nil {
			s.logger.Debug("refresh after save failed", zap.Error(err))
		}
	}
	return nil
}

func (s *Synchronizer) listenersLocked() []func(settings.Settings) {
	fns := make([]func(settings.Settings), 0, len(s.listeners))
	for _, fn := range s.listeners {
		fns = append(fns, fn)
	}
	return fns
}

func notify(fns []func(settings.Settings), current settings.Settings) {
	for _, fn := range fns {
		fn(current)
	}
}
