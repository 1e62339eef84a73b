// Package appcache mirrors the current user's role application state on the
// client side so that any number of observers can share one fetch per role.
package appcache

import (
	"context"
	"sync"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/ahashem12/LaunchpadX-sub001/internal/domain"
	"github.com/ahashem12/LaunchpadX-sub001/internal/metrics"
)

// Backend is the subset of the API the store consumes.
type Backend interface {
	// CurrentUser returns domain.ErrUnauthenticated when there is no session.
	CurrentUser(ctx context.Context) (domain.Profile, error)
	// GetApplication returns nil without error when the user has not applied.
	GetApplication(ctx context.Context, roleID string) (*domain.RoleApplication, error)
	ApplyToRole(ctx context.Context, roleID, message string) (domain.RoleApplication, error)
}

// Entry is a snapshot of the cached state for one role.
type Entry struct {
	RoleID      string                  `json:"roleId"`
	Application *domain.RoleApplication `json:"application"`
	Loading     bool                    `json:"loading"`
	Loaded      bool                    `json:"loaded"`
}

func (e Entry) Applied() bool {
	return e.Application != nil
}

type Listener func(Entry)

type subscriber struct {
	id uint64
	fn Listener
}

// Store is safe for concurrent use. One Store is meant to live as long as the
// session it serves.
type Store struct {
	backend Backend
	logger  *zap.Logger
	group   singleflight.Group

	mu          sync.Mutex
	apps        map[string]*domain.RoleApplication
	loading     map[string]bool
	subscribers map[string][]subscriber
	nextID      uint64
}

type Option func(*Store)

func WithLogger(logger *zap.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

func NewStore(backend Backend, opts ...Option) *Store {
	s := &Store{
		backend:     backend,
		logger:      zap.NewNop(),
		apps:        make(map[string]*domain.RoleApplication),
		loading:     make(map[string]bool),
		subscribers: make(map[string][]subscriber),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Subscribe registers fn for changes of roleID. The returned function removes
// the registration and may be called more than once.
func (s *Store) Subscribe(roleID string, fn Listener) func() {
	s.mu.Lock()
	s.nextID++
	id := s.nextID
	s.subscribers[roleID] = append(s.subscribers[roleID], subscriber{id: id, fn: fn})
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			subs := s.subscribers[roleID]
			for i, sub := range subs {
				if sub.id == id {
					s.subscribers[roleID] = append(subs[:i:i], subs[i+1:]...)
					break
				}
			}
			if len(s.subscribers[roleID]) == 0 {
				delete(s.subscribers, roleID)
			}
		})
	}
}

func (s *Store) Get(roleID string) (Entry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, loaded := s.apps[roleID]
	if !loaded && !s.loading[roleID] {
		return Entry{RoleID: roleID}, false
	}
	return s.entryLocked(roleID), true
}

// EnsureLoaded fetches the application status of roleID unless it is already
// cached. Concurrent callers for the same role share a single fetch. A caller
// whose ctx ends returns ctx.Err() without failing the fetch for the others. A
// failed load leaves the role uncached so a later call retries.
func (s *Store) EnsureLoaded(ctx context.Context, roleID string) error {
	s.mu.Lock()
	_, loaded := s.apps[roleID]
	s.mu.Unlock()
	if loaded {
		metrics.ApplicationLoadsCoalesced.Inc()
		return nil
	}

	// the load outlives the caller that started it; joined callers still wait on it
	loadCtx := context.WithoutCancel(ctx)
	ch := s.group.DoChan(roleID, func() (any, error) {
		return nil, s.load(loadCtx, roleID)
	})

	select {
	case <-ctx.Done():
		return ctx.Err()
	case res := <-ch:
		if res.Shared {
			metrics.ApplicationLoadsCoalesced.Inc()
		}
		return res.Err
	}
}

func (s *Store) load(ctx context.Context, roleID string) error {
	s.mu.Lock()
	if _, loaded := s.apps[roleID]; loaded {
		s.mu.Unlock()
		return nil
	}
	s.loading[roleID] = true
	s.mu.Unlock()

	app, err := s.fetch(ctx, roleID)

	s.mu.Lock()
	delete(s.loading, roleID)
	if err == nil {
		// an Apply or Put that landed while we were fetching is newer
		if _, ok := s.apps[roleID]; !ok {
			s.apps[roleID] = app
		}
	}
	entry, listeners := s.snapshotLocked(roleID)
	s.mu.Unlock()

	if err != nil {
		metrics.ApplicationStatusFetches.WithLabelValues("error").Inc()
		s.logger.Warn("failed to load application status",
			zap.String("roleId", roleID),
			zap.Error(err),
		)
	} else {
		metrics.ApplicationStatusFetches.WithLabelValues("ok").Inc()
	}

	notify(entry, listeners)
	return err
}

func (s *Store) fetch(ctx context.Context, roleID string) (*domain.RoleApplication, error) {
	if _, err := s.backend.CurrentUser(ctx); err != nil {
		return nil, err
	}
	app, err := s.backend.GetApplication(ctx, roleID)
	if err != nil {
		return nil, errors.Wrap(err, "fetch application status")
	}
	return app, nil
}

// Apply submits an application for roleID. On failure the cached state is left
// untouched and the error is returned for the caller to surface;
// domain.ErrUnauthenticated means the user has to sign in first.
func (s *Store) Apply(ctx context.Context, roleID, message string) (domain.RoleApplication, error) {
	if _, err := s.backend.CurrentUser(ctx); err != nil {
		return domain.RoleApplication{}, err
	}

	app, err := s.backend.ApplyToRole(ctx, roleID, message)
	if err != nil {
		metrics.ApplicationsSubmitted.WithLabelValues("error").Inc()
		s.logger.Warn("failed to apply to role",
			zap.String("roleId", roleID),
			zap.Error(err),
		)
		return domain.RoleApplication{}, err
	}
	metrics.ApplicationsSubmitted.WithLabelValues("ok").Inc()

	s.Put(roleID, &app)
	return app, nil
}

// Put replaces the cached application of roleID and notifies subscribers.
func (s *Store) Put(roleID string, app *domain.RoleApplication) {
	var stored *domain.RoleApplication
	if app != nil {
		copied := *app
		stored = &copied
	}

	s.mu.Lock()
	s.apps[roleID] = stored
	entry, listeners := s.snapshotLocked(roleID)
	s.mu.Unlock()

	notify(entry, listeners)
}

func (s *Store) entryLocked(roleID string) Entry {
	app, loaded := s.apps[roleID]
	entry := Entry{
		RoleID:  roleID,
		Loading: s.loading[roleID],
		Loaded:  loaded,
	}
	if app != nil {
		copied := *app
		entry.Application = &copied
	}
	return entry
}

func (s *Store) snapshotLocked(roleID string) (Entry, []Listener) {
	subs := s.subscribers[roleID]
	listeners := make([]Listener, len(subs))
	for i, sub := range subs {
		listeners[i] = sub.fn
	}
	return s.entryLocked(roleID), listeners
}

func notify(entry Entry, listeners []Listener) {
	for _, fn := range listeners {
		e := entry
		if e.Application != nil {
			copied := *e.Application
			e.Application = &copied
		}
		fn(e)
	}
}
