package provider

import (
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vzhukovs/podman-desktop-sub003/store"
)

var _ Registry = (*StoreRegistry)(nil)

// StoreRegistry is a Registry that persists registered providers in the store.
type StoreRegistry struct {
	sync.Mutex
	active map[string]struct{}
}

// NewStoreRegistry creates a new StoreRegistry.
func NewStoreRegistry() *StoreRegistry {
	return &StoreRegistry{active: map[string]struct{}{}}
}

// CreateProvider implements Registry.
func (r *StoreRegistry) CreateProvider(opts Options) (Handle, error) {
	if opts.ID == "" {
		return nil, fmt.Errorf("provider id cannot be empty")
	}

	r.Lock()
	defer r.Unlock()

	if _, ok := r.active[opts.ID]; ok {
		return nil, fmt.Errorf("provider '%s' is already registered", opts.ID)
	}

	entry := store.Provider{
		ID:           opts.ID,
		Name:         opts.Name,
		Status:       string(opts.Status),
		Version:      opts.Version,
		RegisteredAt: time.Now(),
	}
	for _, c := range opts.DetectionChecks {
		entry.DetectionChecks = append(entry.DetectionChecks, c.Title())
	}

	if err := store.Set(func(s *store.Store) {
		if s.Providers == nil {
			s.Providers = map[string]store.Provider{}
		}
		s.Providers[opts.ID] = entry
	}); err != nil {
		return nil, fmt.Errorf("error registering provider '%s': %w", opts.ID, err)
	}

	r.active[opts.ID] = struct{}{}
	return &storeHandle{registry: r, opts: opts}, nil
}

func (r *StoreRegistry) remove(id string) {
	r.Lock()
	defer r.Unlock()

	if _, ok := r.active[id]; !ok {
		return
	}
	delete(r.active, id)

	if err := store.Set(func(s *store.Store) {
		delete(s.Providers, id)
	}); err != nil {
		logrus.Warnln(fmt.Errorf("error unregistering provider '%s': %w", id, err))
	}
}

type storeHandle struct {
	registry *StoreRegistry
	opts     Options
	once     sync.Once
}

func (s *storeHandle) Options() Options { return s.opts }

func (s *storeHandle) Dispose() {
	s.once.Do(func() { s.registry.remove(s.opts.ID) })
}
