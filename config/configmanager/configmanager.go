package configmanager

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"sort"
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/vzhukovs/podman-desktop-sub003/config"
	"github.com/vzhukovs/podman-desktop-sub003/util/yamlutil"
)

var (
	_ config.Settings       = (*Manager)(nil)
	_ config.ChangeNotifier = (*Manager)(nil)
)

// Manager is the settings file backed implementation of config.Settings.
type Manager struct {
	file string

	sync.RWMutex
	values map[string]any

	listenersMu sync.Mutex
	listeners   map[int]config.Listener
	nextID      int

	log *logrus.Entry
}

// New creates a Manager for the settings file. The file is not read until Load is called.
func New(file string) *Manager {
	return &Manager{
		file:      file,
		values:    map[string]any{},
		listeners: map[int]config.Listener{},
		log:       logrus.WithField("context", "settings"),
	}
}

// File returns the path to the settings file.
func (m *Manager) File() string { return m.file }

// Load loads the settings file.
// Error is only returned if the file exists but could not be loaded.
// No error is returned if the file does not exist.
func (m *Manager) Load() error {
	vals, err := LoadFrom(m.file)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}

	m.Lock()
	m.values = vals
	m.Unlock()
	return nil
}

// Get implements config.Settings.
// Values not present in the settings file fall back to config.Defaults.
func (m *Manager) Get(key string) (any, bool) {
	m.RLock()
	v, ok := m.values[key]
	m.RUnlock()
	if ok {
		return v, true
	}

	v, ok = config.Defaults()[key]
	return v, ok
}

// Values returns the effective settings with defaults applied.
func (m *Manager) Values() map[string]any {
	vals := config.Defaults()

	m.RLock()
	defer m.RUnlock()
	for k, v := range m.values {
		vals[k] = v
	}
	return vals
}

// Update implements config.Settings.
// The settings file is saved and listeners are notified before it returns.
func (m *Manager) Update(key string, value any) error {
	if key == "" {
		return fmt.Errorf("settings key cannot be empty")
	}

	m.Lock()
	prev, existed := m.values[key]
	if existed && reflect.DeepEqual(prev, value) {
		m.Unlock()
		return nil
	}
	m.values[key] = value
	if err := yamlutil.Save(m.values, m.file); err != nil {
		// restore previous state
		if existed {
			m.values[key] = prev
		} else {
			delete(m.values, key)
		}
		m.Unlock()
		return fmt.Errorf("error saving settings: %w", err)
	}
	m.Unlock()

	m.log.Debugf("setting '%s' updated", key)
	m.fire(config.KeysChanged{key})
	return nil
}

// OnDidChangeConfiguration implements config.ChangeNotifier.
func (m *Manager) OnDidChangeConfiguration(l config.Listener) config.Subscription {
	m.listenersMu.Lock()
	defer m.listenersMu.Unlock()

	id := m.nextID
	m.nextID++
	m.listeners[id] = l

	return subscription(func() {
		m.listenersMu.Lock()
		defer m.listenersMu.Unlock()
		delete(m.listeners, id)
	})
}

func (m *Manager) fire(ev config.KeysChanged) {
	if len(ev) == 0 {
		return
	}

	m.listenersMu.Lock()
	ids := make([]int, 0, len(m.listeners))
	for id := range m.listeners {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	listeners := make([]config.Listener, 0, len(ids))
	for _, id := range ids {
		listeners = append(listeners, m.listeners[id])
	}
	m.listenersMu.Unlock()

	// registration order
	for _, l := range listeners {
		l(ev)
	}
}

// reload reloads the settings file and notifies listeners of the changed keys.
func (m *Manager) reload() error {
	vals, err := LoadFrom(m.file)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return err
		}
		// removed file resets to defaults
		vals = map[string]any{}
	}

	m.Lock()
	changed := diff(m.values, vals)
	m.values = vals
	m.Unlock()

	if len(changed) > 0 {
		m.log.Debugf("settings file changed: %v", changed)
	}
	m.fire(changed)
	return nil
}

// LoadFrom loads flattened settings from file.
func LoadFrom(file string) (map[string]any, error) {
	b, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("could not load settings from file: %w", err)
	}

	vals, err := yamlutil.Flatten(b)
	if err != nil {
		return nil, fmt.Errorf("could not load settings from file: %w", err)
	}

	return vals, nil
}

// diff returns the sorted keys that differ between a and b.
func diff(a, b map[string]any) config.KeysChanged {
	var keys config.KeysChanged
	for k, v := range a {
		if bv, ok := b[k]; !ok || !reflect.DeepEqual(v, bv) {
			keys = append(keys, k)
		}
	}
	for k := range b {
		if _, ok := a[k]; !ok {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}

type subscription func()

func (s subscription) Dispose() { s() }
