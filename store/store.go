package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vzhukovs/podman-desktop-sub003/config"
)

// Store stores internal state that is not user configuration.
type Store struct {
	// registered providers, keyed by id.
	Providers map[string]Provider `json:"providers,omitempty"`
	// the last install or update attempt.
	LastInstall *Install `json:"last_install,omitempty"`
}

// Provider is a registered provider.
type Provider struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Status          string    `json:"status"`
	Version         string    `json:"version,omitempty"`
	DetectionChecks []string  `json:"detection_checks,omitempty"`
	RegisteredAt    time.Time `json:"registered_at"`
}

// Install is an install or update attempt.
type Install struct {
	Operation  string    `json:"operation"`
	Platform   string    `json:"platform"`
	Artifact   string    `json:"artifact,omitempty"`
	Successful bool      `json:"successful"`
	Error      string    `json:"error,omitempty"`
	Time       time.Time `json:"time"`
}

// storeFile is swapped in tests.
var storeFile = config.StoreFile

// guards read-modify-write cycles within the process.
var mu sync.Mutex

// Load loads the store from the json file.
func Load() (s Store, err error) {
	b, err := os.ReadFile(storeFile())
	if err != nil {
		return s, fmt.Errorf("cannot read store file: %w", err)
	}

	if err := json.Unmarshal(b, &s); err != nil {
		return s, fmt.Errorf("error unmarshaling store file: %w", err)
	}

	return s, nil
}

// save persists the store.
func save(s Store) error {
	b, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("error marshaling store: %w", err)
	}

	if err := os.WriteFile(storeFile(), b, 0o644); err != nil {
		return fmt.Errorf("error writing store file: %w", err)
	}

	return nil
}

// Set provides an easy way to set a value in the store.
func Set(f func(*Store)) error {
	mu.Lock()
	defer mu.Unlock()

	s, err := Load()
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		logrus.Debugf("error loading store: %v", err)
	}

	f(&s)

	if err := save(s); err != nil {
		return fmt.Errorf("error saving store: %w", err)
	}

	return nil
}
