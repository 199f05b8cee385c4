package binary

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/vzhukovs/podman-desktop-sub003/config"
)

// DefaultCommand is the binary command used when none is configured.
const DefaultCommand = "podman"

// Info is the information about the installed binary.
type Info struct {
	Version string
}

// Source provides the binary info.
type Source interface {
	// BinaryInfo returns the binary info, or nil if the binary is not usable.
	BinaryInfo(ctx context.Context) *Info
}

// Prober retrieves the version of a binary command.
type Prober interface {
	Version(ctx context.Context, command string) (string, error)
}

var _ Source = (*Cache)(nil)

// Cache caches the binary info until invalidated.
//
// Concurrent callers of an empty cache may each probe the binary,
// the last result is kept.
type Cache struct {
	probe    Prober
	settings config.Settings
	notifier config.ChangeNotifier

	sync.Mutex
	info *Info
	sub  config.Subscription

	log *logrus.Entry
}

// NewCache creates a new binary info cache.
func NewCache(probe Prober, settings config.Settings, notifier config.ChangeNotifier) *Cache {
	return &Cache{
		probe:    probe,
		settings: settings,
		notifier: notifier,
		log:      logrus.WithField("context", "binary"),
	}
}

// Command returns the configured binary command.
func (c *Cache) Command() string {
	if c.settings != nil {
		if cmd := config.String(c.settings, config.KeyBinaryPath); cmd != "" {
			return cmd
		}
	}
	return DefaultCommand
}

// BinaryInfo implements Source.
// A failed probe is not an error, nil is returned and nothing is cached.
func (c *Cache) BinaryInfo(ctx context.Context) *Info {
	c.Lock()
	info := c.info
	c.Unlock()
	if info != nil {
		return info
	}

	command := c.Command()
	version, err := c.probe.Version(ctx, command)
	if err != nil {
		c.log.Debugf("cannot retrieve version of '%s': %v", command, err)
		return nil
	}

	info = &Info{Version: version}
	c.Lock()
	c.info = info
	c.Unlock()
	return info
}

// Invalidate clears the cached info.
func (c *Cache) Invalidate() {
	c.Lock()
	c.info = nil
	c.Unlock()
}

// Init subscribes to settings changes, the cache is invalidated
// whenever the binary path setting changes.
func (c *Cache) Init() {
	if c.notifier == nil {
		return
	}

	sub := c.notifier.OnDidChangeConfiguration(func(ev config.ChangeEvent) {
		if ev.AffectsConfiguration(config.KeyBinaryPath) {
			c.log.Trace("binary path changed, invalidating")
			c.Invalidate()
		}
	})

	c.Lock()
	prev := c.sub
	c.sub = sub
	c.Unlock()

	if prev != nil {
		prev.Dispose()
	}
}

// Dispose releases the settings subscription.
func (c *Cache) Dispose() {
	c.Lock()
	sub := c.sub
	c.sub = nil
	c.Unlock()

	if sub != nil {
		sub.Dispose()
	}
}
