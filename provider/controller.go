package provider

import (
	"context"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/vzhukovs/podman-desktop-sub003/binary"
	"github.com/vzhukovs/podman-desktop-sub003/check"
)

const (
	Name = "Podman"
	ID   = "podman"
)

// Cache is the binary info cache.
type Cache interface {
	binary.Source
	Invalidate()
}

// Controller registers the Podman provider with its installation status.
type Controller struct {
	cache     Cache
	registry  Registry
	detection []check.Check

	sync.Mutex
	handle Handle

	log *logrus.Entry
}

// NewController creates a new provider controller.
func NewController(cache Cache, registry Registry, detection []check.Check) *Controller {
	return &Controller{
		cache:     cache,
		registry:  registry,
		detection: detection,
		log:       logrus.WithField("context", "provider"),
	}
}

// Status returns the current installation status.
func (c *Controller) Status(ctx context.Context) (Status, string) {
	info := c.cache.BinaryInfo(ctx)
	if info == nil || info.Version == "" {
		return StatusNotInstalled, ""
	}
	return StatusInstalled, info.Version
}

// Init registers the provider.
// A provider registered by a previous Init is disposed first.
func (c *Controller) Init(ctx context.Context) error {
	c.Lock()
	defer c.Unlock()

	if c.handle != nil {
		c.handle.Dispose()
		c.handle = nil
	}
	return c.register(ctx)
}

// register must be called with the lock held.
func (c *Controller) register(ctx context.Context) error {
	status, version := c.Status(ctx)

	handle, err := c.registry.CreateProvider(Options{
		Name:            Name,
		ID:              ID,
		Status:          status,
		Version:         version,
		DetectionChecks: c.detection,
		Images: Images{
			Icon: "icon.png",
			Logo: "logo.png",
		},
		Links: []Link{
			{Title: "Website", URL: "https://podman.io/"},
			{Title: "Installation guide", URL: "https://podman.io/docs/installation"},
			{Title: "Docs", URL: "https://docs.podman.io/"},
		},
		EmptyConnectionMarkdownDescription: "Podman is a lightweight, open-source container runtime and image management tool " +
			"that enables users to run and manage containers without the need for a daemon.\n\n" +
			"More information: [podman.io](https://podman.io/)",
	})
	if err != nil {
		return fmt.Errorf("error registering provider: %w", err)
	}

	c.handle = handle
	c.log.Debugf("registered with status %s", status)
	return nil
}

// Provider returns the registered provider.
// ErrNotInitialized is returned if Init has not been called or after Dispose.
func (c *Controller) Provider() (Handle, error) {
	c.Lock()
	defer c.Unlock()

	if c.handle == nil {
		return nil, ErrNotInitialized
	}
	return c.handle, nil
}

// Refresh re-probes the binary and registers the provider with the updated status.
func (c *Controller) Refresh(ctx context.Context) error {
	c.cache.Invalidate()

	c.Lock()
	defer c.Unlock()

	if c.handle == nil {
		return ErrNotInitialized
	}
	c.handle.Dispose()
	c.handle = nil

	return c.register(ctx)
}

// Dispose unregisters the provider.
func (c *Controller) Dispose() {
	c.Lock()
	defer c.Unlock()

	if c.handle != nil {
		c.handle.Dispose()
		c.handle = nil
	}
}
