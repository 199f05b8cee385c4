package provider

import (
	"errors"

	"github.com/vzhukovs/podman-desktop-sub003/check"
)

// ErrNotInitialized is returned when the provider is accessed before it is registered.
var ErrNotInitialized = errors.New("provider not initialized")

// Status is the installation status of the provider.
type Status string

const (
	StatusNotInstalled Status = "not-installed"
	StatusInstalled    Status = "installed"
)

// Images are the images of the provider.
type Images struct {
	Icon string
	Logo string
}

// Link is a link displayed with the provider.
type Link struct {
	Title string
	URL   string
}

// Options are the options for registering a provider.
type Options struct {
	Name            string
	ID              string
	Status          Status
	Version         string
	DetectionChecks []check.Check
	Images          Images
	Links           []Link
	// EmptyConnectionMarkdownDescription is displayed when the provider has no connections.
	EmptyConnectionMarkdownDescription string
}

// Handle is a registered provider.
type Handle interface {
	Options() Options
	// Dispose unregisters the provider.
	Dispose()
}

// Registry registers providers.
type Registry interface {
	CreateProvider(Options) (Handle, error)
}
