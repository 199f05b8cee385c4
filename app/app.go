package app

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"time"

	"github.com/docker/go-units"
	"github.com/sirupsen/logrus"
	"github.com/vzhukovs/podman-desktop-sub003/binary"
	"github.com/vzhukovs/podman-desktop-sub003/check"
	"github.com/vzhukovs/podman-desktop-sub003/check/catalog"
	"github.com/vzhukovs/podman-desktop-sub003/config"
	"github.com/vzhukovs/podman-desktop-sub003/config/configmanager"
	"github.com/vzhukovs/podman-desktop-sub003/environment"
	"github.com/vzhukovs/podman-desktop-sub003/environment/host"
	"github.com/vzhukovs/podman-desktop-sub003/installer"
	"github.com/vzhukovs/podman-desktop-sub003/powershell"
	"github.com/vzhukovs/podman-desktop-sub003/provider"
	"github.com/vzhukovs/podman-desktop-sub003/store"
	"github.com/vzhukovs/podman-desktop-sub003/util/terminal"
)

// Checks is a set of checks.
type Checks string

const (
	ChecksDetection Checks = "detection"
	ChecksInstall   Checks = "install"
	ChecksUpdate    Checks = "update"
)

// BundledVersion is the Podman version of the bundled Windows installer.
const BundledVersion = "5.2.1"

type App interface {
	// Status prints the status of Podman.
	Status(ctx context.Context) error
	// Watch prints the status whenever the settings change, until ctx is done.
	Watch(ctx context.Context) error
	// Check runs and prints a set of checks.
	Check(ctx context.Context, checks Checks) error
	Install(ctx context.Context) error
	Update(ctx context.Context) error
	// Settings returns the settings.
	Settings() *configmanager.Manager
	// Close releases the resources of the app.
	Close()
}

var _ App = (*podmanApp)(nil)

// New creates a new app for the current platform.
func New() (App, error) {
	return newApp(runtime.GOOS, host.New(), terminal.NewOutput())
}

func newApp(goos string, exec environment.Executor, output *terminal.Output) (*podmanApp, error) {
	settings := configmanager.New(config.SettingsFile())
	if err := settings.Load(); err != nil {
		return nil, fmt.Errorf("error loading settings: %w", err)
	}

	cache := binary.NewCache(binary.NewProbe(exec), settings, settings)
	cache.Init()

	checks := catalog.For(goos, catalog.Deps{
		Binary:       cache,
		Exec:         exec,
		Capabilities: powershell.New(exec),
		DataDir:      config.Dir(),
	})

	console := terminal.NewConsole(output)
	controller := provider.NewController(cache, provider.NewStoreRegistry(), checks.Detection())

	a := &podmanApp{
		goos:       goos,
		settings:   settings,
		cache:      cache,
		checks:     checks,
		controller: controller,
		output:     output,
		log:        logrus.WithField("context", "app"),
	}

	inst, err := installer.ForPlatform(goos, installer.Deps{
		Exec:      exec,
		Settings:  settings,
		Catalog:   checks,
		Version:   BundledVersion,
		AssetsDir: config.AssetsDir(),
	})
	if err != nil {
		// detection still works without an installer
		a.log.Debug(err)
	} else {
		a.orchestrator = installer.NewOrchestrator(inst, installer.OrchestratorDeps{
			Progress: console,
			Notifier: console,
			Cache:    cache,
			Provider: controller,
			Record:   installer.RecordInstall,
		})
	}

	return a, nil
}

type podmanApp struct {
	goos         string
	settings     *configmanager.Manager
	cache        *binary.Cache
	checks       catalog.Catalog
	controller   *provider.Controller
	orchestrator *installer.Orchestrator
	output       *terminal.Output
	log          *logrus.Entry
}

func (p *podmanApp) Settings() *configmanager.Manager { return p.settings }

// registerProvider registers the provider if it is not yet registered.
func (p *podmanApp) registerProvider(ctx context.Context) (provider.Handle, error) {
	handle, err := p.controller.Provider()
	if err == nil {
		return handle, nil
	}
	if !errors.Is(err, provider.ErrNotInitialized) {
		return nil, err
	}

	if err := p.controller.Init(ctx); err != nil {
		return nil, err
	}
	return p.controller.Provider()
}

func (p *podmanApp) Status(ctx context.Context) error {
	handle, err := p.registerProvider(ctx)
	if err != nil {
		return err
	}
	opts := handle.Options()

	p.output.Start()
	defer p.output.Stop()

	p.output.Begin(opts.Name)
	p.output.Child("status: " + string(opts.Status))
	if opts.Version != "" {
		p.output.Child("version: " + opts.Version)
	}
	p.output.Child("binary: " + p.cache.Command())

	if s, err := store.Load(); err == nil && s.LastInstall != nil {
		last := s.LastInstall
		result := "succeeded"
		if !last.Successful {
			result = "failed"
		}
		p.output.Child(fmt.Sprintf("last %s: %s %s ago", last.Operation, result, units.HumanDuration(time.Since(last.Time))))
	}

	report, err := check.RunAll(ctx, opts.DetectionChecks...)
	if err != nil {
		return err
	}
	p.renderOutcomes(report)

	if opts.Status == provider.StatusNotInstalled {
		p.output.Error("Podman is not installed")
		return nil
	}
	p.output.Done("Podman is ready")
	return nil
}

func (p *podmanApp) Watch(ctx context.Context) error {
	if err := p.Status(ctx); err != nil {
		return err
	}

	sub := p.settings.OnDidChangeConfiguration(func(ev config.ChangeEvent) {
		if !ev.AffectsConfiguration(config.KeyBinaryPath) {
			return
		}
		// the cache is already invalidated
		if err := p.controller.Refresh(ctx); err != nil {
			p.log.Warnln(fmt.Errorf("error refreshing provider: %w", err))
			return
		}
		if err := p.Status(ctx); err != nil {
			p.log.Warnln(err)
		}
	})
	defer sub.Dispose()

	return p.settings.Watch(ctx)
}

func (p *podmanApp) Check(ctx context.Context, checks Checks) error {
	var list []check.Check
	switch checks {
	case ChecksDetection:
		list = p.checks.Detection()
	case ChecksInstall:
		list = p.checks.InstallPreflight()
	case ChecksUpdate:
		list = p.checks.UpdatePreflight()
	default:
		return fmt.Errorf("invalid checks '%s'", checks)
	}
	if len(list) == 0 {
		return fmt.Errorf("no %s checks for %s", checks, p.goos)
	}

	report, err := check.RunAll(ctx, list...)
	if err != nil {
		return err
	}

	p.output.Start()
	defer p.output.Stop()

	p.output.Begin(string(checks) + " checks")
	p.renderOutcomes(report)
	if err := report.Err(); err != nil {
		p.output.Error(fmt.Sprintf("%d of %d checks failed", len(report.Failed()), len(report)))
		return err
	}
	p.output.Done("all checks passed")
	return nil
}

func (p *podmanApp) Install(ctx context.Context) error {
	return p.install(ctx, installer.OperationInstall)
}

func (p *podmanApp) Update(ctx context.Context) error {
	return p.install(ctx, installer.OperationUpdate)
}

func (p *podmanApp) install(ctx context.Context, op installer.Operation) error {
	if p.orchestrator == nil {
		return fmt.Errorf("cannot %s Podman: %w: %s", op, installer.ErrUnsupportedPlatform, p.goos)
	}

	// registered to be refreshed after the install
	if _, err := p.registerProvider(ctx); err != nil {
		return err
	}

	p.output.Start()
	defer p.output.Stop()

	run := p.orchestrator.Install
	if op == installer.OperationUpdate {
		run = p.orchestrator.Update
	}

	ok, err := run(ctx)
	var perr *installer.PreflightError
	if errors.As(err, &perr) {
		p.output.Begin(string(op) + " checks")
		p.renderOutcomes(perr.Report)
		p.output.Error(fmt.Sprintf("cannot %s Podman", op))
	}
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("podman %s did not complete", op)
	}
	return nil
}

func (p *podmanApp) renderOutcomes(report check.Report) {
	for _, o := range report {
		if !o.Failed() {
			p.output.Child(o.Title)
			continue
		}

		p.output.ChildError(o.Title)
		switch {
		case o.Err != nil:
			p.output.Detail(o.Err.Error())
		case o.Result != nil:
			if o.Result.Description != "" {
				p.output.Detail(o.Result.Description)
			}
			if o.Result.DocLinksDescription != "" {
				p.output.Detail(o.Result.DocLinksDescription)
			}
			for _, link := range o.Result.DocLinks {
				p.output.Detail(fmt.Sprintf("%s: %s", link.Title, link.URL))
			}
		}
	}
}

func (p *podmanApp) Close() {
	p.controller.Dispose()
	p.cache.Dispose()
}
