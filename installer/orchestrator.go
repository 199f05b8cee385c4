package installer

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vzhukovs/podman-desktop-sub003/check"
	"github.com/vzhukovs/podman-desktop-sub003/environment"
	"github.com/vzhukovs/podman-desktop-sub003/provider"
	"github.com/vzhukovs/podman-desktop-sub003/store"
	"github.com/vzhukovs/podman-desktop-sub003/util/terminal"
)

// Invalidator invalidates the binary info.
type Invalidator interface {
	Invalidate()
}

// Refresher refreshes the registered provider.
type Refresher interface {
	Refresh(ctx context.Context) error
}

// launcher is implemented by installers that report a run cancelled by the user.
type launcher interface {
	launch(ctx context.Context, progress terminal.Reporter) (cancelled bool, err error)
}

// OrchestratorDeps are the dependencies of the Orchestrator.
type OrchestratorDeps struct {
	Progress terminal.Progress
	Notifier terminal.Notifier
	Cache    Invalidator
	Provider Refresher
	// Record records the attempt. Optional.
	Record func(store.Install) error
}

// Orchestrator runs the preflight checks and the installer.
type Orchestrator struct {
	installer Installer
	deps      OrchestratorDeps
	log       *logrus.Entry
}

// NewOrchestrator creates a new Orchestrator for the installer.
func NewOrchestrator(installer Installer, deps OrchestratorDeps) *Orchestrator {
	return &Orchestrator{
		installer: installer,
		deps:      deps,
		log:       logrus.WithField("context", "installer"),
	}
}

// Preflight runs the checks of the operation.
func (o *Orchestrator) Preflight(ctx context.Context, op Operation) (check.Report, error) {
	checks := o.installer.PreflightChecks()
	if op == OperationUpdate {
		checks = o.installer.UpdatePreflightChecks()
	}
	return check.RunAll(ctx, checks...)
}

// Install installs Podman.
// It returns false with a nil error if the installer fails, the error is displayed.
// A *PreflightError is returned if the preflight checks fail, and an error
// wrapping ErrArtifactNotFound if there is no installer to launch.
func (o *Orchestrator) Install(ctx context.Context) (bool, error) {
	return o.run(ctx, OperationInstall)
}

// Update updates Podman. See Install.
func (o *Orchestrator) Update(ctx context.Context) (bool, error) {
	return o.run(ctx, OperationUpdate)
}

func (o *Orchestrator) run(ctx context.Context, op Operation) (bool, error) {
	report, err := o.Preflight(ctx, op)
	if err != nil {
		return false, err
	}
	if !report.Passed() {
		return false, &PreflightError{Operation: op, Report: report}
	}

	var ok, cancelled bool
	title := "Installing Podman"
	if op == OperationUpdate {
		title = "Updating Podman"
	}
	err = o.deps.Progress.WithProgress(ctx, terminal.ProgressOptions{Title: title}, func(ctx context.Context, progress terminal.Reporter) error {
		var err error
		switch l := o.installer.(type) {
		case launcher:
			// update runs the same installer
			cancelled, err = l.launch(ctx, progress)
			ok = err == nil
		default:
			if op == OperationUpdate {
				ok, err = o.installer.Update(ctx, progress)
			} else {
				ok, err = o.installer.Install(ctx, progress)
			}
		}
		if err == nil {
			progress.Report(100)
		}
		return err
	})

	o.complete(ctx, op, ok, err)

	if err != nil {
		o.log.Error(fmt.Errorf("error during %s: %w", op, err))
		o.deps.Notifier.ShowErrorMessage(fmt.Sprintf("Error during %s of Podman: %s", op, errorText(err)))
		if errors.Is(err, ErrArtifactNotFound) {
			return false, err
		}
		return false, nil
	}

	switch {
	case cancelled:
		o.log.Infof("Podman %s cancelled by the user", op)
	case ok:
		o.deps.Notifier.ShowNotification(successMessage(op))
	default:
		o.log.Warnf("Podman %s did not complete", op)
	}
	return ok, nil
}

// complete refreshes the state after the installer exits.
func (o *Orchestrator) complete(ctx context.Context, op Operation, ok bool, err error) {
	if o.deps.Cache != nil {
		o.deps.Cache.Invalidate()
	}
	if o.deps.Provider != nil {
		// the operation may have been interrupted, the state is refreshed regardless
		if err := o.deps.Provider.Refresh(context.WithoutCancel(ctx)); err != nil && !errors.Is(err, provider.ErrNotInitialized) {
			o.log.Warnln(fmt.Errorf("error refreshing provider: %w", err))
		}
	}

	if o.deps.Record == nil {
		return
	}
	entry := store.Install{
		Operation:  string(op),
		Platform:   o.installer.Platform(),
		Successful: ok && err == nil,
		Time:       time.Now(),
	}
	if artifact, aerr := o.installer.Artifact(); aerr == nil {
		entry.Artifact = artifact
	}
	if err != nil {
		entry.Error = errorText(err)
	}
	if err := o.deps.Record(entry); err != nil {
		o.log.Warnln(fmt.Errorf("error recording %s: %w", op, err))
	}
}

// errorText returns the captured error output of a failed process, or the error text.
func errorText(err error) string {
	var execErr *environment.ExecError
	if errors.As(err, &execErr) {
		if stderr := strings.TrimSpace(execErr.Stderr); stderr != "" {
			return stderr
		}
	}
	return err.Error()
}

func successMessage(op Operation) string {
	if op == OperationUpdate {
		return "Podman is successfully updated."
	}
	return "Podman is successfully installed."
}

// RecordInstall records the attempt in the store.
func RecordInstall(i store.Install) error {
	return store.Set(func(s *store.Store) {
		s.LastInstall = &i
	})
}
