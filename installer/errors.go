package installer

import (
	"errors"
	"fmt"
	"strings"

	"github.com/vzhukovs/podman-desktop-sub003/check"
)

// Sentinel errors for type checking
var (
	ErrUnsupportedPlatform = errors.New("unsupported platform")
	ErrArtifactNotFound    = errors.New("installer artifact not found")
	ErrPreflightFailed     = errors.New("preflight checks failed")
)

// PreflightError is returned when the checks before an install or update fail.
type PreflightError struct {
	Operation Operation
	Report    check.Report
}

func (e *PreflightError) Error() string {
	return fmt.Sprintf("cannot %s Podman: %v", e.Operation, e.Report.Err())
}

func (e *PreflightError) Unwrap() error {
	return ErrPreflightFailed
}

// Failed returns the failed checks.
func (e *PreflightError) Failed() []check.Outcome {
	return e.Report.Failed()
}

// ArtifactNotFoundError is returned when none of the installer candidates exist.
type ArtifactNotFoundError struct {
	Candidates []string
}

func (e *ArtifactNotFoundError) Error() string {
	return fmt.Sprintf("cannot find Podman installer, looked for: %s", strings.Join(e.Candidates, ", "))
}

func (e *ArtifactNotFoundError) Unwrap() error {
	return ErrArtifactNotFound
}
