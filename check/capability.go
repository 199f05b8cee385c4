package check

import (
	"context"
)

// Probe reports whether a capability is present.
type Probe func(ctx context.Context) bool

// Capability returns a check that passes if any of the probes reports the
// capability as present. Probes are run in order until one succeeds.
func Capability(title, failure string, links []DocLink, probes ...Probe) Check {
	return NewFunc(title, func(ctx context.Context) (*Result, error) {
		for _, probe := range probes {
			if probe(ctx) {
				return Success(), nil
			}
		}
		return Failure(failure, links...), nil
	})
}
