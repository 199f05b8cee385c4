package check

import (
	"context"
	"errors"
	"fmt"

	"github.com/hashicorp/go-multierror"
	"github.com/samber/lo"
)

// Outcome is the result of an executed check.
type Outcome struct {
	Title  string
	Result *Result
	Err    error
}

// Failed returns if the check did not pass.
func (o Outcome) Failed() bool {
	return o.Err != nil || o.Result == nil || !o.Result.Successful
}

// Report is the result of running a list of checks.
type Report []Outcome

// Passed returns if all the checks passed.
func (r Report) Passed() bool { return len(r.Failed()) == 0 }

// Failed returns the outcomes of the checks that did not pass, in order.
func (r Report) Failed() []Outcome {
	return lo.Filter(r, func(o Outcome, _ int) bool { return o.Failed() })
}

// Err returns an error aggregating all the failed checks, or nil if all passed.
func (r Report) Err() error {
	var errs *multierror.Error
	for _, o := range r.Failed() {
		errs = multierror.Append(errs, o.asError())
	}
	if errs == nil {
		return nil
	}
	errs.ErrorFormat = listFormat
	return errs.ErrorOrNil()
}

func (o Outcome) asError() error {
	if o.Err != nil {
		return fmt.Errorf("%s: %w", o.Title, o.Err)
	}
	if o.Result == nil || o.Result.Description == "" {
		return fmt.Errorf("%s: failed", o.Title)
	}
	return errors.New(o.Title + ": " + o.Result.Description)
}

func listFormat(errs []error) string {
	if len(errs) == 1 {
		return errs[0].Error()
	}
	msg := fmt.Sprintf("%d checks failed:", len(errs))
	for _, err := range errs {
		msg += "\n\t* " + err.Error()
	}
	return msg
}

// RunAll executes the checks in order and returns the report.
// All checks are executed regardless of failures of previous ones.
// A non-nil error is only returned when ctx is done.
func RunAll(ctx context.Context, checks ...Check) (Report, error) {
	report := make(Report, 0, len(checks))
	for _, c := range checks {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		result, err := c.Execute(ctx)
		report = append(report, Outcome{
			Title:  c.Title(),
			Result: result,
			Err:    err,
		})
	}
	return report, nil
}
