package check

import (
	"context"
	"sync"
)

// DocLink is a link to documentation that helps resolve a failed check.
type DocLink struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// Result is the outcome of a check.
type Result struct {
	Successful          bool      `json:"successful"`
	Description         string    `json:"description,omitempty"`
	DocLinksDescription string    `json:"docLinksDescription,omitempty"`
	DocLinks            []DocLink `json:"docLinks,omitempty"`
}

// Success returns a successful result.
func Success() *Result { return &Result{Successful: true} }

// Failure returns a failed result with the description and optional doc links.
func Failure(description string, links ...DocLink) *Result {
	return &Result{
		Description: description,
		DocLinks:    links,
	}
}

// WithLinksDescription sets the description of the doc links of a failed result.
func (r *Result) WithLinksDescription(s string) *Result {
	if !r.Successful {
		r.DocLinksDescription = s
	}
	return r
}

// Check is a validation.
//
// Expected failures e.g. a version below the minimum are a failed Result,
// an error is only returned if the check could not be performed.
type Check interface {
	Title() string
	Execute(ctx context.Context) (*Result, error)
}

// ExecuteFunc performs a check.
type ExecuteFunc func(ctx context.Context) (*Result, error)

// NewFunc creates a Check from fn.
func NewFunc(title string, fn ExecuteFunc) Check {
	return funcCheck{title: title, fn: fn}
}

type funcCheck struct {
	title string
	fn    ExecuteFunc
}

func (f funcCheck) Title() string { return f.title }

func (f funcCheck) Execute(ctx context.Context) (*Result, error) { return f.fn(ctx) }

// Memoize returns a Check that executes c once and returns the same result on
// subsequent calls. Errors are not memoized.
func Memoize(c Check) Check {
	if _, ok := c.(*memoized); ok {
		return c
	}
	return &memoized{check: c}
}

type memoized struct {
	check Check

	sync.Mutex
	result *Result
}

func (m *memoized) Title() string { return m.check.Title() }

func (m *memoized) Execute(ctx context.Context) (*Result, error) {
	m.Lock()
	result := m.result
	m.Unlock()
	if result != nil {
		return result, nil
	}

	result, err := m.check.Execute(ctx)
	if err != nil {
		return nil, err
	}

	m.Lock()
	defer m.Unlock()
	// keep the first result if another caller got here first
	if m.result == nil {
		m.result = result
	}
	return m.result, nil
}
