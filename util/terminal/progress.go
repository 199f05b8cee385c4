package terminal

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"
)

// ProgressOptions are the options of a task with progress.
type ProgressOptions struct {
	Title string
}

// Reporter reports the progress of a task.
type Reporter interface {
	// Report increments the progress by increment percent.
	Report(increment int)
}

// Task is a task with progress.
type Task func(ctx context.Context, progress Reporter) error

// Progress runs tasks with progress reporting.
type Progress interface {
	WithProgress(ctx context.Context, opts ProgressOptions, task Task) error
}

// Notifier displays messages to the user.
type Notifier interface {
	ShowNotification(body string)
	// ShowErrorMessage displays the error and returns the selected action, if any.
	ShowErrorMessage(text string, actions ...string) string
}

var (
	_ Progress = (*Console)(nil)
	_ Notifier = (*Console)(nil)
)

// Console is the terminal implementation of Progress and Notifier.
type Console struct {
	output *Output
	isTTY  bool
}

// NewConsole creates a Console that renders to output.
func NewConsole(output *Output) *Console {
	return &Console{
		output: output,
		isTTY:  output.IsTTY(),
	}
}

// WithProgress implements Progress.
// The progress bar is only displayed when the output is a terminal.
func (c *Console) WithProgress(ctx context.Context, opts ProgressOptions, task Task) error {
	c.output.Begin(opts.Title)

	r := &barReporter{}
	if c.isTTY {
		c.output.pause()
		defer c.output.resume()
		r.bar = newBar(c.output.Writer(), opts.Title)
	}

	err := task(ctx, r)

	r.finish(err == nil)
	if err != nil {
		c.output.Error(fmt.Sprintf("%s: %v", opts.Title, err))
		return err
	}
	c.output.Done(opts.Title)
	return nil
}

// ShowNotification implements Notifier.
func (c *Console) ShowNotification(body string) {
	fmt.Fprintln(c.output.Writer(), color.GreenString(body))
}

// ShowErrorMessage implements Notifier.
// Actions are listed but not prompted for.
func (c *Console) ShowErrorMessage(text string, actions ...string) string {
	fmt.Fprintln(c.output.Writer(), color.RedString("error: ")+text)
	for _, a := range actions {
		fmt.Fprintln(c.output.Writer(), "  - "+a)
	}
	return ""
}

func newBar(w io.Writer, title string) *progressbar.ProgressBar {
	return progressbar.NewOptions(100,
		progressbar.OptionSetDescription(title),
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetWidth(30),
		progressbar.OptionThrottle(100*time.Millisecond),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionSetRenderBlankState(true),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "=",
			SaucerHead:    ">",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
	)
}

// barReporter tracks the progress and renders it to the bar, if any.
type barReporter struct {
	mu      sync.Mutex
	bar     *progressbar.ProgressBar
	current int
}

func (b *barReporter) Report(increment int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	// progress is within 0-100
	next := b.current + increment
	if next > 100 {
		next = 100
	}
	if next < b.current {
		return
	}
	b.current = next

	if b.bar != nil {
		_ = b.bar.Set(next)
	}
}

func (b *barReporter) finish(ok bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.bar == nil {
		return
	}
	if ok {
		_ = b.bar.Finish()
		return
	}
	_ = b.bar.Clear()
}
