package terminal

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
)

// spinnerFrames for animation (braille spinner - circular pattern)
var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

const (
	symbolDone  = "✓"
	symbolError = "✗"
)

// LineState represents the state of a status line
type LineState int

const (
	StateRunning LineState = iota
	StateDone
	StateError

	stateDetail
)

// statusLine represents a single line in the status output
type statusLine struct {
	text     string
	state    LineState
	indent   int
	children []*statusLine
}

// Output manages all terminal output with proper coordination.
// It owns the terminal and provides writers to components.
// All cursor manipulation is handled internally - components just write.
type Output struct {
	mu sync.Mutex

	// status section
	lines        []*statusLine
	current      *statusLine
	spinnerIndex int

	// animation
	ticker  *time.Ticker
	done    chan struct{}
	started bool

	// rendering state
	renderedLines int
	writer        io.Writer
	isTTY         bool

	// paused while a progress bar owns the terminal
	paused bool
}

// NewOutput creates a new terminal output manager
func NewOutput() *Output {
	return &Output{
		writer: os.Stderr,
		isTTY:  isTerminal,
		done:   make(chan struct{}),
	}
}

// NewOutputWriter creates a new output manager that writes plain lines to w.
func NewOutputWriter(w io.Writer) *Output {
	return &Output{
		writer: w,
		done:   make(chan struct{}),
	}
}

// Start begins the output manager and spinner animation
func (o *Output) Start() {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.started {
		return
	}
	o.started = true

	if !o.isTTY {
		return
	}

	o.ticker = time.NewTicker(100 * time.Millisecond)
	go o.animate()
}

// Stop stops the output manager
func (o *Output) Stop() {
	o.mu.Lock()
	if !o.started {
		o.mu.Unlock()
		return
	}

	if o.ticker != nil {
		o.ticker.Stop()
		select {
		case <-o.done:
		default:
			close(o.done)
		}
	}

	if o.isTTY {
		o.render()
	}
	o.mu.Unlock()
}

// animate runs the spinner animation loop
func (o *Output) animate() {
	for {
		select {
		case <-o.done:
			return
		case <-o.ticker.C:
			o.mu.Lock()
			if !o.paused {
				o.spinnerIndex = (o.spinnerIndex + 1) % len(spinnerFrames)
				o.render()
			}
			o.mu.Unlock()
		}
	}
}

// Begin starts a new context with a spinner
func (o *Output) Begin(text string) {
	o.mu.Lock()
	defer o.mu.Unlock()

	// complete previous context if any
	if o.current != nil {
		o.current.state = StateDone
	}

	line := &statusLine{
		text:  text,
		state: StateRunning,
	}
	o.lines = append(o.lines, line)
	o.current = line

	if !o.isTTY {
		o.printPlain(line)
		return
	}
	o.render()
}

// Child adds a completed child item under the current context
func (o *Output) Child(text string) {
	o.mu.Lock()
	defer o.mu.Unlock()

	child := &statusLine{
		text:   text,
		state:  StateDone,
		indent: 1,
	}

	if o.current != nil {
		o.current.children = append(o.current.children, child)
	} else {
		o.lines = append(o.lines, child)
	}

	if !o.isTTY {
		o.printPlain(child)
		return
	}
	o.render()
}

// ChildError adds a failed child item under the current context
func (o *Output) ChildError(text string) {
	o.mu.Lock()
	defer o.mu.Unlock()

	child := &statusLine{
		text:   text,
		state:  StateError,
		indent: 1,
	}

	if o.current != nil {
		o.current.children = append(o.current.children, child)
	} else {
		o.lines = append(o.lines, child)
	}

	if !o.isTTY {
		o.printPlain(child)
		return
	}
	o.render()
}

// Detail adds an informational line under the last child item.
func (o *Output) Detail(text string) {
	o.mu.Lock()
	defer o.mu.Unlock()

	line := &statusLine{
		text:   text,
		state:  stateDetail,
		indent: 2,
	}

	if o.current != nil {
		o.current.children = append(o.current.children, line)
	} else {
		o.lines = append(o.lines, line)
	}

	if !o.isTTY {
		o.printPlain(line)
		return
	}
	o.render()
}

// Done adds a final "done" message
func (o *Output) Done(text string) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.current != nil {
		o.current.state = StateDone
	}

	line := &statusLine{
		text:  text,
		state: StateDone,
	}
	o.lines = append(o.lines, line)
	o.current = nil

	if !o.isTTY {
		o.printPlain(line)
		return
	}
	o.render()
}

// Error adds an error message
func (o *Output) Error(text string) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.current != nil {
		o.current.state = StateError
	}

	line := &statusLine{
		text:  text,
		state: StateError,
	}
	o.lines = append(o.lines, line)
	o.current = nil

	if !o.isTTY {
		o.printPlain(line)
		return
	}
	o.render()
}

// render draws all status lines (must be called with lock held)
func (o *Output) render() {
	// clear previous output
	for i := 0; i < o.renderedLines; i++ {
		fmt.Fprint(o.writer, "\033[1A\033[2K")
	}

	// render all lines
	o.renderedLines = 0
	for _, line := range o.lines {
		o.renderLine(line)
		o.renderedLines++
		for _, child := range line.children {
			o.renderLine(child)
			o.renderedLines++
		}
	}
}

// renderLine renders a single status line
func (o *Output) renderLine(line *statusLine) {
	indent := strings.Repeat("  ", line.indent)
	symbol := o.getSymbol(line.state)

	var formatted string
	switch line.state {
	case StateRunning:
		formatted = color.CyanString(symbol) + " " + line.text
	case StateDone:
		formatted = color.GreenString(symbol) + " " + line.text
	case StateError:
		formatted = color.RedString(symbol) + " " + line.text
	case stateDetail:
		formatted = color.HiBlackString(line.text)
	default:
		formatted = symbol + " " + line.text
	}

	fmt.Fprintln(o.writer, indent+formatted)
}

// getSymbol returns the appropriate symbol for the state
func (o *Output) getSymbol(state LineState) string {
	switch state {
	case StateRunning:
		return spinnerFrames[o.spinnerIndex]
	case StateDone:
		return symbolDone
	case StateError:
		return symbolError
	default:
		return " "
	}
}

// printPlain prints a line in plain format for non-TTY output
func (o *Output) printPlain(line *statusLine) {
	indent := strings.Repeat("  ", line.indent)
	var prefix string
	switch line.state {
	case StateRunning:
		prefix = "..."
	case StateDone:
		prefix = symbolDone
	case StateError:
		prefix = symbolError
	case stateDetail:
		fmt.Fprintf(o.writer, "%s%s\n", indent, line.text)
		return
	default:
		prefix = " "
	}
	fmt.Fprintf(o.writer, "%s%s %s\n", indent, prefix, line.text)
}

// IsTTY returns whether output is to a terminal
func (o *Output) IsTTY() bool {
	return o.isTTY
}

// Writer returns the writer of the output.
func (o *Output) Writer() io.Writer {
	return o.writer
}

// pause stops rendering so that another component can write to the terminal.
func (o *Output) pause() {
	o.mu.Lock()
	o.paused = true
	o.mu.Unlock()
}

// resume resumes rendering after pause. Previously rendered lines are
// not cleared as they have been scrolled by the other component.
func (o *Output) resume() {
	o.mu.Lock()
	o.paused = false
	o.renderedLines = 0
	o.lines = nil
	o.current = nil
	o.mu.Unlock()
}
