package terminal

import (
	"os"

	"golang.org/x/term"
)

// isTerminal is true if the output is a terminal.
var isTerminal = term.IsTerminal(int(os.Stderr.Fd()))
