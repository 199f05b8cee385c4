package cli

import (
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

// Settings is global cli settings
var Settings = struct {
	// Verbose enables verbose output of external commands.
	Verbose bool
}{}

var runner commandRunner = defaultCommandRunner{}

// DryRun toggles the state of the command runner. If true, commands are only printed to the console
// without execution.
func DryRun(d bool) {
	if d {
		runner = dryRunCommandRunner{}
		return
	}
	runner = defaultCommandRunner{}
}

// Command creates a new command bound to ctx.
func Command(ctx context.Context, command string, args ...string) *exec.Cmd {
	return runner.Command(ctx, command, args...)
}

type commandRunner interface {
	Command(ctx context.Context, command string, args ...string) *exec.Cmd
}

var _ commandRunner = defaultCommandRunner{}

type defaultCommandRunner struct{}

func (defaultCommandRunner) Command(ctx context.Context, command string, args ...string) *exec.Cmd {
	return exec.CommandContext(ctx, command, args...)
}

var _ commandRunner = dryRunCommandRunner{}

type dryRunCommandRunner struct{}

func (d dryRunCommandRunner) Command(ctx context.Context, command string, args ...string) *exec.Cmd {
	fmt.Println(d.format("run:", command, args...))
	return exec.CommandContext(ctx, "echo")
}

func (d dryRunCommandRunner) format(prefix, command string, args ...string) string {
	var str []string
	str = append(str, prefix, strconv.Quote(command))
	for _, arg := range args {
		str = append(str, strconv.Quote(arg))
	}
	return strings.Join(str, " ")
}

// Prompt prompts for input with a question. It returns true only if answer is y or Y.
func Prompt(question string) bool {
	fmt.Print(question)
	fmt.Print("? [y/N] ")

	var answer string
	_, _ = fmt.Scanln(&answer)

	if answer == "" {
		return false
	}

	return answer[0] == 'Y' || answer[0] == 'y'
}
