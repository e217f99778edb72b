// Package toolrunner invokes external toolchain executables with the process
// environment redirected at the prepared workspace. The toolchain performs no
// path translation of its own: it must see GOPATH pointing at the workspace
// root and must appear to run from the project's linked location inside it.
package toolrunner

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strings"

	apperrors "git.home.luguber.info/inful/gowork/internal/errors"
	"git.home.luguber.info/inful/gowork/internal/logfields"
)

// Environment variables overridden on every child process.
const (
	EnvGopath = "GOPATH"
	EnvPwd    = "PWD"
)

// Command describes one external tool invocation.
type Command struct {
	// Argv is the executable name followed by its arguments.
	Argv []string
	// Dir is the working directory for the child: the project's linked
	// location inside the workspace, not its real location.
	Dir string
	// Gopath is the workspace root exported as GOPATH.
	Gopath string
}

// Runner executes external tool commands synchronously.
type Runner interface {
	Run(ctx context.Context, cmd Command) error
}

// ExecRunner runs commands via os/exec, streaming output through.
type ExecRunner struct {
	Stdout io.Writer
	Stderr io.Writer
}

// NewExecRunner creates a runner wired to the process's own streams.
func NewExecRunner() *ExecRunner {
	return &ExecRunner{Stdout: os.Stdout, Stderr: os.Stderr}
}

// Run executes the command and blocks until it terminates. A non-zero exit
// returns a tool failure carrying the command line and exit code; it is
// never retried here or anywhere above.
func (r *ExecRunner) Run(ctx context.Context, c Command) error {
	if len(c.Argv) == 0 {
		return apperrors.New(apperrors.CategoryInternal, apperrors.SeverityFatal, "empty command")
	}

	fmt.Fprintf(r.Stdout, "+ %s\n", strings.Join(c.Argv, " "))
	slog.Debug("Running external tool",
		logfields.Command(c.Argv),
		logfields.Path(c.Dir),
		logfields.Workspace(c.Gopath))

	cmd := exec.CommandContext(ctx, c.Argv[0], c.Argv[1:]...)
	cmd.Dir = c.Dir
	cmd.Env = overrideEnv(os.Environ(), c)
	cmd.Stdout = r.Stdout
	cmd.Stderr = r.Stderr

	if err := cmd.Run(); err != nil {
		exitCode := -1
		if exitErr, ok := err.(*exec.ExitError); ok {
			exitCode = exitErr.ExitCode()
		}
		slog.Debug("External tool failed",
			logfields.Tool(c.Argv[0]),
			logfields.ExitCode(exitCode))
		return apperrors.ToolFailed(c.Argv, exitCode, err)
	}
	return nil
}

// overrideEnv copies the ambient environment with the workspace variables
// replaced. The parent process environment is never mutated.
func overrideEnv(base []string, c Command) []string {
	env := make([]string, 0, len(base)+2)
	for _, kv := range base {
		if strings.HasPrefix(kv, EnvGopath+"=") || strings.HasPrefix(kv, EnvPwd+"=") {
			continue
		}
		env = append(env, kv)
	}
	env = append(env, EnvGopath+"="+c.Gopath, EnvPwd+"="+c.Dir)
	return env
}
