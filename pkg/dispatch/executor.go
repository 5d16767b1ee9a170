package dispatch

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"runtime"
	"time"

	"polycheck/pkg/bindings"
)

// CommandResult captures one external command invocation verbatim. The
// dispatcher never interprets Stdout/Stderr; that is the tool's own domain.
type CommandResult struct {
	Command  bindings.Command `json:"command"`
	Stdout   string           `json:"stdout,omitempty"`
	Stderr   string           `json:"stderr,omitempty"`
	ExitCode int              `json:"exit_code"`
	Err      error            `json:"-"`
}

// Failed reports whether the invocation should fail the check
func (r *CommandResult) Failed() bool {
	return r.ExitCode != 0 || r.Err != nil
}

// Executor runs resolved commands as local processes, one at a time,
// blocking until each exits
type Executor struct {
	Dir     string
	Env     []string      // appended to the inherited environment
	Timeout time.Duration // per command; zero means no timeout

	// Optional streaming targets; output is captured either way
	StdoutWriter io.Writer
	StderrWriter io.Writer
}

// Execute runs a single command and returns its result. A program missing
// from PATH yields ExitCode 127 without starting a process; any other exit
// status is the tool's own, passed through unmodified.
func (e *Executor) Execute(ctx context.Context, command bindings.Command) *CommandResult {
	result := &CommandResult{Command: command}

	if _, err := exec.LookPath(command.Program); err != nil {
		result.ExitCode = ExitToolMissing
		result.Err = fmt.Errorf("%s not found in PATH\n\n%s", command.Program, InstallInstructions(command.Program))
		return result
	}

	if e.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.Timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, command.Program, command.Args...)
	cmd.Dir = e.Dir
	cmd.Env = append(os.Environ(), e.Env...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if e.StdoutWriter != nil {
		cmd.Stdout = io.MultiWriter(&stdout, e.StdoutWriter)
	}
	if e.StderrWriter != nil {
		cmd.Stderr = io.MultiWriter(&stderr, e.StderrWriter)
	}

	err := cmd.Run()
	result.Stdout = stdout.String()
	result.Stderr = stderr.String()

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			result.ExitCode = exitErr.ExitCode()
		} else {
			result.ExitCode = -1
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			result.Err = fmt.Errorf("%s interrupted: %w", command.Program, ctxErr)
		} else {
			result.Err = fmt.Errorf("%s failed (exit code %d)", command.Program, result.ExitCode)
		}
	}

	return result
}

// InstallInstructions returns a platform-appropriate hint for installing a
// known check tool. Used in diagnostics when a resolved program is missing
// from the runner image.
func InstallInstructions(program string) string {
	switch program {
	case "cargo":
		return "Install the Rust toolchain: https://rustup.rs"
	case "clang-tidy", "clang-format":
		if runtime.GOOS == "darwin" {
			return "Install LLVM tools:\n  brew install llvm"
		}
		return "Install LLVM tools:\n  apt-get install clang-tidy clang-format"
	case "bazel":
		return "Install Bazel: https://bazel.build/install"
	case "ruff", "pytest", "reuse":
		return fmt.Sprintf("Install %s:\n  pip install %s", program, program)
	case "addlicense":
		return "Install addlicense:\n  go install github.com/google/addlicense@latest"
	case "staticcheck":
		return "Install staticcheck:\n  go install honnef.co/go/tools/cmd/staticcheck@latest"
	case "govulncheck":
		return "Install govulncheck:\n  go install golang.org/x/vuln/cmd/govulncheck@latest"
	case "go-licenses":
		return "Install go-licenses:\n  go install github.com/google/go-licenses@latest"
	case "gofumpt":
		return "Install gofumpt:\n  go install mvdan.cc/gofumpt@latest"
	default:
		return fmt.Sprintf("Install %s and ensure it is on PATH", program)
	}
}
