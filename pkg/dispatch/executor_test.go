package dispatch_test

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"polycheck/pkg/bindings"
	"polycheck/pkg/dispatch"
)

func TestExecuteCapturesOutput(t *testing.T) {
	e := &dispatch.Executor{Dir: t.TempDir()}

	result := e.Execute(context.Background(), bindings.Command{
		Program: "sh", Args: []string{"-c", "echo out; echo err >&2"},
	})

	if result.Failed() {
		t.Fatalf("Expected success, got exit %d err %v", result.ExitCode, result.Err)
	}
	if strings.TrimSpace(result.Stdout) != "out" {
		t.Errorf("Stdout = %q", result.Stdout)
	}
	if strings.TrimSpace(result.Stderr) != "err" {
		t.Errorf("Stderr = %q", result.Stderr)
	}
}

func TestExecutePropagatesExitCode(t *testing.T) {
	e := &dispatch.Executor{Dir: t.TempDir()}

	result := e.Execute(context.Background(), bindings.Command{
		Program: "sh", Args: []string{"-c", "exit 7"},
	})

	if result.ExitCode != 7 {
		t.Errorf("Expected exit code 7 passed through unmodified, got %d", result.ExitCode)
	}
	if result.Err == nil {
		t.Error("Expected error for non-zero exit")
	}
}

func TestExecuteMissingProgram(t *testing.T) {
	e := &dispatch.Executor{Dir: t.TempDir()}

	result := e.Execute(context.Background(), bindings.Command{
		Program: "definitely-not-a-real-tool-xyz",
	})

	if result.ExitCode != dispatch.ExitToolMissing {
		t.Errorf("Expected exit code %d for missing tool, got %d", dispatch.ExitToolMissing, result.ExitCode)
	}
	if result.Err == nil || !strings.Contains(result.Err.Error(), "not found in PATH") {
		t.Errorf("Expected PATH diagnostic, got %v", result.Err)
	}
}

func TestExecuteTimeout(t *testing.T) {
	e := &dispatch.Executor{Dir: t.TempDir(), Timeout: 50 * time.Millisecond}

	start := time.Now()
	result := e.Execute(context.Background(), bindings.Command{
		Program: "sh", Args: []string{"-c", "sleep 5"},
	})

	if time.Since(start) > 2*time.Second {
		t.Fatal("Timeout not enforced")
	}
	if !result.Failed() {
		t.Error("Expected timed-out command to fail")
	}
	if result.Err == nil || !strings.Contains(result.Err.Error(), "interrupted") {
		t.Errorf("Expected interruption error, got %v", result.Err)
	}
}

func TestExecuteStreamsWhileCapturing(t *testing.T) {
	var stream bytes.Buffer
	e := &dispatch.Executor{Dir: t.TempDir(), StdoutWriter: &stream}

	result := e.Execute(context.Background(), bindings.Command{
		Program: "sh", Args: []string{"-c", "echo hello"},
	})

	if strings.TrimSpace(result.Stdout) != "hello" {
		t.Errorf("Captured stdout = %q", result.Stdout)
	}
	if strings.TrimSpace(stream.String()) != "hello" {
		t.Errorf("Streamed stdout = %q", stream.String())
	}
}

func TestExecuteRunsInDir(t *testing.T) {
	dir := t.TempDir()
	e := &dispatch.Executor{Dir: dir}

	result := e.Execute(context.Background(), bindings.Command{Program: "pwd"})
	if result.Failed() {
		t.Fatalf("pwd failed: %v", result.Err)
	}
	if !strings.Contains(strings.TrimSpace(result.Stdout), dir) {
		t.Errorf("Expected pwd output %q to contain %q", result.Stdout, dir)
	}
}
