package dispatch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"polycheck/pkg/bindings"
	"polycheck/pkg/config"
	"polycheck/pkg/detector"
)

// Process exit codes for the dispatch contract. Anything else is the
// underlying tool's own exit status, passed through unmodified.
const (
	ExitOK          = 0
	ExitNotDetected = 1
	ExitUnsupported = 2
	ExitToolMissing = 127
)

// Options is the explicit configuration passed into Dispatch. Zero values
// take the documented defaults; nothing in the dispatch path reads ambient
// environment variables.
type Options struct {
	// WorkDir is the directory containing the repository's build manifests.
	// Default ".".
	WorkDir string

	// Timeout bounds each external command. Default config.DefaultToolTimeout.
	Timeout time.Duration

	// OverridesFile is the repo-relative binding override file name.
	// Default config.DefaultOverridesFile.
	OverridesFile string

	// IgnoreGlobs replaces the default tree-scan exclusions when non-empty
	IgnoreGlobs []string

	// Env is appended to the inherited environment of every command
	Env []string

	// Bindings replaces the built-in table when non-nil (tests, embedders)
	Bindings bindings.Table

	// Optional streaming targets for live tool output
	Stdout io.Writer
	Stderr io.Writer
}

func (o Options) withDefaults() Options {
	if o.WorkDir == "" {
		o.WorkDir = "."
	}
	if o.Timeout == 0 {
		o.Timeout = config.DefaultToolTimeout
	}
	if o.OverridesFile == "" {
		o.OverridesFile = config.DefaultOverridesFile
	}
	return o
}

// Outcome is the result of one dispatch: the detection, the commands that
// ran (in order), and the final exit code per the dispatch contract.
type Outcome struct {
	RunID      string              `json:"run_id"`
	Capability bindings.Capability `json:"capability"`
	WorkDir    string              `json:"work_dir"`
	Detection  detector.Detection  `json:"detection"`
	Commands   []*CommandResult    `json:"commands,omitempty"`
	ExitCode   int                 `json:"exit_code"`
	Diagnostic string              `json:"diagnostic,omitempty"`
}

// Dispatch resolves and runs the requested capability against the working
// directory: detect ecosystem, resolve the tool binding, execute. The three
// stages are strictly sequential with no retries; a failure at any stage
// aborts there. Detection is performed fresh on every call.
//
// Multi-command chains run to completion even when an earlier member fails
// (a compliance gate wants the complete picture in one run); the outcome
// exit code is the first non-zero status observed, so the gate still fails.
// No external process is ever started when detection or resolution fails.
func Dispatch(ctx context.Context, opts Options, capability bindings.Capability) *Outcome {
	opts = opts.withDefaults()

	outcome := &Outcome{
		RunID:      uuid.NewString(),
		Capability: capability,
		WorkDir:    opts.WorkDir,
	}

	outcome.Detection = detector.Detect(opts.WorkDir, opts.IgnoreGlobs...)
	if !outcome.Detection.Detected() {
		outcome.ExitCode = ExitNotDetected
		outcome.Diagnostic = notDetectedDiagnostic(opts.WorkDir, outcome.Detection)
		return outcome
	}

	chain, err := resolveChain(opts, outcome.Detection.Ecosystem, capability)
	if err != nil {
		outcome.ExitCode = ExitUnsupported
		outcome.Diagnostic = err.Error()
		return outcome
	}

	executor := &Executor{
		Dir:          opts.WorkDir,
		Env:          opts.Env,
		Timeout:      opts.Timeout,
		StdoutWriter: opts.Stdout,
		StderrWriter: opts.Stderr,
	}

	for _, command := range chain {
		result := executor.Execute(ctx, command)
		outcome.Commands = append(outcome.Commands, result)
		if result.Failed() && outcome.ExitCode == ExitOK {
			outcome.ExitCode = result.ExitCode
			if result.Err != nil {
				outcome.Diagnostic = result.Err.Error()
			}
		}
	}

	return outcome
}

// resolveChain builds the effective binding table (defaults plus any
// repo-level override file) and resolves the pair. A malformed override
// file is a configuration error like an unbound pair: both halt the caller
// with ExitUnsupported.
func resolveChain(opts Options, eco detector.Ecosystem, capability bindings.Capability) (bindings.Chain, error) {
	table := opts.Bindings
	if table == nil {
		table = bindings.Defaults()
		overridesPath := filepath.Join(opts.WorkDir, opts.OverridesFile)
		if err := table.ApplyOverridesFile(overridesPath); err != nil {
			return nil, err
		}
	}

	chain, err := table.Resolve(eco, capability)
	if err != nil {
		var confErr *bindings.ConfigurationError
		if errors.As(err, &confErr) {
			return nil, fmt.Errorf("%w; refusing to skip a requested check", confErr)
		}
		return nil, err
	}
	return chain, nil
}

func notDetectedDiagnostic(workDir string, d detector.Detection) string {
	var b strings.Builder
	fmt.Fprintf(&b, "no supported ecosystem detected in %s\n", workDir)
	if len(d.ManifestsScanned) > 0 {
		fmt.Fprintf(&b, "manifests scanned: %s\n", strings.Join(d.ManifestsScanned, ", "))
	} else {
		b.WriteString("no build manifests found\n")
	}
	b.WriteString("markers tried:\n")
	for _, m := range d.MarkersTried {
		fmt.Fprintf(&b, "  - %s\n", m)
	}
	return strings.TrimRight(b.String(), "\n")
}
