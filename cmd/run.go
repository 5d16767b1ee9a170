package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"polycheck/cmd/ui/spinner"
	"polycheck/pkg/bindings"
	"polycheck/pkg/config"
	"polycheck/pkg/dispatch"
)

var (
	runTimeout   time.Duration
	runOverrides string

	passStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("46")).Bold(true)
	failStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	commandStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#40BDA3"))
)

var runCmd = &cobra.Command{
	Use:   "run CAPABILITY [PROJECT_PATH]",
	Short: "Detect the ecosystem and run a compliance check",
	Long: Logo + `
Resolves the project's ecosystem from its build manifests, looks up the tool
binding for the requested capability, and runs it, propagating the tool's
exit status and output verbatim.

Capabilities: license-check, static-analysis, test, format-check,
copyright-check.

Exit codes: 0 success, 1 no ecosystem detected, 2 capability unbound for the
detected ecosystem, 127 resolved tool missing from PATH; any other code is
the underlying tool's own.`,
	Args: cobra.RangeArgs(1, 2),
	Run:  runRun,
}

func runRun(cmd *cobra.Command, args []string) {
	capability, err := bindings.ParseCapability(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(dispatch.ExitUnsupported)
	}

	projectPath, err := resolveProjectPath(args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	opts := dispatch.Options{
		WorkDir:       projectPath,
		Timeout:       cfg.Timeout(),
		OverridesFile: cfg.Overrides(),
		IgnoreGlobs:   cfg.IgnoreGlobs,
		Env:           cfg.Env,
	}
	if runTimeout > 0 {
		opts.Timeout = runTimeout
	}
	if runOverrides != "" {
		opts.OverridesFile = runOverrides
	}

	interactive := !jsonOutput && !skipInteractive && isTerminal()

	if !interactive && !jsonOutput {
		// CI mode: stream tool output directly
		opts.Stdout = os.Stdout
		opts.Stderr = os.Stderr
	}

	var outcome *dispatch.Outcome
	if interactive {
		spinnerProgram := tea.NewProgram(spinner.InitialModel(fmt.Sprintf("Running %s...", capability)))
		go func() {
			if _, err := spinnerProgram.Run(); err != nil {
				if err.Error() != "program was killed" {
					fmt.Fprintf(os.Stderr, "Error running spinner: %v\n", err)
				}
			}
		}()
		outcome = dispatch.Dispatch(context.Background(), opts, capability)
		spinnerProgram.Quit()
	} else {
		outcome = dispatch.Dispatch(context.Background(), opts, capability)
	}

	if jsonOutput {
		if err := outcome.WriteJSON(os.Stdout); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		os.Exit(outcome.ExitCode)
	}

	printOutcome(outcome, interactive)
	os.Exit(outcome.ExitCode)
}

func printOutcome(outcome *dispatch.Outcome, interactive bool) {
	if outcome.Diagnostic != "" && len(outcome.Commands) == 0 {
		fmt.Fprintln(os.Stderr, errorStyle.Render("✗ ")+outcome.Diagnostic)
		return
	}

	for _, result := range outcome.Commands {
		if interactive {
			// Captured output is replayed verbatim after the spinner stops
			if result.Stdout != "" {
				fmt.Print(result.Stdout)
			}
			if result.Stderr != "" {
				fmt.Fprint(os.Stderr, result.Stderr)
			}
		}

		mark := passStyle.Render("✓")
		if result.Failed() {
			mark = failStyle.Render("✗")
		}
		fmt.Printf("%s %s (exit code %d)\n", mark, commandStyle.Render(result.Command.String()), result.ExitCode)
		if result.Err != nil {
			fmt.Fprintf(os.Stderr, "  %v\n", result.Err)
		}
	}

	status := passStyle.Render(fmt.Sprintf("%s passed", outcome.Capability))
	if outcome.ExitCode != dispatch.ExitOK {
		status = failStyle.Render(fmt.Sprintf("%s failed (exit code %d)", outcome.Capability, outcome.ExitCode))
	}
	fmt.Printf("\n%s [%s, run %s]\n", status, outcome.Detection.Ecosystem.DisplayName(), outcome.RunID)
}

func init() {
	runCmd.Flags().DurationVar(&runTimeout, "timeout", 0, "Per-command timeout (default from config, 10m)")
	runCmd.Flags().StringVar(&runOverrides, "overrides", "", "Binding override file name (default .polycheck.yml)")
}
