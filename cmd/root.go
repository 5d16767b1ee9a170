package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"polycheck/cmd/ui/detection"
	"polycheck/cmd/ui/spinner"
	"polycheck/pkg/detector"
)

const Version = "0.3.0"

var (
	jsonOutput      bool
	skipInteractive bool

	logoStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#7AA2F7")).Bold(true)
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	tipMsgStyle = lipgloss.NewStyle().PaddingLeft(1).Foreground(lipgloss.Color("190")).Italic(true)
)

const Logo = `
██████╗  ██████╗ ██╗  ██╗   ██╗ ██████╗██╗  ██╗███████╗ ██████╗██╗  ██╗
██╔══██╗██╔═══██╗██║  ╚██╗ ██╔╝██╔════╝██║  ██║██╔════╝██╔════╝██║ ██╔╝
██████╔╝██║   ██║██║   ╚████╔╝ ██║     ███████║█████╗  ██║     █████╔╝
██╔═══╝ ██║   ██║██║    ╚██╔╝  ██║     ██╔══██║██╔══╝  ██║     ██╔═██╗
██║     ╚██████╔╝███████╗██║   ╚██████╗██║  ██║███████╗╚██████╗██║  ██╗
╚═╝      ╚═════╝ ╚══════╝╚═╝    ╚═════╝╚═╝  ╚═╝╚══════╝ ╚═════╝╚═╝  ╚═╝
`

var rootCmd = &cobra.Command{
	Use:   "polycheck [PROJECT_PATH]",
	Short: "Ecosystem-aware CI check dispatcher",
	Long: Logo + `
Polycheck inspects a repository's build manifests, infers which ecosystem the
project belongs to (C/C++, Rust, Go, Python), and runs the right compliance
tool for a requested check: license, static analysis, tests, formatting, or
copyright headers.

The ecosystem is always inferred, never passed explicitly. Detection is
performed fresh on every run.`,
	Version: Version,
	Args:    cobra.MaximumNArgs(1),
	Run:     runRootCommand,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runRootCommand(cmd *cobra.Command, args []string) {
	projectPath, err := resolveProjectPath(args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if jsonOutput || skipInteractive || !isTerminal() {
		result := detector.Detect(projectPath)
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		enc.Encode(result)
		if !result.Detected() {
			os.Exit(1)
		}
		return
	}

	fmt.Printf("%s\n", logoStyle.Render(Logo))

	spinnerProgram := tea.NewProgram(spinner.InitialModel("Detecting ecosystem..."))

	go func() {
		if _, err := spinnerProgram.Run(); err != nil {
			// "program was killed" is expected when we Quit() below
			if err.Error() != "program was killed" {
				fmt.Fprintf(os.Stderr, "Error running spinner: %v\n", err)
			}
		}
	}()

	result := detector.Detect(projectPath)
	spinnerProgram.Quit()

	fmt.Println(detection.Render(result))

	if !result.Detected() {
		os.Exit(1)
	}

	fmt.Printf("\n%s\n", tipMsgStyle.Render("Tip: run 'polycheck run static-analysis' to dispatch a check"))
}

func isTerminal() bool {
	if os.Getenv("CI") != "" || os.Getenv("TERM") == "dumb" {
		return false
	}
	return term.IsTerminal(int(os.Stdout.Fd()))
}

func init() {
	rootCmd.SetVersionTemplate("polycheck version {{.Version}}\n")

	rootCmd.AddCommand(detectCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(capabilitiesCmd)

	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output results as JSON (disables interactive mode)")
	rootCmd.PersistentFlags().BoolVar(&skipInteractive, "no-interactive", false, "Skip interactive output (for CI/automation)")
}
