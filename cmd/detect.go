package cmd

import (
	"github.com/spf13/cobra"
)

// detectCmd runs ecosystem detection without dispatching a check
var detectCmd = &cobra.Command{
	Use:   "detect [PROJECT_PATH]",
	Short: "Detect the project's ecosystem from its build manifests",
	Long: Logo + `
Scans build manifests (Bazel BUILD files, Cargo.toml, go.mod, pyproject.toml,
…) and reports the detected ecosystem. Markers are evaluated in a fixed
priority order with native/compiled ecosystems first; the first match wins.

Exits 1 when no supported ecosystem is detected.`,
	Args: cobra.MaximumNArgs(1),
	Run:  runDetect,
}

func runDetect(cmd *cobra.Command, args []string) {
	runRootCommand(cmd, args)
}
