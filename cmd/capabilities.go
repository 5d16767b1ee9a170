package cmd

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"polycheck/pkg/bindings"
	"polycheck/pkg/detector"
)

var (
	ecoHeaderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#7AA2F7")).Bold(true)
	capNameStyle   = lipgloss.NewStyle().PaddingLeft(2).Foreground(lipgloss.Color("170"))
	chainStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

// capabilitiesCmd prints the supported ecosystem × capability matrix with
// the default tool bindings
var capabilitiesCmd = &cobra.Command{
	Use:   "capabilities",
	Short: "List supported ecosystems, capabilities and their tool bindings",
	Args:  cobra.NoArgs,
	Run:   runCapabilities,
}

func runCapabilities(cmd *cobra.Command, args []string) {
	table := bindings.Defaults()

	for _, eco := range detector.Ecosystems() {
		fmt.Println(ecoHeaderStyle.Render(eco.DisplayName()))
		for _, capability := range bindings.Capabilities() {
			chain, err := table.Resolve(eco, capability)
			if err != nil {
				// Defaults are validated complete; reaching here is a bug
				fmt.Printf("%s: %v\n", capability, err)
				continue
			}
			for i, command := range chain {
				label := string(capability)
				if i > 0 {
					label = ""
				}
				fmt.Printf("%-22s %s\n", capNameStyle.Render(label), chainStyle.Render(command.String()))
			}
		}
		fmt.Println()
	}
}
