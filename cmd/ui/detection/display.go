package detection

import (
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"polycheck/pkg/detector"
)

var (
	titleStyle       = lipgloss.NewStyle().Background(lipgloss.Color("#7AA2F7")).Foreground(lipgloss.Color("#030303")).Bold(true).Padding(0, 1, 0)
	focusedStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#7AA2F7")).Bold(true)
	valueStyle       = lipgloss.NewStyle().PaddingLeft(1).Foreground(lipgloss.Color("170")).Bold(true)
	descriptionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#40BDA3"))
	successStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("46")).Bold(true)
	failStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
)

// Render formats a detection result for terminal display
func Render(d detector.Detection) string {
	var s strings.Builder

	s.WriteString(titleStyle.Render("Ecosystem Detection"))
	s.WriteString("\n\n")

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#7AA2F7")).
		Padding(1, 2).
		Width(60)

	var content strings.Builder

	if !d.Detected() {
		content.WriteString(failStyle.Render("No supported ecosystem detected"))
		content.WriteString("\n\n")
		if len(d.ManifestsScanned) > 0 {
			content.WriteString(focusedStyle.Render("Manifests scanned:"))
			content.WriteString("\n")
			for _, m := range d.ManifestsScanned {
				content.WriteString(descriptionStyle.Render("  " + m))
				content.WriteString("\n")
			}
		} else {
			content.WriteString(descriptionStyle.Render("No build manifests found"))
			content.WriteString("\n")
		}
		content.WriteString(focusedStyle.Render("Markers tried:"))
		content.WriteString("\n")
		for _, m := range d.MarkersTried {
			content.WriteString(descriptionStyle.Render("  " + m))
			content.WriteString("\n")
		}
		s.WriteString(box.Render(content.String()))
		return s.String()
	}

	content.WriteString(focusedStyle.Render("Ecosystem:"))
	content.WriteString(valueStyle.Render(d.Ecosystem.DisplayName()))
	content.WriteString("\n")

	content.WriteString(focusedStyle.Render("Manifest:"))
	content.WriteString(valueStyle.Render(d.Manifest))
	content.WriteString("\n\n")

	if len(d.Signals) > 0 {
		content.WriteString(focusedStyle.Render("Detection signals:"))
		content.WriteString("\n")
		for _, signal := range d.Signals {
			content.WriteString(successStyle.Render("  ✓ "))
			content.WriteString(descriptionStyle.Render(signal))
			content.WriteString("\n")
		}
	}

	if len(d.Meta) > 0 {
		content.WriteString("\n")
		content.WriteString(focusedStyle.Render("Metadata:"))
		content.WriteString("\n")
		keys := make([]string, 0, len(d.Meta))
		for k := range d.Meta {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			content.WriteString(descriptionStyle.Render("  " + k + ": " + d.Meta[k]))
			content.WriteString("\n")
		}
	}

	s.WriteString(box.Render(content.String()))
	return s.String()
}
