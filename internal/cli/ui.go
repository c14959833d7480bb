package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/itemgraph/pkg/pipeline"
)

// Terminal colors (ANSI 256).
var (
	colorAccent = lipgloss.Color("36")
	colorGreen  = lipgloss.Color("35")
	colorAmber  = lipgloss.Color("220")
	colorRed    = lipgloss.Color("167")
	colorLink   = lipgloss.Color("75")
	colorGray   = lipgloss.Color("245")
	colorDim    = lipgloss.Color("240")
)

// Styles shared by the commands and the item picker.
var (
	StyleTitle     = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	StyleHighlight = lipgloss.NewStyle().Foreground(colorAccent)
	StyleLink      = lipgloss.NewStyle().Foreground(colorLink).Underline(true)
	StyleDim       = lipgloss.NewStyle().Foreground(colorDim)

	styleIconSpinner = lipgloss.NewStyle().Foreground(colorAccent)
	styleKey         = lipgloss.NewStyle().Foreground(colorGray).Width(12)
)

// status prints a line prefixed with a colored marker.
func status(marker string, color lipgloss.Color, text string) {
	fmt.Println(lipgloss.NewStyle().Foreground(color).Render(marker) + " " + text)
}

func printSuccess(format string, args ...any) {
	status("✓", colorGreen, fmt.Sprintf(format, args...))
}

func printError(format string, args ...any) {
	status("✗", colorRed, fmt.Sprintf(format, args...))
}

func printWarning(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	status("!", colorAmber, lipgloss.NewStyle().Foreground(colorAmber).Render(msg))
}

func printInfo(format string, args ...any) {
	status("›", colorGray, fmt.Sprintf(format, args...))
}

// printDetail prints a dimmed, indented line under a status line.
func printDetail(format string, args ...any) {
	fmt.Println("  " + StyleDim.Render(fmt.Sprintf(format, args...)))
}

// printFile lists a written file.
func printFile(path string) {
	fmt.Println("  " + StyleDim.Render("→") + " " + path)
}

// printKeyValue prints a label column followed by its value.
func printKeyValue(key, value string) {
	fmt.Println(styleKey.Render(key) + " " + value)
}

// printStats summarizes an export, e.g.
//
//	2 seeds · 14 nodes · 21 links · 3 excluded · cached
func printStats(s pipeline.Stats, cached bool) {
	var parts []string
	if s.SeedCount > 0 {
		parts = append(parts, fmt.Sprintf("%d seeds", s.SeedCount))
	}
	parts = append(parts,
		fmt.Sprintf("%d nodes", s.NodeCount),
		fmt.Sprintf("%d links", s.LinkCount))
	if n := s.Excluded(); n > 0 {
		parts = append(parts, fmt.Sprintf("%d excluded", n))
	}

	source := lipgloss.NewStyle().Foreground(colorGray).Render("fresh")
	if cached {
		source = lipgloss.NewStyle().Foreground(colorGreen).Render("cached")
	}

	sep := StyleDim.Render(" · ")
	fmt.Println("  " + StyleDim.Render(strings.Join(parts, " · ")) + sep + source)
}

// printNextStep suggests a follow-up command.
func printNextStep(description, cmd string) {
	fmt.Println(StyleDim.Render(description+":") + " " + StyleHighlight.Render(cmd))
}

func printNewline() { fmt.Println() }
