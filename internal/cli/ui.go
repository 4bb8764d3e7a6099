package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/autocrate/autocrate/pkg/pipeline"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // Teal - primary actions
	colorGreen  = lipgloss.Color("35")  // Green - success
	colorYellow = lipgloss.Color("220") // Amber - warnings
	colorRed    = lipgloss.Color("167") // Soft red - errors
	colorWhite  = lipgloss.Color("255") // Bright white - values
	colorGray   = lipgloss.Color("245") // Gray - secondary text
	colorDim    = lipgloss.Color("240") // Dim gray - muted text
)

// =============================================================================
// Styles
// =============================================================================

var (
	// StyleTitle for main headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleDim for secondary/muted text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue for data values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	// StyleWarning for warning messages.
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)
)

var (
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)

	styleCached   = lipgloss.NewStyle().Foreground(colorGreen)
	styleComputed = lipgloss.NewStyle().Foreground(colorGray)
)

// =============================================================================
// Icons
// =============================================================================

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconArrow   = "→"
	iconCached  = "cached"
	iconFresh   = "fresh"
)

// =============================================================================
// Status Output
// =============================================================================

// printSuccess prints a success message.
func printSuccess(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconSuccess.Render(iconSuccess) + " " + msg)
}

// printError prints an error message.
func printError(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconError.Render(iconError) + " " + msg)
}

// printFile prints a file output line.
func printFile(path string) {
	fmt.Println("  " + StyleDim.Render(iconArrow) + " " + StyleValue.Render(path))
}

// printKeyValue prints a labeled value.
func printKeyValue(key, value string) {
	keyStyle := lipgloss.NewStyle().Foreground(colorGray).Width(14)
	fmt.Println("  " + keyStyle.Render(key) + " " + StyleValue.Render(value))
}

// =============================================================================
// Run Summary
// =============================================================================

// printSummary prints a one-screen summary of a generation run.
func printSummary(result *pipeline.Result, output string) {
	printSuccess("generated expressions")
	printFile(output)

	status := iconFresh
	statusStyle := styleComputed
	if result.CacheHit {
		status = iconCached
		statusStyle = styleCached
	}

	if l := result.Layout; l != nil {
		printKeyValue("envelope", fmt.Sprintf("%.2f × %.2f × %.2f in",
			l.Envelope.OverallWidth, l.Envelope.OverallLength, l.Envelope.OverallHeight))
		printKeyValue("skids", fmt.Sprintf("%d × %s @ %.2f in", l.Skids.Count, l.Skids.Callout, l.Skids.Pitch))
		printKeyValue("floorboards", fmt.Sprintf("%d", l.Floor.ActiveCount()))
		printKeyValue("panels", fmt.Sprintf("%d", len(l.Panels)))
		printKeyValue("entries", fmt.Sprintf("%d", result.Entries))
	}

	fmt.Println("  " + StyleDim.Render(fmt.Sprintf("%d bytes", len(result.Data))) +
		StyleDim.Render(" · ") + statusStyle.Render(status))
}
