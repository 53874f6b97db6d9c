package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/techradar/pkg/pipeline"
)

// =============================================================================
// Styles
// =============================================================================

// ANSI 256 palette shared by status lines, tables and the browser.
var (
	colorCyan   = lipgloss.Color("36")
	colorGreen  = lipgloss.Color("35")
	colorYellow = lipgloss.Color("220")
	colorRed    = lipgloss.Color("167")
	colorBlue   = lipgloss.Color("75")
	colorWhite  = lipgloss.Color("255")
	colorGray   = lipgloss.Color("245")
	colorDim    = lipgloss.Color("240")
)

func fg(c lipgloss.Color) lipgloss.Style { return lipgloss.NewStyle().Foreground(c) }

// Exported so that the browse view and tables render like status lines.
var (
	StyleTitle     = fg(colorCyan).Bold(true)
	StyleHighlight = fg(colorCyan)
	StyleNumber    = fg(colorCyan)
	StyleLink      = fg(colorBlue).Underline(true)
	StyleValue     = fg(colorWhite)
	StyleDim       = fg(colorDim)
	StyleWarning   = fg(colorYellow)
)

var (
	styleIconSuccess = fg(colorGreen)
	styleIconError   = fg(colorRed)
	styleIconWarning = fg(colorYellow)
	styleIconInfo    = fg(colorGray)
	styleIconSpinner = fg(colorCyan)
	styleCached      = fg(colorGreen)
	styleComputed    = fg(colorGray)
	styleCommand     = fg(colorBlue)
	styleKey         = fg(colorGray).Width(12)
)

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconWarning = "!"
	iconInfo    = "›"
	iconArrow   = "→"
	iconCached  = "cached"
	iconFresh   = "fresh"
)

// =============================================================================
// Status Output
// =============================================================================

// statusOut receives status lines. Stdout is kept for command output such
// as imported JSON, so it can be piped.
var statusOut io.Writer = os.Stderr

func status(icon string, style lipgloss.Style, msg string) {
	fmt.Fprintln(statusOut, style.Render(icon)+" "+msg)
}

func printSuccess(format string, args ...any) {
	status(iconSuccess, styleIconSuccess, fmt.Sprintf(format, args...))
}

func printError(format string, args ...any) {
	status(iconError, styleIconError, fmt.Sprintf(format, args...))
}

func printWarning(format string, args ...any) {
	status(iconWarning, styleIconWarning, StyleWarning.Render(fmt.Sprintf(format, args...)))
}

func printInfo(format string, args ...any) {
	status(iconInfo, styleIconInfo, fmt.Sprintf(format, args...))
}

// printDetail prints an indented, muted line.
func printDetail(format string, args ...any) {
	fmt.Fprintln(statusOut, "  "+StyleDim.Render(fmt.Sprintf(format, args...)))
}

// printFile prints a written output file.
func printFile(path string) {
	fmt.Fprintln(statusOut, "  "+StyleDim.Render(iconArrow)+" "+StyleValue.Render(path))
}

// printKeyValue prints a labeled value.
func printKeyValue(key, value string) {
	fmt.Fprintln(statusOut, styleKey.Render(key)+" "+StyleValue.Render(value))
}

// =============================================================================
// Stats Display
// =============================================================================

// printStats prints entry counts and the cache status on a single line,
// e.g. "12 entries · 1 unresolved · cached".
func printStats(stats pipeline.Stats, cached bool) {
	parts := []string{fmt.Sprintf("%d entries", stats.Entries)}
	if stats.Placed != stats.Entries {
		parts = append(parts, fmt.Sprintf("%d placed", stats.Placed))
	}
	if stats.Unresolved > 0 {
		parts = append(parts, fmt.Sprintf("%d unresolved", stats.Unresolved))
	}
	if stats.Skipped > 0 {
		parts = append(parts, fmt.Sprintf("%d skipped on import", stats.Skipped))
	}

	state := styleComputed.Render(iconFresh)
	if cached {
		state = styleCached.Render(iconCached)
	}

	sep := StyleDim.Render(" · ")
	fmt.Fprintln(statusOut, "  "+StyleDim.Render(strings.Join(parts, " · "))+sep+state)
}

// printNextStep prints a suggested next command.
func printNextStep(description, cmd string) {
	fmt.Fprintln(statusOut, StyleDim.Render(description+":")+" "+styleCommand.Render(cmd))
}

func printNewline() {
	fmt.Fprintln(statusOut)
}
