package ui

import (
	"os"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// Color definitions for consistent styling across the UI.
var (
	// Free time: green
	colorFree = color.New(color.FgGreen)

	// Busy time: red
	colorBusy = color.New(color.FgRed)

	// Overlap counts: bold cyan to make them pop
	colorOverlap = color.New(color.FgCyan, color.Bold)

	// Headers: bold
	colorHeader = color.New(color.Bold)

	// Muted: for secondary information
	colorMuted = color.New(color.FgWhite, color.Faint)
)

// termWidth returns the terminal width, or a default if detection fails.
func termWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80 // sensible default
	}
	return width
}

// DisableColor disables all color output.
func DisableColor() {
	color.NoColor = true
}

// formatFree formats text for available time.
func formatFree(s string) string {
	return colorFree.Sprint(s)
}

// formatBusy formats text for busy time.
func formatBusy(s string) string {
	return colorBusy.Sprint(s)
}

// formatOverlap formats shared free time.
func formatOverlap(s string) string {
	return colorOverlap.Sprint(s)
}

// formatHeader formats text as a header.
func formatHeader(s string) string {
	return colorHeader.Sprint(s)
}

// formatMuted formats text as secondary/muted.
func formatMuted(s string) string {
	return colorMuted.Sprint(s)
}
