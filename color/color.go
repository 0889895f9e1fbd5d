// Package color provides a curated palette of colors.
package color

import "github.com/charmbracelet/lipgloss"

// New initializes a lipgloss.Color from a string value.
func New(value string) lipgloss.Color {
	return lipgloss.Color(value)
}

// Core palette, aligned with the TUI theme in style/.
var (
	Red    = New("#f38ba8")
	Green  = New("#a6e3a1")
	Yellow = New("#f9e2af")
	Blue   = New("#89b4fa")
	Purple = New("#cba6f7")
	Cyan   = New("#94e2d5")
	White  = New("#cdd6f4")
	Black  = New("#1e1e2e")
)

// Lighter variants for headers and emphasis.
var (
	HiRed    = New("#eba0ac")
	HiGreen  = New("#b9f0b4")
	HiYellow = New("#fdeebc")
	HiBlue   = New("#a3c7fc")
	HiPurple = New("#d6bcfa")
	HiCyan   = New("#a8ecdf")
	HiWhite  = New("#e6e9f4")
	HiBlack  = New("#313244")
)

// Accent and semantic colors.
var (
	Orange = New("#fab387")
	Gray   = New("#6c7086")
)
