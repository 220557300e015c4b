package style

import (
	"github.com/charmbracelet/lipgloss"
)

// Base styles
var (
	SubtitleStyle = lipgloss.NewStyle().
			Foreground(HeadingColor).
			Bold(true)

	MutedStyle = lipgloss.NewStyle().
			Foreground(MutedColor)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(SuccessColor).
			Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ErrorColor).
			Bold(true)

	WarningStyle = lipgloss.NewStyle().
			Foreground(WarningColor).
			Bold(true)

	PathStyle = lipgloss.NewStyle().
			Foreground(PathColor).
			Italic(true)
)

// Outcome styles
var (
	WrittenStyle = lipgloss.NewStyle().
			Foreground(WrittenColor).
			Bold(true)

	SkippedStyle = lipgloss.NewStyle().
			Foreground(SkippedColor)

	ConflictStyle = lipgloss.NewStyle().
			Foreground(ConflictColor).
			Bold(true)

	AsideStyle = lipgloss.NewStyle().
			Foreground(AsideColor).
			Bold(true)

	// Substitution rule patterns and replacements
	PatternStyle = lipgloss.NewStyle().
			Foreground(ErrorColor)

	ReplacementStyle = lipgloss.NewStyle().
				Foreground(SuccessColor)
)
