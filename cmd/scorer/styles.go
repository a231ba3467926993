package main

import "github.com/charmbracelet/lipgloss"

// Centralized style definitions for terminal output.
var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6")) // cyan
	categoryStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("5"))            // magenta

	// Total score bands.
	bandHighStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("2")) // green
	bandMidStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("3")) // yellow
	bandLowStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("1")) // red

	// Table cells.
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	scoreStyle  = lipgloss.NewStyle().Padding(0, 1).Align(lipgloss.Right)

	// Spinner / animation styles.
	spinnerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("5")) // magenta

	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("2")) // green
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))            // gray/dim

	adviceBlockStyle = lipgloss.NewStyle().
				PaddingLeft(1).
				BorderLeft(true).
				BorderStyle(lipgloss.ThickBorder()).
				BorderForeground(lipgloss.Color("3"))
)
