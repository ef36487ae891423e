// SPDX-License-Identifier: MPL-2.0

package cmd

import "github.com/charmbracelet/lipgloss"

// Palette for dark terminal backgrounds.
const (
	colorPrimary   = lipgloss.Color("#7C3AED") // titles, group names
	colorMuted     = lipgloss.Color("#6B7280")
	colorSuccess   = lipgloss.Color("#10B981")
	colorError     = lipgloss.Color("#EF4444")
	colorWarning   = lipgloss.Color("#F59E0B")
	colorHighlight = lipgloss.Color("#3B82F6") // hosts, codes, keys
	colorVerbose   = lipgloss.Color("#9CA3AF") // variables
)

func fg(c lipgloss.Color) lipgloss.Style { return lipgloss.NewStyle().Foreground(c) }

var (
	TitleStyle    = fg(colorPrimary).Bold(true)
	SubtitleStyle = fg(colorMuted)
	SuccessStyle  = fg(colorSuccess)
	ErrorStyle    = fg(colorError).Bold(true)
	WarningStyle  = fg(colorWarning)
	CmdStyle      = fg(colorHighlight)
	VerboseStyle  = fg(colorVerbose)

	// Node styles of `inventory graph`.
	graphGroupStyle = TitleStyle
	graphHostStyle  = CmdStyle
	graphVarStyle   = VerboseStyle

	// severityStyles colour the severity column of `inventory validate`.
	severityStyles = map[string]lipgloss.Style{
		"info":    VerboseStyle,
		"warning": WarningStyle,
		"error":   ErrorStyle,
	}
)
