// Package tui renders human-facing command output. The push rejection
// report is NOT rendered here; it travels over the git wire as plain text.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/yellingatcode/yet-another-commit-checker/internal/domain"
)

var (
	success = lipgloss.Color("#22C55E") // green
	danger  = lipgloss.Color("#EF4444") // red
	dim     = lipgloss.Color("#6B7280") // muted gray

	passStyle  = lipgloss.NewStyle().Foreground(success).Bold(true)
	failStyle  = lipgloss.NewStyle().Foreground(danger).Bold(true)
	fieldStyle = lipgloss.NewStyle().Bold(true)
	dimStyle   = lipgloss.NewStyle().Foreground(dim)
)

// RenderConfigCheck renders the result of validating a settings file.
func RenderConfigCheck(path string, errors []domain.FieldError) string {
	var b strings.Builder

	if len(errors) == 0 {
		b.WriteString(passStyle.Render("✓ configuration is valid"))
		b.WriteString("  ")
		b.WriteString(dimStyle.Render(path))
		b.WriteString("\n")
		return b.String()
	}

	b.WriteString(failStyle.Render(fmt.Sprintf("✗ %d problem(s) in %s", len(errors), path)))
	b.WriteString("\n\n")

	for _, e := range errors {
		b.WriteString("  ")
		b.WriteString(fieldStyle.Render(e.Field))
		b.WriteString(dimStyle.Render(": "))
		b.WriteString(e.Message)
		b.WriteString("\n")
	}

	return b.String()
}
