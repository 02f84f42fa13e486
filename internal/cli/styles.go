package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/mholecek/worktrack/internal/constants"
)

var (
	HeaderStyle   = lipgloss.NewStyle().Bold(true)
	PositiveStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	NegativeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	MutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// FormatAmount renders an amount with the currency suffix, colored by sign.
func FormatAmount(v int64) string {
	s := fmt.Sprintf("%d %s", v, constants.Currency)
	if v < 0 {
		return NegativeStyle.Render(s)
	}
	return PositiveStyle.Render(s)
}
