package components

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/gradewise/internal/ui/theme"
	"github.com/abhisek/gradewise/internal/weights"
)

// AllocationBar shows how much of a budget is used. Used may exceed Budget,
// in which case the bar is drawn full in the error color.
type AllocationBar struct {
	Label  string
	Used   float64
	Budget float64
	Width  int
}

// NewAllocationBar creates a new allocation bar.
func NewAllocationBar(label string, used, budget float64, width int) AllocationBar {
	return AllocationBar{
		Label:  label,
		Used:   used,
		Budget: budget,
		Width:  width,
	}
}

// Ratio returns Used/Budget, or 0 for an empty budget.
func (b AllocationBar) Ratio() float64 {
	if b.Budget <= 0 {
		return 0
	}
	return b.Used / b.Budget
}

// View renders the allocation bar.
func (b AllocationBar) View() string {
	var result string

	if b.Label != "" {
		result += lipgloss.NewStyle().Foreground(theme.Text).Render(b.Label) + "  "
	}

	summary := "  " + weights.FormatPercent(b.Used) + "/" + weights.FormatPercent(b.Budget) + "%"

	barWidth := b.Width - lipgloss.Width(result) - len(summary)
	if barWidth < 4 {
		barWidth = 4
	}

	ratio := b.Ratio()
	fill := theme.Secondary
	summaryColor := theme.TextDim
	used, budget := weights.Round2(b.Used), weights.Round2(b.Budget)
	switch {
	case used > budget:
		fill = theme.Error
		summaryColor = theme.Error
	case used == budget:
		fill = theme.Success
		summaryColor = theme.Success
	}

	filled := int(float64(barWidth) * ratio)
	if filled > barWidth {
		filled = barWidth
	}
	if filled < 0 {
		filled = 0
	}
	empty := barWidth - filled

	result += lipgloss.NewStyle().Background(fill).Render(strings.Repeat(" ", filled))
	result += lipgloss.NewStyle().Background(theme.Border).Render(strings.Repeat(" ", empty))
	result += lipgloss.NewStyle().Foreground(summaryColor).Render(summary)

	return result
}
