package layout

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/gradewise/internal/ui/theme"
	"github.com/abhisek/gradewise/internal/weights"
)

const (
	MinWidth  = 80
	MinHeight = 24
)

// KeyHint represents a key binding hint shown in the footer.
type KeyHint struct {
	Key         string
	Description string
}

// Tone colors the header status.
type Tone int

const (
	ToneNeutral Tone = iota
	ToneComplete
	ToneIncomplete
	ToneExceeded
)

// ToneForTotal maps a tree total to the tone of its allocation.
func ToneForTotal(total float64) Tone {
	switch t := weights.Round2(total); {
	case t == weights.Total:
		return ToneComplete
	case t > weights.Total:
		return ToneExceeded
	default:
		return ToneIncomplete
	}
}

// Status is the text on the right of the header.
type Status struct {
	Text string
	Tone Tone
}

func (s Status) render() string {
	if s.Text == "" {
		return ""
	}
	switch s.Tone {
	case ToneComplete:
		return theme.Complete.Render(s.Text + " ✓")
	case ToneIncomplete:
		return theme.Incomplete.Render(s.Text)
	case ToneExceeded:
		return theme.Exceeded.Render(s.Text + " !")
	default:
		return lipgloss.NewStyle().Foreground(theme.Accent).Render(s.Text)
	}
}

// IsTooSmall reports whether the terminal is below the minimum size.
func IsTooSmall(width, height int) bool {
	return width < MinWidth || height < MinHeight
}

// RenderMinSizeMessage asks the user to enlarge the terminal.
func RenderMinSizeMessage(width, height int) string {
	return lipgloss.NewStyle().
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Width(width).
		Height(height).
		Render(fmt.Sprintf(
			"The weight table needs at least %d x %d.\n\nCurrent: %d x %d",
			MinWidth, MinHeight, width, height,
		))
}

// RenderHeader draws the product name, the screen title and the status.
// The title is centered; it is dropped when the status would not fit.
func RenderHeader(title string, status Status, width int) string {
	left := theme.Title.Render("  Gradewise")
	center := theme.Body.Render(title)
	right := status.render()

	inner := width - 4
	if inner < 0 {
		inner = 0
	}

	used := lipgloss.Width(left) + lipgloss.Width(right)
	if used+lipgloss.Width(center)+2 > inner {
		center = ""
	}

	gap := (inner-lipgloss.Width(center))/2 - lipgloss.Width(left)
	if room := inner - used - lipgloss.Width(center); gap > room {
		gap = room
	}
	if gap < 1 {
		gap = 1
	}
	rest := inner - used - gap - lipgloss.Width(center)
	if rest < 1 {
		rest = 1
	}

	return bar(left+strings.Repeat(" ", gap)+center+strings.Repeat(" ", rest)+right, width)
}

// RenderFooter lists key hints separated by wide gaps.
func RenderFooter(hints []KeyHint, width int) string {
	keyStyle := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
	parts := make([]string, 0, len(hints))
	for _, h := range hints {
		parts = append(parts, keyStyle.Render(h.Key)+" "+theme.Subtitle.Render(h.Description))
	}
	return bar("  "+strings.Join(parts, "   "), width)
}

func bar(content string, width int) string {
	return lipgloss.NewStyle().
		Width(width).
		Background(theme.BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Render(content)
}

// RenderFrame stacks header, content and footer, sizing the content to
// whatever height the two bars leave.
func RenderFrame(header, content, footer string, width, height int) string {
	h := height - lipgloss.Height(header) - lipgloss.Height(footer)
	if h < 0 {
		h = 0
	}
	body := lipgloss.NewStyle().Width(width).Height(h).Render(content)
	return header + "\n" + body + "\n" + footer
}
