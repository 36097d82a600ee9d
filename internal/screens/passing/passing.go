// Package passing edits a subject's passing threshold.
package passing

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/gradewise/internal/gradesync"
	"github.com/abhisek/gradewise/internal/router"
	"github.com/abhisek/gradewise/internal/screen"
	"github.com/abhisek/gradewise/internal/ui/components"
	"github.com/abhisek/gradewise/internal/ui/layout"
	"github.com/abhisek/gradewise/internal/ui/theme"
)

// Updater sets the passing threshold. *gradesync.Adapter satisfies it.
type Updater interface {
	Snapshot() gradesync.Snapshot
	UpdatePassingThreshold(ctx context.Context, value float64) error
}

type submitMsg struct{ value float64 }
type updatedMsg struct{ err error }

// PassingScreen edits the passing threshold in a single percent field.
type PassingScreen struct {
	updater Updater
	field   components.PercentField
	saving  bool
	errMsg  string
}

var _ screen.Screen = (*PassingScreen)(nil)
var _ screen.KeyHintProvider = (*PassingScreen)(nil)

// New creates the screen seeded with the current threshold.
func New(u Updater) *PassingScreen {
	s := &PassingScreen{updater: u}
	s.field = components.NewPercentField(u.Snapshot().Passing, func(v float64) tea.Cmd {
		return func() tea.Msg { return submitMsg{value: v} }
	})
	return s
}

func (s *PassingScreen) Init() tea.Cmd {
	return s.field.Focus()
}

func (s *PassingScreen) Title() string {
	return "Passing Threshold"
}

func (s *PassingScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Save"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *PassingScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case submitMsg:
		s.saving = true
		s.errMsg = ""
		u := s.updater
		return s, func() tea.Msg {
			return updatedMsg{err: u.UpdatePassingThreshold(context.Background(), msg.value)}
		}

	case updatedMsg:
		s.saving = false
		if msg.err != nil {
			s.errMsg = gradesync.Describe(msg.err)
			return s, s.field.Focus()
		}
		return s, func() tea.Msg { return router.PopScreenMsg{} }

	case tea.KeyPressMsg:
		if s.saving {
			return s, nil
		}
		if msg.String() == "esc" {
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
		var cmd tea.Cmd
		s.field, cmd = s.field.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *PassingScreen) View(width, height int) string {
	var b strings.Builder
	b.WriteString("\n\n")

	center := func(line string) {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, line))
		b.WriteString("\n")
	}

	center(theme.Subtitle.Render("Minimum score a learner needs to pass this subject."))
	b.WriteString("\n")
	center(theme.Card.Render(theme.Title.Render("Passing  ") + s.field.View()))
	b.WriteString("\n")

	switch {
	case s.saving:
		center(theme.Hint.Render("Saving..."))
	case s.errMsg != "":
		center(theme.NoticeError.Render(s.errMsg))
	}
	return b.String()
}
