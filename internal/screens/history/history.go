// Package history lists the local audit log of grading-service calls.
package history

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/gradewise/internal/router"
	"github.com/abhisek/gradewise/internal/screen"
	"github.com/abhisek/gradewise/internal/store"
	"github.com/abhisek/gradewise/internal/ui/layout"
	"github.com/abhisek/gradewise/internal/ui/theme"
)

const pageSize = 50

type historyLoadedMsg struct {
	Events []store.SyncEventRecord
	Err    error
}

// HistoryScreen displays recent sync events for one subject.
type HistoryScreen struct {
	eventRepo store.EventRepo
	subjectID string
	events    []store.SyncEventRecord
	selected  int
	expanded  map[int]bool
	loaded    bool
	errMsg    string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen. An empty subjectID lists every subject.
func New(eventRepo store.EventRepo, subjectID string) *HistoryScreen {
	return &HistoryScreen{
		eventRepo: eventRepo,
		subjectID: subjectID,
		expanded:  make(map[int]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	repo, subject := s.eventRepo, s.subjectID
	return func() tea.Msg {
		events, err := repo.QuerySyncEvents(context.Background(), store.QueryOpts{
			Limit:     pageSize,
			SubjectID: subject,
		})
		return historyLoadedMsg{Events: events, Err: err}
	}
}

func (s *HistoryScreen) Title() string {
	return "Sync History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Details"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.events = msg.Events
		}
		s.loaded = true
		return s, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "esc", "q":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
			return s, nil
		case "down", "j":
			if s.selected < len(s.events)-1 {
				s.selected++
			}
			return s, nil
		case "enter":
			s.expanded[s.selected] = !s.expanded[s.selected]
			return s, nil
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading history...")
	}
	if len(s.events) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No sync activity yet.")
	}

	var b strings.Builder
	b.WriteString("\n")

	for i, ev := range s.events {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.renderEvent(i, ev)))
		b.WriteString("\n")

		if s.expanded[i] {
			for _, d := range details(ev) {
				b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
					lipgloss.NewStyle().Foreground(theme.TextDim).Render("    "+d)))
				b.WriteString("\n")
			}
		}
	}

	return b.String()
}

func (s *HistoryScreen) renderEvent(i int, ev store.SyncEventRecord) string {
	prefix := "  "
	if i == s.selected {
		prefix = "> "
	}

	outcome := "ok"
	color := theme.Success
	if !ev.Success {
		outcome = "failed"
		color = theme.Error
	}

	line := fmt.Sprintf("%s%s  %-10s  %-8s  %5dms  %s",
		prefix, ev.Timestamp.Format("Jan 02 15:04:05"), ev.Action, ev.SubjectID, ev.LatencyMs, outcome)

	style := lipgloss.NewStyle().Foreground(color)
	if i == s.selected {
		style = style.Bold(true)
	}
	return style.Render(line)
}

func details(ev store.SyncEventRecord) []string {
	out := []string{fmt.Sprintf("Request %s", ev.RequestID)}
	if ev.StatusCode != 0 {
		out = append(out, fmt.Sprintf("HTTP %d", ev.StatusCode))
	}
	if ev.ErrorMessage != "" {
		out = append(out, ev.ErrorMessage)
	}
	return out
}
