// Package editor is the weight table screen: it lists every weight slot of
// a subject, edits them in place and drives save and auto-distribute.
package editor

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/gradewise/internal/gradesync"
	"github.com/abhisek/gradewise/internal/router"
	"github.com/abhisek/gradewise/internal/screen"
	"github.com/abhisek/gradewise/internal/screens/history"
	"github.com/abhisek/gradewise/internal/screens/passing"
	"github.com/abhisek/gradewise/internal/store"
	"github.com/abhisek/gradewise/internal/ui/components"
	"github.com/abhisek/gradewise/internal/ui/layout"
	"github.com/abhisek/gradewise/internal/ui/theme"
	"github.com/abhisek/gradewise/internal/weights"
)

const (
	confirmPrompt = "Auto-distribute will reset per-unit weights to equal shares. Continue? (y/n)"
	preTestNotice = "The pre-test is not graded and carries no weight."
)

type loadDoneMsg struct{ err error }
type saveDoneMsg struct{ err error }
type distributeDoneMsg struct{ err error }
type resumeMsg struct{}

type fieldCommittedMsg struct {
	ref   weights.NodeRef
	value float64
}

// EditorScreen edits the weights of one subject.
type EditorScreen struct {
	adapter *gradesync.Adapter
	notices *gradesync.NoticeLog
	events  store.EventRepo

	snap       gradesync.Snapshot
	rows       []row
	selected   int
	field      components.PercentField
	editing    bool
	confirming bool
}

var _ screen.Screen = (*EditorScreen)(nil)
var _ screen.KeyHintProvider = (*EditorScreen)(nil)
var _ screen.Resumer = (*EditorScreen)(nil)
var _ screen.StatusProvider = (*EditorScreen)(nil)

// New creates the editor. notices must be the NoticeLog the adapter reports
// to; events may be nil, which hides the history view.
func New(adapter *gradesync.Adapter, notices *gradesync.NoticeLog, events store.EventRepo) *EditorScreen {
	s := &EditorScreen{adapter: adapter, notices: notices, events: events}
	s.refresh()
	return s
}

func (s *EditorScreen) Init() tea.Cmd {
	return s.load()
}

func (s *EditorScreen) Resume() tea.Cmd {
	return func() tea.Msg { return resumeMsg{} }
}

func (s *EditorScreen) Title() string {
	return "Grading Weights"
}

// Status shows the subject and the running total in the header, colored by
// whether the total is exactly 100.
func (s *EditorScreen) Status() layout.Status {
	if !s.snap.Loaded {
		return layout.Status{Text: s.adapter.SubjectID()}
	}
	name := s.snap.SubjectName
	if name == "" {
		name = s.adapter.SubjectID()
	}
	total := s.snap.Draft.Allocation.TotalUsed
	return layout.Status{
		Text: fmt.Sprintf("%s  %s%%", name, weights.FormatPercent(total)),
		Tone: layout.ToneForTotal(total),
	}
}

func (s *EditorScreen) KeyHints() []layout.KeyHint {
	switch {
	case s.editing:
		return []layout.KeyHint{
			{Key: "0-9 .", Description: "Type"},
			{Key: "Enter/Tab/Esc", Description: "Done"},
		}
	case s.confirming:
		return []layout.KeyHint{
			{Key: "y", Description: "Distribute"},
			{Key: "n", Description: "Cancel"},
		}
	}
	hints := []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Edit"},
		{Key: "s", Description: "Save"},
		{Key: "a", Description: "Auto-distribute"},
		{Key: "p", Description: "Passing"},
		{Key: "r", Description: "Reload"},
	}
	if s.events != nil {
		hints = append(hints, layout.KeyHint{Key: "h", Description: "History"})
	}
	return append(hints, layout.KeyHint{Key: "q", Description: "Quit"})
}

func (s *EditorScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case loadDoneMsg, saveDoneMsg, distributeDoneMsg, resumeMsg:
		s.refresh()
		return s, nil

	case fieldCommittedMsg:
		s.editing = false
		if _, err := s.adapter.Edit(msg.ref, msg.value); err != nil {
			s.notify(gradesync.NoticeError, gradesync.Describe(err))
		}
		s.refresh()
		return s, nil

	case tea.KeyPressMsg:
		if s.editing {
			var cmd tea.Cmd
			s.field, cmd = s.field.Update(msg)
			if !s.field.Focused() {
				s.editing = false
			}
			return s, cmd
		}
		if s.confirming {
			return s, s.handleConfirm(msg)
		}
		return s, s.handleKey(msg)
	}
	return s, nil
}

func (s *EditorScreen) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	switch msg.String() {
	case "up", "k":
		if s.selected > 0 {
			s.selected--
		}
	case "down", "j":
		if s.selected < len(s.rows)-1 {
			s.selected++
		}
	case "enter", "e":
		return s.startEdit()
	case "s":
		return s.save()
	case "a":
		if s.snap.Loaded {
			s.confirming = true
		}
	case "r":
		return s.load()
	case "p":
		if s.snap.Loaded {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: passing.New(s.adapter)}
			}
		}
	case "h":
		if s.events != nil {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: history.New(s.events, s.adapter.SubjectID())}
			}
		}
	case "q":
		return tea.Quit
	}
	return nil
}

func (s *EditorScreen) handleConfirm(msg tea.KeyPressMsg) tea.Cmd {
	switch msg.String() {
	case "y", "Y":
		s.confirming = false
		return s.distribute()
	case "n", "N", "esc":
		s.confirming = false
		if err := s.adapter.AutoDistribute(context.Background(), false); errors.Is(err, gradesync.ErrDeclined) {
			s.notify(gradesync.NoticeInfo, gradesync.Describe(err))
		}
		s.refresh()
	}
	return nil
}

func (s *EditorScreen) startEdit() tea.Cmd {
	if len(s.rows) == 0 {
		return nil
	}
	r := s.rows[s.selected]
	if r.preTest {
		s.notify(gradesync.NoticeInfo, preTestNotice)
		s.refresh()
		return nil
	}
	if r.fixed {
		s.notify(gradesync.NoticeError, gradesync.Describe(weights.ErrFixedNode))
		s.refresh()
		return nil
	}

	ref := r.ref
	s.field = components.NewPercentField(r.weight, func(v float64) tea.Cmd {
		return func() tea.Msg { return fieldCommittedMsg{ref: ref, value: v} }
	})
	s.editing = true
	return s.field.Focus()
}

func (s *EditorScreen) load() tea.Cmd {
	a := s.adapter
	return func() tea.Msg {
		return loadDoneMsg{err: a.Load(context.Background())}
	}
}

func (s *EditorScreen) save() tea.Cmd {
	a := s.adapter
	return func() tea.Msg {
		return saveDoneMsg{err: a.Save(context.Background())}
	}
}

func (s *EditorScreen) distribute() tea.Cmd {
	a := s.adapter
	return func() tea.Msg {
		return distributeDoneMsg{err: a.AutoDistribute(context.Background(), true)}
	}
}

func (s *EditorScreen) notify(level gradesync.NoticeLevel, text string) {
	s.notices.Notify(gradesync.Notice{Level: level, Text: text, Time: time.Now()})
}

// refresh re-reads the adapter state and rebuilds the rows.
func (s *EditorScreen) refresh() {
	s.snap = s.adapter.Snapshot()
	s.rows = buildRows(s.snap.Draft.Tree)
	if s.selected >= len(s.rows) {
		s.selected = len(s.rows) - 1
	}
	if s.selected < 0 {
		s.selected = 0
	}
}

func (s *EditorScreen) View(width, height int) string {
	var b strings.Builder
	b.WriteString("\n")

	switch {
	case s.snap.State == gradesync.StateIdle || s.snap.State == gradesync.StateLoading && !s.snap.Loaded:
		b.WriteString(center(width, theme.Subtitle.Render("Loading grading structure...")))
		return b.String()
	case s.snap.State == gradesync.StateLoadError && !s.snap.Loaded:
		b.WriteString(center(width, theme.NoticeError.Render(gradesync.Describe(s.snap.Err))))
		b.WriteString("\n\n")
		hint := "Press r to retry."
		if s.snap.NeedsSignIn {
			hint = "Set GRADEWISE_TOKEN or pass --token, then press r."
		}
		b.WriteString(center(width, theme.Hint.Render(hint)))
		return b.String()
	}

	contentWidth := width - 4
	if contentWidth > 96 {
		contentWidth = 96
	}

	alloc := s.snap.Draft.Allocation
	b.WriteString(center(width, s.summaryLine(contentWidth)))
	b.WriteString("\n")
	b.WriteString(center(width, components.NewAllocationBar("Total", alloc.TotalUsed, weights.Total, contentWidth).View()))
	b.WriteString("\n")
	for _, e := range alloc.Errors {
		b.WriteString(center(width, theme.Exceeded.Render(padRight("! "+e, contentWidth))))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	for i, r := range s.rows {
		b.WriteString(center(width, s.renderRow(i, r, contentWidth)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if s.confirming {
		b.WriteString(center(width, theme.Incomplete.Render(padRight(confirmPrompt, contentWidth))))
		b.WriteString("\n")
	}
	if line := s.statusLine(); line != "" {
		b.WriteString(center(width, padRight(line, contentWidth)))
		b.WriteString("\n")
	}

	return b.String()
}

func (s *EditorScreen) summaryLine(width int) string {
	name := s.snap.SubjectName
	if name == "" {
		name = s.adapter.SubjectID()
	}
	left := theme.Title.Render(name)
	right := theme.Subtitle.Render("Passing threshold " + weights.FormatPercent(s.snap.Passing) + "%")
	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return left + strings.Repeat(" ", gap) + right
}

func (s *EditorScreen) renderRow(i int, r row, width int) string {
	prefix := "  "
	style := theme.Unselected
	if i == s.selected {
		prefix = "> "
		style = theme.Selected
	}
	if r.fixed || r.preTest {
		style = theme.Locked
	}

	value := weights.FormatPercent(r.weight) + "%"
	switch {
	case r.preTest:
		value = "not graded"
	case s.editing && i == s.selected:
		value = s.field.View()
	}
	if r.fixed {
		value += " (fixed)"
	}

	detail := ""
	if !r.preTest && r.ref.Kind == weights.KindUnit {
		detail = s.unitDetail(r.ref.UnitID)
	}

	name := prefix + strings.Repeat("  ", r.indent) + r.label
	nameWidth := width / 2
	line := style.Render(padRight(truncate(name, nameWidth), nameWidth)) +
		style.Render(padRight(value, 16)) + detail
	return padRight(line, width)
}

func (s *EditorScreen) unitDetail(id weights.ID) string {
	ua, ok := s.snap.Draft.Allocation.Unit(id)
	if !ok || ua.Weight == 0 && ua.Consumed == 0 {
		return ""
	}
	text := fmt.Sprintf("%s/%s %s", weights.FormatPercent(ua.Consumed), weights.FormatPercent(ua.Weight), ua.Status)
	switch ua.Status {
	case weights.StatusComplete:
		return theme.Complete.Render(text)
	case weights.StatusExceeded:
		return theme.Exceeded.Render(text + " (" + weights.FormatPercent(ua.Remaining) + ")")
	default:
		return theme.Incomplete.Render(text + " (" + weights.FormatPercent(ua.Remaining) + " left)")
	}
}

func (s *EditorScreen) statusLine() string {
	switch s.snap.State {
	case gradesync.StateSaving:
		return theme.Subtitle.Render("Saving...")
	case gradesync.StateLoading:
		return theme.Subtitle.Render("Reloading...")
	}
	n, ok := s.notices.Latest()
	if !ok {
		return ""
	}
	if n.Level == gradesync.NoticeError {
		return theme.NoticeError.Render(n.Text)
	}
	return theme.NoticeInfo.Render(n.Text)
}

func center(width int, s string) string {
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, s)
}

func padRight(s string, width int) string {
	if w := lipgloss.Width(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}

func truncate(s string, width int) string {
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	if width <= 1 {
		return string(r[:width])
	}
	return string(r[:width-1]) + "…"
}
