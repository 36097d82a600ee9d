package components

import (
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/gradewise/internal/ui/theme"
	"github.com/abhisek/gradewise/internal/weights"
)

// PercentField is an editable percentage cell. While focused it edits a
// draft string; the committed value changes only on Commit (Enter, Tab, Esc
// or an explicit blur).
type PercentField struct {
	Model    textinput.Model
	Min      float64
	Max      float64
	OnCommit func(value float64) tea.Cmd
	value    float64
}

// NewPercentField creates a blurred field showing value, bounded to 0..100.
func NewPercentField(value float64, onCommit func(float64) tea.Cmd) PercentField {
	ti := textinput.New()
	ti.Prompt = ""
	ti.Placeholder = "0"
	ti.CharLimit = 8
	ti.SetValue(weights.FormatPercent(value))

	return PercentField{
		Model:    ti,
		Min:      0,
		Max:      weights.Total,
		OnCommit: onCommit,
		value:    value,
	}
}

// Value returns the committed value.
func (f PercentField) Value() float64 {
	return f.value
}

// Draft returns the text currently held by the field.
func (f PercentField) Draft() string {
	return f.Model.Value()
}

// Focused reports whether the field is being edited.
func (f PercentField) Focused() bool {
	return f.Model.Focused()
}

// Focus starts editing from the committed value.
func (f *PercentField) Focus() tea.Cmd {
	f.Model.SetValue(weights.FormatPercent(f.value))
	f.Model.CursorEnd()
	return f.Model.Focus()
}

// SetValue applies an external update. The draft of a focused field is left
// alone so typing is not disrupted.
func (f *PercentField) SetValue(v float64) {
	f.value = v
	if !f.Model.Focused() {
		f.Model.SetValue(weights.FormatPercent(v))
	}
}

// SetDraft replaces the draft if s is a valid partial number.
func (f *PercentField) SetDraft(s string) bool {
	if !weights.AcceptsDraft(s) {
		return false
	}
	f.Model.SetValue(s)
	return true
}

// Commit clamps and formats the draft, blurs the field and invokes OnCommit.
func (f *PercentField) Commit() tea.Cmd {
	v := weights.CommitPercent(f.Model.Value(), f.Min, f.Max)
	f.value = v
	f.Model.Blur()
	f.Model.SetValue(weights.FormatPercent(v))
	if f.OnCommit != nil {
		return f.OnCommit(v)
	}
	return nil
}

// Update handles key events while focused.
func (f PercentField) Update(msg tea.Msg) (PercentField, tea.Cmd) {
	if !f.Model.Focused() {
		return f, nil
	}

	if kmsg, ok := msg.(tea.KeyPressMsg); ok {
		switch kmsg.String() {
		case "enter", "tab", "esc":
			cmd := f.Commit()
			return f, cmd
		}
	}

	prev, pos := f.Model.Value(), f.Model.Position()

	var cmd tea.Cmd
	f.Model, cmd = f.Model.Update(msg)
	if !weights.AcceptsDraft(f.Model.Value()) {
		f.Model.SetValue(prev)
		f.Model.SetCursor(pos)
	}
	return f, cmd
}

// View renders the field with a trailing percent sign.
func (f PercentField) View() string {
	if f.Model.Focused() {
		return f.Model.View() + lipgloss.NewStyle().Foreground(theme.TextDim).Render("%")
	}
	return weights.FormatPercent(f.value) + "%"
}
