package components

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type commitRecorder struct {
	values []float64
}

func (r *commitRecorder) onCommit(v float64) tea.Cmd {
	r.values = append(r.values, v)
	return nil
}

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func commitDraft(t *testing.T, f *PercentField, draft string) {
	t.Helper()
	f.Focus()
	f.Model.SetValue(draft)
	f.Commit()
}

func TestPercentFieldCommitRoundTrip(t *testing.T) {
	tests := []struct {
		name      string
		draft     string
		wantValue float64
		wantText  string
	}{
		{"integer", "50", 50, "50"},
		{"one decimal", "33.5", 33.5, "33.5"},
		{"rounded to two decimals", "12.346", 12.35, "12.35"},
		{"above max", "150", 100, "100"},
		{"below min", "-5", 0, "0"},
		{"not a number", "abc", 0, "0"},
		{"empty", "", 0, "0"},
		{"lone dot", ".", 0, "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &commitRecorder{}
			f := NewPercentField(10, rec.onCommit)
			commitDraft(t, &f, tt.draft)

			assert.Equal(t, tt.wantValue, f.Value())
			assert.Equal(t, tt.wantText, f.Draft())
			assert.False(t, f.Focused())
			require.Len(t, rec.values, 1)
			assert.Equal(t, tt.wantValue, rec.values[0])
		})
	}
}

func TestPercentFieldCustomBounds(t *testing.T) {
	f := NewPercentField(50, nil)
	f.Min, f.Max = 10, 60

	commitDraft(t, &f, "abc")
	assert.Equal(t, 10.0, f.Value())

	commitDraft(t, &f, "75")
	assert.Equal(t, 60.0, f.Value())
}

func TestPercentFieldCommitIsIdempotent(t *testing.T) {
	rec := &commitRecorder{}
	f := NewPercentField(0, rec.onCommit)

	commitDraft(t, &f, "42.5")
	first := f.Draft()
	commitDraft(t, &f, "42.5")

	assert.Equal(t, first, f.Draft())
	assert.Equal(t, []float64{42.5, 42.5}, rec.values)
}

func TestPercentFieldRejectsInvalidDraft(t *testing.T) {
	f := NewPercentField(0, nil)
	f.Focus()

	assert.True(t, f.SetDraft("12."))
	assert.False(t, f.SetDraft("12.3.4"))
	assert.False(t, f.SetDraft("-1"))
	assert.Equal(t, "12.", f.Draft())
}

func TestPercentFieldKeystrokeFiltering(t *testing.T) {
	f := NewPercentField(0, nil)
	f.Focus()
	f.Model.SetValue("")

	for _, r := range "4x2.-5" {
		f, _ = f.Update(keyPress(r))
	}
	assert.Equal(t, "42.5", f.Draft())

	f, _ = f.Update(specialKey(tea.KeyEnter))
	assert.False(t, f.Focused())
	assert.Equal(t, 42.5, f.Value())
}

func TestPercentFieldExternalUpdateWhileFocused(t *testing.T) {
	f := NewPercentField(20, nil)
	f.Focus()
	f.SetDraft("3")

	f.SetValue(80)
	assert.Equal(t, "3", f.Draft(), "draft must survive external updates while focused")

	f.Commit()
	assert.Equal(t, 3.0, f.Value())

	f.SetValue(80)
	assert.Equal(t, "80", f.Draft(), "blurred field re-syncs to external value")
}

func TestPercentFieldIgnoresKeysWhenBlurred(t *testing.T) {
	rec := &commitRecorder{}
	f := NewPercentField(20, rec.onCommit)

	f, _ = f.Update(keyPress('9'))
	f, _ = f.Update(specialKey(tea.KeyEnter))

	assert.Equal(t, "20", f.Draft())
	assert.Empty(t, rec.values)
}

func TestPercentFieldView(t *testing.T) {
	f := NewPercentField(33.5, nil)
	assert.Equal(t, "33.5%", f.View())
}
