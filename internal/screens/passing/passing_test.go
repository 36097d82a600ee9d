package passing

import (
	"context"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/gradewise/internal/gradesync"
	"github.com/abhisek/gradewise/internal/router"
)

type fakeUpdater struct {
	passing float64
	err     error
	calls   []float64
}

func (f *fakeUpdater) Snapshot() gradesync.Snapshot {
	return gradesync.Snapshot{Passing: f.passing, Loaded: true}
}

func (f *fakeUpdater) UpdatePassingThreshold(_ context.Context, v float64) error {
	f.calls = append(f.calls, v)
	if f.err != nil {
		return f.err
	}
	f.passing = v
	return nil
}

func typeText(s *PassingScreen, text string) {
	for _, r := range text {
		s.Update(tea.KeyPressMsg{Code: r, Text: string(r)})
	}
}

// submit runs the field's commit through the update round trip and returns
// the command produced by the result.
func submit(t *testing.T, s *PassingScreen, cmd tea.Cmd) tea.Cmd {
	t.Helper()
	require.NotNil(t, cmd)
	msg := cmd()
	require.IsType(t, submitMsg{}, msg)

	_, cmd = s.Update(msg)
	require.NotNil(t, cmd)
	assert.True(t, s.saving)

	msg = cmd()
	require.IsType(t, updatedMsg{}, msg)
	_, cmd = s.Update(msg)
	return cmd
}

func TestPassingScreenSubmitsAndPops(t *testing.T) {
	u := &fakeUpdater{passing: 50}
	s := New(u)
	s.Init()
	s.field.Model.SetValue("")

	typeText(s, "65.5")
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	cmd = submit(t, s, cmd)

	assert.Equal(t, []float64{65.5}, u.calls)
	require.NotNil(t, cmd)
	assert.IsType(t, router.PopScreenMsg{}, cmd())
	assert.Empty(t, s.errMsg)
}

func TestPassingScreenShowsFailure(t *testing.T) {
	u := &fakeUpdater{passing: 50, err: gradesync.ErrBusy}
	s := New(u)
	s.Init()

	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	submit(t, s, cmd)

	require.Len(t, u.calls, 1)
	assert.Equal(t, gradesync.Describe(gradesync.ErrBusy), s.errMsg)
	assert.True(t, s.field.Focused(), "field is refocused for another attempt")
	assert.Contains(t, s.View(80, 24), s.errMsg)
}

func TestPassingScreenEscapeDoesNotSave(t *testing.T) {
	u := &fakeUpdater{passing: 50}
	s := New(u)
	s.Init()

	typeText(s, "9")
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	require.NotNil(t, cmd)

	assert.IsType(t, router.PopScreenMsg{}, cmd())
	assert.Empty(t, u.calls)
}

func TestPassingScreenClampsInput(t *testing.T) {
	u := &fakeUpdater{passing: 50}
	s := New(u)
	s.Init()
	s.field.Model.SetValue("")

	typeText(s, "140")
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	submit(t, s, cmd)

	assert.Equal(t, []float64{100}, u.calls)
}
