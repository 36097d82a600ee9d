package app

import (
	"context"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/gradewise/internal/api"
	"github.com/abhisek/gradewise/internal/gradesync"
	"github.com/abhisek/gradewise/internal/router"
	"github.com/abhisek/gradewise/internal/weights"
)

type offlineBackend struct{}

func (offlineBackend) HasCredential() bool { return false }
func (offlineBackend) Scores(context.Context, string) (*api.ScoresResponse, error) {
	return nil, api.ErrNoCredential
}
func (offlineBackend) SaveHierarchical(context.Context, string, weights.Tree) error { return nil }
func (offlineBackend) AutoDistribute(context.Context, string) error               { return nil }
func (offlineBackend) UpdatePassingCriteria(context.Context, string, float64) error {
	return nil
}

func newTestModel() AppModel {
	return newAppModel(Options{Adapter: gradesync.New(offlineBackend{}, "algebra")})
}

func TestViewEmptyBeforeWindowSize(t *testing.T) {
	m := newTestModel()
	assert.Empty(t, m.render())
}

func TestViewRendersEditorFrame(t *testing.T) {
	m := newTestModel()
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	m = updated.(AppModel)

	content := m.render()
	assert.Contains(t, content, "Grading Weights")
	assert.Contains(t, content, "algebra")
	assert.Contains(t, content, "Quit")
}

func TestEscapeAtRootIsForwarded(t *testing.T) {
	m := newTestModel()
	_, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd != nil {
		_, isPop := cmd().(router.PopScreenMsg)
		assert.False(t, isPop, "root screen must not be popped")
	}
}

func TestCtrlCQuits(t *testing.T) {
	m := newTestModel()
	_, cmd := m.Update(tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}
