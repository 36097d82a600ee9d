package server

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/gradewise/internal/weights"
)

const seedYAML = `
subjects:
  - id: algebra
    name: Algebra I
    passing_percentage: 60
    pre_test:
      title: Diagnostic
    units:
      - id: u1
        title: Linear equations
        weight: 50
        quiz: {title: Unit quiz, weight: 10}
        lessons:
          - title: One variable
            weight: 25
            has_video: true
          - title: Two variables
            weight: 15
            fixed: true
            quiz: {weight: 0}
      - title: Inequalities
        weight: 30
        lessons:
          - title: Number lines
            weight: 30
    post_test:
      id: final
      title: Final exam
      weight: 20
`

func TestParseSeed(t *testing.T) {
	subjects, err := ParseSeed([]byte(seedYAML))
	require.NoError(t, err)
	require.Len(t, subjects, 1)

	s := subjects[0]
	assert.Equal(t, "algebra", s.ID)
	assert.Equal(t, "Algebra I", s.Name)
	assert.Equal(t, 60.0, s.PassingPercentage)

	tree := s.Tree
	require.NotNil(t, tree.PreTest)
	assert.NotEmpty(t, tree.PreTest.ID, "missing ids are generated")
	require.Len(t, tree.Units, 2)

	u1 := tree.Units[0]
	assert.Equal(t, weights.ID("u1"), u1.ID)
	assert.Equal(t, 1, u1.Order)
	require.NotNil(t, u1.Quiz)
	assert.Equal(t, 10.0, u1.Quiz.Weight)
	require.Len(t, u1.Lessons, 2)
	assert.True(t, u1.Lessons[0].HasVideo)
	assert.True(t, u1.Lessons[1].IsFixed)
	require.NotNil(t, u1.Lessons[1].Quiz)
	assert.Equal(t, 2, u1.Lessons[1].Order)

	assert.NotEmpty(t, tree.Units[1].ID)
	assert.NotEqual(t, tree.Units[1].ID, tree.Units[1].Lessons[0].ID)
	assert.Equal(t, weights.ID("final"), tree.PostTest.ID)

	a := weights.Recompute(tree)
	assert.True(t, a.Valid)
	for _, u := range a.Units {
		assert.Equal(t, weights.StatusComplete, u.Status)
	}
}

func TestParseSeedErrors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{"missing id", "subjects:\n  - name: x\n", "id is required"},
		{"duplicate id", "subjects:\n  - id: a\n  - id: a\n", "duplicate id"},
		{"bad passing", "subjects:\n  - id: a\n    passing_percentage: 120\n", "passing_percentage"},
		{"bad yaml", "subjects: [", "parse seed"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseSeed([]byte(tt.yaml))
			assert.ErrorContains(t, err, tt.want)
		})
	}
}

func TestLoadSeed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.yaml")
	require.NoError(t, os.WriteFile(path, []byte(seedYAML), 0o644))

	subjects, err := LoadSeed(path)
	require.NoError(t, err)
	assert.Len(t, subjects, 1)

	_, err = LoadSeed(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
