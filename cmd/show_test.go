package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/gradewise/internal/weights"
)

func TestPrintAllocationListsPreTestFirst(t *testing.T) {
	tree := weights.Tree{
		PreTest:  &weights.PreTest{ID: "pre"},
		Units:    []weights.Unit{{ID: "u1", Title: "Fractions", Weight: 70}},
		PostTest: &weights.PostTest{ID: "pt", Weight: 30},
	}

	var buf bytes.Buffer
	printAllocation(&buf, weights.NewDraft(tree))

	lines := strings.Split(buf.String(), "\n")
	require.Greater(t, len(lines), 4)
	assert.Contains(t, lines[2], "Pre-test")
	assert.Contains(t, lines[2], "not graded")
	assert.Contains(t, lines[3], "Fractions")
	assert.Contains(t, buf.String(), "TOTAL")
}

func TestPrintAllocationWithoutPreTest(t *testing.T) {
	tree := weights.Tree{Units: []weights.Unit{{ID: "u1", Weight: 100}}}

	var buf bytes.Buffer
	printAllocation(&buf, weights.NewDraft(tree))

	assert.NotContains(t, buf.String(), "not graded")
	assert.Contains(t, buf.String(), "Unit u1")
}
