package layout

import (
	"testing"

	"charm.land/lipgloss/v2"
	"github.com/stretchr/testify/assert"
)

func TestToneForTotal(t *testing.T) {
	tests := []struct {
		total float64
		want  Tone
	}{
		{100, ToneComplete},
		{99.999, ToneComplete},
		{99.99, ToneIncomplete},
		{0, ToneIncomplete},
		{100.01, ToneExceeded},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ToneForTotal(tt.total), "total %v", tt.total)
	}
}

func TestRenderHeaderMarksStatusTone(t *testing.T) {
	complete := RenderHeader("Grading Weights", Status{Text: "Algebra  100%", Tone: ToneComplete}, 100)
	assert.Contains(t, complete, "Algebra  100% ✓")
	assert.Contains(t, complete, "Grading Weights")

	over := RenderHeader("Grading Weights", Status{Text: "Algebra  110%", Tone: ToneExceeded}, 100)
	assert.Contains(t, over, "Algebra  110% !")

	plain := RenderHeader("Grading Weights", Status{Text: "algebra"}, 100)
	assert.Contains(t, plain, "algebra")
	assert.NotContains(t, plain, "✓")
}

func TestRenderHeaderDropsTitleWhenCramped(t *testing.T) {
	h := RenderHeader("Grading Weights", Status{Text: "A very long subject name  100%", Tone: ToneComplete}, 50)
	assert.NotContains(t, h, "Grading Weights")
	assert.Contains(t, h, "100%")
}

func TestRenderFrameFillsHeight(t *testing.T) {
	header := RenderHeader("T", Status{}, 80)
	footer := RenderFooter([]KeyHint{{Key: "q", Description: "Quit"}}, 80)
	frame := RenderFrame(header, "body", footer, 80, 24)
	assert.Equal(t, 24, lipgloss.Height(frame))
	assert.Contains(t, frame, "Quit")
}

func TestIsTooSmall(t *testing.T) {
	assert.True(t, IsTooSmall(79, 24))
	assert.True(t, IsTooSmall(80, 23))
	assert.False(t, IsTooSmall(80, 24))
}
