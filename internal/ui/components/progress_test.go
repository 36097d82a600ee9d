package components

import (
	"testing"

	"charm.land/lipgloss/v2"
	"github.com/stretchr/testify/assert"
)

func TestAllocationBarRatio(t *testing.T) {
	assert.Equal(t, 0.9, NewAllocationBar("", 90, 100, 40).Ratio())
	assert.Equal(t, 0.0, NewAllocationBar("", 10, 0, 40).Ratio())
}

func TestAllocationBarView(t *testing.T) {
	tests := []struct {
		name    string
		used    float64
		summary string
	}{
		{"partial", 33.5, "33.5/100%"},
		{"full", 100, "100/100%"},
		{"over budget", 120.25, "120.25/100%"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			view := NewAllocationBar("Total", tt.used, 100, 60).View()
			assert.Contains(t, view, "Total")
			assert.Contains(t, view, tt.summary)
			assert.Equal(t, 60, lipgloss.Width(view))
		})
	}
}
