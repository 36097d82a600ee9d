package editor

import (
	"github.com/abhisek/gradewise/internal/weights"
)

// row is one line of the weight table. The pre-test row is shown for context
// and never edited.
type row struct {
	ref     weights.NodeRef
	label   string
	weight  float64
	fixed   bool
	preTest bool
	indent  int
}

// buildRows flattens t into display order, pre-test first.
func buildRows(t weights.Tree) []row {
	refs := t.Refs()
	rows := make([]row, 0, len(refs)+1)
	if label := t.PreTestLabel(); label != "" {
		rows = append(rows, row{label: label, preTest: true})
	}
	for _, ref := range refs {
		w, _ := t.Weight(ref)
		rows = append(rows, row{
			ref:    ref,
			label:  t.Label(ref),
			weight: w,
			fixed:  t.IsFixed(ref),
			indent: ref.Kind.Depth(),
		})
	}
	return rows
}
