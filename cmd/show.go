package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/gradewise/internal/gradesync"
	"github.com/abhisek/gradewise/internal/weights"
)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the grading structure and allocation of a subject",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withAdapter(cmd, func(a *gradesync.Adapter) error {
			if err := a.Load(cmd.Context()); err != nil {
				return err
			}
			snap := a.Snapshot()
			fmt.Printf("%s (%s)  passing %s%%\n\n", snap.SubjectName, a.SubjectID(), weights.FormatPercent(snap.Passing))
			printAllocation(os.Stdout, snap.Draft)
			return nil
		})
	},
}

// withAdapter validates the configuration, opens the store and runs fn
// with a CLI adapter.
func withAdapter(cmd *cobra.Command, fn func(a *gradesync.Adapter) error) error {
	cfg := loadConfig(cmd)
	if err := cfg.Validate(); err != nil {
		return err
	}
	log, err := cliLogger(cfg)
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	defer log.Sync()

	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	a := newCLIAdapter(cfg, st.EventRepo(), log)
	defer a.Close()
	return fn(a)
}

// printAllocation writes the weight table with per-unit fill and totals.
func printAllocation(w io.Writer, d weights.Draft) {
	fmt.Fprintf(w, "%-40s  %8s  %-24s\n", "Item", "Weight", "Unit fill")
	fmt.Fprintln(w, strings.Repeat("─", 76))

	t := d.Tree
	if label := t.PreTestLabel(); label != "" {
		fmt.Fprintf(w, "%-40s  %8s  %-24s\n", truncate(label, 40), "-", "not graded")
	}
	for _, ref := range t.Refs() {
		wt, _ := t.Weight(ref)
		name := strings.Repeat("  ", ref.Kind.Depth()) + t.Label(ref)
		if t.IsFixed(ref) {
			name += " (fixed)"
		}

		fill := ""
		if ref.Kind == weights.KindUnit {
			if ua, ok := d.Allocation.Unit(ref.UnitID); ok {
				fill = fmt.Sprintf("%s/%s %s", weights.FormatPercent(ua.Consumed), weights.FormatPercent(ua.Weight), ua.Status)
			}
		}
		fmt.Fprintf(w, "%-40s  %7s%%  %-24s\n", truncate(name, 40), weights.FormatPercent(wt), fill)
	}

	fmt.Fprintln(w, strings.Repeat("─", 76))
	fmt.Fprintf(w, "%-40s  %7s%%  remaining %s%%\n", "TOTAL",
		weights.FormatPercent(d.Allocation.TotalUsed), weights.FormatPercent(d.Allocation.TotalRemaining))
	for _, e := range d.Allocation.Errors {
		fmt.Fprintln(w, "! "+e)
	}
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max])
}
