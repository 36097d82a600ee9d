package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/gradewise/internal/gradesync"
)

var distributeCmd = &cobra.Command{
	Use:   "distribute",
	Short: "Spread a subject's weights evenly across units and the post-test",
	RunE: func(cmd *cobra.Command, args []string) error {
		yes, _ := cmd.Flags().GetBool("yes")

		return withAdapter(cmd, func(a *gradesync.Adapter) error {
			if err := a.Load(cmd.Context()); err != nil {
				return err
			}
			confirmed := yes || confirm("Auto-distribute will reset per-unit weights to equal shares. Continue? [y/N] ")
			if err := a.AutoDistribute(cmd.Context(), confirmed); err != nil {
				if errors.Is(err, gradesync.ErrDeclined) {
					return nil
				}
				return err
			}
			printAllocation(os.Stdout, a.Snapshot().Draft)
			return nil
		})
	},
}

func init() {
	distributeCmd.Flags().BoolP("yes", "y", false, "Skip the confirmation prompt")
}

func confirm(prompt string) bool {
	fmt.Print(prompt)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}
