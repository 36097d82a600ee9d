package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/abhisek/gradewise/internal/gradesync"
)

var passingCmd = &cobra.Command{
	Use:   "passing <percent>",
	Short: "Set a subject's passing threshold",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		value, err := strconv.ParseFloat(args[0], 64)
		if err != nil {
			return fmt.Errorf("invalid percentage %q: %w", args[0], err)
		}
		return withAdapter(cmd, func(a *gradesync.Adapter) error {
			return a.UpdatePassingThreshold(cmd.Context(), value)
		})
	},
}
