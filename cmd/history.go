package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/gradewise/internal/store"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent calls to the grading service",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		failed, _ := cmd.Flags().GetBool("failed")

		cfg := loadConfig(cmd)
		s, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer s.Close()

		ctx := context.Background()
		events, err := s.EventRepo().QuerySyncEvents(ctx, store.QueryOpts{
			Limit:     limit,
			SubjectID: cfg.API.SubjectID,
		})
		if err != nil {
			return fmt.Errorf("query events: %w", err)
		}

		if len(events) == 0 {
			fmt.Println("No sync events found.")
			return nil
		}

		fmt.Printf("%-5s  %-19s  %-12s  %-16s  %-6s  %-7s  %s\n",
			"Seq", "Timestamp", "Action", "Subject", "HTTP", "Ms", "OK")
		fmt.Println(strings.Repeat("─", 84))

		for _, e := range events {
			if failed && e.Success {
				continue
			}
			ok := "✓"
			if !e.Success {
				ok = "✗ " + e.ErrorMessage
			}
			status := "-"
			if e.StatusCode != 0 {
				status = fmt.Sprintf("%d", e.StatusCode)
			}
			fmt.Printf("%-5d  %-19s  %-12s  %-16s  %-6s  %-7d  %s\n",
				e.Sequence,
				e.Timestamp.Local().Format("2006-01-02 15:04:05"),
				e.Action,
				truncate(e.SubjectID, 16),
				status,
				e.LatencyMs,
				ok,
			)
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().IntP("limit", "n", 20, "Number of events to show")
	historyCmd.Flags().Bool("failed", false, "Only show failed calls")
}
