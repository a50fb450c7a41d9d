package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/internsim/internal/game"
	"github.com/abhisek/internsim/internal/store"
)

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "List recorded assignments and their outcomes",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		outcomes, err := s.EventRepo().QuerySessions(context.Background(), store.QueryOpts{Limit: limit})
		if err != nil {
			return fmt.Errorf("query sessions: %w", err)
		}
		if len(outcomes) == 0 {
			fmt.Println("No sessions recorded yet.")
			return nil
		}

		fmt.Printf("%-19s  %-32s  %-10s  %6s  %8s  %7s  %s\n",
			"Started", "Title", "Status", "Score", "Mistakes", "Stages", "Time")
		fmt.Println(strings.Repeat("─", 100))

		for _, o := range outcomes {
			fmt.Printf("%-19s  %-32s  %-10s  %6d  %8d  %7s  %s\n",
				o.StartedAt.Local().Format("2006-01-02 15:04:05"),
				truncate(o.Title, 32),
				sessionStatus(o),
				o.Score,
				o.Mistakes,
				fmt.Sprintf("%d/%d", o.Score/game.PointsPerStage, o.TotalStages),
				o.Duration.Round(time.Second),
			)
			if o.Failed && o.ErrorMessage != "" {
				fmt.Printf("    error: %s\n", truncate(o.ErrorMessage, 90))
			}
		}
		return nil
	},
}

func sessionStatus(o store.SessionOutcome) string {
	switch {
	case o.Failed:
		return "failed"
	case o.Completed && o.Mistakes == 0:
		return "flawless"
	case o.Completed:
		return "completed"
	default:
		return "abandoned"
	}
}

func init() {
	sessionsCmd.Flags().IntP("limit", "n", 20, "Number of sessions to show")
}
