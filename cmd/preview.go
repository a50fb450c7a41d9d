package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"
	"github.com/spf13/cobra"

	"github.com/abhisek/internsim/internal/game"
	"github.com/abhisek/internsim/internal/logging"
	"github.com/abhisek/internsim/internal/scenario"
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Play one assignment in plain text (no database)",
	Long: `Play through a single scenario on stdin/stdout.

This is a stateless developer tool: no database, no event log. Useful for
judging generated scenarios or playing over a dumb terminal.`,
	RunE: runPreview,
}

func init() {
	previewCmd.Flags().String("scenario", "", "Play this scenario pack instead of generating one")
}

func runPreview(cmd *cobra.Command, args []string) error {
	logger, closeLog, err := logging.New(logging.Options{
		Level:    cfg.LogLevel,
		File:     cfg.LogFile,
		Fallback: cmd.ErrOrStderr(),
	})
	if err != nil {
		return fmt.Errorf("init logging: %w", err)
	}
	defer closeLog()

	ctx := cmd.Context()
	provider := scenarioProvider(ctx, cmd, nil, logger)
	return playText(ctx, cmd.InOrStdin(), cmd.OutOrStdout(), provider, logger)
}

// playText runs one session against provider, reading answers from in.
// It returns the fetch error when no scenario could be loaded, and nil
// when the input ends early.
func playText(ctx context.Context, in io.Reader, out io.Writer, provider scenario.Provider, logger *slog.Logger) error {
	ctrl := game.New(game.WithLogger(logger))

	fmt.Fprintln(out, "Initializing Virtual Workspace...")
	if err := ctrl.Start(ctx, provider); err != nil {
		fmt.Fprintf(out, "\nSystem Overload: %s\n", ctrl.State().ErrorMessage)
		return err
	}

	s := ctrl.State().Scenario
	fmt.Fprintf(out, "\n%s\n%s\n\n", s.Title, s.Role)
	fmt.Fprintf(out, "%s · Your Manager\n  %q\n\n", s.BossName, s.Brief)
	fmt.Fprintln(out, plainDataset(s.Dataset))

	scanner := bufio.NewScanner(in)
	for ctrl.Phase() == game.PhaseReady {
		st := ctrl.State()
		stage, _ := ctrl.CurrentStage()

		fmt.Fprintf(out, "\n── Stage %d of %d · %s ──\n", st.CurrentStageIndex+1, len(s.Stages), stage.Type)
		fmt.Fprintln(out, stage.Question)
		for i, o := range stage.Options {
			fmt.Fprintf(out, "  %d) %s\n", i+1, o.Text)
		}
		fmt.Fprintf(out, "Mistakes: %d\n", st.Mistakes)

		fmt.Fprintf(out, "\nSelect (1-%d): ", len(stage.Options))
		if !scanner.Scan() {
			fmt.Fprintln(out, "\n(input closed)")
			return scanner.Err()
		}
		n, err := strconv.Atoi(strings.TrimSpace(scanner.Text()))
		if err != nil || n < 1 || n > len(stage.Options) {
			fmt.Fprintf(out, "Please enter a number between 1 and %d.\n", len(stage.Options))
			continue
		}
		if err := ctrl.SelectIndex(n - 1); err != nil {
			return err
		}

		printFeedback(out, stage, *ctrl.State().SelectedOption)
		if _, err := ctrl.AcknowledgeFeedback(); err != nil {
			return err
		}
	}

	printSummary(out, ctrl.Summary())
	return nil
}

func printFeedback(out io.Writer, stage scenario.Stage, opt scenario.Option) {
	if opt.IsCorrect {
		fmt.Fprintln(out, "\n✓ Correct!")
	} else {
		fmt.Fprintln(out, "\n✗ Not quite")
	}
	if opt.Feedback != "" {
		fmt.Fprintln(out, opt.Feedback)
	}
	if opt.BusinessImpact != "" {
		fmt.Fprintf(out, "Business impact: %s\n", opt.BusinessImpact)
	}
	if opt.IsCorrect && stage.CorrectExplanation != "" {
		fmt.Fprintf(out, "Why it matters: %s\n", stage.CorrectExplanation)
	}
}

func printSummary(out io.Writer, sum game.Summary) {
	mistakes := strconv.Itoa(sum.Mistakes)
	if sum.Flawless() {
		mistakes = "Flawless"
	}
	fmt.Fprintln(out, "\n── Internship Completed! ──")
	fmt.Fprintf(out, "Total Score: %d\n", sum.Score)
	fmt.Fprintf(out, "Mistakes: %s\n", mistakes)
	fmt.Fprintf(out, "\nYour manager, %s, is impressed with your attention to detail. "+
		"These skills are the foundation of a great Data Analyst.\n", sum.BossName)
}

// plainDataset renders records as an unstyled table.
func plainDataset(records []scenario.Record) string {
	cols := scenario.Columns(records)
	rows := make([][]string, len(records))
	for r, rec := range records {
		row := make([]string, len(cols))
		for c, name := range cols {
			v, ok := rec.Get(name)
			switch {
			case !ok:
			case v.IsAbsent():
				row[c] = "null"
			default:
				row[c] = v.String()
			}
		}
		rows[r] = row
	}
	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers(cols...).
		Rows(rows...).
		Render()
}
