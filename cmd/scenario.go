package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/internsim/internal/llm"
	"github.com/abhisek/internsim/internal/logging"
	"github.com/abhisek/internsim/internal/scenario"
)

var scenarioCmd = &cobra.Command{
	Use:   "scenario",
	Short: "Generate and check scenario packs",
}

var scenarioGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a scenario with the configured LLM and save it as a pack",
	RunE: func(cmd *cobra.Command, args []string) error {
		out, _ := cmd.Flags().GetString("out")

		sc := cfg.Scenario()
		if cmd.Flags().Changed("industry") {
			sc.Industry, _ = cmd.Flags().GetString("industry")
		}
		if cmd.Flags().Changed("stages") {
			sc.StageCount, _ = cmd.Flags().GetInt("stages")
		}
		if cmd.Flags().Changed("rows") {
			sc.DatasetRows, _ = cmd.Flags().GetInt("rows")
		}
		if sc.StageCount < 1 {
			return fmt.Errorf("--stages must be at least 1")
		}

		logger, closeLog, err := logging.New(logging.Options{
			Level:    cfg.LogLevel,
			File:     cfg.LogFile,
			Fallback: cmd.ErrOrStderr(),
		})
		if err != nil {
			return fmt.Errorf("init logging: %w", err)
		}
		defer closeLog()

		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		ctx := cmd.Context()
		provider, err := llm.NewProviderFromEnv(ctx, st.EventRepo(), logger, llm.WithMockContent(scenario.SampleOutput()))
		if err != nil {
			return fmt.Errorf("LLM provider: %w", err)
		}

		fmt.Fprintf(cmd.ErrOrStderr(), "Generating scenario with %s...\n", provider.ModelID())
		s, err := scenario.NewLLMProvider(provider, sc).Fetch(ctx)
		if err != nil {
			return fmt.Errorf("generate scenario: %w", err)
		}
		if err := scenario.WriteFile(out, s); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %q (%d stages, %d records) to %s\n",
			s.Title, len(s.Stages), len(s.Dataset), out)
		return nil
	},
}

var scenarioCheckCmd = &cobra.Command{
	Use:   "check <file>",
	Short: "Validate a scenario pack",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := scenario.LoadFile(args[0])
		if err != nil {
			return err
		}
		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "OK  %s\n", s.Title)
		fmt.Fprintf(w, "    manager: %s\n", s.BossName)
		fmt.Fprintf(w, "    dataset: %d records, columns %v\n", len(s.Dataset), scenario.Columns(s.Dataset))
		for i, stage := range s.Stages {
			fmt.Fprintf(w, "    stage %d: %s (%d options)\n", i+1, stage.Type, len(stage.Options))
		}
		return nil
	},
}

func init() {
	scenarioGenerateCmd.Flags().StringP("out", "o", "", "Output pack file (required)")
	scenarioGenerateCmd.Flags().String("industry", "", "Business domain, e.g. retail (overrides INTERNSIM_INDUSTRY)")
	scenarioGenerateCmd.Flags().Int("stages", 0, "Number of stages (overrides INTERNSIM_STAGES)")
	scenarioGenerateCmd.Flags().Int("rows", 0, "Number of dataset records (overrides INTERNSIM_DATASET_ROWS)")
	_ = scenarioGenerateCmd.MarkFlagRequired("out")

	scenarioCmd.AddCommand(scenarioGenerateCmd)
	scenarioCmd.AddCommand(scenarioCheckCmd)
}
