package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/abhisek/internsim/internal/app"
	"github.com/abhisek/internsim/internal/game"
	"github.com/abhisek/internsim/internal/llm"
	"github.com/abhisek/internsim/internal/logging"
	"github.com/abhisek/internsim/internal/scenario"
	"github.com/abhisek/internsim/internal/store"
	"github.com/abhisek/internsim/internal/telemetry"
)

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	ctx := cmd.Context()

	logger, closeLog, err := tuiLogger()
	if err != nil {
		return err
	}
	defer closeLog()

	shutdown, err := telemetry.Setup(ctx, telemetry.Options{
		Endpoint:       cfg.OTelEndpoint,
		Enabled:        cfg.OTelEnabled,
		ServiceName:    "internsim",
		ServiceVersion: version,
	})
	if err != nil {
		logger.Warn("telemetry disabled", "error", err)
	}
	defer func() {
		if err := shutdown(context.Background()); err != nil {
			logger.Warn("telemetry shutdown", "error", err)
		}
	}()

	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	repo := st.EventRepo()
	provider := scenarioProvider(ctx, cmd, repo, logger)

	ctrl := game.New(
		game.WithRecorder(game.NewStoreRecorder(repo)),
		game.WithLogger(logger),
	)
	return app.Run(app.Options{
		Provider:   provider,
		Controller: ctrl,
		Logger:     logger,
	})
}

// tuiLogger logs to a file: the TUI owns the terminal.
func tuiLogger() (*slog.Logger, func() error, error) {
	file := cfg.LogFile
	if file == "" {
		dir, err := store.DataDir()
		if err != nil {
			return nil, nil, fmt.Errorf("resolve data dir: %w", err)
		}
		file = filepath.Join(dir, "internsim.log")
	}
	logger, closeLog, err := logging.New(logging.Options{Level: cfg.LogLevel, File: file})
	if err != nil {
		return nil, nil, fmt.Errorf("init logging: %w", err)
	}
	return logger, closeLog, nil
}

// scenarioProvider picks the scenario source: a pack file from --scenario
// or INTERNSIM_SCENARIO_FILE, otherwise LLM generation. The mock backend
// replays the built-in sample scenario. When no LLM is configured the
// provider fails every fetch, so the player sees the connection error
// screen and can retry after fixing the environment.
func scenarioProvider(ctx context.Context, cmd *cobra.Command, repo store.EventRepo, logger *slog.Logger) scenario.Provider {
	path := cfg.ScenarioFile
	if f := cmd.Flags().Lookup("scenario"); f != nil && f.Value.String() != "" {
		path = f.Value.String()
	}
	if path != "" {
		logger.Info("serving scenarios from file", "path", path)
		return scenario.NewFileProvider(path)
	}

	lp, err := llm.NewProviderFromEnv(ctx, repo, logger, llm.WithMockContent(scenario.SampleOutput()))
	if err != nil {
		logger.Error("LLM provider not configured", "error", err)
		return scenario.ProviderFunc(func(context.Context) (*scenario.Scenario, error) {
			return nil, fmt.Errorf("LLM provider not configured: %w", err)
		})
	}
	logger.Info("generating scenarios", "model", lp.ModelID())
	return scenario.NewLLMProvider(lp, cfg.Scenario())
}
