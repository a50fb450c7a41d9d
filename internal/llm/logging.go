package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/abhisek/internsim/internal/store"
)

// LoggingProvider appends every request and its outcome to the event log.
type LoggingProvider struct {
	inner    Provider
	provider string
	repo     store.EventRepo
	logger   *slog.Logger
}

// WithLogging wraps p so each Generate call is recorded in repo.
// providerName is stored alongside the model, e.g. "openrouter".
func WithLogging(p Provider, providerName string, repo store.EventRepo, logger *slog.Logger) Provider {
	if logger == nil {
		logger = slog.Default()
	}
	return &LoggingProvider{inner: p, provider: providerName, repo: repo, logger: logger}
}

func (l *LoggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	resp, err := l.inner.Generate(ctx, req)
	latency := time.Since(start)

	ev := store.LLMRequestEventData{
		Provider:    l.provider,
		Model:       l.inner.ModelID(),
		Purpose:     PurposeFrom(ctx),
		LatencyMs:   latency.Milliseconds(),
		Success:     err == nil,
		RequestBody: renderRequest(req),
	}
	if resp != nil {
		ev.Model = resp.Model
		ev.InputTokens = resp.Usage.InputTokens
		ev.OutputTokens = resp.Usage.OutputTokens
		ev.ResponseBody = string(resp.Content)
	}
	if err != nil {
		ev.ErrorMessage = err.Error()
	}

	l.logger.Debug("llm request",
		"provider", ev.Provider,
		"model", ev.Model,
		"purpose", ev.Purpose,
		"latency", latency,
		"success", ev.Success)

	// The caller's context may already be cancelled; the record still matters.
	if logErr := l.repo.AppendLLMRequest(context.WithoutCancel(ctx), ev); logErr != nil {
		l.logger.Warn("failed to record llm request", "error", logErr)
	}

	return resp, err
}

func (l *LoggingProvider) ModelID() string {
	return l.inner.ModelID()
}

// renderRequest produces the human-readable request body shown by
// `internsim llm view`.
func renderRequest(req Request) string {
	var b strings.Builder

	if req.System != "" {
		fmt.Fprintf(&b, "[system]\n%s\n\n", req.System)
	}
	for _, m := range req.Messages {
		fmt.Fprintf(&b, "[%s]\n%s\n\n", m.Role, m.Content)
	}
	if req.Schema != nil {
		if def, err := json.Marshal(req.Schema.Definition); err == nil {
			fmt.Fprintf(&b, "[schema: %s]\n%s\n", req.Schema.Name, def)
		}
	}

	return strings.TrimRight(b.String(), "\n")
}
