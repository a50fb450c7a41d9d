package llm

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/abhisek/internsim/internal/llm"

// TracingProvider opens a span around every Generate call. It uses the
// global tracer provider, which is a no-op unless telemetry was set up.
type TracingProvider struct {
	inner    Provider
	provider string
	tracer   trace.Tracer
}

// WithTracing wraps p with OpenTelemetry spans named "llm.generate".
func WithTracing(p Provider, providerName string) Provider {
	return &TracingProvider{
		inner:    p,
		provider: providerName,
		tracer:   otel.Tracer(tracerName),
	}
}

func (t *TracingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	attrs := []attribute.KeyValue{
		attribute.String("llm.provider", t.provider),
		attribute.String("llm.model", t.inner.ModelID()),
		attribute.String("llm.purpose", PurposeFrom(ctx)),
		attribute.Int("llm.max_tokens", req.MaxTokens),
	}
	if req.Schema != nil {
		attrs = append(attrs, attribute.String("llm.schema", req.Schema.Name))
	}

	ctx, span := t.tracer.Start(ctx, "llm.generate", trace.WithAttributes(attrs...))
	defer span.End()

	resp, err := t.inner.Generate(ctx, req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(
		attribute.Int("llm.input_tokens", resp.Usage.InputTokens),
		attribute.Int("llm.output_tokens", resp.Usage.OutputTokens),
		attribute.String("llm.stop_reason", resp.StopReason),
	)
	return resp, nil
}

func (t *TracingProvider) ModelID() string {
	return t.inner.ModelID()
}
