package llm

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func recordSpans(t *testing.T) *tracetest.InMemoryExporter {
	t.Helper()
	exp := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exp))
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() {
		otel.SetTracerProvider(prev)
		_ = tp.Shutdown(context.Background())
	})
	return exp
}

func spanAttr(span tracetest.SpanStub, key string) (attribute.Value, bool) {
	for _, kv := range span.Attributes {
		if string(kv.Key) == key {
			return kv.Value, true
		}
	}
	return attribute.Value{}, false
}

func TestTracingProvider_Success(t *testing.T) {
	exp := recordSpans(t)
	mock := NewMockProvider(MockResponse{
		Content: json.RawMessage(`{"name":"dupes","rows":3}`),
		Usage:   Usage{InputTokens: 11, OutputTokens: 7},
	})
	p := WithTracing(mock, "mock")

	ctx := WithPurpose(context.Background(), "scenario-gen")
	if _, err := p.Generate(ctx, Request{Schema: testSchema(), MaxTokens: 99}); err != nil {
		t.Fatalf("Generate: %v", err)
	}

	spans := exp.GetSpans()
	if len(spans) != 1 {
		t.Fatalf("spans = %d, want 1", len(spans))
	}
	span := spans[0]
	if span.Name != "llm.generate" {
		t.Errorf("span name = %q", span.Name)
	}
	if v, ok := spanAttr(span, "llm.purpose"); !ok || v.AsString() != "scenario-gen" {
		t.Errorf("llm.purpose = %v", v)
	}
	if v, ok := spanAttr(span, "llm.output_tokens"); !ok || v.AsInt64() != 7 {
		t.Errorf("llm.output_tokens = %v", v)
	}
	if v, ok := spanAttr(span, "llm.schema"); !ok || v.AsString() != "test-finding" {
		t.Errorf("llm.schema = %v", v)
	}
}

func TestTracingProvider_RecordsError(t *testing.T) {
	exp := recordSpans(t)
	p := WithTracing(NewMockProvider(MockResponse{Err: errors.New("boom")}), "mock")

	if _, err := p.Generate(context.Background(), Request{}); err == nil {
		t.Fatal("expected error")
	}

	spans := exp.GetSpans()
	if len(spans) != 1 {
		t.Fatalf("spans = %d, want 1", len(spans))
	}
	if spans[0].Status.Code != codes.Error {
		t.Errorf("status = %v, want error", spans[0].Status.Code)
	}
	if len(spans[0].Events) == 0 {
		t.Error("expected an exception event")
	}
}
