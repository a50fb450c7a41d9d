package llm

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"
)

func fastRetry() RetryConfig {
	return RetryConfig{
		MaxAttempts: 3,
		InitialWait: time.Millisecond,
		MaxWait:     5 * time.Millisecond,
		Multiplier:  2,
	}
}

var okResponse = MockResponse{Content: json.RawMessage(`{"ok":true}`)}

func down() MockResponse {
	return MockResponse{Err: &ErrProviderUnavailable{Err: errors.New("connection reset")}}
}

func TestRetry(t *testing.T) {
	tests := []struct {
		name      string
		responses []MockResponse
		wantCalls int
		wantErr   bool
	}{
		{"first attempt succeeds", []MockResponse{okResponse}, 1, false},
		{"transient then success", []MockResponse{down(), okResponse}, 2, false},
		{"all attempts fail", []MockResponse{down(), down(), down(), okResponse}, 3, true},
		{
			"rate limit honours retry-after",
			[]MockResponse{{Err: &ErrRateLimit{RetryAfter: time.Millisecond}}, okResponse},
			2, false,
		},
		{
			"auth failure not retried",
			[]MockResponse{{Err: &ErrAuth{StatusCode: 401, Err: errors.New("invalid x-api-key")}}, okResponse},
			1, true,
		},
		{
			"max tokens not retried",
			[]MockResponse{{Err: &ErrMaxTokensExceeded{}}, okResponse},
			1, true,
		},
		{
			"invalid response retried once",
			[]MockResponse{
				{Err: &ErrInvalidResponse{Err: errors.New("bad")}},
				{Err: &ErrInvalidResponse{Err: errors.New("bad")}},
				okResponse,
			},
			2, true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := NewMockProvider(tt.responses...)
			_, err := WithRetry(mock, fastRetry()).Generate(context.Background(), Request{})
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if mock.CallCount() != tt.wantCalls {
				t.Fatalf("calls = %d, want %d", mock.CallCount(), tt.wantCalls)
			}
		})
	}
}

func TestRetry_StopsOnCancelledContext(t *testing.T) {
	mock := NewMockProvider(down(), okResponse)
	p := WithRetry(mock, RetryConfig{MaxAttempts: 3, InitialWait: time.Hour, MaxWait: time.Hour, Multiplier: 1})

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	_, err := p.Generate(ctx, Request{})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
	if mock.CallCount() != 1 {
		t.Fatalf("calls = %d, want 1", mock.CallCount())
	}
}

func TestRetry_ZeroAttemptsStillCalls(t *testing.T) {
	mock := NewMockProvider(okResponse)
	if _, err := WithRetry(mock, RetryConfig{}).Generate(context.Background(), Request{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if mock.CallCount() != 1 {
		t.Fatalf("calls = %d, want 1", mock.CallCount())
	}
}

func TestRetry_BackoffCapped(t *testing.T) {
	r := &RetryProvider{config: RetryConfig{InitialWait: time.Second, MaxWait: 4 * time.Second, Multiplier: 2}}
	for attempt := 0; attempt < 6; attempt++ {
		got := r.backoff(attempt, errors.New("x"))
		if got > 4*time.Second*12/10 {
			t.Fatalf("attempt %d: backoff %s exceeds cap plus jitter", attempt, got)
		}
	}
}
