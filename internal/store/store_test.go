package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestPragmasApplied(t *testing.T) {
	db := openTestStore(t).DB()

	tests := []struct {
		pragma string
		want   string
	}{
		{"journal_mode", "wal"},
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL
		{"busy_timeout", "5000"},
	}
	for _, tt := range tests {
		var got string
		require.NoError(t, db.QueryRow("PRAGMA "+tt.pragma).Scan(&got), tt.pragma)
		assert.Equal(t, tt.want, got, "PRAGMA %s", tt.pragma)
	}
}

func TestOpen_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.db")
	ctx := context.Background()

	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.EventRepo().AppendLLMRequest(ctx, LLMRequestEventData{Provider: "mock", Model: "mock", Purpose: "scenario-gen", Success: true}))
	require.NoError(t, s.Close())

	s, err = Open(path)
	require.NoError(t, err)
	defer s.Close()

	repo := s.EventRepo()
	require.NoError(t, repo.AppendLLMRequest(ctx, LLMRequestEventData{Provider: "mock", Model: "mock", Purpose: "scenario-gen"}))

	events, err := repo.QueryLLMEvents(ctx, QueryOpts{})
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Greater(t, events[0].Sequence, events[1].Sequence, "sequence survives reopen")
}

func TestLLMEvents_AppendQueryGet(t *testing.T) {
	repo := openTestStore(t).EventRepo()
	ctx := context.Background()

	for i, purpose := range []string{"scenario-gen", "scenario-gen", "other"} {
		err := repo.AppendLLMRequest(ctx, LLMRequestEventData{
			Provider:     "anthropic",
			Model:        "claude-sonnet-4-5-20250929",
			Purpose:      purpose,
			InputTokens:  100 * (i + 1),
			OutputTokens: 10 * (i + 1),
			LatencyMs:    int64(1000 + i),
			Success:      i != 1,
			ErrorMessage: map[bool]string{true: "", false: "rate limited"}[i != 1],
			RequestBody:  "[user]\nmake a scenario",
			ResponseBody: `{"title":"x"}`,
		})
		require.NoError(t, err)
	}

	all, err := repo.QueryLLMEvents(ctx, QueryOpts{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "other", all[0].Purpose, "newest first")
	assert.False(t, all[0].Timestamp.IsZero())

	limited, err := repo.QueryLLMEvents(ctx, QueryOpts{Limit: 1, Purpose: "scenario-gen"})
	require.NoError(t, err)
	require.Len(t, limited, 1)
	assert.Equal(t, 200, limited[0].InputTokens)
	assert.False(t, limited[0].Success)
	assert.Equal(t, "rate limited", limited[0].ErrorMessage)

	after, err := repo.QueryLLMEvents(ctx, QueryOpts{After: all[1].Sequence})
	require.NoError(t, err)
	require.Len(t, after, 1)
	assert.Equal(t, all[0].ID, after[0].ID)

	got, err := repo.GetLLMEvent(ctx, all[2].ID)
	require.NoError(t, err)
	assert.Equal(t, "[user]\nmake a scenario", got.RequestBody)
	assert.Equal(t, `{"title":"x"}`, got.ResponseBody)

	_, err = repo.GetLLMEvent(ctx, 9999)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestLLMEvents_TimeRange(t *testing.T) {
	s := openTestStore(t)
	clock := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	repo := &eventRepo{db: s.db, seq: s.seq, now: func() time.Time { return clock }}
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		require.NoError(t, repo.AppendLLMRequest(ctx, LLMRequestEventData{Provider: "mock", Model: "mock", Purpose: "p"}))
		clock = clock.Add(time.Hour)
	}

	events, err := repo.QueryLLMEvents(ctx, QueryOpts{
		From: time.Date(2026, 5, 1, 12, 30, 0, 0, time.UTC),
		To:   time.Date(2026, 5, 1, 13, 30, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, 13, events[0].Timestamp.UTC().Hour())
}

func TestLLMUsage(t *testing.T) {
	repo := openTestStore(t).EventRepo()
	ctx := context.Background()

	calls := []LLMRequestEventData{
		{Provider: "openai", Model: "gpt-4.1-mini", Purpose: "scenario-gen", InputTokens: 100, OutputTokens: 50, LatencyMs: 10, Success: true},
		{Provider: "openai", Model: "gpt-4.1-mini", Purpose: "scenario-gen", InputTokens: 200, OutputTokens: 70, LatencyMs: 20, Success: false},
		{Provider: "gemini", Model: "gemini-2.5-flash", Purpose: "scenario-gen", InputTokens: 10, OutputTokens: 5, LatencyMs: 30, Success: true},
	}
	for _, c := range calls {
		require.NoError(t, repo.AppendLLMRequest(ctx, c))
	}

	byPurpose, err := repo.LLMUsageByPurpose(ctx)
	require.NoError(t, err)
	require.Len(t, byPurpose, 1)
	assert.Equal(t, LLMUsage{Key: "scenario-gen", Requests: 3, Failures: 1, InputTokens: 310, OutputTokens: 125, LatencyMs: 60}, byPurpose[0])

	byModel, err := repo.LLMUsageByModel(ctx)
	require.NoError(t, err)
	require.Len(t, byModel, 2)
	assert.Equal(t, "gpt-4.1-mini", byModel[0].Key, "ordered by request count")
	assert.Equal(t, 2, byModel[0].Requests)
}

func TestQuerySessions(t *testing.T) {
	repo := openTestStore(t).EventRepo()
	ctx := context.Background()

	// Completed session.
	require.NoError(t, repo.AppendSessionEvent(ctx, SessionEventData{SessionID: "s1", Action: SessionStart, Title: "Churn Audit", BossName: "Priya", TotalStages: 2}))
	require.NoError(t, repo.AppendAnswerEvent(ctx, AnswerEventData{SessionID: "s1", StageIndex: 0, StageID: 1, StageType: "Observation and Identification", OptionID: "b", Score: 0, Mistakes: 1}))
	require.NoError(t, repo.AppendAnswerEvent(ctx, AnswerEventData{SessionID: "s1", StageIndex: 0, StageID: 1, OptionID: "a", Correct: true, Score: 100, Mistakes: 1}))
	require.NoError(t, repo.AppendAnswerEvent(ctx, AnswerEventData{SessionID: "s1", StageIndex: 1, StageID: 2, OptionID: "c", Correct: true, Score: 200, Mistakes: 1}))
	require.NoError(t, repo.AppendSessionEvent(ctx, SessionEventData{SessionID: "s1", Action: SessionEnd, Score: 200, Mistakes: 1, Completed: true, DurationMs: 90_000}))

	// Failed fetch.
	require.NoError(t, repo.AppendSessionEvent(ctx, SessionEventData{SessionID: "s2", Action: SessionError, ErrorMessage: "401"}))

	// Abandoned mid-way.
	require.NoError(t, repo.AppendSessionEvent(ctx, SessionEventData{SessionID: "s3", Action: SessionStart, Title: "Inventory", TotalStages: 3}))
	require.NoError(t, repo.AppendAnswerEvent(ctx, AnswerEventData{SessionID: "s3", StageIndex: 0, OptionID: "a", Correct: true, Score: 100}))

	sessions, err := repo.QuerySessions(ctx, QueryOpts{})
	require.NoError(t, err)
	require.Len(t, sessions, 3)

	abandoned := sessions[0]
	assert.Equal(t, "s3", abandoned.SessionID)
	assert.False(t, abandoned.Completed)
	assert.Equal(t, 1, abandoned.Answers)
	assert.Equal(t, 100, abandoned.Score)

	failed := sessions[1]
	assert.Equal(t, "s2", failed.SessionID)
	assert.True(t, failed.Failed)
	assert.Equal(t, "401", failed.ErrorMessage)

	done := sessions[2]
	assert.Equal(t, "s1", done.SessionID)
	assert.Equal(t, "Churn Audit", done.Title)
	assert.True(t, done.Completed)
	assert.Equal(t, 3, done.Answers)
	assert.Equal(t, 200, done.Score)
	assert.Equal(t, 1, done.Mistakes)
	assert.Equal(t, 90*time.Second, done.Duration)

	limited, err := repo.QuerySessions(ctx, QueryOpts{Limit: 1})
	require.NoError(t, err)
	require.Len(t, limited, 1)
	assert.Equal(t, "s3", limited[0].SessionID)
}

func TestAppendSessionEvent_RejectsUnknownAction(t *testing.T) {
	repo := openTestStore(t).EventRepo()
	err := repo.AppendSessionEvent(context.Background(), SessionEventData{SessionID: "s", Action: "pause"})
	assert.Error(t, err)
}

func TestDefaultDBPath(t *testing.T) {
	t.Run("env override", func(t *testing.T) {
		p := filepath.Join(t.TempDir(), "nested", "x.db")
		t.Setenv("INTERNSIM_DB", p)
		got, err := DefaultDBPath()
		require.NoError(t, err)
		assert.Equal(t, p, got)
		assert.DirExists(t, filepath.Dir(p))
	})

	t.Run("xdg data home", func(t *testing.T) {
		dir := t.TempDir()
		t.Setenv("INTERNSIM_DB", "")
		t.Setenv("XDG_DATA_HOME", dir)
		got, err := DefaultDBPath()
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, "internsim", "internsim.db"), got)
	})
}
