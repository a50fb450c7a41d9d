package game

import (
	"context"

	"github.com/abhisek/internsim/internal/scenario"
	"github.com/abhisek/internsim/internal/store"
)

// StoreRecorder appends session events to the event log.
type StoreRecorder struct {
	repo store.EventRepo
}

var _ Recorder = (*StoreRecorder)(nil)

func NewStoreRecorder(repo store.EventRepo) *StoreRecorder {
	return &StoreRecorder{repo: repo}
}

func (r *StoreRecorder) RecordStart(ctx context.Context, sessionID string, s *scenario.Scenario) error {
	return r.repo.AppendSessionEvent(ctx, store.SessionEventData{
		SessionID:   sessionID,
		Action:      store.SessionStart,
		Title:       s.Title,
		BossName:    s.BossName,
		TotalStages: len(s.Stages),
	})
}

func (r *StoreRecorder) RecordAnswer(ctx context.Context, a Answer) error {
	return r.repo.AppendAnswerEvent(ctx, store.AnswerEventData{
		SessionID:  a.SessionID,
		StageIndex: a.StageIndex,
		StageID:    a.StageID,
		StageType:  a.StageType,
		OptionID:   a.OptionID,
		Correct:    a.Correct,
		Score:      a.Score,
		Mistakes:   a.Mistakes,
	})
}

func (r *StoreRecorder) RecordEnd(ctx context.Context, sum Summary) error {
	return r.repo.AppendSessionEvent(ctx, store.SessionEventData{
		SessionID:   sum.SessionID,
		Action:      store.SessionEnd,
		Title:       sum.Title,
		BossName:    sum.BossName,
		TotalStages: sum.TotalStages,
		Score:       sum.Score,
		Mistakes:    sum.Mistakes,
		Completed:   sum.Completed,
		DurationMs:  sum.Duration.Milliseconds(),
	})
}

func (r *StoreRecorder) RecordFailure(ctx context.Context, sessionID string, cause error) error {
	return r.repo.AppendSessionEvent(ctx, store.SessionEventData{
		SessionID:    sessionID,
		Action:       store.SessionError,
		ErrorMessage: cause.Error(),
	})
}
