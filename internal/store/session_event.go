package store

import (
	"context"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

func (r *eventRepo) AppendSessionEvent(ctx context.Context, data SessionEventData) error {
	switch data.Action {
	case SessionStart, SessionEnd, SessionError:
	default:
		return fmt.Errorf("unknown session action %q", data.Action)
	}
	return r.insert(ctx, sessionEventsTable,
		[]string{"session_id", "action", "title", "boss_name", "total_stages",
			"score", "mistakes", "completed", "duration_ms", "error_message"},
		[]any{data.SessionID, data.Action, data.Title, data.BossName, data.TotalStages,
			data.Score, data.Mistakes, data.Completed, data.DurationMs, data.ErrorMessage},
	)
}

func (r *eventRepo) AppendAnswerEvent(ctx context.Context, data AnswerEventData) error {
	return r.insert(ctx, answerEventsTable,
		[]string{"session_id", "stage_index", "stage_id", "stage_type", "option_id",
			"correct", "score", "mistakes"},
		[]any{data.SessionID, data.StageIndex, data.StageID, data.StageType, data.OptionID,
			data.Correct, data.Score, data.Mistakes},
	)
}

// QuerySessions pages over session start and fetch-failure events and
// folds each session's later events and answers into one outcome. Sessions
// abandoned without an end event report the progress of their last
// recorded answer.
func (r *eventRepo) QuerySessions(ctx context.Context, opts QueryOpts) ([]SessionOutcome, error) {
	starts, err := r.sessionEvents(ctx, opts, []string{SessionStart, SessionError}, "")
	if err != nil {
		return nil, err
	}

	outcomes := make([]SessionOutcome, 0, len(starts))
	for _, st := range starts {
		o := SessionOutcome{
			SessionID:   st.SessionID,
			StartedAt:   st.timestamp,
			Title:       st.Title,
			BossName:    st.BossName,
			TotalStages: st.TotalStages,
		}

		if err := r.foldAnswers(ctx, &o); err != nil {
			return nil, err
		}

		later, err := r.sessionEvents(ctx, QueryOpts{}, nil, st.SessionID)
		if err != nil {
			return nil, err
		}
		for _, ev := range later {
			switch ev.Action {
			case SessionEnd:
				o.Score = ev.Score
				o.Mistakes = ev.Mistakes
				o.Completed = ev.Completed
				o.Duration = time.Duration(ev.DurationMs) * time.Millisecond
			case SessionError:
				o.Failed = true
				o.ErrorMessage = ev.ErrorMessage
			}
		}
		outcomes = append(outcomes, o)
	}
	return outcomes, nil
}

type sessionRow struct {
	SessionEventData
	timestamp time.Time
}

// sessionEvents lists session events newest first, optionally restricted
// to some actions or one session ID.
func (r *eventRepo) sessionEvents(ctx context.Context, opts QueryOpts, actions []string, sessionID string) ([]sessionRow, error) {
	b := builder()
	t := b.Table(sessionEventsTable)
	sel := b.Select(t.Columns("timestamp", "session_id", "action", "title", "boss_name",
		"total_stages", "score", "mistakes", "completed", "duration_ms", "error_message")...).
		From(t)
	if len(actions) > 0 {
		vals := make([]any, len(actions))
		for i, a := range actions {
			vals[i] = a
		}
		sel = sel.Where(entsql.In(t.C("action"), vals...))
	}
	if sessionID != "" {
		sel = sel.Where(eq(t, "session_id", sessionID))
	}
	query, args := applyOpts(sel, t, opts).Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query session events: %w", err)
	}
	defer rows.Close()

	var out []sessionRow
	for rows.Next() {
		var s sessionRow
		if err := rows.Scan(&s.timestamp, &s.SessionID, &s.Action, &s.Title, &s.BossName,
			&s.TotalStages, &s.Score, &s.Mistakes, &s.Completed, &s.DurationMs, &s.ErrorMessage); err != nil {
			return nil, fmt.Errorf("scan session event: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// foldAnswers sets the answer count and the score and mistakes after the
// latest answer of o's session.
func (r *eventRepo) foldAnswers(ctx context.Context, o *SessionOutcome) error {
	b := builder()
	t := b.Table(answerEventsTable)
	query, args := b.Select(t.Columns("score", "mistakes")...).
		From(t).
		Where(eq(t, "session_id", o.SessionID)).
		OrderBy(descSeq(t)).
		Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("query answers: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var score, mistakes int
		if err := rows.Scan(&score, &mistakes); err != nil {
			return fmt.Errorf("scan answer: %w", err)
		}
		if o.Answers == 0 {
			o.Score, o.Mistakes = score, mistakes
		}
		o.Answers++
	}
	return rows.Err()
}
