package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

// eventRepo implements EventRepo with ent's SQL builder over database/sql.
type eventRepo struct {
	db  *sql.DB
	seq *sequenceCounter
	now func() time.Time
}

func builder() *entsql.DialectBuilder { return entsql.Dialect(dialect.SQLite) }

// insert appends one row, stamping it with the next sequence and the
// current time.
func (r *eventRepo) insert(ctx context.Context, table string, cols []string, vals []any) error {
	seq, err := r.seq.Next(ctx)
	if err != nil {
		return err
	}
	query, args := builder().Insert(table).
		Columns(append([]string{"sequence", "timestamp"}, cols...)...).
		Values(append([]any{seq, r.now()}, vals...)...).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert into %s: %w", table, err)
	}
	return nil
}

// applyOpts adds the common QueryOpts filters to a selector over t.
func applyOpts(sel *entsql.Selector, t *entsql.SelectTable, opts QueryOpts) *entsql.Selector {
	var preds []*entsql.Predicate
	if opts.After > 0 {
		preds = append(preds, entsql.GT(t.C("sequence"), opts.After))
	}
	if opts.Before > 0 {
		preds = append(preds, entsql.LT(t.C("sequence"), opts.Before))
	}
	if !opts.From.IsZero() {
		preds = append(preds, entsql.GTE(t.C("timestamp"), opts.From))
	}
	if !opts.To.IsZero() {
		preds = append(preds, entsql.LTE(t.C("timestamp"), opts.To))
	}
	if len(preds) > 0 {
		sel = sel.Where(entsql.And(preds...))
	}
	sel = sel.OrderBy(descSeq(t))
	if opts.Limit > 0 {
		sel = sel.Limit(opts.Limit)
	}
	return sel
}

func eq(t *entsql.SelectTable, col string, v any) *entsql.Predicate {
	return entsql.EQ(t.C(col), v)
}

func descSeq(t *entsql.SelectTable) string {
	return entsql.Desc(t.C("sequence"))
}

func (r *eventRepo) AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error {
	return r.insert(ctx, llmEventsTable,
		[]string{"provider", "model", "purpose", "input_tokens", "output_tokens",
			"latency_ms", "success", "error_message", "request_body", "response_body"},
		[]any{data.Provider, data.Model, data.Purpose, data.InputTokens, data.OutputTokens,
			data.LatencyMs, data.Success, data.ErrorMessage, data.RequestBody, data.ResponseBody},
	)
}

var llmEventSelect = []string{
	"id", "sequence", "timestamp", "provider", "model", "purpose", "input_tokens",
	"output_tokens", "latency_ms", "success", "error_message", "request_body", "response_body",
}

func scanLLMEvent(rows interface{ Scan(...any) error }) (LLMRequestEvent, error) {
	var e LLMRequestEvent
	err := rows.Scan(&e.ID, &e.Sequence, &e.Timestamp, &e.Provider, &e.Model, &e.Purpose,
		&e.InputTokens, &e.OutputTokens, &e.LatencyMs, &e.Success, &e.ErrorMessage,
		&e.RequestBody, &e.ResponseBody)
	return e, err
}

func (r *eventRepo) QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMRequestEvent, error) {
	b := builder()
	t := b.Table(llmEventsTable)
	sel := b.Select(t.Columns(llmEventSelect...)...).From(t)
	if opts.Purpose != "" {
		sel = sel.Where(eq(t, "purpose", opts.Purpose))
	}
	query, args := applyOpts(sel, t, opts).Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query LLM events: %w", err)
	}
	defer rows.Close()

	var events []LLMRequestEvent
	for rows.Next() {
		e, err := scanLLMEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("scan LLM event: %w", err)
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

func (r *eventRepo) GetLLMEvent(ctx context.Context, id int) (*LLMRequestEvent, error) {
	b := builder()
	t := b.Table(llmEventsTable)
	query, args := b.Select(t.Columns(llmEventSelect...)...).
		From(t).
		Where(eq(t, "id", id)).
		Query()

	e, err := scanLLMEvent(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("LLM event %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get LLM event %d: %w", id, err)
	}
	return &e, nil
}

func (r *eventRepo) LLMUsageByPurpose(ctx context.Context) ([]LLMUsage, error) {
	return r.llmUsage(ctx, "purpose")
}

func (r *eventRepo) LLMUsageByModel(ctx context.Context) ([]LLMUsage, error) {
	return r.llmUsage(ctx, "model")
}

func (r *eventRepo) llmUsage(ctx context.Context, key string) ([]LLMUsage, error) {
	b := builder()
	t := b.Table(llmEventsTable)
	query, args := b.Select(
		t.C(key),
		entsql.Count("*"),
		"SUM(CASE WHEN "+t.C("success")+" THEN 0 ELSE 1 END)",
		entsql.Sum(t.C("input_tokens")),
		entsql.Sum(t.C("output_tokens")),
		entsql.Sum(t.C("latency_ms")),
	).
		From(t).
		GroupBy(t.C(key)).
		OrderBy(entsql.Desc(entsql.Count("*"))).
		Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query LLM usage by %s: %w", key, err)
	}
	defer rows.Close()

	var usage []LLMUsage
	for rows.Next() {
		var u LLMUsage
		if err := rows.Scan(&u.Key, &u.Requests, &u.Failures, &u.InputTokens, &u.OutputTokens, &u.LatencyMs); err != nil {
			return nil, fmt.Errorf("scan LLM usage: %w", err)
		}
		usage = append(usage, u)
	}
	return usage, rows.Err()
}
