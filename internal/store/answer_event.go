package store

import (
	"context"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

var answerCheckColumns = []string{
	"id", "sequence", "timestamp", "request_id", "topic", "attempt",
	"question", "answer", "status", "reaction", "source", "feedback",
}

func (r *eventRepo) AppendAnswerCheck(ctx context.Context, data AnswerCheckEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	query, args := sqlite().Insert(answerChecksTable).
		Columns(answerCheckColumns[1:]...).
		Values(
			seqNum,
			time.Now().UTC(),
			data.RequestID,
			data.Topic,
			data.Attempt,
			data.Question,
			data.Answer,
			data.Status,
			data.Reaction,
			data.Source,
			data.Feedback,
		).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save answer check event: %w", err)
	}
	return nil
}

func (r *eventRepo) QueryAnswerChecks(ctx context.Context, opts QueryOpts) ([]AnswerCheckEvent, error) {
	sel := sqlite().Select(answerCheckColumns...).From(entsql.Table(answerChecksTable))
	applyQueryOpts(sel, opts)

	var events []AnswerCheckEvent
	if err := r.scan(ctx, sel, &events); err != nil {
		return nil, fmt.Errorf("query answer checks: %w", err)
	}
	return events, nil
}
