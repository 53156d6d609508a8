package store

import (
	"context"
	"time"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit     int       // max results (0 = unlimited)
	After     int64     // sequence > After
	Before    int64     // sequence < Before
	From      time.Time // timestamp >= From
	To        time.Time // timestamp <= To
	Purpose   string    // exact purpose match, LLM events only
	RequestID string    // exact correlation id match
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	RequestID    string
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	StatusCode   int
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMEvent is a stored LLM request event.
type LLMEvent struct {
	ID           int       `sql:"id"`
	Sequence     int64     `sql:"sequence"`
	Timestamp    time.Time `sql:"timestamp"`
	RequestID    string    `sql:"request_id"`
	Provider     string    `sql:"provider"`
	Model        string    `sql:"model"`
	Purpose      string    `sql:"purpose"`
	InputTokens  int       `sql:"input_tokens"`
	OutputTokens int       `sql:"output_tokens"`
	LatencyMs    int64     `sql:"latency_ms"`
	Success      bool      `sql:"success"`
	StatusCode   int       `sql:"status_code"`
	ErrorMessage string    `sql:"error_message"`
	RequestBody  string    `sql:"request_body"`
	ResponseBody string    `sql:"response_body"`
}

// AnswerCheckEventData captures the outcome of one answer evaluation.
type AnswerCheckEventData struct {
	RequestID string
	Topic     string
	Attempt   int
	Question  string
	Answer    string
	Status    int
	Reaction  string
	Source    string // "model", "heuristic", "empty" or "error"
	Feedback  string
}

// AnswerCheckEvent is a stored answer evaluation.
type AnswerCheckEvent struct {
	ID        int       `sql:"id"`
	Sequence  int64     `sql:"sequence"`
	Timestamp time.Time `sql:"timestamp"`
	RequestID string    `sql:"request_id"`
	Topic     string    `sql:"topic"`
	Attempt   int       `sql:"attempt"`
	Question  string    `sql:"question"`
	Answer    string    `sql:"answer"`
	Status    int       `sql:"status"`
	Reaction  string    `sql:"reaction"`
	Source    string    `sql:"source"`
	Feedback  string    `sql:"feedback"`
}

// PurposeUsage aggregates LLM usage for one purpose label.
type PurposeUsage struct {
	Purpose      string `sql:"purpose"`
	Calls        int    `sql:"calls"`
	InputTokens  int    `sql:"input_tokens"`
	OutputTokens int    `sql:"output_tokens"`
	AvgLatencyMs int64  `sql:"avg_latency_ms"`
}

// ModelUsage aggregates LLM usage for one model id.
type ModelUsage struct {
	Model        string `sql:"model"`
	Calls        int    `sql:"calls"`
	InputTokens  int    `sql:"input_tokens"`
	OutputTokens int    `sql:"output_tokens"`
}

// EventRepo provides append and query access to audit events.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// AppendAnswerCheck records one answer evaluation.
	AppendAnswerCheck(ctx context.Context, data AnswerCheckEventData) error

	// QueryLLMEvents returns LLM events, newest first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMEvent, error)

	// GetLLMEvent returns one event, or nil if it does not exist.
	GetLLMEvent(ctx context.Context, id int) (*LLMEvent, error)

	// QueryAnswerChecks returns answer evaluations, newest first.
	QueryAnswerChecks(ctx context.Context, opts QueryOpts) ([]AnswerCheckEvent, error)

	// LLMUsageByPurpose aggregates token usage per purpose.
	LLMUsageByPurpose(ctx context.Context) ([]PurposeUsage, error)

	// LLMUsageByModel aggregates token usage per model.
	LLMUsageByModel(ctx context.Context) ([]ModelUsage, error)
}

// DiscardEvents returns an EventRepo that stores nothing. It is used when
// the audit database is disabled.
func DiscardEvents() EventRepo { return discardRepo{} }

type discardRepo struct{}

func (discardRepo) AppendLLMRequest(context.Context, LLMRequestEventData) error   { return nil }
func (discardRepo) AppendAnswerCheck(context.Context, AnswerCheckEventData) error { return nil }
func (discardRepo) QueryLLMEvents(context.Context, QueryOpts) ([]LLMEvent, error) { return nil, nil }
func (discardRepo) GetLLMEvent(context.Context, int) (*LLMEvent, error)           { return nil, nil }
func (discardRepo) QueryAnswerChecks(context.Context, QueryOpts) ([]AnswerCheckEvent, error) {
	return nil, nil
}
func (discardRepo) LLMUsageByPurpose(context.Context) ([]PurposeUsage, error) { return nil, nil }
func (discardRepo) LLMUsageByModel(context.Context) ([]ModelUsage, error)     { return nil, nil }
