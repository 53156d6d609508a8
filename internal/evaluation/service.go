package evaluation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/listlab/internal/llm"
	"github.com/abhisek/listlab/internal/metrics"
	"github.com/abhisek/listlab/internal/store"
)

// Purpose labels model calls made by the evaluator in the audit log.
const Purpose = "answer-check"

// Fixed feedback for requests that never reach the parser.
const (
	MsgMissingQuestion    = "Missing question in request"
	MsgMissingCredentials = "Server misconfiguration: missing API key"
	MsgUpstreamStatus     = "Generative text API request failed"
	MsgUpstreamError      = "Error contacting generative text API"
)

var (
	// ErrMissingQuestion is returned when the input has no question.
	ErrMissingQuestion = errors.New("missing question")

	// ErrMissingCredentials is returned when no model provider is configured.
	ErrMissingCredentials = errors.New("missing generative text API credentials")
)

// Input is one student answer to evaluate. Nil pointers mean the field was
// not supplied.
type Input struct {
	Question string
	Answer   string
	Context  string
	Topic    *string
	Attempt  *int
}

// attempt returns the attempt number used for reaction fallbacks.
func (in Input) attempt() int {
	if in.Attempt == nil {
		return 1
	}
	return *in.Attempt
}

// Outcome is the response to an evaluation. It is complete even when the
// evaluation failed: Status and Feedback are what the caller should send.
type Outcome struct {
	RequestID string
	Status    int
	Feedback  string
	Reaction  string
	Topic     Topic
	Source    Source
}

// Config tunes the model request.
type Config struct {
	MaxTokens   int
	Temperature float64
}

// DefaultConfig returns the request settings used by the server.
func DefaultConfig() Config {
	return Config{MaxTokens: 512, Temperature: 0.2}
}

// Service evaluates student answers with a generative model.
type Service struct {
	provider llm.Provider
	prompts  *PromptBuilder
	cfg      Config
	events   store.EventRepo
	metrics  *metrics.Registry
	logger   *slog.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithEvents records every outcome in repo. A nil repo records nothing.
func WithEvents(repo store.EventRepo) Option {
	return func(s *Service) {
		if repo != nil {
			s.events = repo
		}
	}
}

// WithMetrics counts outcomes in registry.
func WithMetrics(registry *metrics.Registry) Option {
	return func(s *Service) { s.metrics = registry }
}

// WithLogger sets the logger for upstream failures.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithConfig overrides the model request settings.
func WithConfig(cfg Config) Option {
	return func(s *Service) { s.cfg = cfg }
}

// NewService creates an evaluator. A nil provider means no credentials were
// configured; every evaluation then fails with ErrMissingCredentials.
func NewService(provider llm.Provider, rules *RuleBook, opts ...Option) *Service {
	s := &Service{
		provider: provider,
		prompts:  NewPromptBuilder(rules),
		cfg:      DefaultConfig(),
		events:   store.DiscardEvents(),
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Check evaluates one answer. It always returns a usable Outcome; the error
// is non-nil when the outcome reports a failure and explains why.
func (s *Service) Check(ctx context.Context, in Input) (*Outcome, error) {
	start := time.Now()
	out, err := s.check(ctx, in)

	s.metrics.RecordAnswerCheck(string(out.Topic), string(out.Source), out.Status, time.Since(start))
	s.record(ctx, in, out)

	return out, err
}

func (s *Service) check(ctx context.Context, in Input) (*Outcome, error) {
	out := &Outcome{RequestID: uuid.NewString(), Source: SourceError}

	if strings.TrimSpace(in.Question) == "" {
		out.Status = http.StatusBadRequest
		out.Feedback = MsgMissingQuestion
		out.Reaction = ReactionWarning
		return out, ErrMissingQuestion
	}

	out.Topic = ResolveTopic(in.Topic, in.Question, in.Context)

	prompt, err := s.prompts.Build(out.Topic, in.Question, in.Answer, in.Context, in.Attempt)
	if err != nil {
		out.Status = http.StatusInternalServerError
		out.Feedback = MsgUpstreamError
		out.Reaction = ReactionWarning
		return out, err
	}

	if s.provider == nil {
		out.Status = http.StatusInternalServerError
		out.Feedback = MsgMissingCredentials
		out.Reaction = ReactionWarning
		return out, ErrMissingCredentials
	}

	ctx = llm.WithPurpose(ctx, Purpose)
	ctx = llm.WithRequestID(ctx, out.RequestID)

	resp, err := s.provider.Generate(ctx, llm.UserPrompt(prompt, s.cfg.MaxTokens, s.cfg.Temperature))
	if err != nil {
		out.Status = http.StatusInternalServerError
		out.Reaction = ReactionWarning
		if code := llm.StatusCode(err); code != 0 {
			s.logger.Error("generative text API returned an error status",
				"status", code, "request_id", out.RequestID, "error", err)
			out.Feedback = MsgUpstreamStatus
		} else {
			s.logger.Error("generative text API request failed",
				"request_id", out.RequestID, "error", err)
			out.Feedback = MsgUpstreamError
		}
		return out, fmt.Errorf("answer check: %w", err)
	}

	out.Status = http.StatusOK
	out.Feedback, out.Reaction, out.Source = Interpret(resp.Text(), in.attempt())
	return out, nil
}

func (s *Service) record(ctx context.Context, in Input, out *Outcome) {
	data := store.AnswerCheckEventData{
		RequestID: out.RequestID,
		Topic:     string(out.Topic),
		Attempt:   in.attempt(),
		Question:  in.Question,
		Answer:    in.Answer,
		Status:    out.Status,
		Reaction:  out.Reaction,
		Source:    string(out.Source),
		Feedback:  out.Feedback,
	}
	if err := s.events.AppendAnswerCheck(context.WithoutCancel(ctx), data); err != nil {
		s.logger.Warn("failed to record answer check", "error", err)
	}
}
