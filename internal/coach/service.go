package coach

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/abhisek/afmlab/internal/llm"
)

// Service explains predictions, asynchronously for the TUI and synchronously
// for the CLI. A nil provider makes every explanation offline.
type Service struct {
	provider llm.Provider
	cfg      Config
	now      func() time.Time

	mu      sync.Mutex
	seq     int // id of the latest request; older results are dropped
	pending *Explanation
	err     error
	ready   bool
}

// NewService creates a coach. provider may be nil.
func NewService(provider llm.Provider, cfg Config) *Service {
	return &Service{provider: provider, cfg: cfg, now: time.Now}
}

// Enabled reports whether an LLM backs the coach.
func (s *Service) Enabled() bool {
	return s.provider != nil
}

// Request starts explaining in in the background. A newer request replaces
// any pending one.
func (s *Service) Request(ctx context.Context, in Input) {
	s.mu.Lock()
	s.seq++
	id := s.seq
	s.pending, s.err, s.ready = nil, nil, false
	s.mu.Unlock()

	go func() {
		exp, err := s.Explain(ctx, in)
		s.mu.Lock()
		defer s.mu.Unlock()
		if id != s.seq {
			return
		}
		s.pending = exp
		s.err = err
		s.ready = true
	}()
}

// Result is a finished background request. Explanation is never nil; Err
// reports a provider failure that forced the offline text.
type Result struct {
	Explanation *Explanation
	Err         error
}

// Consume returns the finished result and clears the slot. It returns false
// while a request is still running or when none was made.
func (s *Service) Consume() (Result, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.ready {
		return Result{}, false
	}
	res := Result{Explanation: s.pending, Err: s.err}
	s.pending, s.err, s.ready = nil, nil, false
	return res, true
}

type explanationOutput struct {
	Summary    string `json:"summary"`
	Suggestion string `json:"suggestion"`
}

// Explain returns an explanation for in. When the provider fails the offline
// explanation is returned together with the error.
func (s *Service) Explain(ctx context.Context, in Input) (*Explanation, error) {
	if s.provider == nil {
		return s.offline(in), nil
	}

	ctx = llm.WithPurpose(ctx, "coach-"+string(in.Page))
	resp, err := s.provider.Generate(ctx, llm.Request{
		System:      systemPrompt,
		Messages:    llm.UserPrompt(buildUserMessage(in)),
		Schema:      ExplanationSchema,
		MaxTokens:   s.cfg.MaxTokens,
		Temperature: s.cfg.Temperature,
	})
	if err != nil {
		return s.offline(in), fmt.Errorf("coach explanation: %w", err)
	}

	out, err := llm.Decode[explanationOutput](resp)
	if err != nil {
		return s.offline(in), fmt.Errorf("parse coach response: %w", err)
	}
	return &Explanation{
		Summary:     out.Summary,
		Suggestion:  out.Suggestion,
		Source:      s.provider.Name(),
		GeneratedAt: s.now(),
	}, nil
}

func (s *Service) offline(in Input) *Explanation {
	return &Explanation{
		Summary:     in.Offline,
		Suggestion:  offlineSuggestion(in),
		Source:      SourceOffline,
		GeneratedAt: s.now(),
	}
}
