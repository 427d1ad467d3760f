// Package flow drives the screen-step state of both front-ends: the
// prompt → parsed → strategies pipeline, the detail-screen action set and the
// library. All state is per-screen and discarded on reset; the backend is
// reached only through the injected gateway interfaces.
package flow

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/dgnsrekt/strategy_studio/internal/contract"
)

// Stage is the current step of the prompt flow. Transitions are linear; the
// only backward edge is Reset.
type Stage int

const (
	StageInput Stage = iota
	StageParsed
	StageStrategies
)

func (s Stage) String() string {
	switch s {
	case StageParsed:
		return "parsed"
	case StageStrategies:
		return "strategies"
	default:
		return "input"
	}
}

// ErrEmptyPrompt is the local validation failure for a blank submission; no
// request is issued when it is returned.
var ErrEmptyPrompt = errors.New("please enter a trading strategy prompt")

// ErrNoSuchStrategy is returned by Select for an out-of-range choice.
var ErrNoSuchStrategy = errors.New("no such strategy")

// PromptBackend is the slice of the gateway the prompt flow needs.
type PromptBackend interface {
	ParseIntent(ctx context.Context, prompt string) contract.Result[contract.ParsedIntent]
	GenerateStrategies(ctx context.Context, intent contract.ParsedIntent) contract.Result[[]contract.Strategy]
}

// PromptFlow is the Home screen's state machine. A failure at either step
// leaves the machine where it was; previously displayed data stays intact.
type PromptFlow struct {
	backend PromptBackend

	mu         sync.Mutex
	stage      Stage
	prompt     string
	intent     *contract.ParsedIntent
	strategies []contract.Strategy
}

// NewPromptFlow starts a flow at the input stage.
func NewPromptFlow(backend PromptBackend) *PromptFlow {
	return &PromptFlow{backend: backend}
}

// Stage returns the current step.
func (f *PromptFlow) Stage() Stage {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.stage
}

// Prompt returns the last submitted prompt text.
func (f *PromptFlow) Prompt() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.prompt
}

// Intent returns the parsed intent, or nil before the parsed stage.
func (f *PromptFlow) Intent() *contract.ParsedIntent {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.intent == nil {
		return nil
	}
	cp := *f.intent
	return &cp
}

// Strategies returns the generated strategies, empty before that stage.
func (f *PromptFlow) Strategies() []contract.Strategy {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]contract.Strategy, len(f.strategies))
	copy(out, f.strategies)
	return out
}

// Submit runs the two-step pipeline: parse the prompt, then generate
// strategies from the just-received intent. A blank prompt is rejected
// locally. A parse failure keeps the input stage; a generate failure keeps
// the parsed stage with the intent still visible.
func (f *PromptFlow) Submit(ctx context.Context, prompt string) error {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return ErrEmptyPrompt
	}

	parsed := f.backend.ParseIntent(ctx, prompt)
	if !parsed.OK {
		return fmt.Errorf("%s", errText(parsed.Err, "Failed to parse your request"))
	}

	f.mu.Lock()
	f.prompt = prompt
	intent := parsed.Data
	f.intent = &intent
	f.stage = StageParsed
	f.mu.Unlock()

	generated := f.backend.GenerateStrategies(ctx, parsed.Data)
	if !generated.OK {
		return fmt.Errorf("%s", errText(generated.Err, "Failed to generate strategies"))
	}

	f.mu.Lock()
	f.strategies = generated.Data
	f.stage = StageStrategies
	f.mu.Unlock()
	return nil
}

// Reset returns to the input stage and discards the parsed intent and the
// generated strategies.
func (f *PromptFlow) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stage = StageInput
	f.intent = nil
	f.strategies = nil
}

// Select returns a copy of the i-th generated strategy for navigation to the
// detail screen. The value travels with the caller; it is never re-fetched.
func (f *PromptFlow) Select(i int) (contract.Strategy, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if i < 0 || i >= len(f.strategies) {
		return contract.Strategy{}, ErrNoSuchStrategy
	}
	return f.strategies[i], nil
}

func errText(msg, fallback string) string {
	if msg != "" {
		return msg
	}
	return fallback
}
