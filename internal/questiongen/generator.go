package questiongen

import (
	"context"
	"errors"

	"github.com/abhisek/mathsheet/internal/llm"
	"github.com/abhisek/mathsheet/internal/worksheet"
)

// Generator produces the questions for one worksheet.
type Generator interface {
	// Generate never fails: any problem yields the fallback set, with
	// Result.Failure describing what went wrong.
	Generate(ctx context.Context, sel worksheet.Selection) Result
}

// Result is the outcome of a generation.
type Result struct {
	Questions []worksheet.Question
	Fallback  bool
	Failure   *Failure
}

// FailureKind classifies why a generation fell back.
type FailureKind string

const (
	FailureTransport FailureKind = "transport"
	FailureService   FailureKind = "service"
	FailureParse     FailureKind = "parse"
)

// Failure is recorded in the event log. It is never shown to end users.
type Failure struct {
	Kind FailureKind
	Err  error
}

func (f *Failure) Error() string {
	return string(f.Kind) + ": " + f.Err.Error()
}

func (f *Failure) Unwrap() error { return f.Err }

// LLMGenerator implements Generator on top of an llm.Provider.
type LLMGenerator struct {
	provider llm.Provider
	config   Config
}

// New creates an LLMGenerator. A nil provider always falls back.
func New(provider llm.Provider, cfg Config) *LLMGenerator {
	if cfg.QuestionCount <= 0 {
		cfg.QuestionCount = DefaultConfig().QuestionCount
	}
	return &LLMGenerator{provider: provider, config: cfg}
}

func (g *LLMGenerator) Generate(ctx context.Context, sel worksheet.Selection) Result {
	if g.provider == nil {
		return fallback(FailureTransport, errors.New("no LLM provider configured"))
	}

	ctx = llm.WithPurpose(ctx, Purpose)
	if g.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.config.Timeout)
		defer cancel()
	}

	req := llm.Request{
		System:      systemPrompt,
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: buildUserMessage(sel, g.config.QuestionCount)}},
		Schema:      QuestionSchema(g.config.QuestionCount),
		MaxTokens:   g.config.MaxTokens,
		Temperature: g.config.Temperature,
	}

	resp, err := g.provider.Generate(ctx, req)
	if err != nil {
		return fallback(classify(err), err)
	}

	questions, err := ParseQuestions(resp.Content)
	if err != nil {
		return fallback(FailureParse, err)
	}

	for _, v := range g.config.Validators {
		var verr *ValidationError
		questions, verr = v.Validate(questions, sel, g.config.QuestionCount)
		if verr != nil {
			return fallback(FailureParse, verr)
		}
	}

	return Result{Questions: questions}
}

func fallback(kind FailureKind, err error) Result {
	return Result{
		Questions: FallbackQuestions(),
		Fallback:  true,
		Failure:   &Failure{Kind: kind, Err: err},
	}
}

// classify maps provider errors onto FailureKind. Anything unrecognised,
// including deadlines and cancellation, counts as transport.
func classify(err error) FailureKind {
	var (
		inv   *llm.ErrInvalidResponse
		trunc *llm.ErrMaxTokensExceeded
		svc   *llm.ErrService
		rl    *llm.ErrRateLimit
	)
	switch {
	case errors.As(err, &inv), errors.As(err, &trunc):
		return FailureParse
	case errors.As(err, &svc), errors.As(err, &rl):
		return FailureService
	default:
		return FailureTransport
	}
}
