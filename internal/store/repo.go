package store

import (
	"context"
	"time"
)

// QueryOpts filters and paginates event queries. Zero values disable a filter.
type QueryOpts struct {
	Limit     int    // max results
	After     int64  // sequence > After
	Purpose   string // LLM events only
	SessionID string // generation events only
}

// LLMRequestEventData captures a single call to an LLM provider.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMRequestEvent is a stored LLMRequestEventData.
type LLMRequestEvent struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	LLMRequestEventData
}

// UsageStat aggregates LLM calls for one purpose or model.
type UsageStat struct {
	Key          string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs float64
}

// GenerationEventData records the outcome of one worksheet generation.
type GenerationEventData struct {
	SessionID      string
	UserID         string
	WorksheetID    string
	Level          string
	Topic          string
	Difficulty     string
	QuestionCount  int
	Fallback       bool
	FailureKind    string
	FailureMessage string
	LatencyMs      int64
}

// GenerationEvent is a stored GenerationEventData.
type GenerationEvent struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	GenerationEventData
}

// GenerationStats summarises all recorded generations.
type GenerationStats struct {
	Total     int
	Fallbacks int
	ByFailure map[string]int
}

// EventRepo provides append access to the event log.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// AppendGeneration records a finished worksheet generation.
	AppendGeneration(ctx context.Context, data GenerationEventData) error
}

// EventReader provides read access to the event log. Results are newest first.
type EventReader interface {
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMRequestEvent, error)

	// GetLLMEvent returns nil when no event has the given id.
	GetLLMEvent(ctx context.Context, id int) (*LLMRequestEvent, error)

	LLMUsageByPurpose(ctx context.Context) ([]UsageStat, error)
	LLMUsageByModel(ctx context.Context) ([]UsageStat, error)

	QueryGenerationEvents(ctx context.Context, opts QueryOpts) ([]GenerationEvent, error)
	GenerationStats(ctx context.Context) (GenerationStats, error)
}
