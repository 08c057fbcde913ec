package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/abhisek/mathsheet/internal/entitlement"
	"github.com/abhisek/mathsheet/internal/export"
	"github.com/abhisek/mathsheet/internal/questiongen"
	"github.com/abhisek/mathsheet/internal/store"
	"github.com/abhisek/mathsheet/internal/worksheet"
)

var (
	// ErrGenerationInFlight is returned when a generation is requested
	// while one is already running for the same session.
	ErrGenerationInFlight = errors.New("a worksheet is already being generated")

	// ErrNoWorksheet is returned by Download before anything was generated.
	ErrNoWorksheet = errors.New("no worksheet has been generated yet")
)

// Outcome is what a Generate call produced.
type Outcome struct {
	State     State
	Worksheet *worksheet.Worksheet
	Fallback  bool

	// Offer is set when the request was blocked by the free allowance.
	Offer *entitlement.Offer
}

// View is a snapshot of the controller for display.
type View struct {
	State        State                `json:"state"`
	Generating   bool                 `json:"generating"`
	ShowUpgrade  bool                 `json:"showUpgrade"`
	CanGenerate  bool                 `json:"canGenerate"`
	HasWorksheet bool                 `json:"hasWorksheet"`
	Fallback     bool                 `json:"fallback"`
	User         entitlement.User     `json:"user"`
	UsageLabel   string               `json:"usageLabel,omitempty"`
	Worksheet    *worksheet.Worksheet `json:"worksheet,omitempty"`
	Offer        *entitlement.Offer   `json:"offer,omitempty"`
}

// Controller runs the generate / download / upgrade flow for one user.
// It is safe for concurrent use; at most one generation runs at a time.
type Controller struct {
	mu sync.Mutex

	sessionID string
	user      *entitlement.User
	generator questiongen.Generator
	exporter  export.Exporter
	events    store.EventRepo
	now       func() time.Time

	state    State
	current  *worksheet.Worksheet
	fallback bool
}

// NewController creates an idle controller. events may be nil.
func NewController(sessionID string, user *entitlement.User, gen questiongen.Generator, events store.EventRepo) *Controller {
	return &Controller{
		sessionID: sessionID,
		user:      user,
		generator: gen,
		exporter:  export.NewPDFExporter(),
		events:    events,
		now:       time.Now,
		state:     StateIdle,
	}
}

// Generate checks the entitlement policy and, when allowed, produces a new
// worksheet for sel. A denied request is not an error: the outcome is
// StateBlocked with an upgrade offer and no generator call is made.
func (c *Controller) Generate(ctx context.Context, sel worksheet.Selection) (Outcome, error) {
	if err := sel.Validate(); err != nil {
		return Outcome{}, err
	}

	c.mu.Lock()
	if c.state == StateGenerating {
		c.mu.Unlock()
		return Outcome{}, ErrGenerationInFlight
	}

	c.state = StateChecking
	if !entitlement.CanGenerate(c.user) {
		c.state = StateBlocked
		c.mu.Unlock()
		offer := entitlement.DefaultOffer
		return Outcome{State: StateBlocked, Offer: &offer}, nil
	}
	c.state = StateGenerating
	c.mu.Unlock()

	start := c.now()
	res := c.generator.Generate(ctx, sel)
	latency := c.now().Sub(start)

	ws, err := worksheet.New(sel, res.Questions, c.now())

	c.mu.Lock()
	if err != nil {
		c.state = c.restingState()
		c.mu.Unlock()
		return Outcome{}, fmt.Errorf("assemble worksheet: %w", err)
	}
	c.current = ws
	c.fallback = res.Fallback
	c.state = StateReady
	entitlement.RecordGeneration(c.user)
	userID := c.user.ID
	c.mu.Unlock()

	c.record(ctx, userID, ws, res, latency)

	return Outcome{State: StateReady, Worksheet: ws, Fallback: res.Fallback}, nil
}

// Upgrade marks the user as paid. From Blocked it returns to Idle; in any
// other state except Generating the state is left alone.
func (c *Controller) Upgrade() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state == StateGenerating {
		return ErrGenerationInFlight
	}
	entitlement.Upgrade(c.user)
	if c.state == StateBlocked {
		c.state = StateIdle
	}
	return nil
}

// DismissUpgrade closes the upgrade offer without paying.
func (c *Controller) DismissUpgrade() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state == StateBlocked {
		c.state = c.restingState()
	}
}

// Download writes the held worksheet as PDF. It does not change state.
func (c *Controller) Download(w io.Writer, includeAnswers bool) error {
	return c.DownloadAs(w, c.exporter, includeAnswers)
}

// DownloadAs writes the held worksheet with the given exporter.
func (c *Controller) DownloadAs(w io.Writer, exp export.Exporter, includeAnswers bool) error {
	ws := c.Worksheet()
	if ws == nil {
		return ErrNoWorksheet
	}
	return exp.Export(w, ws, includeAnswers)
}

// Worksheet returns the held worksheet, or nil.
func (c *Controller) Worksheet() *worksheet.Worksheet {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// State returns the current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// View returns a snapshot with all display flags derived from the state.
func (c *Controller) View() View {
	c.mu.Lock()
	defer c.mu.Unlock()

	v := View{
		State:        c.state,
		Generating:   c.state == StateGenerating,
		ShowUpgrade:  c.state == StateBlocked,
		HasWorksheet: c.current != nil,
		Fallback:     c.current != nil && c.fallback,
		User:         *c.user,
		UsageLabel:   entitlement.UsageLabel(c.user),
		Worksheet:    c.current,
	}
	v.CanGenerate = !v.Generating && entitlement.CanGenerate(c.user)
	if v.ShowUpgrade {
		offer := entitlement.DefaultOffer
		v.Offer = &offer
	}
	return v
}

// restingState is where the controller settles outside a request.
// Callers must hold c.mu.
func (c *Controller) restingState() State {
	if c.current != nil {
		return StateReady
	}
	return StateIdle
}

func (c *Controller) record(ctx context.Context, userID string, ws *worksheet.Worksheet, res questiongen.Result, latency time.Duration) {
	if c.events == nil {
		return
	}

	data := store.GenerationEventData{
		SessionID:     c.sessionID,
		UserID:        userID,
		WorksheetID:   ws.ID,
		Level:         string(ws.Level),
		Topic:         string(ws.Topic),
		Difficulty:    string(ws.Difficulty),
		QuestionCount: len(ws.Questions),
		Fallback:      res.Fallback,
		LatencyMs:     latency.Milliseconds(),
	}
	if res.Failure != nil {
		data.FailureKind = string(res.Failure.Kind)
		data.FailureMessage = res.Failure.Err.Error()
	}

	if err := c.events.AppendGeneration(context.WithoutCancel(ctx), data); err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to log generation event: %v\n", err)
	}
}
