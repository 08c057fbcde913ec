package worksheet

import (
	"time"

	"github.com/abhisek/mathsheet/internal/session"
)

// generatedMsg carries the result of a Generate call.
type generatedMsg struct {
	Outcome session.Outcome
	Err     error
}

// savedMsg reports where a download was written.
type savedMsg struct {
	Path string
	Err  error
}

// spinnerTickMsg animates the generating indicator.
type spinnerTickMsg time.Time

// upgradeMsg and dismissMsg are emitted by the upgrade dialog menu.
type upgradeMsg struct{}

type dismissMsg struct{}
