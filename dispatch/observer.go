package dispatch

import "time"

// Outcome classifies a finished call.
type Outcome string

const (
	OutcomeOK            Outcome = "ok"
	OutcomeNativeFailure Outcome = "native_failure"
	OutcomeParamError    Outcome = "param_error"
	OutcomeInternal      Outcome = "internal"
	OutcomeError         Outcome = "error"
)

// Observer receives per-call measurements.
type Observer interface {
	OnCall(op string, d time.Duration, outcome Outcome)
	// OnScratch reports native memory reserved by one call.
	OnScratch(op string, bytes int)
}

// NopObserver discards everything.
type NopObserver struct{}

func (NopObserver) OnCall(string, time.Duration, Outcome) {}
func (NopObserver) OnScratch(string, int)                 {}
