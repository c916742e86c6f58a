package remotefetch

import (
	"sync/atomic"
	"time"

	"github.com/temirov/gitfu/internal/repos/shared"
)

// RunBudget carries the per-repository fetch timeout and the run-wide flag that
// disables fetching once any fetch has timed out. The flag never resets.
type RunBudget struct {
	timeout       time.Duration
	fetchDisabled atomic.Bool
}

// NewRunBudget creates a budget for one invocation. Non-positive timeouts use the default.
func NewRunBudget(timeout time.Duration) *RunBudget {
	if timeout <= 0 {
		timeout = shared.DefaultFetchTimeoutConstant
	}
	return &RunBudget{timeout: timeout}
}

// Timeout returns the limit applied to each fetch.
func (budget *RunBudget) Timeout() time.Duration {
	return budget.timeout
}

// FetchDisabled reports whether a previous fetch exhausted the budget.
func (budget *RunBudget) FetchDisabled() bool {
	return budget.fetchDisabled.Load()
}

// DisableFetch turns fetching off for the rest of the run and reports whether
// this call performed the transition.
func (budget *RunBudget) DisableFetch() bool {
	return budget.fetchDisabled.CompareAndSwap(false, true)
}
