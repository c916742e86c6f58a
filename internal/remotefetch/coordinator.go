package remotefetch

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/temirov/gitfu/internal/repostate"
)

const (
	fetchTimedOutTemplateConstant = "%w after %s"
	fetchSucceededMessageConstant = "Refreshed remote-tracking references"
	fetchTimedOutMessageConstant  = "Remote refresh timed out"
	fetchFailedMessageConstant    = "Remote refresh failed"
	fetchDisabledMessageConstant  = "Disabled remote refresh for the remaining repositories"
	fetchSkippedMessageConstant   = "Skipped remote refresh"
	repositoryLogFieldConstant    = "repository"
	timeoutLogFieldConstant       = "timeout"
	outcomeLogFieldConstant       = "outcome"
)

// ErrFetchTimedOut marks a fetch that exceeded the budget timeout.
var ErrFetchTimedOut = errors.New("remote refresh timed out")

// Coordinator decides whether to fetch a repository and classifies the result.
type Coordinator struct {
	fetcher Fetcher
	logger  *zap.Logger
}

// NewCoordinator constructs a Coordinator. A nil logger discards logs.
func NewCoordinator(fetcher Fetcher, logger *zap.Logger) *Coordinator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Coordinator{fetcher: fetcher, logger: logger}
}

// MaybeFetch refreshes the repository unless the budget is exhausted. A timeout
// exhausts the budget for every later call sharing it; other failures do not.
func (coordinator *Coordinator) MaybeFetch(executionContext context.Context, identity repostate.RepositoryIdentity, budget *RunBudget) repostate.FetchOutcome {
	if budget.FetchDisabled() {
		coordinator.logger.Debug(fetchSkippedMessageConstant, zap.String(repositoryLogFieldConstant, identity.Path))
		return repostate.FetchNotAttempted
	}

	fetchContext, cancel := context.WithTimeout(executionContext, budget.Timeout())
	defer cancel()

	fetchError := coordinator.fetcher.Fetch(fetchContext, identity)
	if fetchError == nil {
		coordinator.logger.Debug(fetchSucceededMessageConstant, zap.String(repositoryLogFieldConstant, identity.Path))
		return repostate.FetchSucceeded
	}

	if errors.Is(fetchContext.Err(), context.DeadlineExceeded) && executionContext.Err() == nil {
		coordinator.logger.Warn(fetchTimedOutMessageConstant,
			zap.String(repositoryLogFieldConstant, identity.Path),
			zap.Duration(timeoutLogFieldConstant, budget.Timeout()),
			zap.Error(fmt.Errorf(fetchTimedOutTemplateConstant, ErrFetchTimedOut, budget.Timeout())),
		)
		if budget.DisableFetch() {
			coordinator.logger.Info(fetchDisabledMessageConstant, zap.String(repositoryLogFieldConstant, identity.Path))
		}
		return repostate.FetchTimedOut
	}

	coordinator.logger.Warn(fetchFailedMessageConstant,
		zap.String(repositoryLogFieldConstant, identity.Path),
		zap.Stringer(outcomeLogFieldConstant, repostate.FetchFailed),
		zap.Error(fetchError),
	)
	return repostate.FetchFailed
}
