package prompt

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/temirov/gitfu/internal/remotefetch"
	"github.com/temirov/gitfu/internal/repos/shared"
	"github.com/temirov/gitfu/internal/repostate"
)

const (
	inspectedMessageConstant     = "Inspected repository"
	repositoryLogFieldConstant   = "repository"
	fetchOutcomeLogFieldConstant = "fetch_outcome"
)

var (
	// ErrProberNotConfigured indicates that NewService received no repository prober.
	ErrProberNotConfigured = errors.New("prompt requires a repository prober")
	// ErrCoordinatorNotConfigured indicates that a fetching inspection was requested without a fetch coordinator.
	ErrCoordinatorNotConfigured = errors.New("prompt requires a fetch coordinator to fetch")
)

// RepositoryProber reads the state of one working tree.
type RepositoryProber interface {
	Locate(path string) (repostate.RepositoryIdentity, error)
	Probe(executionContext context.Context, path string) (repostate.ProbedRepository, error)
}

// FetchCoordinator refreshes one repository within the run budget.
type FetchCoordinator interface {
	MaybeFetch(executionContext context.Context, identity repostate.RepositoryIdentity, budget *remotefetch.RunBudget) repostate.FetchOutcome
}

// Dependencies enumerates the collaborators of a Service.
type Dependencies struct {
	Prober      RepositoryProber
	Coordinator FetchCoordinator
	Logger      *zap.Logger
}

// Options configures one inspection.
type Options struct {
	Fetch  bool
	Budget *remotefetch.RunBudget
}

// Service inspects a single repository.
type Service struct {
	prober      RepositoryProber
	coordinator FetchCoordinator
	logger      *zap.Logger
}

// NewService validates the dependencies and constructs a Service.
func NewService(dependencies Dependencies) (*Service, error) {
	if dependencies.Prober == nil {
		return nil, ErrProberNotConfigured
	}
	logger := dependencies.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{prober: dependencies.Prober, coordinator: dependencies.Coordinator, logger: logger}, nil
}

// Inspect refreshes the repository at path when requested and probes it. Unlike a
// directory scan, a path that is not a readable repository is an error, and it
// is reported before any fetch runs.
func (service *Service) Inspect(executionContext context.Context, path string, options Options) (repostate.ProbedRepository, error) {
	if options.Fetch && service.coordinator == nil {
		return repostate.ProbedRepository{}, ErrCoordinatorNotConfigured
	}

	identity, locateError := service.prober.Locate(path)
	if locateError != nil {
		return repostate.ProbedRepository{}, locateError
	}

	fetchOutcome := repostate.FetchNotAttempted
	if options.Fetch {
		budget := options.Budget
		if budget == nil {
			budget = remotefetch.NewRunBudget(shared.DefaultFetchTimeoutConstant)
		}
		fetchOutcome = service.coordinator.MaybeFetch(executionContext, identity, budget)
	}

	probed, probeError := service.prober.Probe(executionContext, path)
	if probeError != nil {
		return repostate.ProbedRepository{}, probeError
	}
	probed.FetchOutcome = fetchOutcome

	service.logger.Debug(inspectedMessageConstant,
		zap.String(repositoryLogFieldConstant, probed.Identity.Path),
		zap.Stringer(fetchOutcomeLogFieldConstant, probed.FetchOutcome),
	)
	return probed, nil
}
