package dirstatus

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/temirov/gitfu/internal/remotefetch"
	"github.com/temirov/gitfu/internal/repos/filesystem"
	"github.com/temirov/gitfu/internal/repos/shared"
	"github.com/temirov/gitfu/internal/repostate"
)

const (
	rootUnusableErrorTemplateConstant = "%w: %s: %w"
	probeFailedMessageConstant        = "Repository could not be probed"
	repositoryLogFieldConstant        = "repository"
	repositoryCountLogFieldConstant   = "repositories"
	workerCountLogFieldConstant       = "workers"
	scanStartedMessageConstant        = "Scanning repositories"
)

var (
	// ErrRootUnusable indicates that the scan root is missing, not a directory, or unreadable.
	ErrRootUnusable = errors.New("repository root is unusable")
	// ErrDiscovererNotConfigured indicates that NewScanner received no repository discoverer.
	ErrDiscovererNotConfigured = errors.New("scanner requires a repository discoverer")
	// ErrProberNotConfigured indicates that NewScanner received no repository prober.
	ErrProberNotConfigured = errors.New("scanner requires a repository prober")
	// ErrCoordinatorNotConfigured indicates that a fetching scan was requested without a fetch coordinator.
	ErrCoordinatorNotConfigured = errors.New("scanner requires a fetch coordinator to fetch")
)

// RepositoryProber reads the state of one working tree.
type RepositoryProber interface {
	ResolveIdentity(path string) (repostate.RepositoryIdentity, error)
	Probe(executionContext context.Context, path string) (repostate.ProbedRepository, error)
}

// FetchCoordinator refreshes one repository within the run budget.
type FetchCoordinator interface {
	MaybeFetch(executionContext context.Context, identity repostate.RepositoryIdentity, budget *remotefetch.RunBudget) repostate.FetchOutcome
}

// Dependencies enumerates the collaborators of a Scanner.
type Dependencies struct {
	Discoverer  shared.RepositoryDiscoverer
	Prober      RepositoryProber
	Coordinator FetchCoordinator
	FileSystem  shared.FileSystem
	Logger      *zap.Logger
}

// ScanOptions configures one scan. Workers below one scan sequentially.
type ScanOptions struct {
	Fetch   bool
	Budget  *remotefetch.RunBudget
	Workers int
}

// Scanner produces the probed state of every repository beneath a root.
type Scanner struct {
	discoverer  shared.RepositoryDiscoverer
	prober      RepositoryProber
	coordinator FetchCoordinator
	fileSystem  shared.FileSystem
	logger      *zap.Logger
}

// NewScanner validates the dependencies and constructs a Scanner.
func NewScanner(dependencies Dependencies) (*Scanner, error) {
	if dependencies.Discoverer == nil {
		return nil, ErrDiscovererNotConfigured
	}
	if dependencies.Prober == nil {
		return nil, ErrProberNotConfigured
	}
	scanner := &Scanner{
		discoverer:  dependencies.Discoverer,
		prober:      dependencies.Prober,
		coordinator: dependencies.Coordinator,
		fileSystem:  dependencies.FileSystem,
		logger:      dependencies.Logger,
	}
	if scanner.fileSystem == nil {
		scanner.fileSystem = filesystem.OSFileSystem{}
	}
	if scanner.logger == nil {
		scanner.logger = zap.NewNop()
	}
	return scanner, nil
}

// Scan returns the repositories beneath root ordered by name. Directories that are
// not repositories are skipped; repositories that fail to probe are returned with
// ProbeError set. Only an unusable root or a cancelled context fails the scan.
func (scanner *Scanner) Scan(executionContext context.Context, root string, options ScanOptions) ([]repostate.ProbedRepository, error) {
	if options.Fetch && scanner.coordinator == nil {
		return nil, ErrCoordinatorNotConfigured
	}
	if options.Fetch && options.Budget == nil {
		options.Budget = remotefetch.NewRunBudget(shared.DefaultFetchTimeoutConstant)
	}
	workerCount := options.Workers
	if workerCount < 1 {
		workerCount = shared.DefaultWorkerCountConstant
	}

	absoluteRoot, absoluteError := scanner.fileSystem.Abs(root)
	if absoluteError != nil {
		return nil, fmt.Errorf(rootUnusableErrorTemplateConstant, ErrRootUnusable, root, absoluteError)
	}
	repositoryPaths, discoveryError := scanner.discoverer.DiscoverRepositories(absoluteRoot)
	if discoveryError != nil {
		return nil, fmt.Errorf(rootUnusableErrorTemplateConstant, ErrRootUnusable, absoluteRoot, discoveryError)
	}

	scanner.logger.Debug(scanStartedMessageConstant,
		zap.Int(repositoryCountLogFieldConstant, len(repositoryPaths)),
		zap.Int(workerCountLogFieldConstant, workerCount),
	)

	scannedRepositories := make([]*repostate.ProbedRepository, len(repositoryPaths))
	var workerGroup errgroup.Group
	workerGroup.SetLimit(workerCount)
	for repositoryIndex, repositoryPath := range repositoryPaths {
		repositoryIndex, repositoryPath := repositoryIndex, repositoryPath
		workerGroup.Go(func() error {
			if contextError := executionContext.Err(); contextError != nil {
				return contextError
			}
			scannedRepositories[repositoryIndex] = scanner.scanRepository(executionContext, repositoryPath, options)
			return nil
		})
	}
	if waitError := workerGroup.Wait(); waitError != nil {
		return nil, waitError
	}

	results := make([]repostate.ProbedRepository, 0, len(scannedRepositories))
	for _, scannedRepository := range scannedRepositories {
		if scannedRepository != nil {
			results = append(results, *scannedRepository)
		}
	}
	sort.SliceStable(results, func(leftIndex int, rightIndex int) bool {
		if results[leftIndex].Identity.Name != results[rightIndex].Identity.Name {
			return results[leftIndex].Identity.Name < results[rightIndex].Identity.Name
		}
		return results[leftIndex].Identity.Path < results[rightIndex].Identity.Path
	})
	return results, nil
}

// scanRepository fetches when requested and then probes. It returns nil for directories that are not repositories.
func (scanner *Scanner) scanRepository(executionContext context.Context, repositoryPath string, options ScanOptions) *repostate.ProbedRepository {
	identity, identityError := scanner.prober.ResolveIdentity(repositoryPath)
	if identityError != nil {
		scanner.logger.Warn(probeFailedMessageConstant, zap.String(repositoryLogFieldConstant, repositoryPath), zap.Error(identityError))
		return &repostate.ProbedRepository{Identity: repostate.RepositoryIdentity{Name: repositoryPath, Path: repositoryPath}, ProbeError: identityError}
	}

	fetchOutcome := repostate.FetchNotAttempted
	if options.Fetch {
		fetchOutcome = scanner.coordinator.MaybeFetch(executionContext, identity, options.Budget)
	}

	probed, probeError := scanner.prober.Probe(executionContext, repositoryPath)
	if errors.Is(probeError, repostate.ErrNotARepository) {
		return nil
	}
	if probeError != nil {
		scanner.logger.Warn(probeFailedMessageConstant, zap.String(repositoryLogFieldConstant, identity.Path), zap.Error(probeError))
		probed = repostate.ProbedRepository{Identity: identity, Branch: probed.Branch, ProbeError: probeError}
	}
	probed.FetchOutcome = fetchOutcome
	return &probed
}
