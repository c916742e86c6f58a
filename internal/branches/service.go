package branches

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/go-git/go-git/v5/plumbing"
	"go.uber.org/zap"

	"github.com/temirov/gitfu/internal/repos/filesystem"
	"github.com/temirov/gitfu/internal/repos/shared"
	"github.com/temirov/gitfu/internal/repostate"
)

const (
	repositoryPathErrorTemplateConstant = "resolve repository path %s: %w"
	branchListingErrorTemplateConstant  = "%w: %s: list branches: %w"
	branchCommitErrorTemplateConstant   = "%w: %s: read tip of %s: %w"
	branchesListedMessageConstant       = "Listed local branches"
	repositoryLogFieldConstant          = "repository"
	branchCountLogFieldConstant         = "branches"
)

// Service reads local branches through go-git.
type Service struct {
	logger     *zap.Logger
	fileSystem shared.FileSystem
}

// NewService constructs a Service. A nil logger discards logs and a nil file system uses the OS.
func NewService(logger *zap.Logger, fileSystem shared.FileSystem) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if fileSystem == nil {
		fileSystem = filesystem.OSFileSystem{}
	}
	return &Service{logger: logger, fileSystem: fileSystem}
}

// ListBranches returns every local branch of the repository at repositoryPath ordered
// by tip committer time, newest first, with ties broken by name.
func (service *Service) ListBranches(repositoryPath string) ([]repostate.BranchSummary, error) {
	absolutePath, absoluteError := service.fileSystem.Abs(repositoryPath)
	if absoluteError != nil {
		return nil, fmt.Errorf(repositoryPathErrorTemplateConstant, repositoryPath, absoluteError)
	}
	identity := repostate.RepositoryIdentity{Name: filepath.Base(absolutePath), Path: absolutePath}

	repository, openError := repostate.OpenRepository(service.fileSystem, identity)
	if openError != nil {
		return nil, openError
	}

	branchIterator, iteratorError := repository.Branches()
	if iteratorError != nil {
		return nil, fmt.Errorf(branchListingErrorTemplateConstant, repostate.ErrCorruptRepository, identity.Path, iteratorError)
	}
	defer branchIterator.Close()

	var summaries []repostate.BranchSummary
	iterationError := branchIterator.ForEach(func(reference *plumbing.Reference) error {
		tipCommit, commitError := repository.CommitObject(reference.Hash())
		if commitError != nil {
			return fmt.Errorf(branchCommitErrorTemplateConstant, repostate.ErrCorruptRepository, identity.Path, reference.Name().Short(), commitError)
		}
		summaries = append(summaries, repostate.BranchSummary{Name: reference.Name().Short(), LastCommit: tipCommit.Committer.When})
		return nil
	})
	if iterationError != nil {
		return nil, iterationError
	}

	sort.SliceStable(summaries, func(leftIndex int, rightIndex int) bool {
		left, right := summaries[leftIndex], summaries[rightIndex]
		if !left.LastCommit.Equal(right.LastCommit) {
			return left.LastCommit.After(right.LastCommit)
		}
		return left.Name < right.Name
	})

	service.logger.Debug(branchesListedMessageConstant,
		zap.String(repositoryLogFieldConstant, identity.Path),
		zap.Int(branchCountLogFieldConstant, len(summaries)),
	)
	return summaries, nil
}
