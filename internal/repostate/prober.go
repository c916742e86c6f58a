package repostate

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"go.uber.org/zap"

	"github.com/temirov/gitfu/internal/execshell"
	"github.com/temirov/gitfu/internal/repos/filesystem"
	"github.com/temirov/gitfu/internal/repos/shared"
)

const (
	gitStatusSubcommandConstant             = "status"
	gitStatusPorcelainFlagConstant          = "--porcelain=v2"
	gitStatusBranchFlagConstant             = "--branch"
	gitStatusUntrackedFilesFlagConstant     = "--untracked-files=all"
	gitRevListSubcommandConstant            = "rev-list"
	gitRevListLeftRightFlagConstant         = "--left-right"
	gitRevListCountFlagConstant             = "--count"
	gitSymmetricRangeTemplateConstant       = "HEAD...%s"
	gitOptionalLocksEnvironmentConstant     = "GIT_OPTIONAL_LOCKS"
	gitDisabledEnvironmentValueConstant     = "0"
	identityResolutionErrorTemplateConstant = "resolve repository path %s: %w"
	repositoryLogFieldConstant              = "repository"
	remoteReferenceLogFieldConstant         = "remote_reference"
	probeCompletedMessageConstant           = "Probed repository"
	remoteComparisonFailedMessageConstant   = "Unable to compare with remote-tracking branch"
	branchLogFieldConstant                  = "branch"
	branchKindLogFieldConstant              = "branch_kind"
)

// ProberOptions controls the optional parts of a probe.
type ProberOptions struct {
	IncludeRemote bool
	RemoteName    string
}

// Prober reads repository state without modifying it.
type Prober struct {
	logger      *zap.Logger
	gitExecutor shared.GitExecutor
	fileSystem  shared.FileSystem
	options     ProberOptions
}

// NewProber constructs a Prober. A nil logger discards logs and a nil file system uses the OS.
func NewProber(logger *zap.Logger, gitExecutor shared.GitExecutor, fileSystem shared.FileSystem, options ProberOptions) (*Prober, error) {
	if gitExecutor == nil {
		return nil, ErrGitExecutorNotConfigured
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if fileSystem == nil {
		fileSystem = filesystem.OSFileSystem{}
	}
	if len(options.RemoteName) == 0 {
		options.RemoteName = shared.OriginRemoteNameConstant
	}
	return &Prober{logger: logger, gitExecutor: gitExecutor, fileSystem: fileSystem, options: options}, nil
}

// ResolveIdentity derives the repository name from the base name of the absolute path.
func (prober *Prober) ResolveIdentity(path string) (RepositoryIdentity, error) {
	absolutePath, absoluteError := prober.fileSystem.Abs(path)
	if absoluteError != nil {
		return RepositoryIdentity{}, fmt.Errorf(identityResolutionErrorTemplateConstant, path, absoluteError)
	}
	return RepositoryIdentity{Name: filepath.Base(absolutePath), Path: absolutePath}, nil
}

// Locate resolves the identity of path and confirms it is the top of a working
// tree, so callers can refuse to run git commands that would climb to an
// enclosing repository.
func (prober *Prober) Locate(path string) (RepositoryIdentity, error) {
	identity, identityError := prober.ResolveIdentity(path)
	if identityError != nil {
		return RepositoryIdentity{}, identityError
	}
	if workingTreeError := RequireWorkingTree(prober.fileSystem, identity); workingTreeError != nil {
		return identity, workingTreeError
	}
	return identity, nil
}

// Probe collects the state of the working tree at path.
// It returns ErrNotARepository when path has no .git entry and ErrCorruptRepository
// when the entry exists but the repository cannot be read.
func (prober *Prober) Probe(executionContext context.Context, path string) (ProbedRepository, error) {
	identity, identityError := prober.ResolveIdentity(path)
	if identityError != nil {
		return ProbedRepository{}, identityError
	}
	probed := ProbedRepository{Identity: identity, FetchOutcome: FetchNotAttempted}

	repository, openError := OpenRepository(prober.fileSystem, identity)
	if openError != nil {
		return probed, openError
	}

	branch, branchError := resolveBranch(repository)
	if branchError != nil {
		return probed, corruptRepositoryError(identity, branchError)
	}
	probed.Branch = branch

	if branch.Kind != BranchKindUnborn {
		headCommit, commitError := repository.CommitObject(plumbing.NewHash(branch.HeadHash))
		if commitError != nil {
			return probed, corruptRepositoryError(identity, commitError)
		}
		probed.LastCommit = LastCommit{Timestamp: headCommit.Committer.When, Present: true}
	}

	status, statusError := prober.readStatus(executionContext, identity)
	if statusError != nil {
		return probed, corruptRepositoryError(identity, statusError)
	}
	probed.Branch.Upstream = status.upstream
	probed.Branch.Divergence = status.divergence
	probed.Dirty = status.dirty

	if prober.options.IncludeRemote && branch.Kind == BranchKindNamed {
		probed.Remote = prober.compareWithRemote(executionContext, repository, identity, branch.Name)
	}

	prober.logger.Debug(probeCompletedMessageConstant,
		zap.String(repositoryLogFieldConstant, identity.Path),
		zap.String(branchLogFieldConstant, probed.Branch.DisplayName()),
		zap.Stringer(branchKindLogFieldConstant, probed.Branch.Kind),
	)
	return probed, nil
}

func resolveBranch(repository *git.Repository) (BranchState, error) {
	headReference, headError := repository.Reference(plumbing.HEAD, false)
	if headError != nil {
		return BranchState{}, headError
	}

	if headReference.Type() == plumbing.HashReference {
		return BranchState{Kind: BranchKindDetached, HeadHash: headReference.Hash().String()}, nil
	}

	targetName := headReference.Target()
	targetReference, targetError := repository.Reference(targetName, true)
	if errors.Is(targetError, plumbing.ErrReferenceNotFound) {
		return BranchState{Kind: BranchKindUnborn, Name: targetName.Short()}, nil
	}
	if targetError != nil {
		return BranchState{}, targetError
	}

	return BranchState{Kind: BranchKindNamed, Name: targetName.Short(), HeadHash: targetReference.Hash().String()}, nil
}

func (prober *Prober) readStatus(executionContext context.Context, identity RepositoryIdentity) (porcelainStatus, error) {
	executionResult, executionError := prober.gitExecutor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments: []string{
			gitStatusSubcommandConstant,
			gitStatusPorcelainFlagConstant,
			gitStatusBranchFlagConstant,
			gitStatusUntrackedFilesFlagConstant,
		},
		WorkingDirectory:     identity.Path,
		EnvironmentVariables: map[string]string{gitOptionalLocksEnvironmentConstant: gitDisabledEnvironmentValueConstant},
	})
	if executionError != nil {
		return porcelainStatus{}, executionError
	}
	return parsePorcelainStatus(executionResult.StandardOutput)
}

// compareWithRemote returns nil when the remote-tracking branch is missing or cannot be compared.
func (prober *Prober) compareWithRemote(executionContext context.Context, repository *git.Repository, identity RepositoryIdentity, branchName string) *RemoteComparison {
	remoteReferenceName := plumbing.NewRemoteReferenceName(prober.options.RemoteName, branchName)
	if _, referenceError := repository.Reference(remoteReferenceName, true); referenceError != nil {
		return nil
	}

	executionResult, executionError := prober.gitExecutor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments: []string{
			gitRevListSubcommandConstant,
			gitRevListLeftRightFlagConstant,
			gitRevListCountFlagConstant,
			fmt.Sprintf(gitSymmetricRangeTemplateConstant, remoteReferenceName.String()),
		},
		WorkingDirectory:     identity.Path,
		EnvironmentVariables: map[string]string{gitOptionalLocksEnvironmentConstant: gitDisabledEnvironmentValueConstant},
	})
	if executionError == nil {
		divergence, parseError := parseRevisionCounts(executionResult.StandardOutput)
		if parseError == nil {
			return &RemoteComparison{Reference: remoteReferenceName.Short(), Divergence: divergence}
		}
		executionError = parseError
	}

	prober.logger.Warn(remoteComparisonFailedMessageConstant,
		zap.String(repositoryLogFieldConstant, identity.Path),
		zap.String(remoteReferenceLogFieldConstant, remoteReferenceName.String()),
		zap.Error(executionError),
	)
	return nil
}
