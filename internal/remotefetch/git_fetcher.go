package remotefetch

import (
	"context"
	"errors"

	"github.com/temirov/gitfu/internal/execshell"
	"github.com/temirov/gitfu/internal/repos/shared"
	"github.com/temirov/gitfu/internal/repostate"
)

const (
	gitFetchSubcommandConstant           = "fetch"
	gitFetchPruneFlagConstant            = "--prune"
	gitFetchQuietFlagConstant            = "--quiet"
	gitTerminalPromptEnvironmentConstant = "GIT_TERMINAL_PROMPT"
	gitTerminalPromptDisabledConstant    = "0"
)

// ErrGitExecutorNotConfigured indicates that NewGitFetcher received no git executor.
var ErrGitExecutorNotConfigured = errors.New("git fetcher requires a git executor")

// Fetcher refreshes the remote-tracking references of one repository.
type Fetcher interface {
	Fetch(executionContext context.Context, identity repostate.RepositoryIdentity) error
}

// GitFetcher runs `git fetch --prune --quiet <remote>` without interactive credential prompts.
type GitFetcher struct {
	gitExecutor shared.GitExecutor
	remoteName  string
}

// NewGitFetcher constructs a GitFetcher for the named remote, defaulting to origin.
func NewGitFetcher(gitExecutor shared.GitExecutor, remoteName string) (*GitFetcher, error) {
	if gitExecutor == nil {
		return nil, ErrGitExecutorNotConfigured
	}
	if len(remoteName) == 0 {
		remoteName = shared.OriginRemoteNameConstant
	}
	return &GitFetcher{gitExecutor: gitExecutor, remoteName: remoteName}, nil
}

// Fetch refreshes the repository; the context bounds the subprocess lifetime.
func (fetcher *GitFetcher) Fetch(executionContext context.Context, identity repostate.RepositoryIdentity) error {
	_, executionError := fetcher.gitExecutor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:            []string{gitFetchSubcommandConstant, gitFetchPruneFlagConstant, gitFetchQuietFlagConstant, fetcher.remoteName},
		WorkingDirectory:     identity.Path,
		EnvironmentVariables: map[string]string{gitTerminalPromptEnvironmentConstant: gitTerminalPromptDisabledConstant},
	})
	return executionError
}
