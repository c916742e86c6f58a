package testsupport

import (
	"context"
	"sync"

	"github.com/temirov/gitfu/internal/execshell"
)

// RepositoryDiscovererStub implements repository discovery for tests.
type RepositoryDiscovererStub struct {
	Repositories   []string
	DiscoveryError error
	ReceivedRoots  []string
}

// DiscoverRepositories records the requested root and returns the configured repositories.
func (discoverer *RepositoryDiscovererStub) DiscoverRepositories(root string) ([]string, error) {
	discoverer.ReceivedRoots = append(discoverer.ReceivedRoots, root)
	if discoverer.DiscoveryError != nil {
		return nil, discoverer.DiscoveryError
	}
	return append([]string{}, discoverer.Repositories...), nil
}

// GitResponse is the scripted reply to a git invocation.
type GitResponse struct {
	Result execshell.ExecutionResult
	Error  error
}

// CommandExecutorStub records git invocations and replies with scripted responses.
// Responses are keyed by working directory and then by git subcommand; Fallback
// answers invocations without a scripted response, and Delegate, when set,
// handles them instead.
type CommandExecutorStub struct {
	Responses map[string]map[string]GitResponse
	Fallback  GitResponse
	Delegate  interface {
		ExecuteGit(context.Context, execshell.CommandDetails) (execshell.ExecutionResult, error)
	}

	mutex               sync.Mutex
	executedGitCommands []execshell.CommandDetails
}

// ExecuteGit records the invocation and returns the configured response.
func (executor *CommandExecutorStub) ExecuteGit(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error) {
	executor.mutex.Lock()
	executor.executedGitCommands = append(executor.executedGitCommands, details)
	executor.mutex.Unlock()

	subcommand := ""
	if len(details.Arguments) > 0 {
		subcommand = details.Arguments[0]
	}
	if directoryResponses, exists := executor.Responses[details.WorkingDirectory]; exists {
		if response, scripted := directoryResponses[subcommand]; scripted {
			return response.Result, response.Error
		}
	}
	if executor.Delegate != nil {
		return executor.Delegate.ExecuteGit(executionContext, details)
	}
	return executor.Fallback.Result, executor.Fallback.Error
}

// ExecutedGitCommands returns a copy of the recorded invocations.
func (executor *CommandExecutorStub) ExecutedGitCommands() []execshell.CommandDetails {
	executor.mutex.Lock()
	defer executor.mutex.Unlock()
	return append([]execshell.CommandDetails{}, executor.executedGitCommands...)
}
