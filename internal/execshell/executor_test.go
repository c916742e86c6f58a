package execshell_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/temirov/gitfu/internal/execshell"
)

const (
	testRepositoryDirectoryConstant = "/workspace/alpha"
	testStatusArgumentConstant      = "status"
	testPorcelainArgumentConstant   = "--porcelain=v2"
)

type recordingCommandRunner struct {
	executionResult  execshell.ExecutionResult
	executionError   error
	recordedCommands []execshell.ShellCommand
}

func (runner *recordingCommandRunner) Run(executionContext context.Context, command execshell.ShellCommand) (execshell.ExecutionResult, error) {
	runner.recordedCommands = append(runner.recordedCommands, command)
	return runner.executionResult, runner.executionError
}

func statusDetails() execshell.CommandDetails {
	return execshell.CommandDetails{
		Arguments:            []string{testStatusArgumentConstant, testPorcelainArgumentConstant},
		WorkingDirectory:     testRepositoryDirectoryConstant,
		EnvironmentVariables: map[string]string{"GIT_OPTIONAL_LOCKS": "0"},
	}
}

func TestNewShellExecutorRequiresDependencies(testInstance *testing.T) {
	_, missingLoggerError := execshell.NewShellExecutor(nil, &recordingCommandRunner{})
	require.ErrorIs(testInstance, missingLoggerError, execshell.ErrLoggerNotConfigured)

	_, missingRunnerError := execshell.NewShellExecutor(zap.NewNop(), nil)
	require.ErrorIs(testInstance, missingRunnerError, execshell.ErrCommandRunnerNotConfigured)

	executor, creationError := execshell.NewShellExecutor(zap.NewNop(), &recordingCommandRunner{})
	require.NoError(testInstance, creationError)
	require.NotNil(testInstance, executor)
}

func TestShellExecutorExecuteGitOutcomes(testInstance *testing.T) {
	testCases := []struct {
		name                 string
		runnerResult         execshell.ExecutionResult
		runnerError          error
		expectedOutput       string
		expectedErrorType    any
		expectedLevels       []zapcore.Level
		expectedFinalMessage string
	}{
		{
			name:                 "success",
			runnerResult:         execshell.ExecutionResult{StandardOutput: "# branch.head main\n"},
			expectedOutput:       "# branch.head main\n",
			expectedLevels:       []zapcore.Level{zapcore.DebugLevel, zapcore.DebugLevel},
			expectedFinalMessage: "Collected working tree status for /workspace/alpha",
		},
		{
			name:                 "non_zero_exit",
			runnerResult:         execshell.ExecutionResult{ExitCode: 128, StandardError: "fatal: bad object HEAD\n", StandardOutput: "partial"},
			expectedErrorType:    execshell.CommandFailedError{},
			expectedLevels:       []zapcore.Level{zapcore.DebugLevel, zapcore.DebugLevel},
			expectedFinalMessage: "Failed to review working tree status in /workspace/alpha (exit code 128: fatal: bad object HEAD)",
		},
		{
			name:                 "runner_failure",
			runnerError:          errors.New("exec: \"git\": executable file not found in $PATH"),
			expectedErrorType:    execshell.CommandExecutionError{},
			expectedLevels:       []zapcore.Level{zapcore.DebugLevel, zapcore.WarnLevel},
			expectedFinalMessage: "Unable to review working tree status in /workspace/alpha: exec: \"git\": executable file not found in $PATH",
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			observerCore, observerLogs := observer.New(zapcore.DebugLevel)
			recordingRunner := &recordingCommandRunner{executionResult: testCase.runnerResult, executionError: testCase.runnerError}

			executor, creationError := execshell.NewShellExecutor(zap.New(observerCore), recordingRunner)
			require.NoError(testInstance, creationError)

			executionResult, executionError := executor.ExecuteGit(context.Background(), statusDetails())

			require.Len(testInstance, recordingRunner.recordedCommands, 1)
			require.Equal(testInstance, execshell.CommandGit, recordingRunner.recordedCommands[0].Name)
			require.Equal(testInstance, statusDetails(), recordingRunner.recordedCommands[0].Details)

			if testCase.expectedErrorType != nil {
				require.IsType(testInstance, testCase.expectedErrorType, executionError)
				require.Equal(testInstance, execshell.ExecutionResult{}, executionResult)
			} else {
				require.NoError(testInstance, executionError)
				require.Equal(testInstance, testCase.expectedOutput, executionResult.StandardOutput)
			}

			loggedEntries := observerLogs.All()
			require.Len(testInstance, loggedEntries, len(testCase.expectedLevels))
			for entryIndex, expectedLevel := range testCase.expectedLevels {
				require.Equal(testInstance, expectedLevel, loggedEntries[entryIndex].Level)
				require.Equal(testInstance, testRepositoryDirectoryConstant, loggedEntries[entryIndex].ContextMap()["working_directory"])
			}
			require.Equal(testInstance, "Reviewing working tree status in /workspace/alpha", loggedEntries[0].Message)
			require.Equal(testInstance, testCase.expectedFinalMessage, loggedEntries[len(loggedEntries)-1].Message)
		})
	}
}

func TestShellExecutorLogsDescriptiveLifecycleMessages(testInstance *testing.T) {
	observerCore, observerLogs := observer.New(zap.DebugLevel)
	recordingRunner := &recordingCommandRunner{}

	executor, creationError := execshell.NewShellExecutor(zap.New(observerCore), recordingRunner)
	require.NoError(testInstance, creationError)

	_, executionError := executor.ExecuteGit(context.Background(), execshell.CommandDetails{
		Arguments:        []string{"fetch", "--prune", "--quiet", "origin"},
		WorkingDirectory: testRepositoryDirectoryConstant,
	})
	require.NoError(testInstance, executionError)

	loggedEntries := observerLogs.All()
	require.Len(testInstance, loggedEntries, 2)
	require.Equal(testInstance, "Fetching from origin in /workspace/alpha", loggedEntries[0].Message)
	require.Equal(testInstance, "Fetched from origin in /workspace/alpha", loggedEntries[1].Message)
}

func TestShellExecutorExposesContextErrors(testInstance *testing.T) {
	recordingRunner := &recordingCommandRunner{executionError: context.DeadlineExceeded}

	executor, creationError := execshell.NewShellExecutor(zap.NewNop(), recordingRunner)
	require.NoError(testInstance, creationError)

	_, executionError := executor.ExecuteGit(context.Background(), execshell.CommandDetails{})
	require.ErrorIs(testInstance, executionError, context.DeadlineExceeded)

	var executionFailure execshell.CommandExecutionError
	require.True(testInstance, errors.As(executionError, &executionFailure))
	require.Equal(testInstance, execshell.CommandGit, executionFailure.Command.Name)
}

func TestShellExecutorFailureErrorIncludesStandardError(testInstance *testing.T) {
	recordingRunner := &recordingCommandRunner{
		executionResult: execshell.ExecutionResult{ExitCode: 128, StandardError: "fatal: not a git repository\n"},
	}

	executor, creationError := execshell.NewShellExecutor(zap.NewNop(), recordingRunner)
	require.NoError(testInstance, creationError)

	_, executionError := executor.ExecuteGit(context.Background(), execshell.CommandDetails{})
	require.EqualError(testInstance, executionError, "git exited with code 128: fatal: not a git repository")
}
