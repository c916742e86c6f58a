package dirstatus_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/temirov/gitfu/internal/dirstatus"
	"github.com/temirov/gitfu/internal/presentation"
	"github.com/temirov/gitfu/internal/repos/shared"
	"github.com/temirov/gitfu/internal/testsupport"
)

func executeDirStatus(testInstance *testing.T, configuration shared.ReportConfiguration, arguments ...string) (string, string, error) {
	testInstance.Helper()
	builder := dirstatus.CommandBuilder{
		ConfigurationProvider: func() shared.ReportConfiguration { return configuration },
		GitExecutor:           testsupport.NewGitExecutor(testInstance),
	}
	command, buildError := builder.Build()
	require.NoError(testInstance, buildError)

	standardOutput := &bytes.Buffer{}
	standardError := &bytes.Buffer{}
	command.SetOut(standardOutput)
	command.SetErr(standardError)
	command.SetArgs(arguments)
	command.SilenceUsage = true
	command.SilenceErrors = true

	executionError := command.Execute()
	return standardOutput.String(), standardError.String(), executionError
}

func plainConfiguration(root string) shared.ReportConfiguration {
	configuration := shared.DefaultReportConfiguration()
	configuration.RepositoryPath = root
	configuration.PlainTables = true
	configuration.ColorMode = "never"
	return configuration
}

func TestDirStatusCommandRendersTable(testInstance *testing.T) {
	rootDirectory := testInstance.TempDir()
	commitTime := time.Date(2024, time.May, 4, 10, 30, 0, 0, time.UTC)

	alphaFixture := testsupport.InitRepository(testInstance, filepath.Join(rootDirectory, "alpha"))
	alphaFixture.Commit("README.md", "alpha\n", commitTime)
	alphaFixture.WriteFile("README.md", "edited\n")

	betaFixture := testsupport.InitRepository(testInstance, filepath.Join(rootDirectory, "beta"))
	betaFixture.Commit("README.md", "beta\n", commitTime)

	require.NoError(testInstance, os.MkdirAll(filepath.Join(rootDirectory, "broken", ".git"), 0o755))
	require.NoError(testInstance, os.MkdirAll(filepath.Join(rootDirectory, "photos"), 0o755))

	standardOutput, standardError, executionError := executeDirStatus(testInstance, plainConfiguration(rootDirectory))
	require.NoError(testInstance, executionError)

	lines := strings.Split(strings.TrimRight(standardOutput, "\n"), "\n")
	require.Len(testInstance, lines, 4)
	require.True(testInstance, strings.HasPrefix(lines[0], "Repo"))
	require.True(testInstance, strings.HasPrefix(lines[1], "alpha"))
	require.Contains(testInstance, lines[1], "●1")
	require.True(testInstance, strings.HasPrefix(lines[2], "beta"))
	require.True(testInstance, strings.HasPrefix(lines[3], "broken"))
	require.Contains(testInstance, lines[3], "✘ error")
	require.NotContains(testInstance, standardOutput, "photos")
	require.NotContains(testInstance, standardOutput, "\x1b[")

	require.Contains(testInstance, standardError, "warning: broken:")
}

func TestDirStatusCommandFailsForUnusableRoot(testInstance *testing.T) {
	missingRoot := filepath.Join(testInstance.TempDir(), "missing")

	standardOutput, _, executionError := executeDirStatus(testInstance, plainConfiguration(missingRoot))
	require.ErrorIs(testInstance, executionError, dirstatus.ErrRootUnusable)
	require.Empty(testInstance, standardOutput)
}

func TestDirStatusCommandRejectsArguments(testInstance *testing.T) {
	_, _, executionError := executeDirStatus(testInstance, plainConfiguration(testInstance.TempDir()), "extra")
	require.Error(testInstance, executionError)
}

func TestDirStatusCommandRejectsUnknownColorMode(testInstance *testing.T) {
	configuration := plainConfiguration(testInstance.TempDir())
	configuration.ColorMode = "sometimes"

	_, _, executionError := executeDirStatus(testInstance, configuration)
	require.ErrorIs(testInstance, executionError, presentation.ErrUnsupportedColorMode)
}
