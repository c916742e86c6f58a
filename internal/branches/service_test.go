package branches_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/temirov/gitfu/internal/branches"
	"github.com/temirov/gitfu/internal/repostate"
	"github.com/temirov/gitfu/internal/testsupport"
)

var (
	olderCommitTime = time.Date(2024, time.April, 1, 8, 0, 0, 0, time.UTC)
	newerCommitTime = time.Date(2024, time.May, 4, 10, 30, 0, 0, time.UTC)
)

func createBranchFixture(testInstance *testing.T) string {
	testInstance.Helper()
	repositoryPath := filepath.Join(testInstance.TempDir(), "widget")
	fixture := testsupport.InitRepository(testInstance, repositoryPath)

	olderHash := fixture.Commit("README.md", "first\n", olderCommitTime)
	fixture.SetBranch("release/1.0", olderHash)
	fixture.SetBranch("archive", olderHash)
	fixture.Commit("main.go", "package main\n", newerCommitTime)
	return repositoryPath
}

func TestListBranchesOrdersNewestFirst(testInstance *testing.T) {
	repositoryPath := createBranchFixture(testInstance)

	summaries, listError := branches.NewService(zap.NewNop(), nil).ListBranches(repositoryPath)
	require.NoError(testInstance, listError)
	require.Len(testInstance, summaries, 3)

	require.Equal(testInstance, "main", summaries[0].Name)
	require.True(testInstance, newerCommitTime.Equal(summaries[0].LastCommit))
	require.Equal(testInstance, "archive", summaries[1].Name)
	require.Equal(testInstance, "release/1.0", summaries[2].Name)
	require.True(testInstance, olderCommitTime.Equal(summaries[2].LastCommit))
}

func TestListBranchesWithoutCommits(testInstance *testing.T) {
	repositoryPath := filepath.Join(testInstance.TempDir(), "empty")
	testsupport.InitRepository(testInstance, repositoryPath)

	summaries, listError := branches.NewService(nil, nil).ListBranches(repositoryPath)
	require.NoError(testInstance, listError)
	require.Empty(testInstance, summaries)
}

func TestListBranchesClassifiesUnreadablePaths(testInstance *testing.T) {
	rootDirectory := testInstance.TempDir()
	plainDirectory := filepath.Join(rootDirectory, "plain")
	require.NoError(testInstance, os.MkdirAll(plainDirectory, 0o755))
	brokenDirectory := filepath.Join(rootDirectory, "broken")
	require.NoError(testInstance, os.MkdirAll(filepath.Join(brokenDirectory, ".git"), 0o755))

	service := branches.NewService(nil, nil)

	_, plainError := service.ListBranches(plainDirectory)
	require.ErrorIs(testInstance, plainError, repostate.ErrNotARepository)

	_, brokenError := service.ListBranches(brokenDirectory)
	require.ErrorIs(testInstance, brokenError, repostate.ErrCorruptRepository)
}
