package discovery_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/gitfu/internal/repos/discovery"
)

const (
	alphaRepositoryDirectoryName   = "alpha"
	betaRepositoryDirectoryName    = "beta"
	worktreeDirectoryName          = "linked"
	plainDirectoryName             = "notes"
	linkedRepositoryName           = "zeta-link"
	nestedGroupDirectoryName       = "group"
	nestedRepositoryDirectoryName  = "nested"
	regularFileName                = "README.md"
	gitMetadataDirectoryName       = ".git"
	gitDirFileContents             = "gitdir: /elsewhere/.git/worktrees/linked\n"
	repositoryDirectoryPermissions = 0o755
	regularFilePermissions         = 0o644
)

func TestFilesystemRepositoryDiscovererListsImmediateRepositories(testFramework *testing.T) {
	rootDirectory := testFramework.TempDir()

	for _, repositoryName := range []string{betaRepositoryDirectoryName, alphaRepositoryDirectoryName} {
		require.NoError(testFramework, os.MkdirAll(filepath.Join(rootDirectory, repositoryName, gitMetadataDirectoryName), repositoryDirectoryPermissions))
	}
	require.NoError(testFramework, os.MkdirAll(filepath.Join(rootDirectory, worktreeDirectoryName), repositoryDirectoryPermissions))
	require.NoError(testFramework, os.WriteFile(filepath.Join(rootDirectory, worktreeDirectoryName, gitMetadataDirectoryName), []byte(gitDirFileContents), regularFilePermissions))
	require.NoError(testFramework, os.MkdirAll(filepath.Join(rootDirectory, plainDirectoryName), repositoryDirectoryPermissions))
	require.NoError(testFramework, os.MkdirAll(filepath.Join(rootDirectory, nestedGroupDirectoryName, nestedRepositoryDirectoryName, gitMetadataDirectoryName), repositoryDirectoryPermissions))
	require.NoError(testFramework, os.WriteFile(filepath.Join(rootDirectory, regularFileName), []byte("readme"), regularFilePermissions))

	linkTarget := filepath.Join(testFramework.TempDir(), "target")
	require.NoError(testFramework, os.MkdirAll(filepath.Join(linkTarget, gitMetadataDirectoryName), repositoryDirectoryPermissions))
	require.NoError(testFramework, os.Symlink(linkTarget, filepath.Join(rootDirectory, linkedRepositoryName)))

	discoverer := discovery.NewFilesystemRepositoryDiscoverer(nil)
	repositories, discoveryError := discoverer.DiscoverRepositories(rootDirectory)
	require.NoError(testFramework, discoveryError)

	require.Equal(testFramework, []string{
		filepath.Join(rootDirectory, alphaRepositoryDirectoryName),
		filepath.Join(rootDirectory, betaRepositoryDirectoryName),
		filepath.Join(rootDirectory, worktreeDirectoryName),
		filepath.Join(rootDirectory, linkedRepositoryName),
	}, repositories)
}

func TestFilesystemRepositoryDiscovererRejectsUnusableRoots(testFramework *testing.T) {
	rootDirectory := testFramework.TempDir()
	regularFilePath := filepath.Join(rootDirectory, regularFileName)
	require.NoError(testFramework, os.WriteFile(regularFilePath, []byte("readme"), regularFilePermissions))

	testCases := []struct {
		name          string
		root          string
		expectedError error
	}{
		{name: "missing_root", root: filepath.Join(rootDirectory, "missing"), expectedError: os.ErrNotExist},
		{name: "file_root", root: regularFilePath, expectedError: discovery.ErrRootNotDirectory},
	}

	for _, testCase := range testCases {
		testFramework.Run(testCase.name, func(testFramework *testing.T) {
			repositories, discoveryError := discovery.NewFilesystemRepositoryDiscoverer(nil).DiscoverRepositories(testCase.root)
			require.ErrorIs(testFramework, discoveryError, testCase.expectedError)
			require.Nil(testFramework, repositories)
		})
	}
}

func TestFilesystemRepositoryDiscovererReturnsEmptyForRootWithoutRepositories(testFramework *testing.T) {
	rootDirectory := testFramework.TempDir()
	require.NoError(testFramework, os.MkdirAll(filepath.Join(rootDirectory, plainDirectoryName), repositoryDirectoryPermissions))

	repositories, discoveryError := discovery.NewFilesystemRepositoryDiscoverer(nil).DiscoverRepositories(rootDirectory)
	require.NoError(testFramework, discoveryError)
	require.Empty(testFramework, repositories)
}
