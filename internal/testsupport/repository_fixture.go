package testsupport

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/temirov/gitfu/internal/execshell"
)

const (
	fixtureAuthorNameConstant         = "Fixture Author"
	fixtureAuthorEmailConstant        = "fixture@example.com"
	fixtureDirectoryPermissions       = 0o755
	fixtureFilePermissions            = 0o644
	gitExecutableNameConstant         = "git"
	gitUnavailableSkipMessageConstant = "git executable not available"
	fixtureRemoteURLConstant          = "https://example.invalid/fixture.git"
)

// RepositoryFixture is a go-git repository created on disk for a test.
type RepositoryFixture struct {
	Path       string
	Repository *git.Repository
	testing    testing.TB
}

// RequireGit skips the test when the git executable cannot be found.
func RequireGit(testInstance testing.TB) {
	testInstance.Helper()
	if _, lookupError := exec.LookPath(gitExecutableNameConstant); lookupError != nil {
		testInstance.Skip(gitUnavailableSkipMessageConstant)
	}
}

// NewGitExecutor returns a shell executor that runs the real git binary.
func NewGitExecutor(testInstance testing.TB) *execshell.ShellExecutor {
	testInstance.Helper()
	RequireGit(testInstance)
	executor, creationError := execshell.NewShellExecutor(zap.NewNop(), execshell.NewOSCommandRunner())
	require.NoError(testInstance, creationError)
	return executor
}

// InitRepository initializes a non-bare repository at path whose HEAD points at main.
func InitRepository(testInstance testing.TB, path string) *RepositoryFixture {
	testInstance.Helper()
	require.NoError(testInstance, os.MkdirAll(path, fixtureDirectoryPermissions))
	repository, initError := git.PlainInitWithOptions(path, &git.PlainInitOptions{
		InitOptions: git.InitOptions{DefaultBranch: plumbing.Main},
	})
	require.NoError(testInstance, initError)
	return &RepositoryFixture{Path: path, Repository: repository, testing: testInstance}
}

// WriteFile writes contents to a path relative to the working tree.
func (fixture *RepositoryFixture) WriteFile(relativePath string, contents string) {
	fixture.testing.Helper()
	absolutePath := filepath.Join(fixture.Path, relativePath)
	require.NoError(fixture.testing, os.MkdirAll(filepath.Dir(absolutePath), fixtureDirectoryPermissions))
	require.NoError(fixture.testing, os.WriteFile(absolutePath, []byte(contents), fixtureFilePermissions))
}

// RemoveFile deletes a path relative to the working tree without staging the deletion.
func (fixture *RepositoryFixture) RemoveFile(relativePath string) {
	fixture.testing.Helper()
	require.NoError(fixture.testing, os.Remove(filepath.Join(fixture.Path, relativePath)))
}

// Commit writes, stages, and commits a file with the given author and committer time.
func (fixture *RepositoryFixture) Commit(relativePath string, contents string, when time.Time) plumbing.Hash {
	fixture.testing.Helper()
	fixture.WriteFile(relativePath, contents)

	worktree, worktreeError := fixture.Repository.Worktree()
	require.NoError(fixture.testing, worktreeError)
	_, addError := worktree.Add(relativePath)
	require.NoError(fixture.testing, addError)

	signature := &object.Signature{Name: fixtureAuthorNameConstant, Email: fixtureAuthorEmailConstant, When: when}
	commitHash, commitError := worktree.Commit("update "+relativePath, &git.CommitOptions{Author: signature, Committer: signature})
	require.NoError(fixture.testing, commitError)
	return commitHash
}

// SetBranch points refs/heads/<branch> at hash.
func (fixture *RepositoryFixture) SetBranch(branch string, hash plumbing.Hash) {
	fixture.testing.Helper()
	require.NoError(fixture.testing, fixture.Repository.Storer.SetReference(plumbing.NewHashReference(plumbing.NewBranchReferenceName(branch), hash)))
}

// SetRemoteTrackingBranch points refs/remotes/<remote>/<branch> at hash.
func (fixture *RepositoryFixture) SetRemoteTrackingBranch(remote string, branch string, hash plumbing.Hash) {
	fixture.testing.Helper()
	require.NoError(fixture.testing, fixture.Repository.Storer.SetReference(plumbing.NewHashReference(plumbing.NewRemoteReferenceName(remote, branch), hash)))
}

// ConfigureUpstream declares the remote and makes <remote>/<branch> the upstream of branch.
func (fixture *RepositoryFixture) ConfigureUpstream(remote string, branch string) {
	fixture.testing.Helper()
	if _, remoteError := fixture.Repository.Remote(remote); remoteError != nil {
		_, createError := fixture.Repository.CreateRemote(&config.RemoteConfig{Name: remote, URLs: []string{fixtureRemoteURLConstant}})
		require.NoError(fixture.testing, createError)
	}
	require.NoError(fixture.testing, fixture.Repository.CreateBranch(&config.Branch{
		Name:   branch,
		Remote: remote,
		Merge:  plumbing.NewBranchReferenceName(branch),
	}))
}

// Detach points HEAD directly at hash.
func (fixture *RepositoryFixture) Detach(hash plumbing.Hash) {
	fixture.testing.Helper()
	require.NoError(fixture.testing, fixture.Repository.Storer.SetReference(plumbing.NewHashReference(plumbing.HEAD, hash)))
}
