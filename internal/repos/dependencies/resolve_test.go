package dependencies_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/temirov/gitfu/internal/execshell"
	"github.com/temirov/gitfu/internal/repos/dependencies"
	"github.com/temirov/gitfu/internal/repos/discovery"
	"github.com/temirov/gitfu/internal/repos/filesystem"
	"github.com/temirov/gitfu/internal/repos/shared"
)

func TestResolversReturnDefaultsWhenUnset(testInstance *testing.T) {
	require.IsType(testInstance, &discovery.FilesystemRepositoryDiscoverer{}, dependencies.ResolveRepositoryDiscoverer(nil))
	require.IsType(testInstance, filesystem.OSFileSystem{}, dependencies.ResolveFileSystem(nil))
	require.IsType(testInstance, shared.SystemClock{}, dependencies.ResolveClock(nil))

	gitExecutor, resolutionError := dependencies.ResolveGitExecutor(nil, zap.NewNop())
	require.NoError(testInstance, resolutionError)
	require.IsType(testInstance, &execshell.ShellExecutor{}, gitExecutor)
}

func TestResolveGitExecutorRequiresLogger(testInstance *testing.T) {
	_, resolutionError := dependencies.ResolveGitExecutor(nil, nil)
	require.ErrorIs(testInstance, resolutionError, execshell.ErrLoggerNotConfigured)
}
