package shared

import (
	"context"
	"io/fs"
	"time"

	"github.com/temirov/gitfu/internal/execshell"
)

const (
	// OriginRemoteNameConstant identifies the default remote compared against and fetched from.
	OriginRemoteNameConstant = "origin"
	// GitMetadataEntryNameConstant names the directory or gitdir file that marks a working tree.
	GitMetadataEntryNameConstant = ".git"
)

// Clock abstracts time acquisition for deterministic testing.
type Clock interface {
	Now() time.Time
}

// SystemClock implements Clock using the system time source.
type SystemClock struct{}

// Now returns the current system time.
func (SystemClock) Now() time.Time {
	return time.Now()
}

// FileSystem exposes filesystem operations required by repository services.
type FileSystem interface {
	Stat(path string) (fs.FileInfo, error)
	ReadDir(path string) ([]fs.DirEntry, error)
	Abs(path string) (string, error)
}

// GitExecutor exposes the subset of shell execution used by repository services.
type GitExecutor interface {
	ExecuteGit(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
}

// RepositoryDiscoverer locates the git working trees directly beneath a root directory.
type RepositoryDiscoverer interface {
	DiscoverRepositories(root string) ([]string, error)
}
