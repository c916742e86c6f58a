package discovery

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"

	"github.com/temirov/gitfu/internal/repos/filesystem"
	"github.com/temirov/gitfu/internal/repos/shared"
)

const rootNotDirectoryErrorTemplateConstant = "%w: %s"

// ErrRootNotDirectory indicates that the discovery root exists but is not a directory.
var ErrRootNotDirectory = errors.New("discovery root is not a directory")

// FilesystemRepositoryDiscoverer locates git working trees among the immediate children of a root.
type FilesystemRepositoryDiscoverer struct {
	fileSystem shared.FileSystem
}

// NewFilesystemRepositoryDiscoverer constructs a repository discoverer. A nil file system uses the OS.
func NewFilesystemRepositoryDiscoverer(fileSystem shared.FileSystem) *FilesystemRepositoryDiscoverer {
	if fileSystem == nil {
		fileSystem = filesystem.OSFileSystem{}
	}
	return &FilesystemRepositoryDiscoverer{fileSystem: fileSystem}
}

// DiscoverRepositories lists the child directories of root that contain a .git entry, sorted by path.
// Symbolic links are followed; nested directories are not descended into.
func (discoverer *FilesystemRepositoryDiscoverer) DiscoverRepositories(root string) ([]string, error) {
	rootInfo, rootStatError := discoverer.fileSystem.Stat(root)
	if rootStatError != nil {
		return nil, rootStatError
	}
	if !rootInfo.IsDir() {
		return nil, fmt.Errorf(rootNotDirectoryErrorTemplateConstant, ErrRootNotDirectory, root)
	}

	directoryEntries, readError := discoverer.fileSystem.ReadDir(root)
	if readError != nil {
		return nil, readError
	}

	var repositories []string
	for _, directoryEntry := range directoryEntries {
		candidatePath := filepath.Join(root, directoryEntry.Name())
		candidateInfo, candidateStatError := discoverer.fileSystem.Stat(candidatePath)
		if candidateStatError != nil || !candidateInfo.IsDir() {
			continue
		}
		if _, metadataStatError := discoverer.fileSystem.Stat(filepath.Join(candidatePath, shared.GitMetadataEntryNameConstant)); metadataStatError != nil {
			continue
		}
		repositories = append(repositories, candidatePath)
	}

	sort.Strings(repositories)
	return repositories, nil
}
