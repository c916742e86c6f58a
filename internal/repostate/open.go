package repostate

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	git "github.com/go-git/go-git/v5"

	"github.com/temirov/gitfu/internal/repos/shared"
)

const (
	notRepositoryErrorTemplateConstant     = "%w: %s"
	corruptRepositoryErrorTemplateConstant = "%w: %s: %w"
)

// RequireWorkingTree reports whether identity names a working tree without opening it.
// A missing .git entry yields ErrNotARepository and an unreadable one ErrCorruptRepository.
func RequireWorkingTree(fileSystem shared.FileSystem, identity RepositoryIdentity) error {
	if _, metadataError := fileSystem.Stat(filepath.Join(identity.Path, shared.GitMetadataEntryNameConstant)); metadataError != nil {
		if errors.Is(metadataError, os.ErrNotExist) {
			return fmt.Errorf(notRepositoryErrorTemplateConstant, ErrNotARepository, identity.Path)
		}
		return corruptRepositoryError(identity, metadataError)
	}
	return nil
}

// OpenRepository opens the working tree identified by identity for reading.
// It fails the same way as RequireWorkingTree, and with ErrCorruptRepository
// when go-git cannot read the repository.
func OpenRepository(fileSystem shared.FileSystem, identity RepositoryIdentity) (*git.Repository, error) {
	if workingTreeError := RequireWorkingTree(fileSystem, identity); workingTreeError != nil {
		return nil, workingTreeError
	}

	repository, openError := git.PlainOpenWithOptions(identity.Path, &git.PlainOpenOptions{EnableDotGitCommonDir: true})
	if openError != nil {
		return nil, corruptRepositoryError(identity, openError)
	}
	return repository, nil
}

func corruptRepositoryError(identity RepositoryIdentity, cause error) error {
	return fmt.Errorf(corruptRepositoryErrorTemplateConstant, ErrCorruptRepository, identity.Path, cause)
}
