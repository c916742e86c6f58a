package repostate

import "errors"

var (
	// ErrNotARepository indicates that the path carries no .git entry.
	ErrNotARepository = errors.New("not a git repository")
	// ErrCorruptRepository indicates that a .git entry exists but the repository cannot be read.
	ErrCorruptRepository = errors.New("unreadable git repository")
	// ErrGitExecutorNotConfigured indicates that NewProber received no git executor.
	ErrGitExecutorNotConfigured = errors.New("repository prober requires a git executor")
)
