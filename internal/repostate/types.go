package repostate

import (
	"fmt"
	"time"
)

const (
	shortHashLengthConstant = 7

	branchKindNamedLabelConstant    = "named"
	branchKindDetachedLabelConstant = "detached"
	branchKindUnbornLabelConstant   = "unborn"

	fetchOutcomeNotAttemptedLabelConstant = "not_attempted"
	fetchOutcomeSucceededLabelConstant    = "succeeded"
	fetchOutcomeTimedOutLabelConstant     = "timed_out"
	fetchOutcomeFailedLabelConstant       = "failed"

	unknownEnumerationTemplateConstant = "unknown(%d)"
)

// RepositoryIdentity names a working tree by the base name of its absolute path.
type RepositoryIdentity struct {
	Name string
	Path string
}

// BranchKind distinguishes a checked-out branch from a detached or unborn HEAD.
type BranchKind int

const (
	// BranchKindNamed marks HEAD pointing at an existing local branch.
	BranchKindNamed BranchKind = iota
	// BranchKindDetached marks HEAD pointing directly at a commit.
	BranchKindDetached
	// BranchKindUnborn marks HEAD pointing at a branch without commits.
	BranchKindUnborn
)

// String returns the lowercase label of the kind.
func (kind BranchKind) String() string {
	switch kind {
	case BranchKindNamed:
		return branchKindNamedLabelConstant
	case BranchKindDetached:
		return branchKindDetachedLabelConstant
	case BranchKindUnborn:
		return branchKindUnbornLabelConstant
	default:
		return fmt.Sprintf(unknownEnumerationTemplateConstant, int(kind))
	}
}

// Divergence counts commits reachable only from the local side (Ahead) and only from the other side (Behind).
type Divergence struct {
	Ahead  int
	Behind int
}

// IsZero reports whether both sides point at the same history.
func (divergence Divergence) IsZero() bool {
	return divergence.Ahead == 0 && divergence.Behind == 0
}

// BranchState describes what HEAD refers to and how it relates to its upstream.
// Divergence is nil when no upstream-tracking reference exists.
type BranchState struct {
	Kind       BranchKind
	Name       string
	HeadHash   string
	Upstream   string
	Divergence *Divergence
}

// DisplayName returns the branch name, or the abbreviated commit hash for a detached HEAD.
func (branch BranchState) DisplayName() string {
	if branch.Kind != BranchKindDetached {
		return branch.Name
	}
	if len(branch.HeadHash) > shortHashLengthConstant {
		return branch.HeadHash[:shortHashLengthConstant]
	}
	return branch.HeadHash
}

// Diverged reports whether an upstream exists and the histories differ.
func (branch BranchState) Diverged() bool {
	return branch.Divergence != nil && !branch.Divergence.IsZero()
}

// DirtyState counts uncommitted paths per change bucket.
type DirtyState struct {
	Added    int
	Modified int
	Deleted  int
}

// Clean reports whether no uncommitted changes exist.
func (dirty DirtyState) Clean() bool {
	return dirty.Added == 0 && dirty.Modified == 0 && dirty.Deleted == 0
}

// Changed returns the number of modified and deleted paths.
func (dirty DirtyState) Changed() int {
	return dirty.Modified + dirty.Deleted
}

// FetchOutcome records what happened to the remote refresh of a repository.
// It only moves away from FetchNotAttempted, never back.
type FetchOutcome int

const (
	// FetchNotAttempted means no refresh ran, either by request or because the run budget was exhausted.
	FetchNotAttempted FetchOutcome = iota
	// FetchSucceeded means remote-tracking references were refreshed.
	FetchSucceeded
	// FetchTimedOut means the refresh exceeded the per-repository timeout.
	FetchTimedOut
	// FetchFailed means the refresh failed for a reason other than the timeout.
	FetchFailed
)

// String returns the snake_case label of the outcome.
func (outcome FetchOutcome) String() string {
	switch outcome {
	case FetchNotAttempted:
		return fetchOutcomeNotAttemptedLabelConstant
	case FetchSucceeded:
		return fetchOutcomeSucceededLabelConstant
	case FetchTimedOut:
		return fetchOutcomeTimedOutLabelConstant
	case FetchFailed:
		return fetchOutcomeFailedLabelConstant
	default:
		return fmt.Sprintf(unknownEnumerationTemplateConstant, int(outcome))
	}
}

// LastCommit holds the committer time of HEAD. Present is false for an unborn branch.
type LastCommit struct {
	Timestamp time.Time
	Present   bool
}

// Age returns the elapsed time since the commit truncated to whole seconds, never negative.
func (lastCommit LastCommit) Age(now time.Time) time.Duration {
	if !lastCommit.Present {
		return 0
	}
	elapsed := now.Sub(lastCommit.Timestamp)
	if elapsed < 0 {
		return 0
	}
	return elapsed.Truncate(time.Second)
}

// RemoteComparison is the divergence of HEAD against refs/remotes/<remote>/<branch>.
type RemoteComparison struct {
	Reference  string
	Divergence Divergence
}

// ProbedRepository aggregates everything known about one working tree.
// ProbeError is set for repositories that exist but could not be read.
type ProbedRepository struct {
	Identity     RepositoryIdentity
	Branch       BranchState
	Dirty        DirtyState
	LastCommit   LastCommit
	Remote       *RemoteComparison
	FetchOutcome FetchOutcome
	ProbeError   error
}

// Healthy reports whether the repository was probed without error.
func (repository ProbedRepository) Healthy() bool {
	return repository.ProbeError == nil
}

// InSync reports whether the working tree is clean and not diverged from its upstream.
func (repository ProbedRepository) InSync() bool {
	return repository.Dirty.Clean() && !repository.Branch.Diverged()
}

// BranchSummary is a local branch and the committer time of its tip commit.
type BranchSummary struct {
	Name       string
	LastCommit time.Time
}
