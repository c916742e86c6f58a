// Package repostate probes a git working tree and aggregates its branch
// identity, upstream divergence, uncommitted-change counts, last commit time,
// and optional comparison with a remote-tracking branch into a
// ProbedRepository value.
//
// Repository metadata (HEAD, commits, references) is read with go-git. Working
// tree status and commit counting run through the git CLI with optional locks
// disabled, so probing never writes to the repository.
package repostate
