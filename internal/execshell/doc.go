// Package execshell provides structured helpers for invoking the git CLI.
//
// It wraps os/exec with logging and context cancellation via ShellExecutor,
// exposes OSCommandRunner for default process execution, and defines the
// abstractions gitfu uses to run git status, rev-list, and fetch in a testable
// manner.
package execshell
