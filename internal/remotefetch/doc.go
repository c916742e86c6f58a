// Package remotefetch refreshes remote-tracking references before a repository
// is probed. A RunBudget shared by every repository of one invocation bounds
// each refresh by a timeout; the first refresh that exceeds it disables
// fetching for the rest of the run.
package remotefetch
