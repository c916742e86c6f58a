// Package flags binds the report flags shared by every gitfu subcommand and
// formats their usage strings.
package flags

import (
	"time"

	"github.com/spf13/pflag"

	"github.com/temirov/gitfu/internal/presentation"
	"github.com/temirov/gitfu/internal/repos/shared"
)

const (
	// RepositoryPathFlagName selects the repository, or the directory of repositories for dir-status.
	RepositoryPathFlagName      = "repo-path"
	repositoryPathFlagShorthand = "d"
	repositoryPathFlagUsage     = "Repository to inspect, or the parent directory of repositories for dir-status"
	// FetchFlagName enables refreshing remote-tracking branches before probing.
	FetchFlagName      = "fetch"
	fetchFlagShorthand = "f"
	fetchFlagUsage     = "Fetch from the remote before reporting"
	// TimeoutFlagName bounds each fetch.
	TimeoutFlagName      = "timeout"
	timeoutFlagShorthand = "t"
	timeoutFlagUsage     = "Per-repository fetch timeout as milliseconds or a duration such as 2.5s; the first timeout disables fetching for the rest of the run"
	// RemoteStatusFlagName adds the remote comparison to the prompt token.
	RemoteStatusFlagName      = "remote-status"
	remoteStatusFlagShorthand = "r"
	remoteStatusFlagUsage     = "Show the comparison with the remote branch in the prompt token"
	// PlainTablesFlagName switches tables to whitespace-aligned columns.
	PlainTablesFlagName      = "plain-tables"
	plainTablesFlagShorthand = "p"
	plainTablesFlagUsage     = "Render tables without borders"
	// RemoteFlagName names the remote used for fetching and comparison.
	RemoteFlagName  = "remote"
	remoteFlagUsage = "Remote to fetch from and compare against"
	// WorkersFlagName bounds how many repositories dir-status inspects at once.
	WorkersFlagName  = "workers"
	workersFlagUsage = "Number of repositories dir-status inspects concurrently"
	// ColorFlagName selects when ANSI colors are emitted.
	ColorFlagName  = "color"
	colorFlagUsage = "Color output mode"
)

// ReportFlagValues receives the parsed report flags.
type ReportFlagValues struct {
	RepositoryPath string
	Fetch          bool
	Timeout        time.Duration
	RemoteStatus   bool
	PlainTables    bool
	RemoteName     string
	Workers        int
	ColorMode      string
}

// BindReportFlags registers the report flags on flagSet, showing defaults in help output.
func BindReportFlags(flagSet *pflag.FlagSet, defaults shared.ReportConfiguration) *ReportFlagValues {
	values := &ReportFlagValues{}
	colorChoices := []string{string(presentation.ColorModeAlways), string(presentation.ColorModeAuto), string(presentation.ColorModeNever)}

	flagSet.StringVarP(&values.RepositoryPath, RepositoryPathFlagName, repositoryPathFlagShorthand, defaults.RepositoryPath, repositoryPathFlagUsage)
	flagSet.BoolVarP(&values.Fetch, FetchFlagName, fetchFlagShorthand, defaults.Fetch, fetchFlagUsage)
	flagSet.VarP(NewDurationValue(&values.Timeout, defaults.Timeout), TimeoutFlagName, timeoutFlagShorthand, timeoutFlagUsage)
	flagSet.BoolVarP(&values.RemoteStatus, RemoteStatusFlagName, remoteStatusFlagShorthand, defaults.RemoteStatus, remoteStatusFlagUsage)
	flagSet.BoolVarP(&values.PlainTables, PlainTablesFlagName, plainTablesFlagShorthand, defaults.PlainTables, plainTablesFlagUsage)
	flagSet.StringVar(&values.RemoteName, RemoteFlagName, defaults.RemoteName, remoteFlagUsage)
	flagSet.IntVar(&values.Workers, WorkersFlagName, defaults.Workers, workersFlagUsage)
	colorValue := NewChoiceValue(&values.ColorMode, defaults.ColorMode, colorChoices)
	flagSet.Var(colorValue, ColorFlagName, colorValue.Usage(colorFlagUsage))

	return values
}

// Apply overrides configuration with every report flag set explicitly in flagSet.
func (values *ReportFlagValues) Apply(flagSet *pflag.FlagSet, configuration shared.ReportConfiguration) shared.ReportConfiguration {
	if values == nil || flagSet == nil {
		return configuration
	}
	if flagSet.Changed(RepositoryPathFlagName) {
		configuration.RepositoryPath = values.RepositoryPath
	}
	if flagSet.Changed(FetchFlagName) {
		configuration.Fetch = values.Fetch
	}
	if flagSet.Changed(TimeoutFlagName) {
		configuration.Timeout = values.Timeout
	}
	if flagSet.Changed(RemoteStatusFlagName) {
		configuration.RemoteStatus = values.RemoteStatus
	}
	if flagSet.Changed(PlainTablesFlagName) {
		configuration.PlainTables = values.PlainTables
	}
	if flagSet.Changed(RemoteFlagName) {
		configuration.RemoteName = values.RemoteName
	}
	if flagSet.Changed(WorkersFlagName) {
		configuration.Workers = values.Workers
	}
	if flagSet.Changed(ColorFlagName) {
		configuration.ColorMode = values.ColorMode
	}
	return configuration
}
