package shared

import (
	"strings"
	"time"
)

const (
	// DefaultRepositoryPathConstant is the working directory inspected when no path is configured.
	DefaultRepositoryPathConstant = "."
	// DefaultFetchTimeoutConstant bounds a single remote refresh.
	DefaultFetchTimeoutConstant = 2500 * time.Millisecond
	// DefaultWorkerCountConstant keeps directory scans sequential.
	DefaultWorkerCountConstant = 1
	// DefaultColorModeConstant always emits ANSI styling, matching shell prompt usage.
	DefaultColorModeConstant = "always"
)

// ReportConfiguration captures the settings shared by the prompt, dir-status, and branches commands.
type ReportConfiguration struct {
	RepositoryPath string        `mapstructure:"repository_path"`
	Fetch          bool          `mapstructure:"fetch"`
	Timeout        time.Duration `mapstructure:"timeout"`
	RemoteStatus   bool          `mapstructure:"remote_status"`
	PlainTables    bool          `mapstructure:"plain_tables"`
	RemoteName     string        `mapstructure:"remote"`
	Workers        int           `mapstructure:"workers"`
	ColorMode      string        `mapstructure:"color"`
}

// DefaultReportConfiguration provides baseline configuration values.
func DefaultReportConfiguration() ReportConfiguration {
	return ReportConfiguration{
		RepositoryPath: DefaultRepositoryPathConstant,
		Fetch:          false,
		Timeout:        DefaultFetchTimeoutConstant,
		RemoteStatus:   false,
		PlainTables:    false,
		RemoteName:     OriginRemoteNameConstant,
		Workers:        DefaultWorkerCountConstant,
		ColorMode:      DefaultColorModeConstant,
	}
}

// Sanitize trims textual values and replaces unusable ones with defaults.
func (configuration ReportConfiguration) Sanitize() ReportConfiguration {
	defaults := DefaultReportConfiguration()
	sanitized := configuration

	sanitized.RepositoryPath = strings.TrimSpace(configuration.RepositoryPath)
	if len(sanitized.RepositoryPath) == 0 {
		sanitized.RepositoryPath = defaults.RepositoryPath
	}

	sanitized.RemoteName = strings.TrimSpace(configuration.RemoteName)
	if len(sanitized.RemoteName) == 0 {
		sanitized.RemoteName = defaults.RemoteName
	}

	if sanitized.Timeout <= 0 {
		sanitized.Timeout = defaults.Timeout
	}

	if sanitized.Workers < 1 {
		sanitized.Workers = defaults.Workers
	}

	sanitized.ColorMode = strings.ToLower(strings.TrimSpace(configuration.ColorMode))
	if len(sanitized.ColorMode) == 0 {
		sanitized.ColorMode = defaults.ColorMode
	}

	return sanitized
}
