package dirstatus

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/gitfu/internal/presentation"
	"github.com/temirov/gitfu/internal/remotefetch"
	"github.com/temirov/gitfu/internal/repos/dependencies"
	"github.com/temirov/gitfu/internal/repos/shared"
	"github.com/temirov/gitfu/internal/repostate"
)

const (
	commandUseConstant                    = "dir-status"
	commandShortDescriptionConstant       = "Summarize every repository directly beneath a directory"
	commandLongDescriptionConstant        = "dir-status probes each immediate subdirectory of the repository path that is a Git working tree and prints one table row per repository."
	commandExecutionErrorTemplateConstant = "dir-status failed: %w"
	unexpectedArgumentsMessageConstant    = "dir-status does not accept positional arguments"
)

var errUnexpectedArguments = errors.New(unexpectedArgumentsMessageConstant)

// LoggerProvider supplies a zap logger instance.
type LoggerProvider func() *zap.Logger

// ConfigurationProvider supplies the report configuration after flags are applied.
type ConfigurationProvider func() shared.ReportConfiguration

// CommandBuilder assembles the dir-status cobra command.
type CommandBuilder struct {
	LoggerProvider        LoggerProvider
	ConfigurationProvider ConfigurationProvider
	Discoverer            shared.RepositoryDiscoverer
	GitExecutor           shared.GitExecutor
	FileSystem            shared.FileSystem
}

// Build constructs the dir-status command.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   commandUseConstant,
		Short: commandShortDescriptionConstant,
		Long:  commandLongDescriptionConstant,
		RunE:  builder.run,
	}
	return command, nil
}

func (builder *CommandBuilder) run(command *cobra.Command, arguments []string) error {
	if len(arguments) > 0 {
		return errUnexpectedArguments
	}

	configuration := builder.resolveConfiguration()
	colorMode, colorModeError := presentation.ParseColorMode(configuration.ColorMode)
	if colorModeError != nil {
		return colorModeError
	}

	logger := builder.resolveLogger()
	gitExecutor, executorError := dependencies.ResolveGitExecutor(builder.GitExecutor, logger)
	if executorError != nil {
		return executorError
	}
	fileSystem := dependencies.ResolveFileSystem(builder.FileSystem)

	prober, proberError := repostate.NewProber(logger, gitExecutor, fileSystem, repostate.ProberOptions{
		IncludeRemote: true,
		RemoteName:    configuration.RemoteName,
	})
	if proberError != nil {
		return proberError
	}

	fetcher, fetcherError := remotefetch.NewGitFetcher(gitExecutor, configuration.RemoteName)
	if fetcherError != nil {
		return fetcherError
	}

	scanner, scannerError := NewScanner(Dependencies{
		Discoverer:  dependencies.ResolveRepositoryDiscoverer(builder.Discoverer),
		Prober:      prober,
		Coordinator: remotefetch.NewCoordinator(fetcher, logger),
		FileSystem:  fileSystem,
		Logger:      logger,
	})
	if scannerError != nil {
		return scannerError
	}

	repositories, scanError := scanner.Scan(command.Context(), configuration.RepositoryPath, ScanOptions{
		Fetch:   configuration.Fetch,
		Budget:  remotefetch.NewRunBudget(configuration.Timeout),
		Workers: configuration.Workers,
	})
	if scanError != nil {
		return fmt.Errorf(commandExecutionErrorTemplateConstant, scanError)
	}

	reporter := shared.NewWriterProblemReporter(command.ErrOrStderr())
	for _, repository := range repositories {
		if !repository.Healthy() {
			reporter.ReportRepositoryProblem(repository.Identity.Name, repository.ProbeError)
		}
	}

	palette := presentation.NewPalette(command.OutOrStdout(), colorMode)
	return presentation.RenderStatusTable(command.OutOrStdout(), palette, repositories, presentation.LayoutFor(configuration.PlainTables))
}

func (builder *CommandBuilder) resolveConfiguration() shared.ReportConfiguration {
	if builder.ConfigurationProvider == nil {
		return shared.DefaultReportConfiguration().Sanitize()
	}
	return builder.ConfigurationProvider().Sanitize()
}

func (builder *CommandBuilder) resolveLogger() *zap.Logger {
	if builder.LoggerProvider == nil {
		return zap.NewNop()
	}
	logger := builder.LoggerProvider()
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}
