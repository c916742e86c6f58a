package prompt

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
	commandUseConstant                    = "prompt"
	commandShortDescriptionConstant       = "Print a compact status token for a shell prompt"
	commandLongDescriptionConstant        = "prompt prints the branch, upstream divergence, and working tree state of the repository path as a single colored token."
	commandExecutionErrorTemplateConstant = "prompt failed: %w"
	unexpectedArgumentsMessageConstant    = "prompt does not accept positional arguments"
)

var errUnexpectedArguments = errors.New(unexpectedArgumentsMessageConstant)

// LoggerProvider supplies a zap logger instance.
type LoggerProvider func() *zap.Logger

// ConfigurationProvider supplies the report configuration after flags are applied.
type ConfigurationProvider func() shared.ReportConfiguration

// CommandBuilder assembles the prompt cobra command.
type CommandBuilder struct {
	LoggerProvider        LoggerProvider
	ConfigurationProvider ConfigurationProvider
	GitExecutor           shared.GitExecutor
	FileSystem            shared.FileSystem
}

// Build constructs the prompt command.
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

	prober, proberError := repostate.NewProber(logger, gitExecutor, dependencies.ResolveFileSystem(builder.FileSystem), repostate.ProberOptions{
		IncludeRemote: configuration.RemoteStatus,
		RemoteName:    configuration.RemoteName,
	})
	if proberError != nil {
		return proberError
	}

	fetcher, fetcherError := remotefetch.NewGitFetcher(gitExecutor, configuration.RemoteName)
	if fetcherError != nil {
		return fetcherError
	}

	service, serviceError := NewService(Dependencies{
		Prober:      prober,
		Coordinator: remotefetch.NewCoordinator(fetcher, logger),
		Logger:      logger,
	})
	if serviceError != nil {
		return serviceError
	}

	repository, inspectError := service.Inspect(command.Context(), configuration.RepositoryPath, Options{
		Fetch:  configuration.Fetch,
		Budget: remotefetch.NewRunBudget(configuration.Timeout),
	})
	if inspectError != nil {
		return fmt.Errorf(commandExecutionErrorTemplateConstant, inspectError)
	}

	palette := presentation.NewPalette(command.OutOrStdout(), colorMode)
	token := presentation.RenderInlineToken(palette, repository, presentation.InlineOptions{IncludeRemote: configuration.RemoteStatus})
	_, writeError := fmt.Fprintln(command.OutOrStdout(), token)
	return writeError
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
