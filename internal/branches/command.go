package branches

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/gitfu/internal/presentation"
	"github.com/temirov/gitfu/internal/repos/dependencies"
	"github.com/temirov/gitfu/internal/repos/shared"
)

const (
	commandUseConstant                    = "branches"
	commandShortDescriptionConstant       = "List local branches by last commit time"
	commandLongDescriptionConstant        = "branches prints every local branch of the repository path with the time and age of its last commit, newest first."
	commandExecutionErrorTemplateConstant = "branches failed: %w"
	unexpectedArgumentsMessageConstant    = "branches does not accept positional arguments"
)

var errUnexpectedArguments = errors.New(unexpectedArgumentsMessageConstant)

// LoggerProvider supplies a zap logger instance.
type LoggerProvider func() *zap.Logger

// ConfigurationProvider supplies the report configuration after flags are applied.
type ConfigurationProvider func() shared.ReportConfiguration

// CommandBuilder assembles the branches cobra command.
type CommandBuilder struct {
	LoggerProvider        LoggerProvider
	ConfigurationProvider ConfigurationProvider
	FileSystem            shared.FileSystem
	Clock                 shared.Clock
}

// Build constructs the branches command.
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

	service := NewService(builder.resolveLogger(), dependencies.ResolveFileSystem(builder.FileSystem))
	summaries, listError := service.ListBranches(configuration.RepositoryPath)
	if listError != nil {
		return fmt.Errorf(commandExecutionErrorTemplateConstant, listError)
	}

	now := dependencies.ResolveClock(builder.Clock).Now()
	palette := presentation.NewPalette(command.OutOrStdout(), colorMode)
	return presentation.RenderBranchesTable(command.OutOrStdout(), palette, summaries, now, presentation.LayoutFor(configuration.PlainTables))
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
