package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/temirov/gitfu/internal/branches"
	"github.com/temirov/gitfu/internal/dirstatus"
	"github.com/temirov/gitfu/internal/prompt"
	"github.com/temirov/gitfu/internal/repos/shared"
	"github.com/temirov/gitfu/internal/utils"
	flagutils "github.com/temirov/gitfu/internal/utils/flags"
	pathutils "github.com/temirov/gitfu/internal/utils/path"
)

const (
	applicationNameConstant                    = "gitfu"
	applicationShortDescriptionConstant        = "Compact Git status for shell prompts and repository directories"
	applicationLongDescriptionConstant         = "gitfu reports the branch, upstream divergence, and working tree state of one repository as a prompt token, of every repository beneath a directory as a table, and of every local branch by last commit."
	configFileFlagNameConstant                 = "config"
	configFileFlagUsageConstant                = "Optional path to a configuration file (YAML or JSON)."
	logLevelFlagNameConstant                   = "log-level"
	logLevelFlagUsageConstant                  = "Override the configured log level."
	logFormatFlagNameConstant                  = "log-format"
	logFormatFlagUsageConstant                 = "Override the configured log format."
	commonConfigurationKeyConstant             = "common"
	commonLogLevelConfigKeyConstant            = commonConfigurationKeyConstant + ".log_level"
	commonLogFormatConfigKeyConstant           = commonConfigurationKeyConstant + ".log_format"
	statusConfigurationKeyConstant             = "status"
	environmentPrefixConstant                  = "GITFU"
	configurationSearchPathEnvironmentConstant = "GITFU_CONFIG_SEARCH_PATH"
	configurationNameConstant                  = "config"
	configurationTypeConstant                  = "yaml"
	userConfigurationDirectoryNameConstant     = "gitfu"
	defaultConfigurationSearchPathConstant     = "."
	configurationInitializedMessageConstant    = "configuration initialized"
	configurationLogLevelFieldConstant         = "log_level"
	configurationLogFormatFieldConstant        = "log_format"
	configurationFileFieldConstant             = "config_file"
	configurationLoadErrorTemplateConstant     = "unable to load configuration: %w"
	loggerCreationErrorTemplateConstant        = "unable to create logger: %w"
	loggerSyncErrorTemplateConstant            = "unable to flush logger: %w"
	rootCommandDebugMessageConstant            = "gitfu CLI diagnostics"
	logFieldCommandNameConstant                = "command_name"
	logFieldArgumentsConstant                  = "arguments"
	loggerNotInitializedMessageConstant        = "logger not initialized"
)

// ApplicationConfiguration describes the persisted configuration for the CLI entrypoint.
type ApplicationConfiguration struct {
	Common ApplicationCommonConfiguration `mapstructure:"common"`
	Status shared.ReportConfiguration     `mapstructure:"status"`
}

// ApplicationCommonConfiguration stores logging configuration shared across commands.
type ApplicationCommonConfiguration struct {
	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`
}

// Application wires the Cobra root command, configuration loader, and structured logger.
type Application struct {
	rootCommand           *cobra.Command
	configurationLoader   *utils.ConfigurationLoader
	loggerFactory         *utils.LoggerFactory
	pathNormalizer        *pathutils.RepositoryPathNormalizer
	logger                *zap.Logger
	configuration         ApplicationConfiguration
	configurationMetadata utils.LoadedConfiguration
	configurationFilePath string
	logLevelFlagValue     string
	logFormatFlagValue    string
	reportFlagValues      *flagutils.ReportFlagValues
}

// NewApplication assembles a fully wired CLI application instance.
func NewApplication() *Application {
	configurationLoader := utils.NewConfigurationLoader(
		configurationNameConstant,
		configurationTypeConstant,
		environmentPrefixConstant,
		configurationSearchPaths(),
	)
	configurationLoader.SetEmbeddedConfiguration(EmbeddedDefaultConfiguration())

	application := &Application{
		configurationLoader: configurationLoader,
		loggerFactory:       utils.NewLoggerFactory(),
		pathNormalizer:      pathutils.NewRepositoryPathNormalizer(nil, shared.DefaultRepositoryPathConstant),
		logger:              zap.NewNop(),
	}

	cobraCommand := &cobra.Command{
		Use:           applicationNameConstant,
		Short:         applicationShortDescriptionConstant,
		Long:          applicationLongDescriptionConstant,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(command *cobra.Command, arguments []string) error {
			return application.initializeConfiguration(command)
		},
		RunE: func(command *cobra.Command, arguments []string) error {
			return application.runRootCommand(command, arguments)
		},
	}

	cobraCommand.SetContext(context.Background())
	cobraCommand.PersistentFlags().StringVar(&application.configurationFilePath, configFileFlagNameConstant, "", configFileFlagUsageConstant)
	logLevelValue := flagutils.NewChoiceValue(&application.logLevelFlagValue, "", []string{
		string(utils.LogLevelDebug),
		string(utils.LogLevelInfo),
		string(utils.LogLevelWarn),
		string(utils.LogLevelError),
	})
	cobraCommand.PersistentFlags().Var(logLevelValue, logLevelFlagNameConstant, logLevelValue.Usage(logLevelFlagUsageConstant))
	logFormatValue := flagutils.NewChoiceValue(&application.logFormatFlagValue, "", []string{
		string(utils.LogFormatStructured),
		string(utils.LogFormatConsole),
	})
	cobraCommand.PersistentFlags().Var(logFormatValue, logFormatFlagNameConstant, logFormatValue.Usage(logFormatFlagUsageConstant))
	application.reportFlagValues = flagutils.BindReportFlags(cobraCommand.PersistentFlags(), shared.DefaultReportConfiguration())

	promptBuilder := prompt.CommandBuilder{
		LoggerProvider:        application.currentLogger,
		ConfigurationProvider: application.reportConfiguration,
	}
	promptCommand, promptBuildError := promptBuilder.Build()
	if promptBuildError == nil {
		cobraCommand.AddCommand(promptCommand)
	}

	dirStatusBuilder := dirstatus.CommandBuilder{
		LoggerProvider:        application.currentLogger,
		ConfigurationProvider: application.reportConfiguration,
	}
	dirStatusCommand, dirStatusBuildError := dirStatusBuilder.Build()
	if dirStatusBuildError == nil {
		cobraCommand.AddCommand(dirStatusCommand)
	}

	branchesBuilder := branches.CommandBuilder{
		LoggerProvider:        application.currentLogger,
		ConfigurationProvider: application.reportConfiguration,
	}
	branchesCommand, branchesBuildError := branchesBuilder.Build()
	if branchesBuildError == nil {
		cobraCommand.AddCommand(branchesCommand)
	}

	application.rootCommand = cobraCommand

	return application
}

// Execute runs the configured Cobra command hierarchy and ensures logger flushing.
func (application *Application) Execute() error {
	executionError := application.rootCommand.Execute()
	if syncError := application.flushLogger(); syncError != nil {
		return fmt.Errorf(loggerSyncErrorTemplateConstant, syncError)
	}
	return executionError
}

// RootCommand exposes the root command so callers can redirect output or set arguments.
func (application *Application) RootCommand() *cobra.Command {
	return application.rootCommand
}

// Execute builds a fresh application instance and executes the root command hierarchy.
func Execute() error {
	return NewApplication().Execute()
}

// DefaultConfigurationValues maps every configuration key to its default value.
func DefaultConfigurationValues() map[string]any {
	defaults := shared.DefaultReportConfiguration()
	statusKey := func(name string) string {
		return statusConfigurationKeyConstant + "." + name
	}
	return map[string]any{
		commonLogLevelConfigKeyConstant:  string(utils.LogLevelError),
		commonLogFormatConfigKeyConstant: string(utils.LogFormatConsole),
		statusKey("repository_path"):     defaults.RepositoryPath,
		statusKey("fetch"):               defaults.Fetch,
		statusKey("timeout"):             defaults.Timeout,
		statusKey("remote_status"):       defaults.RemoteStatus,
		statusKey("plain_tables"):        defaults.PlainTables,
		statusKey("remote"):              defaults.RemoteName,
		statusKey("workers"):             defaults.Workers,
		statusKey("color"):               defaults.ColorMode,
	}
}

func configurationSearchPaths() []string {
	if overridePaths := strings.TrimSpace(os.Getenv(configurationSearchPathEnvironmentConstant)); len(overridePaths) > 0 {
		return filepath.SplitList(overridePaths)
	}
	searchPaths := []string{defaultConfigurationSearchPathConstant}
	if userConfigurationDirectory, directoryError := os.UserConfigDir(); directoryError == nil {
		searchPaths = append(searchPaths, filepath.Join(userConfigurationDirectory, userConfigurationDirectoryNameConstant))
	}
	return searchPaths
}

func (application *Application) initializeConfiguration(command *cobra.Command) error {
	loadedConfiguration, loadError := application.configurationLoader.LoadConfiguration(application.configurationFilePath, DefaultConfigurationValues(), &application.configuration)
	if loadError != nil {
		return fmt.Errorf(configurationLoadErrorTemplateConstant, loadError)
	}

	application.configurationMetadata = loadedConfiguration

	if application.persistentFlagChanged(command, logLevelFlagNameConstant) {
		application.configuration.Common.LogLevel = application.logLevelFlagValue
	}

	if application.persistentFlagChanged(command, logFormatFlagNameConstant) {
		application.configuration.Common.LogFormat = application.logFormatFlagValue
	}

	if command != nil {
		application.configuration.Status = application.reportFlagValues.Apply(command.Root().PersistentFlags(), application.configuration.Status)
	}
	application.configuration.Status = application.configuration.Status.Sanitize()
	application.configuration.Status.RepositoryPath = application.pathNormalizer.Normalize(application.configuration.Status.RepositoryPath)

	logger, loggerCreationError := application.loggerFactory.CreateLogger(
		utils.LogLevel(application.configuration.Common.LogLevel),
		utils.LogFormat(application.configuration.Common.LogFormat),
	)
	if loggerCreationError != nil {
		return fmt.Errorf(loggerCreationErrorTemplateConstant, loggerCreationError)
	}

	application.logger = logger

	application.logger.Debug(
		configurationInitializedMessageConstant,
		zap.String(configurationLogLevelFieldConstant, application.configuration.Common.LogLevel),
		zap.String(configurationLogFormatFieldConstant, application.configuration.Common.LogFormat),
		zap.String(configurationFileFieldConstant, application.configurationMetadata.ConfigFileUsed),
	)

	return nil
}

func (application *Application) currentLogger() *zap.Logger {
	return application.logger
}

func (application *Application) reportConfiguration() shared.ReportConfiguration {
	return application.configuration.Status
}

func (application *Application) runRootCommand(command *cobra.Command, arguments []string) error {
	if application.logger == nil {
		return errors.New(loggerNotInitializedMessageConstant)
	}

	application.logger.Debug(
		rootCommandDebugMessageConstant,
		zap.String(logFieldCommandNameConstant, command.Name()),
		zap.Strings(logFieldArgumentsConstant, arguments),
	)

	return command.Help()
}

func (application *Application) flushLogger() error {
	if application.logger == nil {
		return nil
	}

	syncError := application.logger.Sync()
	switch {
	case syncError == nil:
		return nil
	case errors.Is(syncError, syscall.ENOTSUP):
		return nil
	case errors.Is(syncError, syscall.EINVAL):
		return nil
	case errors.Is(syncError, syscall.ENOTTY):
		return nil
	default:
		return syncError
	}
}

func (application *Application) persistentFlagChanged(command *cobra.Command, flagName string) bool {
	if command == nil {
		return false
	}

	flagSetsToInspect := []*pflag.FlagSet{
		command.PersistentFlags(),
		command.InheritedFlags(),
	}

	rootCommand := command.Root()
	if rootCommand != nil {
		flagSetsToInspect = append(flagSetsToInspect, rootCommand.PersistentFlags())
	}

	for _, flagSet := range flagSetsToInspect {
		if flagSet == nil {
			continue
		}

		if flagSet.Changed(flagName) {
			return true
		}
	}

	return false
}
