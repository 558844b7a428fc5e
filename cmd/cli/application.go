package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"runtime/debug"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	repos "github.com/temirov/gitbulkpush/cmd/cli/repos"
	"github.com/temirov/gitbulkpush/internal/utils"
	flagutils "github.com/temirov/gitbulkpush/internal/utils/flags"
)

const (
	applicationNameConstant                 = "git-bulk-push"
	applicationShortDescriptionConstant     = "Commit and push many local git repositories in one pass"
	applicationLongDescriptionConstant      = "git-bulk-push commits outstanding changes and pushes every git repository found under a set of root directories, then prints what changed."
	configFileFlagNameConstant              = "config"
	configFileFlagUsageConstant             = "Optional path to a configuration file (YAML, JSON or TOML)."
	logLevelFlagNameConstant                = "log-level"
	logLevelFlagUsageConstant               = "Override the configured log level."
	logFormatFlagNameConstant               = "log-format"
	logFormatFlagUsageConstant              = "Override the configured log format."
	commonConfigurationKeyConstant          = "common"
	commonLogLevelConfigKeyConstant         = commonConfigurationKeyConstant + ".log_level"
	commonLogFormatConfigKeyConstant        = commonConfigurationKeyConstant + ".log_format"
	environmentPrefixConstant               = "GITBULKPUSH"
	configurationNameConstant               = "config"
	configurationTypeConstant               = "yaml"
	configurationDirectoryNameConstant      = "git-bulk-push"
	legacyConfigurationFileNameConstant     = ".git-bulk-push.json"
	configurationInitializedMessageConstant = "configuration initialized"
	configurationLogLevelFieldConstant      = "log_level"
	configurationLogFormatFieldConstant     = "log_format"
	configurationFileFieldConstant          = "config_file"
	configurationLoadErrorTemplateConstant  = "unable to load configuration: %w"
	loggerCreationErrorTemplateConstant     = "unable to create logger: %w"
	loggerSyncErrorTemplateConstant         = "unable to flush logger: %w"
	rootCommandDebugMessageConstant         = "git-bulk-push invoked without a subcommand"
	logFieldCommandNameConstant             = "command_name"
	logFieldArgumentsConstant               = "arguments"
	loggerNotInitializedMessageConstant     = "logger not initialized"
	defaultConfigurationSearchPathConstant  = "."
	toolsConfigurationKeyConstant           = "tools"
	syncConfigurationKeyConstant            = toolsConfigurationKeyConstant + ".sync"
	develVersionConstant                    = "(devel)"
	unknownVersionConstant                  = "dev"
	versionTemplateConstant                 = "{{.Name}} version: {{.Version}}\n"
)

// ApplicationConfiguration describes the persisted configuration for the CLI entrypoint.
type ApplicationConfiguration struct {
	Common ApplicationCommonConfiguration `mapstructure:"common"`
	Tools  ApplicationToolsConfiguration  `mapstructure:"tools"`
	// TargetPaths is the root list understood by the JSON settings file of earlier releases.
	TargetPaths []string `mapstructure:"targetPaths"`
}

// ApplicationCommonConfiguration stores logging configuration shared across commands.
type ApplicationCommonConfiguration struct {
	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`
}

// ApplicationToolsConfiguration holds configuration for CLI subcommands.
type ApplicationToolsConfiguration struct {
	Sync repos.SyncConfiguration `mapstructure:"sync"`
}

// Application wires the Cobra root command, configuration loader, and structured logger.
type Application struct {
	rootCommand           *cobra.Command
	configurationLoader   *utils.ConfigurationLoader
	loggerFactory         *utils.LoggerFactory
	logger                *zap.Logger
	configuration         ApplicationConfiguration
	configurationMetadata utils.LoadedConfiguration
	configurationFilePath string
	logLevelFlagValue     string
	logFormatFlagValue    string
	versionResolver       func() string
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
	configurationLoader.SetFallbackConfigurationFiles(legacyConfigurationFiles())

	application := &Application{
		configurationLoader: configurationLoader,
		loggerFactory:       utils.NewLoggerFactory(),
		logger:              zap.NewNop(),
		versionResolver:     resolveBuildVersion,
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
	cobraCommand.SetVersionTemplate(versionTemplateConstant)
	cobraCommand.PersistentFlags().StringVar(&application.configurationFilePath, configFileFlagNameConstant, "", configFileFlagUsageConstant)
	cobraCommand.PersistentFlags().StringVar(&application.logLevelFlagValue, logLevelFlagNameConstant, "", logLevelFlagUsageConstant)
	flagutils.AddChoiceFlag(
		cobraCommand.PersistentFlags(),
		&application.logFormatFlagValue,
		logFormatFlagNameConstant,
		string(utils.LogFormatConsole),
		[]string{string(utils.LogFormatStructured), string(utils.LogFormatConsole)},
		logFormatFlagUsageConstant,
	)

	syncBuilder := repos.SyncCommandBuilder{
		LoggerProvider: func() *zap.Logger {
			return application.logger
		},
		HumanReadableLoggingProvider: application.humanReadableLoggingEnabled,
		ConfigurationProvider:        application.syncConfiguration,
	}
	syncCommand, syncBuildError := syncBuilder.Build()
	if syncBuildError == nil {
		cobraCommand.AddCommand(syncCommand)
	}

	application.rootCommand = cobraCommand

	return application
}

// Execute runs the command hierarchy with the process arguments.
func (application *Application) Execute() error {
	return application.ExecuteWithArguments(os.Args[1:])
}

// ExecuteWithArguments runs the command hierarchy with the provided arguments, cancelling
// the command context on interrupt or termination, and flushes the logger afterwards.
func (application *Application) ExecuteWithArguments(arguments []string) error {
	normalizedArguments := flagutils.NormalizeToggleArguments(arguments)
	if normalizedArguments == nil {
		normalizedArguments = []string{}
	}
	application.rootCommand.SetArgs(normalizedArguments)
	application.rootCommand.Version = application.resolveVersion()

	signalContext, stopSignals := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stopSignals()

	executionError := application.rootCommand.ExecuteContext(signalContext)
	if syncError := application.flushLogger(); syncError != nil {
		return fmt.Errorf(loggerSyncErrorTemplateConstant, syncError)
	}
	return executionError
}

// Execute builds a fresh application instance and executes the root command hierarchy.
func Execute() error {
	return NewApplication().Execute()
}

func (application *Application) initializeConfiguration(command *cobra.Command) error {
	defaultValues := map[string]any{
		commonLogLevelConfigKeyConstant:  string(utils.LogLevelInfo),
		commonLogFormatConfigKeyConstant: string(utils.LogFormatConsole),
	}
	for configurationKey, configurationValue := range repos.DefaultConfigurationValues(syncConfigurationKeyConstant) {
		defaultValues[configurationKey] = configurationValue
	}

	loadedConfiguration, loadError := application.configurationLoader.LoadConfiguration(application.configurationFilePath, defaultValues, &application.configuration)
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

// syncConfiguration falls back to the legacy targetPaths list when no sync roots are configured.
func (application *Application) syncConfiguration() repos.SyncConfiguration {
	configuration := application.configuration.Tools.Sync
	if len(configuration.RepositoryRoots) == 0 && len(application.configuration.TargetPaths) > 0 {
		configuration.RepositoryRoots = append([]string{}, application.configuration.TargetPaths...)
	}
	return configuration
}

func (application *Application) humanReadableLoggingEnabled() bool {
	logFormatValue := strings.TrimSpace(application.configuration.Common.LogFormat)
	return strings.EqualFold(logFormatValue, string(utils.LogFormatConsole))
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

func (application *Application) resolveVersion() string {
	if application.versionResolver == nil {
		return unknownVersionConstant
	}
	return application.versionResolver()
}

func resolveBuildVersion() string {
	buildInformation, available := debug.ReadBuildInfo()
	if !available {
		return unknownVersionConstant
	}
	version := strings.TrimSpace(buildInformation.Main.Version)
	if len(version) == 0 || version == develVersionConstant {
		return unknownVersionConstant
	}
	return version
}

func configurationSearchPaths() []string {
	searchPaths := []string{defaultConfigurationSearchPathConstant}
	if userConfigurationDirectory, userConfigurationError := os.UserConfigDir(); userConfigurationError == nil {
		searchPaths = append(searchPaths, filepath.Join(userConfigurationDirectory, configurationDirectoryNameConstant))
	}
	return searchPaths
}

func legacyConfigurationFiles() []string {
	homeDirectory, homeDirectoryError := os.UserHomeDir()
	if homeDirectoryError != nil {
		return nil
	}
	return []string{filepath.Join(homeDirectory, legacyConfigurationFileNameConstant)}
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

	if rootCommand := command.Root(); rootCommand != nil {
		flagSetsToInspect = append(flagSetsToInspect, rootCommand.PersistentFlags())
	}

	for _, flagSet := range flagSetsToInspect {
		if flagSet != nil && flagSet.Changed(flagName) {
			return true
		}
	}

	return false
}
