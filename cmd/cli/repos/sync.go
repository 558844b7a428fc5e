package repos

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/temirov/gitbulkpush/internal/bulkpush"
	"github.com/temirov/gitbulkpush/internal/repos/dependencies"
	"github.com/temirov/gitbulkpush/internal/repos/shared"
	flagutils "github.com/temirov/gitbulkpush/internal/utils/flags"
)

const (
	syncUseConstant               = "sync [root ...]"
	syncShortDescription          = "Commit and push every git repository under the given roots"
	syncLongDescription           = "sync visits each directory under the roots in order. Repositories with uncommitted changes get a timestamped commit of everything, then every repository is pushed to its configured remotes. Failures are reported per repository and never stop the run."
	recursiveFlagNameConstant     = "recursive"
	recursiveFlagUsageConstant    = "Walk roots recursively instead of only inspecting their immediate subdirectories."
	reportFormatFlagNameConstant  = "report-format"
	reportFormatFlagUsageConstant = "Format of the summary printed after the run."
	noColorFlagNameConstant       = "no-color"
	noColorFlagUsageConstant      = "Disable colored status words in the text report."
	syncCommandExampleConstant    = "  git-bulk-push sync ~/code ~/work\n  git-bulk-push sync --recursive --report-format yaml ~/code"
)

// SyncCommandBuilder assembles the sync command.
type SyncCommandBuilder struct {
	LoggerProvider               LoggerProvider
	Discoverer                   shared.RepositoryDiscoverer
	GitExecutor                  shared.GitExecutor
	Clock                        shared.Clock
	HumanReadableLoggingProvider func() bool
	ConfigurationProvider        func() SyncConfiguration
}

// Build constructs the sync command.
func (builder *SyncCommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:     syncUseConstant,
		Short:   syncShortDescription,
		Long:    syncLongDescription,
		Example: syncCommandExampleConstant,
		RunE:    builder.run,
	}

	defaults := DefaultSyncConfiguration()
	flagutils.AddToggleFlag(command.Flags(), nil, recursiveFlagNameConstant, "r", defaults.Recursive, recursiveFlagUsageConstant)
	flagutils.AddChoiceFlag(command.Flags(), nil, reportFormatFlagNameConstant, defaults.ReportFormat, bulkpush.SupportedReportFormats(), reportFormatFlagUsageConstant)
	flagutils.AddToggleFlag(command.Flags(), nil, noColorFlagNameConstant, "", false, noColorFlagUsageConstant)

	return command, nil
}

func (builder *SyncCommandBuilder) run(command *cobra.Command, arguments []string) error {
	configuration := builder.resolveConfiguration()

	recursive := configuration.Recursive
	if recursiveFlag := command.Flags().Lookup(recursiveFlagNameConstant); recursiveFlag != nil && recursiveFlag.Changed {
		recursive = recursiveFlag.Value.String() == "true"
	}

	reportFormatName := configuration.ReportFormat
	if reportFormatFlag := command.Flags().Lookup(reportFormatFlagNameConstant); reportFormatFlag != nil && reportFormatFlag.Changed {
		reportFormatName = reportFormatFlag.Value.String()
	}
	reportFormat, reportFormatError := bulkpush.ParseReportFormat(reportFormatName)
	if reportFormatError != nil {
		return reportFormatError
	}

	colorEnabled := !color.NoColor
	if noColorFlag := command.Flags().Lookup(noColorFlagNameConstant); noColorFlag != nil && noColorFlag.Value.String() == "true" {
		colorEnabled = false
	}

	roots, rootsError := requireRepositoryRoots(command, arguments, configuration.RepositoryRoots, recursive)
	if rootsError != nil {
		return rootsError
	}

	logger := resolveLogger(builder.LoggerProvider)
	humanReadableLogging := false
	if builder.HumanReadableLoggingProvider != nil {
		humanReadableLogging = builder.HumanReadableLoggingProvider()
	}
	gitExecutor, executorError := dependencies.ResolveGitExecutor(builder.GitExecutor, logger, humanReadableLogging)
	if executorError != nil {
		return executorError
	}

	service, serviceError := bulkpush.NewService(
		bulkpush.ServiceDependencies{GitExecutor: gitExecutor, Clock: dependencies.ResolveClock(builder.Clock)},
		bulkpush.ServiceSettings{CommitTimestampLayout: configuration.CommitTimestampLayout},
	)
	if serviceError != nil {
		return serviceError
	}

	runner, runnerError := bulkpush.NewRunner(bulkpush.RunnerDependencies{
		Discoverer:   dependencies.ResolveRepositoryDiscoverer(builder.Discoverer),
		Synchronizer: service,
		Logger:       logger,
	})
	if runnerError != nil {
		return runnerError
	}

	report, runError := runner.Run(command.Context(), bulkpush.RunOptions{Roots: roots, Recursive: recursive})

	renderer := bulkpush.NewReportRenderer(reportFormat, colorEnabled)
	if renderError := renderer.Render(command.OutOrStdout(), report); renderError != nil {
		return renderError
	}

	return runError
}

func (builder *SyncCommandBuilder) resolveConfiguration() SyncConfiguration {
	if builder.ConfigurationProvider == nil {
		return DefaultSyncConfiguration()
	}

	provided := builder.ConfigurationProvider()
	return provided.sanitize()
}
