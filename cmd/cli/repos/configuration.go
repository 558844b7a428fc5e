package repos

import (
	"strings"

	"github.com/temirov/gitbulkpush/internal/bulkpush"
)

const (
	configurationRootsKeyConstant                 = "roots"
	configurationRecursiveKeyConstant             = "recursive"
	configurationReportFormatKeyConstant          = "report_format"
	configurationCommitTimestampLayoutKeyConstant = "commit_timestamp_layout"
)

// SyncConfiguration describes configuration values for the sync command.
type SyncConfiguration struct {
	RepositoryRoots       []string `mapstructure:"roots"`
	Recursive             bool     `mapstructure:"recursive"`
	ReportFormat          string   `mapstructure:"report_format"`
	CommitTimestampLayout string   `mapstructure:"commit_timestamp_layout"`
}

// DefaultSyncConfiguration returns baseline configuration values for the sync command.
func DefaultSyncConfiguration() SyncConfiguration {
	return SyncConfiguration{
		RepositoryRoots:       []string{},
		Recursive:             false,
		ReportFormat:          string(bulkpush.ReportFormatText),
		CommitTimestampLayout: bulkpush.DefaultCommitTimestampLayout,
	}
}

// DefaultConfigurationValues produces Viper defaults for the sync command under rootKey.
func DefaultConfigurationValues(rootKey string) map[string]any {
	defaults := DefaultSyncConfiguration()
	return map[string]any{
		rootKey + "." + configurationRootsKeyConstant:                 defaults.RepositoryRoots,
		rootKey + "." + configurationRecursiveKeyConstant:             defaults.Recursive,
		rootKey + "." + configurationReportFormatKeyConstant:          defaults.ReportFormat,
		rootKey + "." + configurationCommitTimestampLayoutKeyConstant: defaults.CommitTimestampLayout,
	}
}

// sanitize trims configured values and restores defaults for blank ones.
func (configuration SyncConfiguration) sanitize() SyncConfiguration {
	defaults := DefaultSyncConfiguration()
	sanitized := configuration

	sanitized.ReportFormat = strings.TrimSpace(configuration.ReportFormat)
	if len(sanitized.ReportFormat) == 0 {
		sanitized.ReportFormat = defaults.ReportFormat
	}

	if len(strings.TrimSpace(configuration.CommitTimestampLayout)) == 0 {
		sanitized.CommitTimestampLayout = defaults.CommitTimestampLayout
	}

	return sanitized
}
