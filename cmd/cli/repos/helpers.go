package repos

import (
	"errors"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	pathutils "github.com/temirov/gitbulkpush/internal/utils/path"
)

const (
	missingRepositoryRootsErrorMessageConstant = "no repository roots provided; pass root directories or configure tools.sync.roots"
)

// ErrRepositoryRootsMissing indicates neither arguments nor configuration named a root directory.
var ErrRepositoryRootsMissing = errors.New(missingRepositoryRootsErrorMessageConstant)

var repositoryHomeDirectoryExpander = pathutils.NewHomeExpander()

// LoggerProvider yields a zap logger for command execution.
type LoggerProvider func() *zap.Logger

// determineRepositoryRoots prefers positional arguments over configured roots.
// Recursive runs drop roots nested in another root since the walk already covers them.
func determineRepositoryRoots(arguments []string, configuredRoots []string, recursive bool) []string {
	sanitizer := pathutils.NewRootPathSanitizer(repositoryHomeDirectoryExpander, pathutils.RootPathSanitizerConfiguration{
		ExcludeBooleanLiteralCandidates: true,
		PruneNestedPaths:                recursive,
	})

	if roots := sanitizer.Sanitize(arguments); len(roots) > 0 {
		return roots
	}
	return sanitizer.Sanitize(configuredRoots)
}

func requireRepositoryRoots(command *cobra.Command, arguments []string, configuredRoots []string, recursive bool) ([]string, error) {
	resolvedRoots := determineRepositoryRoots(arguments, configuredRoots, recursive)
	if len(resolvedRoots) > 0 {
		return resolvedRoots, nil
	}

	if command != nil {
		_ = command.Help()
	}

	return nil, ErrRepositoryRootsMissing
}

func resolveLogger(provider LoggerProvider) *zap.Logger {
	if provider == nil {
		return zap.NewNop()
	}
	logger := provider()
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}
