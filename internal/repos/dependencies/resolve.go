package dependencies

import (
	"go.uber.org/zap"

	"github.com/temirov/gitbulkpush/internal/execshell"
	"github.com/temirov/gitbulkpush/internal/repos/discovery"
	"github.com/temirov/gitbulkpush/internal/repos/shared"
	"github.com/temirov/gitbulkpush/internal/ui"
)

// ResolveRepositoryDiscoverer returns the provided discoverer or a filesystem-backed default.
func ResolveRepositoryDiscoverer(existing shared.RepositoryDiscoverer) shared.RepositoryDiscoverer {
	if existing != nil {
		return existing
	}
	return discovery.NewFilesystemRepositoryDiscoverer()
}

// ResolveClock returns the provided clock or the system clock.
func ResolveClock(existing shared.Clock) shared.Clock {
	if existing != nil {
		return existing
	}
	return shared.SystemClock{}
}

// ResolveGitExecutor returns the provided executor or constructs a shell-backed default.
// Human-readable logging renders command events as sentences instead of structured fields.
func ResolveGitExecutor(existing shared.GitExecutor, logger *zap.Logger, humanReadableLogging bool) (shared.GitExecutor, error) {
	if existing != nil {
		return existing, nil
	}

	commandRunner := execshell.NewOSCommandRunner()
	if humanReadableLogging {
		return execshell.NewShellExecutorWithObserver(commandRunner, ui.NewConsoleCommandEventLogger(logger))
	}
	return execshell.NewShellExecutor(logger, commandRunner)
}
