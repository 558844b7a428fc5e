package bulkpush

import (
	"context"
	"errors"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/temirov/gitbulkpush/internal/repos/shared"
)

const (
	discovererMissingMessageConstant      = "repository discoverer not configured"
	synchronizerMissingMessageConstant    = "repository synchronizer not configured"
	repositoryRootsMissingMessageConstant = "no repository roots provided"
	repositoryDetectedMessageTemplate     = "%s is a git repository"
	nonRepositoryMessageTemplate          = "%s is not a git repository"
	rootScanFailedMessageConstant         = "Failed to scan repository root"
	repositorySynchronizedMessageConstant = "Repository synchronized"
	repositoryFailedMessageConstant       = "Repository synchronization failed"
	rootPathLogFieldConstant              = "root"
	repositoryPathLogFieldConstant        = "repository"
	stageLogFieldConstant                 = "stage"
	committedLogFieldConstant             = "committed"
	pushedLogFieldConstant                = "pushed"
)

// ErrDiscovererNotConfigured indicates the repository discoverer dependency was missing.
var ErrDiscovererNotConfigured = errors.New(discovererMissingMessageConstant)

// ErrSynchronizerNotConfigured indicates the synchronizer dependency was missing.
var ErrSynchronizerNotConfigured = errors.New(synchronizerMissingMessageConstant)

// ErrRepositoryRootsRequired indicates a run was requested without any roots.
var ErrRepositoryRootsRequired = errors.New(repositoryRootsMissingMessageConstant)

// RepositorySynchronizer performs one synchronization cycle.
type RepositorySynchronizer interface {
	Synchronize(executionContext context.Context, repository Repository) (SyncOutcome, error)
}

// RunnerDependencies enumerates collaborators required by the runner.
type RunnerDependencies struct {
	Discoverer   shared.RepositoryDiscoverer
	Synchronizer RepositorySynchronizer
	Logger       *zap.Logger
}

// RunOptions selects the directories a run covers.
type RunOptions struct {
	Roots     []string
	Recursive bool
}

// Runner walks repository roots and synchronizes every repository it finds, one at a time.
type Runner struct {
	discoverer   shared.RepositoryDiscoverer
	synchronizer RepositorySynchronizer
	logger       *zap.Logger
}

// NewRunner constructs a Runner from the provided dependencies.
func NewRunner(dependencies RunnerDependencies) (*Runner, error) {
	if dependencies.Discoverer == nil {
		return nil, ErrDiscovererNotConfigured
	}
	if dependencies.Synchronizer == nil {
		return nil, ErrSynchronizerNotConfigured
	}

	logger := dependencies.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Runner{discoverer: dependencies.Discoverer, synchronizer: dependencies.Synchronizer, logger: logger}, nil
}

// Run synchronizes the repositories under every root in order. Repository and root
// failures are recorded in the report and never stop the run; only cancellation does.
func (runner *Runner) Run(executionContext context.Context, options RunOptions) (RunReport, error) {
	roots := trimRunRoots(options.Roots)
	if len(roots) == 0 {
		return RunReport{}, ErrRepositoryRootsRequired
	}

	report := RunReport{}
	visited := make(map[string]struct{})

	for _, root := range roots {
		if contextError := executionContext.Err(); contextError != nil {
			return report, contextError
		}

		repositoryPaths, listError := runner.repositoriesUnderRoot(root, options.Recursive, &report)
		if listError != nil {
			runner.logger.Error(rootScanFailedMessageConstant, zap.String(rootPathLogFieldConstant, root), zap.Error(listError))
			report.RootFailures = append(report.RootFailures, RootFailure{RootPath: root, Error: listError})
			continue
		}

		for _, repositoryPath := range repositoryPaths {
			if contextError := executionContext.Err(); contextError != nil {
				return report, contextError
			}
			if _, seen := visited[repositoryPath]; seen {
				continue
			}
			visited[repositoryPath] = struct{}{}

			runner.synchronizeRepository(executionContext, repositoryPath, &report)
		}
	}

	return report, nil
}

func (runner *Runner) repositoriesUnderRoot(root string, recursive bool, report *RunReport) ([]string, error) {
	if recursive {
		return runner.discoverer.DiscoverRepositories([]string{root})
	}

	candidates, listError := runner.discoverer.ListCandidateDirectories(root)
	if listError != nil {
		return nil, listError
	}

	repositoryPaths := make([]string, 0, len(candidates))
	for _, candidate := range candidates {
		candidateName := filepath.Base(candidate)
		if !runner.discoverer.IsGitRepository(candidate) {
			runner.logger.Sugar().Infof(nonRepositoryMessageTemplate, candidateName)
			report.SkippedDirectories = append(report.SkippedDirectories, candidate)
			continue
		}
		runner.logger.Sugar().Infof(repositoryDetectedMessageTemplate, candidateName)
		repositoryPaths = append(repositoryPaths, candidate)
	}

	return repositoryPaths, nil
}

func (runner *Runner) synchronizeRepository(executionContext context.Context, repositoryPath string, report *RunReport) {
	repository, repositoryError := NewRepository(repositoryPath)
	if repositoryError != nil {
		runner.logger.Error(
			repositoryFailedMessageConstant,
			zap.String(repositoryPathLogFieldConstant, repositoryPath),
			zap.String(stageLogFieldConstant, string(StageResolve)),
			zap.Error(repositoryError),
		)
		report.Failures = append(report.Failures, RepositoryFailure{RepositoryPath: repositoryPath, Stage: StageResolve, Error: repositoryError})
		return
	}

	outcome, synchronizeError := runner.synchronizer.Synchronize(executionContext, repository)
	if synchronizeError != nil {
		stage := StageStatus
		var synchronizationError *SynchronizationError
		if errors.As(synchronizeError, &synchronizationError) {
			stage = synchronizationError.Stage
		}
		runner.logger.Error(
			repositoryFailedMessageConstant,
			zap.String(repositoryPathLogFieldConstant, repository.Path()),
			zap.String(stageLogFieldConstant, string(stage)),
			zap.Error(synchronizeError),
		)
		report.Failures = append(report.Failures, RepositoryFailure{RepositoryPath: repository.Path(), Stage: stage, Error: synchronizeError})
		return
	}

	runner.logger.Debug(
		repositorySynchronizedMessageConstant,
		zap.String(repositoryPathLogFieldConstant, repository.Path()),
		zap.Bool(committedLogFieldConstant, outcome.Committed),
		zap.Bool(pushedLogFieldConstant, outcome.Pushed),
	)
	report.Outcomes = append(report.Outcomes, outcome)
}

func trimRunRoots(raw []string) []string {
	trimmed := make([]string, 0, len(raw))
	for _, root := range raw {
		candidate := strings.TrimSpace(root)
		if len(candidate) == 0 {
			continue
		}
		trimmed = append(trimmed, candidate)
	}
	return trimmed
}
