package bulkpush

import (
	"context"
	"errors"
	"strings"

	"github.com/temirov/gitbulkpush/internal/execshell"
	"github.com/temirov/gitbulkpush/internal/gitoutput"
	"github.com/temirov/gitbulkpush/internal/repos/shared"
)

const (
	gitExecutorMissingMessageConstant        = "git executor not configured"
	clockMissingMessageConstant              = "clock not configured"
	gitStatusSubcommandConstant              = "status"
	gitAddSubcommandConstant                 = "add"
	gitAddAllPathspecConstant                = "."
	gitCommitSubcommandConstant              = "commit"
	gitMessageFlagConstant                   = "-m"
	gitPushSubcommandConstant                = "push"
	gitLocaleEnvironmentNameConstant         = "LC_ALL"
	gitLocaleEnvironmentValueConstant        = "C"
	gitTerminalPromptEnvironmentNameConstant = "GIT_TERMINAL_PROMPT"
	gitTerminalPromptEnvironmentDisableValue = "0"

	// CommitProvenanceNote is the second commit message paragraph identifying automated commits.
	CommitProvenanceNote = "by git-bulk-push"
	// DefaultCommitTimestampLayout formats the commit summary when no layout is configured.
	// Go has no locale-aware date formatting, so the summary uses a fixed numeric
	// date and 24-hour time in the clock's zone (local for SystemClock); set
	// tools.sync.commit_timestamp_layout to match a regional convention.
	DefaultCommitTimestampLayout = "2006-01-02 15:04:05"
)

// ErrGitExecutorNotConfigured indicates the git executor dependency was missing.
var ErrGitExecutorNotConfigured = errors.New(gitExecutorMissingMessageConstant)

// ErrClockNotConfigured indicates the clock dependency was missing.
var ErrClockNotConfigured = errors.New(clockMissingMessageConstant)

// ServiceDependencies enumerates collaborators required by the service.
type ServiceDependencies struct {
	GitExecutor shared.GitExecutor
	Clock       shared.Clock
}

// ServiceSettings tunes commit message generation.
type ServiceSettings struct {
	CommitTimestampLayout string
}

// Service synchronizes a single repository: commit outstanding changes, then push.
type Service struct {
	executor        shared.GitExecutor
	clock           shared.Clock
	timestampLayout string
}

// NewService constructs a Service from the provided dependencies.
func NewService(dependencies ServiceDependencies, settings ServiceSettings) (*Service, error) {
	if dependencies.GitExecutor == nil {
		return nil, ErrGitExecutorNotConfigured
	}
	if dependencies.Clock == nil {
		return nil, ErrClockNotConfigured
	}

	timestampLayout := strings.TrimSpace(settings.CommitTimestampLayout)
	if len(timestampLayout) == 0 {
		timestampLayout = DefaultCommitTimestampLayout
	}

	return &Service{executor: dependencies.GitExecutor, clock: dependencies.Clock, timestampLayout: timestampLayout}, nil
}

// Synchronize runs status, then add and commit when the tree is dirty, then push.
// Any command failure aborts the cycle and is returned as a *SynchronizationError;
// no outcome is produced and nothing already committed is rolled back.
func (service *Service) Synchronize(executionContext context.Context, repository Repository) (SyncOutcome, error) {
	repositoryPath := repository.Path()
	if len(repositoryPath) == 0 {
		return SyncOutcome{}, ErrRepositoryPathRequired
	}

	statusResult, statusError := service.executor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:            []string{gitStatusSubcommandConstant},
		WorkingDirectory:     repositoryPath,
		EnvironmentVariables: stableOutputEnvironment(),
	})
	if statusError != nil {
		return SyncOutcome{}, &SynchronizationError{RepositoryPath: repositoryPath, Stage: StageStatus, Cause: statusError}
	}

	committed := false
	if !gitoutput.IsCleanWorkingTree(statusResult.StandardOutput) {
		if commitError := service.commitAll(executionContext, repositoryPath); commitError != nil {
			return SyncOutcome{}, commitError
		}
		committed = true
	}

	pushEnvironment := stableOutputEnvironment()
	pushEnvironment[gitTerminalPromptEnvironmentNameConstant] = gitTerminalPromptEnvironmentDisableValue
	pushResult, pushError := service.executor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:            []string{gitPushSubcommandConstant},
		WorkingDirectory:     repositoryPath,
		EnvironmentVariables: pushEnvironment,
	})
	if pushError != nil {
		return SyncOutcome{}, &SynchronizationError{RepositoryPath: repositoryPath, Stage: StagePush, Cause: pushError}
	}

	return SyncOutcome{
		Repository: repository,
		Committed:  committed,
		Pushed:     gitoutput.DidPush(pushResult.StandardError),
	}, nil
}

func (service *Service) commitAll(executionContext context.Context, repositoryPath string) error {
	if _, addError := service.executor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:        []string{gitAddSubcommandConstant, gitAddAllPathspecConstant},
		WorkingDirectory: repositoryPath,
	}); addError != nil {
		return &SynchronizationError{RepositoryPath: repositoryPath, Stage: StageAdd, Cause: addError}
	}

	if _, commitError := service.executor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:        []string{gitCommitSubcommandConstant, gitMessageFlagConstant, service.commitSummary(), gitMessageFlagConstant, CommitProvenanceNote},
		WorkingDirectory: repositoryPath,
	}); commitError != nil {
		return &SynchronizationError{RepositoryPath: repositoryPath, Stage: StageCommit, Cause: commitError}
	}

	return nil
}

func (service *Service) commitSummary() string {
	return service.clock.Now().Format(service.timestampLayout)
}

// stableOutputEnvironment pins git's messages to the untranslated phrasing gitoutput matches.
func stableOutputEnvironment() map[string]string {
	return map[string]string{gitLocaleEnvironmentNameConstant: gitLocaleEnvironmentValueConstant}
}
