package bulkpush

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/gitbulkpush/internal/execshell"
)

const testRepositoryPathConstant = "/workspace/project"

func newTestService(t *testing.T, executor *scriptedGitExecutor) *Service {
	t.Helper()
	service, serviceError := NewService(ServiceDependencies{GitExecutor: executor, Clock: testClock()}, ServiceSettings{})
	require.NoError(t, serviceError)
	return service
}

func testRepository(t *testing.T) Repository {
	t.Helper()
	repository, repositoryError := NewRepository(testRepositoryPathConstant)
	require.NoError(t, repositoryError)
	return repository
}

func TestNewServiceValidatesDependencies(t *testing.T) {
	_, serviceError := NewService(ServiceDependencies{Clock: testClock()}, ServiceSettings{})
	require.ErrorIs(t, serviceError, ErrGitExecutorNotConfigured)

	_, serviceError = NewService(ServiceDependencies{GitExecutor: newScriptedGitExecutor()}, ServiceSettings{})
	require.ErrorIs(t, serviceError, ErrClockNotConfigured)
}

func TestSynchronizeScenarios(t *testing.T) {
	testCases := []struct {
		name                string
		statusOutput        string
		pushOutput          string
		expectedCommitted   bool
		expectedPushed      bool
		expectedSubcommands []string
	}{
		{
			name:                "clean_and_up_to_date",
			statusOutput:        cleanStatusOutputConstant,
			pushOutput:          noopPushOutputConstant,
			expectedSubcommands: []string{"status", "push"},
		},
		{
			name:                "clean_with_unpushed_commits",
			statusOutput:        cleanStatusOutputConstant,
			pushOutput:          updatedPushOutputConstant,
			expectedPushed:      true,
			expectedSubcommands: []string{"status", "push"},
		},
		{
			name:                "dirty_and_pushed",
			statusOutput:        dirtyStatusOutputConstant,
			pushOutput:          updatedPushOutputConstant,
			expectedCommitted:   true,
			expectedPushed:      true,
			expectedSubcommands: []string{"status", "add", "commit", "push"},
		},
		{
			name:                "dirty_without_remotes",
			statusOutput:        dirtyStatusOutputConstant,
			pushOutput:          "",
			expectedCommitted:   true,
			expectedSubcommands: []string{"status", "add", "commit", "push"},
		},
		{
			name:                "unrecognized_status_is_treated_as_dirty",
			statusOutput:        "",
			pushOutput:          noopPushOutputConstant,
			expectedCommitted:   true,
			expectedSubcommands: []string{"status", "add", "commit", "push"},
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			executor := newScriptedGitExecutor().
				respond(testRepositoryPathConstant, "status", stubGitResponse{result: execshell.ExecutionResult{StandardOutput: testCase.statusOutput}}).
				respond(testRepositoryPathConstant, "push", stubGitResponse{result: execshell.ExecutionResult{StandardError: testCase.pushOutput}})
			service := newTestService(t, executor)
			repository := testRepository(t)

			outcome, synchronizeError := service.Synchronize(context.Background(), repository)
			require.NoError(t, synchronizeError)
			require.Equal(t, SyncOutcome{Repository: repository, Committed: testCase.expectedCommitted, Pushed: testCase.expectedPushed}, outcome)
			require.Equal(t, testCase.expectedSubcommands, executor.subcommandsFor(testRepositoryPathConstant))
		})
	}
}

func TestSynchronizeIssuesCommandsInRepositoryDirectory(t *testing.T) {
	executor := newScriptedGitExecutor().
		respond(testRepositoryPathConstant, "status", stubGitResponse{result: execshell.ExecutionResult{StandardOutput: dirtyStatusOutputConstant}})
	service := newTestService(t, executor)

	_, synchronizeError := service.Synchronize(context.Background(), testRepository(t))
	require.NoError(t, synchronizeError)

	require.Len(t, executor.recorded, 4)
	for _, details := range executor.recorded {
		require.Equal(t, testRepositoryPathConstant, details.WorkingDirectory)
	}
	require.Equal(t, []string{"status"}, executor.recorded[0].Arguments)
	require.Equal(t, map[string]string{"LC_ALL": "C"}, executor.recorded[0].EnvironmentVariables)
	require.Equal(t, []string{"add", "."}, executor.recorded[1].Arguments)
	require.Equal(t, []string{"commit", "-m", "2026-10-18 09:30:15", "-m", "by git-bulk-push"}, executor.recorded[2].Arguments)
	require.Equal(t, []string{"push"}, executor.recorded[3].Arguments)
	require.Equal(t, map[string]string{"LC_ALL": "C", "GIT_TERMINAL_PROMPT": "0"}, executor.recorded[3].EnvironmentVariables)
}

func TestSynchronizeUsesConfiguredTimestampLayout(t *testing.T) {
	executor := newScriptedGitExecutor()
	service, serviceError := NewService(ServiceDependencies{GitExecutor: executor, Clock: testClock()}, ServiceSettings{CommitTimestampLayout: "02.01.2006, 15:04"})
	require.NoError(t, serviceError)

	_, synchronizeError := service.Synchronize(context.Background(), testRepository(t))
	require.NoError(t, synchronizeError)
	require.Equal(t, []string{"commit", "-m", "18.10.2026, 09:30", "-m", "by git-bulk-push"}, executor.recorded[2].Arguments)
}

func TestSynchronizeAbortsOnCommandFailure(t *testing.T) {
	pushFailure := errors.New("remote rejected")
	testCases := []struct {
		name                string
		statusOutput        string
		failingSubcommand   string
		failure             error
		expectedStage       SynchronizationStage
		expectedSubcommands []string
	}{
		{
			name:                "status_failure",
			failingSubcommand:   "status",
			failure:             errors.New("not a git repository"),
			expectedStage:       StageStatus,
			expectedSubcommands: []string{"status"},
		},
		{
			name:                "add_failure",
			statusOutput:        dirtyStatusOutputConstant,
			failingSubcommand:   "add",
			failure:             errors.New("index.lock exists"),
			expectedStage:       StageAdd,
			expectedSubcommands: []string{"status", "add"},
		},
		{
			name:                "commit_failure",
			statusOutput:        dirtyStatusOutputConstant,
			failingSubcommand:   "commit",
			failure:             errors.New("author identity unknown"),
			expectedStage:       StageCommit,
			expectedSubcommands: []string{"status", "add", "commit"},
		},
		{
			name:                "push_failure_after_commit",
			statusOutput:        dirtyStatusOutputConstant,
			failingSubcommand:   "push",
			failure:             pushFailure,
			expectedStage:       StagePush,
			expectedSubcommands: []string{"status", "add", "commit", "push"},
		},
		{
			name:                "push_failure_on_clean_tree",
			statusOutput:        cleanStatusOutputConstant,
			failingSubcommand:   "push",
			failure:             pushFailure,
			expectedStage:       StagePush,
			expectedSubcommands: []string{"status", "push"},
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			executor := newScriptedGitExecutor().
				respond(testRepositoryPathConstant, "status", stubGitResponse{result: execshell.ExecutionResult{StandardOutput: testCase.statusOutput}}).
				respond(testRepositoryPathConstant, testCase.failingSubcommand, stubGitResponse{err: testCase.failure})
			service := newTestService(t, executor)

			outcome, synchronizeError := service.Synchronize(context.Background(), testRepository(t))
			require.Error(t, synchronizeError)
			require.Equal(t, SyncOutcome{}, outcome)
			require.ErrorIs(t, synchronizeError, testCase.failure)

			var synchronizationError *SynchronizationError
			require.ErrorAs(t, synchronizeError, &synchronizationError)
			require.Equal(t, testCase.expectedStage, synchronizationError.Stage)
			require.Equal(t, testRepositoryPathConstant, synchronizationError.RepositoryPath)
			require.Equal(t, testCase.expectedSubcommands, executor.subcommandsFor(testRepositoryPathConstant))
		})
	}
}

func TestSynchronizeSurfacesCommandFailedError(t *testing.T) {
	executor := newScriptedGitExecutor().
		respond(testRepositoryPathConstant, "status", stubGitResponse{err: statusFailure()})
	service := newTestService(t, executor)

	_, synchronizeError := service.Synchronize(context.Background(), testRepository(t))

	var commandFailedError execshell.CommandFailedError
	require.ErrorAs(t, synchronizeError, &commandFailedError)
	require.Equal(t, 128, commandFailedError.Result.ExitCode)
	require.Equal(t, []string{"status"}, commandFailedError.Command.Details.Arguments)
	require.NotContains(t, executor.subcommandsFor(testRepositoryPathConstant), "commit")
	require.NotContains(t, executor.subcommandsFor(testRepositoryPathConstant), "push")
}

func TestSynchronizeRejectsZeroRepository(t *testing.T) {
	service := newTestService(t, newScriptedGitExecutor())
	_, synchronizeError := service.Synchronize(context.Background(), Repository{})
	require.ErrorIs(t, synchronizeError, ErrRepositoryPathRequired)
}
