package bulkpush

import (
	"context"
	"time"

	"github.com/temirov/gitbulkpush/internal/execshell"
)

const (
	cleanStatusOutputConstant = "On branch main\nYour branch is up to date with 'origin/main'.\n\nnothing to commit, working tree clean\n"
	dirtyStatusOutputConstant = "On branch main\nChanges not staged for commit:\n\tmodified:   README.md\n\nno changes added to commit (use \"git add\" and/or \"git commit -a\")\n"
	noopPushOutputConstant    = "Everything up-to-date\n"
	updatedPushOutputConstant = "Everything up-to-date\nTo https://example.com/repo.git\n   167dfd2..0b0714a  main -> main\n"
)

type stubGitResponse struct {
	result execshell.ExecutionResult
	err    error
}

// scriptedGitExecutor answers each git subcommand from a per-repository script.
type scriptedGitExecutor struct {
	responses map[string]map[string]stubGitResponse
	recorded  []execshell.CommandDetails
}

func newScriptedGitExecutor() *scriptedGitExecutor {
	return &scriptedGitExecutor{responses: make(map[string]map[string]stubGitResponse)}
}

func (executor *scriptedGitExecutor) respond(repositoryPath string, subcommand string, response stubGitResponse) *scriptedGitExecutor {
	repositoryResponses, exists := executor.responses[repositoryPath]
	if !exists {
		repositoryResponses = make(map[string]stubGitResponse)
		executor.responses[repositoryPath] = repositoryResponses
	}
	repositoryResponses[subcommand] = response
	return executor
}

func (executor *scriptedGitExecutor) ExecuteGit(_ context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error) {
	executor.recorded = append(executor.recorded, details)
	if len(details.Arguments) == 0 {
		return execshell.ExecutionResult{}, nil
	}
	response := executor.responses[details.WorkingDirectory][details.Arguments[0]]
	if response.err != nil {
		return execshell.ExecutionResult{}, response.err
	}
	return response.result, nil
}

func (executor *scriptedGitExecutor) subcommandsFor(repositoryPath string) []string {
	var subcommands []string
	for _, details := range executor.recorded {
		if details.WorkingDirectory != repositoryPath || len(details.Arguments) == 0 {
			continue
		}
		subcommands = append(subcommands, details.Arguments[0])
	}
	return subcommands
}

type fixedClock struct {
	instant time.Time
}

func (clock fixedClock) Now() time.Time {
	return clock.instant
}

func testClock() fixedClock {
	return fixedClock{instant: time.Date(2026, time.October, 18, 9, 30, 15, 0, time.UTC)}
}

func statusFailure() error {
	return execshell.CommandFailedError{
		Command: execshell.ShellCommand{Name: execshell.CommandGit, Details: execshell.CommandDetails{Arguments: []string{"status"}}},
		Result:  execshell.ExecutionResult{ExitCode: 128, StandardError: "fatal: not a git repository"},
	}
}
