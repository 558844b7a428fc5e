package execshell

import (
	"context"
	"errors"
	"maps"
	"os"
	"os/exec"
	"slices"
	"strings"
)

const environmentAssignmentSeparatorConstant = "="

// OSCommandRunner starts commands as child processes in their requested working directory.
type OSCommandRunner struct{}

// NewOSCommandRunner constructs a runner backed by os/exec.
func NewOSCommandRunner() *OSCommandRunner {
	return &OSCommandRunner{}
}

// Run executes the command and captures both output streams. A non-zero exit is
// reported through ExecutionResult.ExitCode; only start failures and
// cancellation are returned as errors.
func (runner *OSCommandRunner) Run(executionContext context.Context, command ShellCommand) (ExecutionResult, error) {
	process := exec.CommandContext(executionContext, string(command.Name), slices.Clone(command.Details.Arguments)...)
	process.Dir = command.Details.WorkingDirectory
	if len(command.Details.EnvironmentVariables) > 0 {
		process.Env = mergeEnvironment(os.Environ(), command.Details.EnvironmentVariables)
	}

	var standardOutput strings.Builder
	var standardError strings.Builder
	process.Stdout = &standardOutput
	process.Stderr = &standardError

	runError := process.Run()
	result := ExecutionResult{
		StandardOutput: standardOutput.String(),
		StandardError:  standardError.String(),
	}
	if runError == nil {
		return result, nil
	}
	if contextError := executionContext.Err(); contextError != nil {
		return ExecutionResult{}, contextError
	}

	var exitError *exec.ExitError
	if errors.As(runError, &exitError) {
		result.ExitCode = exitError.ExitCode()
		return result, nil
	}
	return ExecutionResult{}, runError
}

// mergeEnvironment replaces inherited variables named in overrides and appends
// the overrides in key order.
func mergeEnvironment(inherited []string, overrides map[string]string) []string {
	merged := make([]string, 0, len(inherited)+len(overrides))
	for _, assignment := range inherited {
		variableName, _, _ := strings.Cut(assignment, environmentAssignmentSeparatorConstant)
		if _, overridden := overrides[variableName]; overridden {
			continue
		}
		merged = append(merged, assignment)
	}
	for _, variableName := range slices.Sorted(maps.Keys(overrides)) {
		merged = append(merged, variableName+environmentAssignmentSeparatorConstant+overrides[variableName])
	}
	return merged
}
